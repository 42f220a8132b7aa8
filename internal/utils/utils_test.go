package utils_test

import (
	"testing"

	"github.com/raysh454/formpilot/internal/utils"
)

func TestCanonicalOrigin(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com/checkout?x=1", "https://example.com"},
		{"HTTPS://Example.COM/path", "https://example.com"},
		{"https://example.com:443/x", "https://example.com"},
		{"http://example.com:80/x", "http://example.com"},
		{"http://example.com:8080/x", "http://example.com:8080"},
		{"http://bücher.de/x", "http://xn--bcher-kva.de"},
		{"http://localhost:9999/signup", "http://localhost:9999"},
	}

	for _, tc := range cases {
		got, err := utils.CanonicalOrigin(tc.in)
		if err != nil {
			t.Errorf("CanonicalOrigin(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("CanonicalOrigin(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalOrigin_Errors(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   ", "not a url", "/relative/path", "example.com"} {
		if got, err := utils.CanonicalOrigin(in); err == nil {
			t.Errorf("CanonicalOrigin(%q) = %q, want error", in, got)
		}
	}
}

func TestEscapeCSSIdentifier(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"email", "email"},
		{"user-name_2", "user-name_2"},
		{"a.b", `a\.b`},
		{"a:b", `a\:b`},
		{"a b", `a\ b`},
		{"1abc", `\31 abc`},
		{"-1a", `-\31 a`},
		{"-abc", "-abc"},
		{"-", `\-`},
		{"a-1", "a-1"},
	}
	for _, tc := range cases {
		if got := utils.EscapeCSSIdentifier(tc.in); got != tc.want {
			t.Errorf("EscapeCSSIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

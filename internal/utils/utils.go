package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var ErrEmptyURL = errors.New("empty url")

// CanonicalOrigin reduces a page URL to a deterministic origin string for
// audit entries: lowercase scheme and host, default ports stripped, host
// punycoded so unicode and ASCII spellings of the same origin collapse.
//
// Examples:
//
//	CanonicalOrigin("HTTPS://Example.com:443/checkout") → "https://example.com"
//	CanonicalOrigin("http://bücher.de/x")               → "http://xn--bcher-kva.de"
func CanonicalOrigin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &url.Error{Op: "parse", URL: raw, Err: ErrEmptyURL}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("couldn't parse url %s: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url %s has no origin", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)

	if (scheme == "http" && strings.HasSuffix(host, ":80")) ||
		(scheme == "https" && strings.HasSuffix(host, ":443")) {
		host, _, _ = strings.Cut(host, ":")
	}

	hostname, port, hasPort := strings.Cut(host, ":")
	ascii, err := idna.Lookup.ToASCII(hostname)
	if err == nil && ascii != "" {
		hostname = ascii
	}
	if hasPort {
		return scheme + "://" + hostname + ":" + port, nil
	}
	return scheme + "://" + hostname, nil
}

// EscapeCSSIdentifier escapes a string for use inside a CSS selector, the
// counterpart of the DOM's CSS.escape. Locators built from ids and name
// attributes pass through this so punctuation cannot break selector syntax.
func EscapeCSSIdentifier(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r > 0x7f:
			b.WriteRune(r)
		case r == '-':
			// A lone "-" is not an identifier by itself.
			if len(s) == 1 {
				b.WriteString(`\-`)
			} else {
				b.WriteRune(r)
			}
		case r >= '0' && r <= '9':
			// A digit in first position, or right after a leading "-",
			// must be escaped as a code point.
			if i == 0 || (i == 1 && s[0] == '-') {
				fmt.Fprintf(&b, `\%x `, r)
			} else {
				b.WriteRune(r)
			}
		case r == 0:
			b.WriteRune('�')
		default:
			b.WriteRune('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

package page_test

import (
	"errors"
	"testing"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/page"
	"github.com/raysh454/formpilot/internal/testutil"
)

func TestNewOpener_DefaultBackend(t *testing.T) {
	page.RegisterDefaultBackends()

	cfg := page.DefaultConfig()
	cfg.Backend = ""
	op, err := page.NewOpener(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewOpener with empty backend: %v", err)
	}
	if op == nil {
		t.Fatal("opener is nil")
	}
	defer op.Close()
}

func TestNewOpener_HTMLDoc(t *testing.T) {
	page.RegisterDefaultBackends()

	cfg := page.DefaultConfig()
	cfg.Backend = page.BackendHTMLDoc
	op, err := page.NewOpener(cfg, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewOpener(htmldoc): %v", err)
	}
	defer op.Close()
}

func TestNewOpener_UnknownBackend(t *testing.T) {
	page.RegisterDefaultBackends()

	cfg := page.DefaultConfig()
	cfg.Backend = "netscape"
	op, err := page.NewOpener(cfg, &testutil.DummyLogger{})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if op != nil {
		t.Fatal("expected nil opener for unknown backend")
	}
}

func TestRegisterBackend_Custom(t *testing.T) {
	page.RegisterBackend("Custom-Test", func(cfg page.Config, logger interfaces.Logger) (page.Opener, error) {
		return &testutil.FakeOpener{}, nil
	})

	cfg := page.DefaultConfig()
	cfg.Backend = "custom-test" // names are lower-cased on registration
	op, err := page.NewOpener(cfg, nil)
	if err != nil {
		t.Fatalf("NewOpener(custom): %v", err)
	}
	if _, ok := op.(*testutil.FakeOpener); !ok {
		t.Errorf("wrong opener type: %T", op)
	}
}

func TestNewOpener_ConstructorError(t *testing.T) {
	page.RegisterBackend("broken-test", func(cfg page.Config, logger interfaces.Logger) (page.Opener, error) {
		return nil, errors.New("boom")
	})

	cfg := page.DefaultConfig()
	cfg.Backend = "broken-test"
	if _, err := page.NewOpener(cfg, nil); err == nil {
		t.Fatal("expected constructor error to propagate")
	}
}

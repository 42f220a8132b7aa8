package page

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/raysh454/formpilot/internal/interfaces"
)

// BackendConstructor constructs an Opener given the config and logger.
type BackendConstructor func(cfg Config, logger interfaces.Logger) (Opener, error)

var (
	mu       sync.RWMutex
	registry = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally. Calling RegisterBackend with the same name overwrites the
// previous constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(name)] = ctor
}

// NewOpener constructs the configured session backend. It returns an error
// if the named backend has not been registered.
func NewOpener(cfg Config, logger interfaces.Logger) (Opener, error) {
	backend := strings.ToLower(strings.TrimSpace(string(cfg.Backend)))
	if backend == "" {
		backend = string(BackendHTMLDoc)
	}

	mu.RLock()
	ctor, ok := registry[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("page backend %q not registered: available backends=%v", backend, ListBackends())
	}

	op, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct page backend %q: %w", backend, err)
	}
	if op == nil {
		return nil, errors.New("page backend constructor returned nil")
	}
	return op, nil
}

// ListBackends returns the list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	return out
}

// RegisterDefaultBackends registers the htmldoc and chromedp backends.
// Call this from init() or early in main() to make backends available to
// NewOpener.
func RegisterDefaultBackends() {
	RegisterBackend(string(BackendHTMLDoc), func(cfg Config, logger interfaces.Logger) (Opener, error) {
		if logger != nil {
			logger.Debug("created htmldoc page backend",
				interfaces.Field{Key: "timeout", Value: cfg.Timeout.String()})
		}
		return NewHTMLDocOpener(cfg, logger), nil
	})

	RegisterBackend(string(BackendChromedp), func(cfg Config, logger interfaces.Logger) (Opener, error) {
		op, err := NewChromedpOpener(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("create chromedp backend: %w", err)
		}
		if logger != nil {
			logger.Debug("created chromedp page backend",
				interfaces.Field{Key: "idle_after", Value: cfg.IdleAfter.String()},
				interfaces.Field{Key: "headless", Value: cfg.Headless})
		}
		return op, nil
	})
}

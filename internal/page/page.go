// Package page is the DOM boundary of the assistant. It provides named
// session backends behind a factory: "htmldoc" parses static HTML with
// goquery (tests, dry runs, JS-free pages), "chromedp" drives a real
// browser. Everything above this package sees only interfaces.Session.
package page

import (
	"context"

	"github.com/raysh454/formpilot/internal/interfaces"
)

// Opener produces a fresh Session per request. Scan and apply each open
// their own session so plans are always computed against current state.
type Opener interface {
	// Open navigates to url and returns a session bound to that page.
	Open(ctx context.Context, url string) (interfaces.Session, error)

	// Close releases backend-wide resources (e.g. the browser process).
	Close() error
}

// Fillable input types. Everything else (hidden, submit, button, reset,
// file) is excluded from scans.
func fillableInputType(typeAttr string) bool {
	switch typeAttr {
	case "hidden", "submit", "button", "reset", "file":
		return false
	}
	return true
}

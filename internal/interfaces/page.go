package interfaces

import (
	"context"
	"errors"

	"github.com/raysh454/formpilot/internal/model"
)

// ErrElementNotFound is returned by Session.Fill when the locator no longer
// resolves to a live element. Callers distinguish it from other fill
// failures with errors.Is.
var ErrElementNotFound = errors.New("element not found")

// Session is the DOM boundary: one open page, scoped to a single scan or
// apply request. Implementations are the only code that touches a document;
// everything above them is pure.
type Session interface {
	// Fields returns metadata for every fillable form field on the page,
	// in document order. Disabled fields and non-fillable input types
	// (hidden, submit, button, reset, file) are excluded.
	Fields(ctx context.Context) ([]model.FieldMetadata, error)

	// Fill resolves the locator and writes value into the element:
	// for select elements the value is matched case-insensitively against
	// each option's value or display text (first match wins, no match
	// leaves the element unchanged); for all other elements the value is
	// assigned directly. Implementations emit synthetic input and change
	// notifications and drop focus afterwards.
	// Returns ErrElementNotFound when the locator resolves to nothing.
	Fill(ctx context.Context, locator, value string) error

	// URL returns the page's current full URL.
	URL(ctx context.Context) (string, error)

	// Close releases the underlying page resources.
	Close() error
}

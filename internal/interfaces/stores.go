package interfaces

import (
	"context"

	"github.com/raysh454/formpilot/internal/model"
)

// ProfileStore persists the user profile. A missing profile reads as
// model.DefaultProfile(); write failures propagate to the caller.
type ProfileStore interface {
	Profile(ctx context.Context) (model.Profile, error)
	SetProfile(ctx context.Context, p model.Profile) error
}

// SettingsStore persists the safety settings. A missing record reads as
// model.DefaultSettings().
type SettingsStore interface {
	Settings(ctx context.Context) (model.Settings, error)
	SetSettings(ctx context.Context, s model.Settings) error
}

// AuditStore persists apply summaries. The store enforces retention:
// Append trims the log to model.MaxAuditEntries, and Recent returns
// entries most-recent-first.
type AuditStore interface {
	Append(ctx context.Context, entry model.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}

// Package app wires the autofill pipeline together: page session in,
// classified plan out, approved fills applied, audit entry recorded.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/formpilot/internal/applicator"
	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/page"
	"github.com/raysh454/formpilot/internal/plan"
	"github.com/raysh454/formpilot/internal/utils"
)

// Assistant is the orchestrator behind both core operations. Every request
// opens a fresh page session and re-reads profile and settings — plans are
// recomputed, never cached, so approvals can never land on stale state
// silently (a stale DOM still surfaces as not_found, by design).
type Assistant struct {
	cfg      *Config
	opener   page.Opener
	profiles interfaces.ProfileStore
	settings interfaces.SettingsStore
	audits   interfaces.AuditStore
	logger   interfaces.Logger
}

// NewAssistant ties together config, page backend, stores and logger.
func NewAssistant(cfg *Config, opener page.Opener, profiles interfaces.ProfileStore, settings interfaces.SettingsStore, audits interfaces.AuditStore, logger interfaces.Logger) *Assistant {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Assistant{
		cfg:      cfg,
		opener:   opener,
		profiles: profiles,
		settings: settings,
		audits:   audits,
		logger:   logger,
	}
}

// Scan opens the page and computes a fresh fill plan. Pure computation over
// fresh inputs; nothing is mutated or persisted.
func (a *Assistant) Scan(ctx context.Context, url string) ([]model.PlanItem, error) {
	items, _, err := a.buildPlan(ctx, url, true)
	return items, err
}

// ApplyPlan recomputes the plan for url, applies the approved fills and
// records an audit entry. Approvals are keyed by locator; missing keys are
// denials. Per-field failures become result rows — only collaborator
// failures (session, stores) surface as errors.
//
// When the audit write fails, the returned report is still non-nil: the
// fills were already applied.
func (a *Assistant) ApplyPlan(ctx context.Context, url string, approvals map[string]bool, onItem applicator.ItemFunc) (*model.ApplyReport, error) {
	items, session, err := a.buildPlan(ctx, url, false)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	results, summary := applicator.Apply(ctx, session, items, approvals, onItem)
	report := &model.ApplyReport{Results: results, Summary: summary}

	pageURL, err := session.URL(ctx)
	if err != nil {
		a.logger.Warn("reading page url for audit",
			interfaces.Field{Key: "error", Value: err.Error()})
		pageURL = url
	}
	origin, err := utils.CanonicalOrigin(pageURL)
	if err != nil {
		origin = pageURL
	}

	entry := model.AuditEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		Origin:    origin,
		URL:       pageURL,
		Filled:    summary.FilledCount,
		Blocked:   summary.BlockedCount,
		Skipped:   summary.SkippedCount,
		Results:   model.CapResults(results),
	}
	if err := a.audits.Append(ctx, entry); err != nil {
		return report, fmt.Errorf("append audit entry: %w", err)
	}

	a.logger.Info("applied plan",
		interfaces.Field{Key: "url", Value: pageURL},
		interfaces.Field{Key: "filled", Value: summary.FilledCount},
		interfaces.Field{Key: "blocked", Value: summary.BlockedCount},
		interfaces.Field{Key: "skipped", Value: summary.SkippedCount})

	return report, nil
}

// buildPlan opens a session and computes the plan from fresh metadata,
// profile and settings. When closeSession is true the session is closed
// before returning; otherwise the caller owns it.
func (a *Assistant) buildPlan(ctx context.Context, url string, closeSession bool) ([]model.PlanItem, interfaces.Session, error) {
	session, err := a.opener.Open(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("open page %s: %w", url, err)
	}
	if closeSession {
		defer session.Close()
	}

	fields, err := session.Fields(ctx)
	if err != nil {
		if !closeSession {
			session.Close()
		}
		return nil, nil, fmt.Errorf("extract fields: %w", err)
	}

	profile, err := a.profiles.Profile(ctx)
	if err != nil {
		if !closeSession {
			session.Close()
		}
		return nil, nil, fmt.Errorf("read profile: %w", err)
	}

	settings, err := a.settings.Settings(ctx)
	if err != nil {
		if !closeSession {
			session.Close()
		}
		return nil, nil, fmt.Errorf("read settings: %w", err)
	}

	items := plan.Build(fields, profile, settings)

	a.logger.Debug("built plan",
		interfaces.Field{Key: "url", Value: url},
		interfaces.Field{Key: "fields", Value: len(fields)})

	if closeSession {
		return items, nil, nil
	}
	return items, session, nil
}

// Profile, SetProfile, Settings, SetSettings and Audit are thin
// passthroughs so callers can hold one handle.

func (a *Assistant) Profile(ctx context.Context) (model.Profile, error) {
	return a.profiles.Profile(ctx)
}

func (a *Assistant) SetProfile(ctx context.Context, p model.Profile) error {
	return a.profiles.SetProfile(ctx, p)
}

func (a *Assistant) Settings(ctx context.Context) (model.Settings, error) {
	return a.settings.Settings(ctx)
}

func (a *Assistant) SetSettings(ctx context.Context, s model.Settings) error {
	return a.settings.SetSettings(ctx, s)
}

func (a *Assistant) Audit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	return a.audits.Recent(ctx, limit)
}

// Close releases the page backend.
func (a *Assistant) Close() {
	if a.opener != nil {
		if err := a.opener.Close(); err != nil {
			a.logger.Warn("closing page backend",
				interfaces.Field{Key: "error", Value: err.Error()})
		}
	}
}

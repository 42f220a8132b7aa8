package model

import "time"

// MaxAuditResults caps the per-entry result list so a huge page cannot
// bloat the audit log.
const MaxAuditResults = 50

// MaxAuditEntries is the number of audit entries the store retains,
// most-recent-first.
const MaxAuditEntries = 100

// AuditEntry summarizes one apply operation. Entries are appended on every
// apply and trimmed by the store to MaxAuditEntries.
type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Origin is the canonicalized page origin (scheme + host, default
	// ports stripped, punycoded host).
	Origin string `json:"origin"`

	// URL is the full page URL the plan was applied to.
	URL string `json:"url"`

	Filled  int `json:"filled"`
	Blocked int `json:"blocked"`
	Skipped int `json:"skipped"`

	// Results holds at most MaxAuditResults per-field outcomes.
	Results []ApplyResult `json:"results,omitempty"`
}

// CapResults returns a copy of results truncated to MaxAuditResults.
func CapResults(results []ApplyResult) []ApplyResult {
	if len(results) <= MaxAuditResults {
		out := make([]ApplyResult, len(results))
		copy(out, results)
		return out
	}
	out := make([]ApplyResult, MaxAuditResults)
	copy(out, results[:MaxAuditResults])
	return out
}

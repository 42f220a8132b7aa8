// Package policy holds the safety policy and the decision engine.
//
// The sensitive set below is the single authoritative list; every other
// component (decision engine, explanation text, API docs) derives from it
// rather than duplicating it.
package policy

import (
	"fmt"

	"github.com/raysh454/formpilot/internal/model"
)

var sensitiveTypes = map[model.FieldType]struct{}{
	model.FieldCreditCard: {},
	model.FieldSSN:        {},
	model.FieldBank:       {},
	model.FieldPassword:   {},
	model.FieldDOB:        {},
}

// Sensitive reports whether a field type belongs to the sensitive set.
func Sensitive(ft model.FieldType) bool {
	_, ok := sensitiveTypes[ft]
	return ok
}

// SensitiveTypes returns a copy of the sensitive set for callers that need
// to enumerate it (documentation, API responses).
func SensitiveTypes() []model.FieldType {
	out := make([]model.FieldType, 0, len(sensitiveTypes))
	for _, ft := range []model.FieldType{
		model.FieldCreditCard,
		model.FieldSSN,
		model.FieldBank,
		model.FieldPassword,
		model.FieldDOB,
	} {
		if Sensitive(ft) {
			out = append(out, ft)
		}
	}
	return out
}

// Explain returns the generic, settings-independent explanation for a
// classification. The decision engine uses it for its residual branch.
func Explain(ft model.FieldType) string {
	if Sensitive(ft) {
		return fmt.Sprintf("Blocked: classified as sensitive (%s).", ft)
	}
	if ft == model.FieldUnknown {
		return "Skipped: unknown field type (needs manual confirmation)."
	}
	return fmt.Sprintf("Safe: classified as %s.", ft)
}

// Decision is the per-field output of the decision engine. Reason is always
// non-empty.
type Decision struct {
	Action model.Action
	Reason string
}

// Decide combines a classification, its sensitivity, the proposed profile
// value and the user settings into one action. Branches are evaluated in
// strict order; the first match wins.
//
// Invariant: a fill action is never produced for a sensitive field type,
// regardless of settings. Disabling HardBlockSensitive only downgrades
// "blocked" to the residual "skip"; there is deliberately no code path that
// fills a sensitive field.
func Decide(ft model.FieldType, sensitive bool, proposedValue string, settings model.Settings) Decision {
	switch {
	case sensitive && settings.HardBlockSensitive:
		return Decision{
			Action: model.ActionBlocked,
			Reason: fmt.Sprintf("Blocked: sensitive field (%s) hard-blocked.", ft),
		}

	case ft == model.FieldUnknown && settings.SkipUnknown:
		return Decision{
			Action: model.ActionSkip,
			Reason: "Skipped: unknown field type (user can fill manually).",
		}

	case proposedValue != "" && ft != model.FieldUnknown && !sensitive:
		return Decision{
			Action: model.ActionFill,
			Reason: fmt.Sprintf("Will fill: %s.", ft),
		}

	case proposedValue == "" && ft != model.FieldUnknown && !sensitive:
		return Decision{
			Action: model.ActionSkip,
			Reason: fmt.Sprintf("Skipped: profile has no value for %s.", ft),
		}

	default:
		// Residual: sensitive with hard-block off, or unknown with
		// skip-unknown off. Always a skip, never a fill.
		return Decision{
			Action: model.ActionSkip,
			Reason: Explain(ft),
		}
	}
}

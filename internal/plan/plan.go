// Package plan turns scanned field metadata into a per-field fill plan.
package plan

import (
	"github.com/raysh454/formpilot/internal/classify"
	"github.com/raysh454/formpilot/internal/model"
	"github.com/raysh454/formpilot/internal/policy"
)

// Build classifies every field, consults the safety policy and the profile,
// and decides an action per field. Pure: same inputs always produce a
// structurally identical plan. Plans are ephemeral and must be rebuilt from
// fresh inputs for every scan or apply request.
func Build(fields []model.FieldMetadata, profile model.Profile, settings model.Settings) []model.PlanItem {
	items := make([]model.PlanItem, 0, len(fields))
	for _, meta := range fields {
		ft := classify.Classify(meta)
		sensitive := policy.Sensitive(ft)

		// Sensitive types are never profile keys, so this resolves to ""
		// for them implicitly.
		proposed := profile.ValueFor(ft)

		d := policy.Decide(ft, sensitive, proposed, settings)

		items = append(items, model.PlanItem{
			FieldMetadata: meta,
			FieldType:     ft,
			Sensitive:     sensitive,
			ProposedValue: proposed,
			Action:        d.Action,
			Reason:        d.Reason,
		})
	}
	return items
}

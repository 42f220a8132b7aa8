// Package applicator executes an approved fill plan against a page session.
// It is the only component that mutates external state, and it never decides
// anything itself: actions come from the plan, permission comes from the
// approvals map.
package applicator

import (
	"context"
	"errors"
	"fmt"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
)

// ItemFunc observes each result as it is produced. Used by streaming
// consumers (the websocket apply endpoint); may be nil.
type ItemFunc func(model.ApplyResult)

// Apply walks the plan in order and produces exactly one result per item.
//
// Rules:
//   - non-fill actions pass through unchanged, no element access;
//   - a fill without an explicit approvals[locator] == true entry is
//     skipped_by_user — a missing entry is treated identically to an
//     explicit denial (default-deny);
//   - a locator that no longer resolves reports not_found;
//   - any other fill failure reports error with the failure description,
//     and never aborts the remaining items.
//
// The plan must be freshly computed; approvals are keyed by locator, and a
// stale plan can misresolve if the DOM mutated since the scan.
func Apply(ctx context.Context, session interfaces.Session, items []model.PlanItem, approvals map[string]bool, onItem ItemFunc) ([]model.ApplyResult, model.ApplySummary) {
	results := make([]model.ApplyResult, 0, len(items))
	var summary model.ApplySummary

	emit := func(r model.ApplyResult) {
		results = append(results, r)
		switch r.Status {
		case model.StatusFilled:
			summary.FilledCount++
		case model.StatusBlocked:
			summary.BlockedCount++
		default:
			summary.SkippedCount++
		}
		if onItem != nil {
			onItem(r)
		}
	}

	for _, item := range items {
		if item.Action != model.ActionFill {
			emit(model.ApplyResult{
				Locator: item.Locator,
				Status:  model.ApplyStatus(item.Action),
				Reason:  item.Reason,
			})
			continue
		}

		if !approvals[item.Locator] {
			emit(model.ApplyResult{
				Locator: item.Locator,
				Status:  model.StatusSkippedByUser,
				Reason:  "User did not approve.",
			})
			continue
		}

		err := session.Fill(ctx, item.Locator, item.ProposedValue)
		switch {
		case err == nil:
			emit(model.ApplyResult{
				Locator: item.Locator,
				Status:  model.StatusFilled,
				Reason:  fmt.Sprintf("Filled %s.", item.FieldType),
			})
		case errors.Is(err, interfaces.ErrElementNotFound):
			emit(model.ApplyResult{
				Locator: item.Locator,
				Status:  model.StatusNotFound,
				Reason:  "Element not found.",
			})
		default:
			emit(model.ApplyResult{
				Locator: item.Locator,
				Status:  model.StatusError,
				Reason:  err.Error(),
			})
		}
	}

	return results, summary
}

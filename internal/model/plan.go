package model

// Action is the per-field decision produced by the decision engine.
type Action string

const (
	ActionFill    Action = "fill"
	ActionSkip    Action = "skip"
	ActionBlocked Action = "blocked"
)

// ApplyStatus is the outcome of applying (or declining to apply) one plan item.
// Non-fill actions carry through unchanged, so "skip" and "blocked" are also
// valid statuses.
type ApplyStatus string

const (
	StatusFilled        ApplyStatus = "filled"
	StatusSkippedByUser ApplyStatus = "skipped_by_user"
	StatusNotFound      ApplyStatus = "not_found"
	StatusError         ApplyStatus = "error"
	StatusSkip          ApplyStatus = ApplyStatus(ActionSkip)
	StatusBlocked       ApplyStatus = ApplyStatus(ActionBlocked)
)

// PlanItem is one field's worth of scan output: the observed metadata plus
// the classification, sensitivity flag, proposed value and decision.
// Plans are ephemeral; they are recomputed from scratch on every scan and
// never persisted.
type PlanItem struct {
	FieldMetadata

	FieldType     FieldType `json:"field_type"`
	Sensitive     bool      `json:"sensitive"`
	ProposedValue string    `json:"proposed_value"`
	Action        Action    `json:"action"`

	// Reason is always non-empty: every decision is explainable.
	Reason string `json:"reason"`
}

// ApplyResult is the per-item outcome of an apply pass.
type ApplyResult struct {
	Locator string      `json:"locator"`
	Status  ApplyStatus `json:"status"`
	Reason  string      `json:"reason"`
}

// ApplySummary aggregates an apply pass for reporting and auditing.
// SkippedCount is the residual bucket: plan skips, user denials, not_found
// and error outcomes all land in it, so the three counts always sum to the
// number of plan items. Consult Results for the per-field breakdown.
type ApplySummary struct {
	FilledCount  int `json:"filled_count"`
	BlockedCount int `json:"blocked_count"`
	SkippedCount int `json:"skipped_count"`
}

// ApplyReport is the full response of an apply operation.
type ApplyReport struct {
	Results []ApplyResult `json:"results"`
	Summary ApplySummary  `json:"summary"`
}

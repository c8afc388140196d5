package business

import "time"

// ActionType is the closed set of billing instructions the engine can emit.
type ActionType string

const (
	ActionCreateAccount      ActionType = "create_account"
	ActionUpdateAccount      ActionType = "update_account"
	ActionCreateSubscription ActionType = "create_subscription"
	ActionUpdateSubscription ActionType = "update_subscription"
	ActionCancelSubscription ActionType = "cancel_subscription"
	ActionCreateInvoice      ActionType = "create_invoice"
	ActionApplyCredit        ActionType = "apply_credit"
	ActionChargeOneTime      ActionType = "charge_one_time"
	ActionProrateCharges     ActionType = "prorate_charges"
	ActionError              ActionType = "error"
)

// RiskLevel is the coarse classification that drives manual review.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// BillingAction is one discrete billing instruction destined for human review
// before execution. Actions are never mutated after emission; the ordered
// slice of them is the engine's sole output.
type BillingAction struct {
	Type           ActionType             `json:"type"`
	Description    string                 `json:"description"`
	Details        map[string]interface{} `json:"details,omitempty"`
	AmountCents    *int64                 `json:"amount_cents,omitempty"`
	EffectiveDate  *time.Time             `json:"effective_date,omitempty"`
	RequiresReview bool                   `json:"requires_review"`
	RiskLevel      RiskLevel              `json:"risk_level"`
	Notes          []string               `json:"notes,omitempty"`
}

// RiskAssessment is the opportunity-level risk score computed before action
// generation. Never persisted.
type RiskAssessment struct {
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Factors []string  `json:"factors"`
}

// ReviewSheet is the aggregate summary rendered for human reviewers.
type ReviewSheet struct {
	OpportunityID        string         `json:"opportunity_id"`
	TotalActions         int            `json:"total_actions"`
	TotalAmountCents     int64          `json:"total_amount_cents"`
	ActionsByType        map[string]int `json:"actions_by_type"`
	Warnings             []string       `json:"warnings,omitempty"`
	ManualReviewRequired bool           `json:"manual_review_required"`
}

package interfaces

import (
	"context"
	"time"

	"github.com/dealbridge/billing-engine/types/business"
)

// ActionGenerator produces the ordered billing-action list for one order
// type. state is nil when the provider has no account for the opportunity;
// generators that require existing state must emit their own precondition
// failure action rather than erroring.
type ActionGenerator interface {
	Generate(ctx context.Context, opp *business.Opportunity, state *business.AccountState) ([]business.BillingAction, error)
}

// RiskScorer computes risk levels for amounts and whole opportunities.
type RiskScorer interface {
	ScoreAmount(amountCents int64) business.RiskLevel
	ScoreOpportunity(opp *business.Opportunity) (*business.RiskAssessment, error)
}

// ProrationCalculator computes partial-period charges for a line item.
type ProrationCalculator interface {
	CalculateLineItemProration(item *business.LineItem, contractStart, contractEnd string, frequency business.BillingFrequency, now time.Time, hints *business.ProrationHints) (*business.ProrationResult, error)
}

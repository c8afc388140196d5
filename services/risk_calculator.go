package services

import (
	"fmt"
	"strings"

	"github.com/dealbridge/billing-engine/constants"
	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/types/business"
)

// Amount tier boundaries in minor units.
const (
	lowAmountCeilingCents    int64 = 100_000 // $1,000
	mediumAmountCeilingCents int64 = 500_000 // $5,000
)

// Risk score thresholds for the aggregate opportunity level.
const (
	lowScoreCeiling    = 10
	mediumScoreCeiling = 20
)

const subScoreCap = 10

// RiskCalculator scores monetary amounts and whole opportunities. It is a
// pure function over its inputs: no clock, no provider, no stored state.
type RiskCalculator struct{}

// NewRiskCalculator creates a new risk calculator.
func NewRiskCalculator() *RiskCalculator {
	return &RiskCalculator{}
}

// ScoreAmount maps a minor-unit amount onto the three-level risk scale.
// Monotonic non-decreasing in the amount, total over all inputs.
func (rc *RiskCalculator) ScoreAmount(amountCents int64) business.RiskLevel {
	switch {
	case amountCents <= lowAmountCeilingCents:
		return business.RiskLow
	case amountCents <= mediumAmountCeilingCents:
		return business.RiskMedium
	default:
		return business.RiskHigh
	}
}

// ScoreOpportunity sums four independent sub-scores (amount tier, line-item
// complexity, contract duration, payment terms), each clamped to 0-10 points,
// into an aggregate assessment. Malformed contract dates are a validation
// failure reported to the caller, never silently defaulted.
func (rc *RiskCalculator) ScoreOpportunity(opp *business.Opportunity) (*business.RiskAssessment, error) {
	assessment := &business.RiskAssessment{Factors: []string{}}

	score, factor := rc.amountScore(opp.LineItems)
	assessment.Score += score
	if factor != "" {
		assessment.Factors = append(assessment.Factors, factor)
	}

	score, factors := rc.complexityScore(opp.LineItems)
	assessment.Score += score
	assessment.Factors = append(assessment.Factors, factors...)

	score, factor, err := rc.durationScore(opp.ContractStart, opp.ContractEnd)
	if err != nil {
		return nil, err
	}
	assessment.Score += score
	if factor != "" {
		assessment.Factors = append(assessment.Factors, factor)
	}

	score, factor = rc.paymentTermsScore(opp.PaymentTerms)
	assessment.Score += score
	if factor != "" {
		assessment.Factors = append(assessment.Factors, factor)
	}

	switch {
	case assessment.Score <= lowScoreCeiling:
		assessment.Level = business.RiskLow
	case assessment.Score <= mediumScoreCeiling:
		assessment.Level = business.RiskMedium
	default:
		assessment.Level = business.RiskHigh
	}

	return assessment, nil
}

func (rc *RiskCalculator) amountScore(items []business.LineItem) (int, string) {
	var totalCents int64
	for _, item := range items {
		totalCents += helpers.DollarsToCents(item.TotalPrice)
	}

	var score int
	switch {
	case totalCents > 5_000_000: // $50,000
		score = 10
	case totalCents > 500_000: // $5,000
		score = 6
	case totalCents > 100_000: // $1,000
		score = 3
	default:
		return 0, ""
	}

	return clampSubScore(score), fmt.Sprintf("Order total %s", helpers.FormatCents(totalCents))
}

func (rc *RiskCalculator) complexityScore(items []business.LineItem) (int, []string) {
	var score int
	var factors []string

	switch {
	case len(items) > 10:
		score += 8
		factors = append(factors, fmt.Sprintf("Large order with %d line items", len(items)))
	case len(items) > 5:
		score += 5
		factors = append(factors, fmt.Sprintf("Order with %d line items", len(items)))
	case len(items) > 2:
		score += 2
		factors = append(factors, fmt.Sprintf("Order with %d line items", len(items)))
	}

	hasOneTime := false
	hasProration := false
	for _, item := range items {
		if item.IsOneTime() {
			hasOneTime = true
		}
		if item.ProrationNeeded {
			hasProration = true
		}
	}
	if hasOneTime {
		score += 3
		factors = append(factors, "Contains one-time charges")
	}
	if hasProration {
		score += 4
		factors = append(factors, "Contains prorated items")
	}

	return clampSubScore(score), factors
}

// durationScore bands contract length. Short and long contracts both score;
// contracts of 30 to 90 days are the standard term and score zero.
func (rc *RiskCalculator) durationScore(contractStart, contractEnd string) (int, string, error) {
	start, err := helpers.ParseContractDate(contractStart)
	if err != nil {
		return 0, "", fmt.Errorf("contract start: %w", err)
	}
	end, err := helpers.ParseContractDate(contractEnd)
	if err != nil {
		return 0, "", fmt.Errorf("contract end: %w", err)
	}

	days := int(end.Sub(start).Hours() / 24)
	switch {
	case days > 365:
		return 6, fmt.Sprintf("Multi-year contract (%d days)", days), nil
	case days > 90:
		return 3, fmt.Sprintf("Contract longer than a quarter (%d days)", days), nil
	case days < 30:
		return 2, fmt.Sprintf("Short contract (%d days)", days), nil
	default:
		return 0, "", nil
	}
}

func (rc *RiskCalculator) paymentTermsScore(terms string) (int, string) {
	normalized := strings.ToLower(terms)
	switch {
	case strings.Contains(normalized, constants.Net90Terms), strings.Contains(normalized, constants.Net120Terms):
		return 5, fmt.Sprintf("Extended payment terms (%s)", terms)
	case strings.Contains(normalized, constants.Net60Terms):
		return 3, fmt.Sprintf("Extended payment terms (%s)", terms)
	case strings.Contains(normalized, constants.Net30Terms):
		return 1, fmt.Sprintf("Standard payment terms (%s)", terms)
	default:
		return 0, ""
	}
}

func clampSubScore(score int) int {
	if score > subScoreCap {
		return subScoreCap
	}
	return score
}

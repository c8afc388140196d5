package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"go.uber.org/zap"
)

// BillingEngine is the orchestrator: it validates the opportunity, computes
// the opportunity-level risk assessment, and delegates to the action factory.
// Every code path returns an action list; errors never escape to the caller.
type BillingEngine struct {
	factory *ActionFactory
	risk    interfaces.RiskScorer
	logger  *zap.Logger
}

// NewBillingEngine creates the orchestrator against a billing provider. now
// drives proration effective-start; pass nil for the wall clock.
func NewBillingEngine(provider interfaces.BillingProvider, now func() time.Time, logger *zap.Logger) *BillingEngine {
	if logger == nil {
		logger = zap.L()
	}
	return &BillingEngine{
		factory: NewActionFactory(provider, now, logger),
		risk:    NewRiskCalculator(),
		logger:  logger,
	}
}

// ProcessOpportunity turns one opportunity plus its optional existing billing
// state into the ordered billing-action list for human review.
func (e *BillingEngine) ProcessOpportunity(ctx context.Context, opp *business.Opportunity, state *business.AccountState) []business.BillingAction {
	if problems := helpers.ValidateOpportunity(opp); len(problems) > 0 {
		e.logger.Warn("opportunity failed validation",
			zap.String("opportunity_id", opportunityID(opp)),
			zap.Strings("problems", problems))
		return []business.BillingAction{validationFailureAction(opp, problems)}
	}

	actions := make([]business.BillingAction, 0, len(opp.LineItems)+2)

	assessment, err := e.risk.ScoreOpportunity(opp)
	if err != nil {
		// Dates already passed validation, so this is unexpected; surface it
		// the same way as a validation failure.
		e.logger.Error("risk assessment failed",
			zap.String("opportunity_id", opp.ID),
			zap.Error(err))
		return []business.BillingAction{validationFailureAction(opp, []string{err.Error()})}
	}

	if assessment.Level == business.RiskHigh {
		actions = append(actions, business.BillingAction{
			Type:        business.ActionError,
			Description: fmt.Sprintf("High-risk opportunity: score %d", assessment.Score),
			Details: map[string]interface{}{
				"opportunity_id": opp.ID,
				"risk_score":     assessment.Score,
				"risk_factors":   assessment.Factors,
			},
			RequiresReview: true,
			RiskLevel:      business.RiskHigh,
			Notes:          assessment.Factors,
		})
	}

	e.logger.Info("processing opportunity",
		zap.String("opportunity_id", opp.ID),
		zap.String("order_type", string(opp.OrderType)),
		zap.Int("line_items", len(opp.LineItems)),
		zap.Int("risk_score", assessment.Score),
		zap.String("risk_level", string(assessment.Level)))

	return append(actions, e.factory.GenerateActions(ctx, opp, state)...)
}

// AssessRisk exposes the opportunity-level risk assessment for callers that
// want it alongside the action list.
func (e *BillingEngine) AssessRisk(opp *business.Opportunity) (*business.RiskAssessment, error) {
	return e.risk.ScoreOpportunity(opp)
}

func validationFailureAction(opp *business.Opportunity, problems []string) business.BillingAction {
	return business.BillingAction{
		Type:        business.ActionError,
		Description: fmt.Sprintf("ERROR: opportunity failed validation: %s", strings.Join(problems, "; ")),
		Details: map[string]interface{}{
			"opportunity_id": opportunityID(opp),
			"problems":       problems,
		},
		RequiresReview: true,
		RiskLevel:      business.RiskHigh,
		Notes:          []string{"Fix the order record and resubmit"},
	}
}

func opportunityID(opp *business.Opportunity) string {
	if opp == nil {
		return ""
	}
	return opp.ID
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dealbridge/billing-engine/constants"
	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"go.uber.org/zap"
)

// RenewalGenerator handles contract renewals against an existing billing
// account. Line items that match an existing subscription become updates;
// everything else is a new subscription flagged for review.
type RenewalGenerator struct {
	provider interfaces.BillingProvider
	risk     interfaces.RiskScorer
	logger   *zap.Logger
}

// NewRenewalGenerator creates a generator for renewal orders.
func NewRenewalGenerator(provider interfaces.BillingProvider, risk interfaces.RiskScorer, logger *zap.Logger) *RenewalGenerator {
	if logger == nil {
		logger = zap.L()
	}
	return &RenewalGenerator{provider: provider, risk: risk, logger: logger}
}

// Generate emits one update or create action per line item. Missing existing
// state is a hard precondition failure.
func (g *RenewalGenerator) Generate(ctx context.Context, opp *business.Opportunity, state *business.AccountState) ([]business.BillingAction, error) {
	if state == nil {
		return []business.BillingAction{missingStateAction(opp)}, nil
	}

	actions := make([]business.BillingAction, 0, len(opp.LineItems))
	rollback := &rollbackLog{}

	for i := range opp.LineItems {
		item := &opp.LineItems[i]
		existing := matchSubscription(state.Subscriptions, item.ProductCode)

		if existing == nil {
			subscription, err := g.provider.CreateSubscription(ctx, state.Account.ID, subscriptionSpecForItem(item))
			if err != nil {
				g.logger.Error("renewal subscription creation failed",
					zap.String("opportunity_id", opp.ID),
					zap.String("product_code", item.ProductCode),
					zap.Error(err))
				return append(actions, compensate(ctx, g.provider, rollback,
					fmt.Errorf("subscription creation failed for %s: %w", item.ProductCode, err), opp.ID, g.logger)...), nil
			}
			rollback.recordCreated(subscription.ID)

			amountCents := helpers.LineItemAmountCents(item.UnitPrice, item.Quantity)
			actions = append(actions, business.BillingAction{
				Type:        business.ActionCreateSubscription,
				Description: fmt.Sprintf("Create subscription for %s (%s/%s)", item.ProductName, helpers.FormatCents(amountCents), item.BillingPeriod),
				Details: map[string]interface{}{
					"subscription_id": subscription.ID,
					"plan_code":       item.ProductCode,
					"quantity":        item.Quantity,
				},
				AmountCents:    &amountCents,
				RequiresReview: true,
				RiskLevel:      business.RiskMedium,
				Notes:          []string{"New product added during renewal"},
			})
			continue
		}

		newUnitCents := helpers.DollarsToCents(item.UnitPrice)
		delta := newUnitCents - existing.UnitAmountCents
		absDelta := delta
		if absDelta < 0 {
			absDelta = -absDelta
		}

		if _, err := g.provider.UpdateSubscription(ctx, existing.ID, subscriptionSpecForItem(item)); err != nil {
			g.logger.Error("renewal subscription update failed",
				zap.String("opportunity_id", opp.ID),
				zap.String("subscription_id", existing.ID),
				zap.Error(err))
			return append(actions, compensate(ctx, g.provider, rollback,
				fmt.Errorf("subscription update failed for %s: %w", existing.ID, err), opp.ID, g.logger)...), nil
		}

		amountCents := helpers.LineItemAmountCents(item.UnitPrice, item.Quantity)
		action := business.BillingAction{
			Type:        business.ActionUpdateSubscription,
			Description: fmt.Sprintf("Update subscription %s for %s", existing.ID, item.ProductName),
			Details: map[string]interface{}{
				"subscription_id":      existing.ID,
				"plan_code":            existing.PlanCode,
				"previous_unit_cents":  existing.UnitAmountCents,
				"new_unit_cents":       newUnitCents,
				"unit_delta_cents":     delta,
				"quantity":             item.Quantity,
			},
			AmountCents:    &amountCents,
			RequiresReview: absDelta > constants.RenewalDeltaReviewThresholdCents,
			RiskLevel:      g.risk.ScoreAmount(absDelta),
		}
		if item.PriceChangeReason != "" {
			action.Notes = append(action.Notes, item.PriceChangeReason)
		}
		actions = append(actions, action)
	}

	return actions, nil
}

// matchSubscription finds the existing subscription for a product code by
// exact match first, then substring match in either direction.
func matchSubscription(subscriptions []business.Subscription, productCode string) *business.Subscription {
	for i := range subscriptions {
		if subscriptions[i].PlanCode == productCode {
			return &subscriptions[i]
		}
	}
	for i := range subscriptions {
		plan := subscriptions[i].PlanCode
		if plan == "" || productCode == "" {
			continue
		}
		if strings.Contains(plan, productCode) || strings.Contains(productCode, plan) {
			return &subscriptions[i]
		}
	}
	return nil
}

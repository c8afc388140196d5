package services

import (
	"context"
	"fmt"

	"github.com/dealbridge/billing-engine/constants"
	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"go.uber.org/zap"
)

// ConversionGenerator handles the self-serve to direct-sales switch: every
// active self-serve subscription is cancelled, any unused-service credit is
// applied, and the new line items are opened as invoice-collected
// subscriptions with net-30 terms.
type ConversionGenerator struct {
	provider interfaces.BillingProvider
	logger   *zap.Logger
}

// NewConversionGenerator creates a generator for conversion orders.
func NewConversionGenerator(provider interfaces.BillingProvider, logger *zap.Logger) *ConversionGenerator {
	if logger == nil {
		logger = zap.L()
	}
	return &ConversionGenerator{provider: provider, logger: logger}
}

// Generate cancels, credits, then re-subscribes, in that order. Missing
// existing state is a hard precondition failure.
func (g *ConversionGenerator) Generate(ctx context.Context, opp *business.Opportunity, state *business.AccountState) ([]business.BillingAction, error) {
	if state == nil {
		return []business.BillingAction{missingStateAction(opp)}, nil
	}

	actions := make([]business.BillingAction, 0, len(opp.LineItems)+len(state.Subscriptions)+1)
	rollback := &rollbackLog{}

	for i := range state.Subscriptions {
		subscription := &state.Subscriptions[i]
		if !subscription.IsActive() {
			continue
		}

		if err := g.provider.CancelSubscription(ctx, subscription.ID); err != nil {
			g.logger.Error("conversion cancellation failed",
				zap.String("opportunity_id", opp.ID),
				zap.String("subscription_id", subscription.ID),
				zap.Error(err))
			return append(actions, compensate(ctx, g.provider, rollback,
				fmt.Errorf("cancellation failed for %s: %w", subscription.ID, err), opp.ID, g.logger)...), nil
		}
		rollback.recordCancelled(subscription.ID)

		actions = append(actions, business.BillingAction{
			Type:        business.ActionCancelSubscription,
			Description: fmt.Sprintf("Cancel self-service subscription %s (%s)", subscription.ID, subscription.PlanCode),
			Details: map[string]interface{}{
				"subscription_id":   subscription.ID,
				"plan_code":         subscription.PlanCode,
				"unit_amount_cents": subscription.UnitAmountCents,
			},
			RiskLevel: business.RiskMedium,
			Notes:     []string{"Verify no service interruption during the billing transition"},
		})
	}

	if opp.Transition != nil && opp.Transition.CreditAmount > 0 {
		creditCents := helpers.DollarsToCents(opp.Transition.CreditAmount)
		rollback.recordCredit(creditCents)

		credit := business.BillingAction{
			Type:        business.ActionApplyCredit,
			Description: fmt.Sprintf("Apply %s credit for unused self-service period", helpers.FormatCents(creditCents)),
			Details: map[string]interface{}{
				"opportunity_id":    opp.ID,
				"previous_platform": opp.Transition.PreviousPlatform,
			},
			AmountCents:    &creditCents,
			RequiresReview: true,
			RiskLevel:      business.RiskMedium,
		}
		if effective, err := helpers.ParseContractDate(opp.Transition.EffectiveDate); err == nil {
			credit.EffectiveDate = &effective
		}
		actions = append(actions, credit)
	}

	for i := range opp.LineItems {
		item := &opp.LineItems[i]

		spec := subscriptionSpecForItem(item)
		spec.CollectionMethod = constants.ManualCollection
		spec.NetTerms = 30

		subscription, err := g.provider.CreateSubscription(ctx, state.Account.ID, spec)
		if err != nil {
			g.logger.Error("conversion subscription creation failed",
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
			Description: fmt.Sprintf("Create invoice-collected subscription for %s (%s/%s)", item.ProductName, helpers.FormatCents(amountCents), item.BillingPeriod),
			Details: map[string]interface{}{
				"subscription_id":   subscription.ID,
				"plan_code":         item.ProductCode,
				"collection_method": constants.ManualCollection,
				"net_terms":         30,
			},
			AmountCents: &amountCents,
			RiskLevel:   business.RiskLow,
		})
	}

	return actions, nil
}

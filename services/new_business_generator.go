package services

import (
	"context"
	"fmt"

	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"go.uber.org/zap"
)

// NewBusinessGenerator handles opportunities for customers with no existing
// billing account: one account creation followed by one action per line item.
type NewBusinessGenerator struct {
	provider interfaces.BillingProvider
	risk     interfaces.RiskScorer
	logger   *zap.Logger
}

// NewNewBusinessGenerator creates a generator for new business orders.
func NewNewBusinessGenerator(provider interfaces.BillingProvider, risk interfaces.RiskScorer, logger *zap.Logger) *NewBusinessGenerator {
	if logger == nil {
		logger = zap.L()
	}
	return &NewBusinessGenerator{provider: provider, risk: risk, logger: logger}
}

// Generate creates the billing account, then charges one-time items and
// opens subscriptions for recurring ones, in line-item order. A provider
// failure mid-sequence aborts the remaining items and compensates.
func (g *NewBusinessGenerator) Generate(ctx context.Context, opp *business.Opportunity, _ *business.AccountState) ([]business.BillingAction, error) {
	actions := make([]business.BillingAction, 0, len(opp.LineItems)+1)
	rollback := &rollbackLog{}

	accountName := ""
	accountEmail := ""
	if opp.Contact != nil {
		accountName = opp.Contact.Name
		accountEmail = opp.Contact.Email
	}

	account, err := g.provider.CreateAccount(ctx, business.AccountFields{
		Code:  opp.AccountCode,
		Name:  accountName,
		Email: accountEmail,
	})
	if err != nil {
		g.logger.Error("account creation failed",
			zap.String("opportunity_id", opp.ID),
			zap.Error(err))
		return append(actions, compensate(ctx, g.provider, rollback, fmt.Errorf("account creation failed: %w", err), opp.ID, g.logger)...), nil
	}

	actions = append(actions, business.BillingAction{
		Type:        business.ActionCreateAccount,
		Description: fmt.Sprintf("Create billing account for %s", opp.AccountID),
		Details: map[string]interface{}{
			"opportunity_id": opp.ID,
			"account_id":     account.ID,
			"account_code":   account.Code,
		},
		RiskLevel: business.RiskLow,
	})

	for i := range opp.LineItems {
		item := &opp.LineItems[i]

		if item.IsOneTime() {
			actions = append(actions, oneTimeChargeAction(item, g.risk))
			continue
		}

		subscription, err := g.provider.CreateSubscription(ctx, account.ID, subscriptionSpecForItem(item))
		if err != nil {
			g.logger.Error("subscription creation failed",
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
				"billing_period":  string(item.BillingPeriod),
			},
			AmountCents: &amountCents,
			RiskLevel:   business.RiskLow,
		})
	}

	return actions, nil
}

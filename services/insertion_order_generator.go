package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"go.uber.org/zap"
)

// InsertionOrderGenerator handles mid-contract additions to an existing
// account: outstanding invoices are surfaced first, then each line item is
// charged, prorated, or subscribed.
type InsertionOrderGenerator struct {
	provider  interfaces.BillingProvider
	risk      interfaces.RiskScorer
	proration interfaces.ProrationCalculator
	now       func() time.Time
	logger    *zap.Logger
}

// NewInsertionOrderGenerator creates a generator for insertion orders. now
// drives the proration effective-start; pass nil for the wall clock.
func NewInsertionOrderGenerator(provider interfaces.BillingProvider, risk interfaces.RiskScorer, proration interfaces.ProrationCalculator, now func() time.Time, logger *zap.Logger) *InsertionOrderGenerator {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.L()
	}
	return &InsertionOrderGenerator{provider: provider, risk: risk, proration: proration, now: now, logger: logger}
}

// Generate emits the outstanding-invoice preamble followed by one action per
// line item. Missing existing state is a hard precondition failure.
func (g *InsertionOrderGenerator) Generate(ctx context.Context, opp *business.Opportunity, state *business.AccountState) ([]business.BillingAction, error) {
	if state == nil {
		return []business.BillingAction{missingStateAction(opp)}, nil
	}

	actions := make([]business.BillingAction, 0, len(opp.LineItems)+1)
	rollback := &rollbackLog{}

	if opp.Outstanding != nil && opp.Outstanding.HasOutstanding {
		amountCents := helpers.DollarsToCents(opp.Outstanding.TotalOutstanding)
		actions = append(actions, business.BillingAction{
			Type:        business.ActionCreateInvoice,
			Description: fmt.Sprintf("Collect %s of outstanding invoices before new charges", helpers.FormatCents(amountCents)),
			Details: map[string]interface{}{
				"opportunity_id": opp.ID,
				"invoice_count":  opp.Outstanding.InvoiceCount,
			},
			AmountCents:    &amountCents,
			RequiresReview: true,
			RiskLevel:      business.RiskMedium,
			Notes:          []string{"Outstanding invoices must clear before new charges are applied"},
		})
	}

	for i := range opp.LineItems {
		item := &opp.LineItems[i]

		switch {
		case item.IsOneTime():
			actions = append(actions, oneTimeChargeAction(item, g.risk))

		case item.ProrationNeeded:
			actions = append(actions, g.prorateItem(opp, item))

		default:
			subscription, err := g.provider.CreateSubscription(ctx, state.Account.ID, subscriptionSpecForItem(item))
			if err != nil {
				g.logger.Error("insertion subscription creation failed",
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
				AmountCents: &amountCents,
				RiskLevel:   business.RiskLow,
			})
		}
	}

	return actions, nil
}

// prorateItem runs the proration calculator for a single line item. A
// calculation failure is advisory: the action still goes out, with a zero
// amount and a note explaining why.
func (g *InsertionOrderGenerator) prorateItem(opp *business.Opportunity, item *business.LineItem) business.BillingAction {
	hints := &business.ProrationHints{
		ImmediateInvoice:   item.ImmediateInvoice,
		SubscriptionUpdate: item.PreviousPrice != nil,
	}

	result, err := g.proration.CalculateLineItemProration(item, opp.ContractStart, opp.ContractEnd, opp.BillingFrequency, g.now(), hints)
	if err != nil {
		g.logger.Warn("proration yielded no charge",
			zap.String("opportunity_id", opp.ID),
			zap.String("product_code", item.ProductCode),
			zap.Error(err))
		result = &business.ProrationResult{
			AmountCents: 0,
			Method:      "none",
			Notes:       []string{fmt.Sprintf("No prorated charge: %v", err)},
		}
	}

	notes := append([]string{fmt.Sprintf("Calculated with %s method", result.Method)}, result.Notes...)
	if item.Classification != "" {
		notes = append(notes, fmt.Sprintf("Item classification: %s", item.Classification))
	}

	return business.BillingAction{
		Type:        business.ActionProrateCharges,
		Description: fmt.Sprintf("Prorated charge for %s (%s over %d days)", item.ProductName, helpers.FormatCents(result.AmountCents), result.DaysUsed),
		Details: map[string]interface{}{
			"product_code": item.ProductCode,
			"method":       result.Method,
			"days_used":    result.DaysUsed,
		},
		AmountCents:    &result.AmountCents,
		RequiresReview: true,
		RiskLevel:      business.RiskMedium,
		Notes:          notes,
	}
}

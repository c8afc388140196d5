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

// rollbackLog accumulates the provider-side resources a single Generate call
// has touched, so a mid-sequence failure can be compensated. It is a plain
// value local to one call; concurrent opportunities never share one.
type rollbackLog struct {
	createdSubscriptionIDs   []string
	cancelledSubscriptionIDs []string
	appliedCreditCents       []int64
}

func (rl *rollbackLog) recordCreated(subscriptionID string) {
	rl.createdSubscriptionIDs = append(rl.createdSubscriptionIDs, subscriptionID)
}

func (rl *rollbackLog) recordCancelled(subscriptionID string) {
	rl.cancelledSubscriptionIDs = append(rl.cancelledSubscriptionIDs, subscriptionID)
}

func (rl *rollbackLog) recordCredit(amountCents int64) {
	rl.appliedCreditCents = append(rl.appliedCreditCents, amountCents)
}

// compensate unwinds a failed generation sequence: every subscription created
// this call is cancelled best-effort (a failed cancellation becomes its own
// high-risk error action, never retried), and a final error action flags the
// side effects that cannot be reversed automatically.
func compensate(ctx context.Context, provider interfaces.BillingProvider, log *rollbackLog, cause error, opportunityID string, logger *zap.Logger) []business.BillingAction {
	var actions []business.BillingAction

	for _, subscriptionID := range log.createdSubscriptionIDs {
		if err := provider.CancelSubscription(ctx, subscriptionID); err != nil {
			logger.Error("rollback cancellation failed",
				zap.String("opportunity_id", opportunityID),
				zap.String("subscription_id", subscriptionID),
				zap.Error(err))
			actions = append(actions, business.BillingAction{
				Type:        business.ActionError,
				Description: fmt.Sprintf("Failed to roll back subscription %s", subscriptionID),
				Details: map[string]interface{}{
					"opportunity_id":  opportunityID,
					"subscription_id": subscriptionID,
					"error":           err.Error(),
				},
				RequiresReview: true,
				RiskLevel:      business.RiskHigh,
				Notes:          []string{"Subscription was created during this order but could not be cancelled; cancel it manually"},
			})
			continue
		}
		logger.Info("rolled back subscription",
			zap.String("opportunity_id", opportunityID),
			zap.String("subscription_id", subscriptionID))
	}

	notes := []string{
		"One-time charges, applied credits, and cancellations of pre-existing subscriptions cannot be automatically reversed",
		"Manual reconciliation required",
	}
	details := map[string]interface{}{
		"opportunity_id":           opportunityID,
		"error":                    cause.Error(),
		"rolled_back_subscription": log.createdSubscriptionIDs,
	}
	if len(log.cancelledSubscriptionIDs) > 0 {
		details["cancelled_preexisting_subscriptions"] = log.cancelledSubscriptionIDs
	}
	if len(log.appliedCreditCents) > 0 {
		details["applied_credits_cents"] = log.appliedCreditCents
	}

	actions = append(actions, business.BillingAction{
		Type:           business.ActionError,
		Description:    fmt.Sprintf("Order processing aborted: %v", cause),
		Details:        details,
		RequiresReview: true,
		RiskLevel:      business.RiskHigh,
		Notes:          notes,
	})

	return actions
}

// missingStateAction is the shared precondition failure for order types that
// require an existing billing account. Processing stops after it.
func missingStateAction(opp *business.Opportunity) business.BillingAction {
	return business.BillingAction{
		Type:        business.ActionCreateAccount,
		Description: fmt.Sprintf("ERROR: no existing billing account found for %s order %s", opp.OrderType, opp.ID),
		Details: map[string]interface{}{
			"opportunity_id": opp.ID,
			"account_id":     opp.AccountID,
			"account_code":   opp.AccountCode,
		},
		RequiresReview: true,
		RiskLevel:      business.RiskHigh,
		Notes:          []string{"Existing billing state is required for this order type; the account must be investigated manually"},
	}
}

// oneTimeChargeAction builds the charge_one_time action for a one-time line
// item. Risk follows the amount tier; charges above the review threshold are
// flagged, and high-value charges get an explicit note.
func oneTimeChargeAction(item *business.LineItem, risk interfaces.RiskScorer) business.BillingAction {
	amountCents := helpers.DollarsToCents(item.TotalPrice)

	action := business.BillingAction{
		Type:        business.ActionChargeOneTime,
		Description: fmt.Sprintf("One-time charge for %s (%s)", item.ProductName, helpers.FormatCents(amountCents)),
		Details: map[string]interface{}{
			"product_code": item.ProductCode,
			"product_name": item.ProductName,
			"quantity":     item.Quantity,
		},
		AmountCents:    &amountCents,
		RequiresReview: amountCents > constants.OneTimeReviewThresholdCents,
		RiskLevel:      risk.ScoreAmount(amountCents),
	}
	if amountCents >= constants.HighValueOneTimeThresholdCents {
		action.Notes = append(action.Notes, "High-value one-time charge")
	}
	return action
}

// subscriptionSpecForItem maps a recurring line item onto the provider's
// subscription request shape.
func subscriptionSpecForItem(item *business.LineItem) business.SubscriptionSpec {
	return business.SubscriptionSpec{
		PlanCode:        item.ProductCode,
		PlanName:        item.ProductName,
		UnitAmountCents: helpers.DollarsToCents(item.UnitPrice),
		Quantity:        item.Quantity,
	}
}

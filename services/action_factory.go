package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"go.uber.org/zap"
)

// ActionFactory dispatches an opportunity to the generator for its order
// type. Failures never escape: an unknown order type, a generator error, or
// a generator panic all collapse into a single synthetic error action.
type ActionFactory struct {
	generators map[business.OrderType]interfaces.ActionGenerator
	logger     *zap.Logger
}

// NewActionFactory wires the four order-type generators against a billing
// provider. now drives proration; pass nil for the wall clock.
func NewActionFactory(provider interfaces.BillingProvider, now func() time.Time, logger *zap.Logger) *ActionFactory {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.L()
	}

	risk := NewRiskCalculator()
	proration := NewProrationCalculator()

	return &ActionFactory{
		generators: map[business.OrderType]interfaces.ActionGenerator{
			business.OrderTypeNewBusiness:    NewNewBusinessGenerator(provider, risk, logger),
			business.OrderTypeRenewal:        NewRenewalGenerator(provider, risk, logger),
			business.OrderTypeInsertionOrder: NewInsertionOrderGenerator(provider, risk, proration, now, logger),
			business.OrderTypeConversion:     NewConversionGenerator(provider, logger),
		},
		logger: logger,
	}
}

// GenerateActions runs the matching generator and converts any escaped
// failure into the synthetic high-risk error action.
func (f *ActionFactory) GenerateActions(ctx context.Context, opp *business.Opportunity, state *business.AccountState) (actions []business.BillingAction) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("generator panicked",
				zap.String("opportunity_id", opp.ID),
				zap.Any("panic", r))
			actions = []business.BillingAction{f.errorAction(opp, fmt.Errorf("generator panic: %v", r))}
		}
	}()

	generator, ok := f.generators[opp.OrderType]
	if !ok {
		f.logger.Warn("unknown order type",
			zap.String("opportunity_id", opp.ID),
			zap.String("order_type", string(opp.OrderType)))
		return []business.BillingAction{f.errorAction(opp, fmt.Errorf("unknown order type %q", opp.OrderType))}
	}

	actions, err := generator.Generate(ctx, opp, state)
	if err != nil {
		f.logger.Error("generator failed",
			zap.String("opportunity_id", opp.ID),
			zap.String("order_type", string(opp.OrderType)),
			zap.Error(err))
		return []business.BillingAction{f.errorAction(opp, err)}
	}

	return actions
}

func (f *ActionFactory) errorAction(opp *business.Opportunity, err error) business.BillingAction {
	return business.BillingAction{
		Type:        business.ActionError,
		Description: fmt.Sprintf("Failed to generate billing actions for opportunity %s", opp.ID),
		Details: map[string]interface{}{
			"opportunity_id": opp.ID,
			"order_type":     string(opp.OrderType),
			"error":          err.Error(),
		},
		RequiresReview: true,
		RiskLevel:      business.RiskHigh,
		Notes:          []string{"Manual intervention is required"},
	}
}

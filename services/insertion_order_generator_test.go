package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dealbridge/billing-engine/mocks"
	"github.com/dealbridge/billing-engine/services"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func insertionOpportunity() *business.Opportunity {
	return &business.Opportunity{
		ID:               "opp-io-1",
		OrderType:        business.OrderTypeInsertionOrder,
		AccountID:        "acct-42",
		AccountCode:      "acme-corp",
		ContractStart:    "2024-01-01",
		ContractEnd:      "2024-12-31",
		BillingFrequency: business.FrequencyMonthly,
		PaymentTerms:     "net_30",
		LineItems: []business.LineItem{
			{
				ProductCode:   "extra-seats",
				ProductName:   "Extra Seats",
				Quantity:      5,
				UnitPrice:     20,
				TotalPrice:    1_200,
				BillingPeriod: business.PeriodMonthly,
			},
		},
	}
}

func insertionState() *business.AccountState {
	return &business.AccountState{
		Account: business.Account{ID: "prov-acct-1", Code: "acme-corp"},
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestInsertionOrderGenerator_MissingStateIsTerminal(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewInsertionOrderGenerator(provider, services.NewRiskCalculator(), services.NewProrationCalculator(), nil, nil)

	actions, err := generator.Generate(context.Background(), insertionOpportunity(), nil)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0].Description, "ERROR")
	assert.Equal(t, business.RiskHigh, actions[0].RiskLevel)
}

func TestInsertionOrderGenerator_OutstandingInvoicesComeFirst(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewInsertionOrderGenerator(provider, services.NewRiskCalculator(), services.NewProrationCalculator(), nil, nil)

	opp := insertionOpportunity()
	opp.Outstanding = &business.OutstandingInvoiceSummary{
		HasOutstanding:   true,
		TotalOutstanding: 8_000,
		InvoiceCount:     2,
	}

	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(&business.Subscription{ID: "prov-sub-1", State: "active"}, nil)

	actions, err := generator.Generate(context.Background(), opp, insertionState())
	require.NoError(t, err)
	require.Len(t, actions, 2)

	first := actions[0]
	assert.Equal(t, business.ActionCreateInvoice, first.Type)
	require.NotNil(t, first.AmountCents)
	assert.Equal(t, int64(800_000), *first.AmountCents)
	assert.True(t, first.RequiresReview)
	assert.Equal(t, business.RiskMedium, first.RiskLevel)

	assert.Equal(t, business.ActionCreateSubscription, actions[1].Type)
}

func TestInsertionOrderGenerator_ProratedItem(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	now := fixedClock(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC))
	generator := services.NewInsertionOrderGenerator(provider, services.NewRiskCalculator(), services.NewProrationCalculator(), now, nil)

	opp := insertionOpportunity()
	opp.ContractStart = "2024-06-01"
	opp.ContractEnd = "2024-07-01"
	opp.LineItems = []business.LineItem{
		{
			ProductCode:     "usage-tier",
			ProductName:     "Usage Tier",
			Quantity:        1,
			UnitPrice:       30,
			TotalPrice:      30,
			BillingPeriod:   business.PeriodMonthly,
			ProrationNeeded: true,
			Classification:  business.ClassificationSubscriptionConsumption,
		},
	}

	actions, err := generator.Generate(context.Background(), opp, insertionState())
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, business.ActionProrateCharges, action.Type)
	require.NotNil(t, action.AmountCents)
	assert.Equal(t, int64(1500), *action.AmountCents) // 15 of 30 June days
	assert.True(t, action.RequiresReview)
	assert.Equal(t, business.RiskMedium, action.RiskLevel)
	assert.Equal(t, services.MethodMonthlyDailyRate, action.Details["method"])
	assert.Contains(t, action.Notes, "Item classification: subscription_consumption")
}

func TestInsertionOrderGenerator_ProratedPriceIncrease(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	now := fixedClock(time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC))
	generator := services.NewInsertionOrderGenerator(provider, services.NewRiskCalculator(), services.NewProrationCalculator(), now, nil)

	previous := 20.0
	opp := insertionOpportunity()
	opp.ContractStart = "2024-06-01"
	opp.ContractEnd = "2024-07-01"
	opp.LineItems = []business.LineItem{
		{
			ProductCode:     "usage-tier",
			ProductName:     "Usage Tier",
			Quantity:        1,
			UnitPrice:       30,
			TotalPrice:      30,
			BillingPeriod:   business.PeriodMonthly,
			ProrationNeeded: true,
			PreviousPrice:   &previous,
		},
	}

	actions, err := generator.Generate(context.Background(), opp, insertionState())
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, business.ActionProrateCharges, action.Type)
	require.NotNil(t, action.AmountCents)
	// 1500 cents for the half month, scaled by the (30-20)/30 increment ratio.
	assert.Equal(t, int64(500), *action.AmountCents)
}

// An expired date range is advisory: the action still goes out with a zero
// amount and an explanatory note.
func TestInsertionOrderGenerator_ExpiredProrationStillEmitsAction(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	now := fixedClock(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	generator := services.NewInsertionOrderGenerator(provider, services.NewRiskCalculator(), services.NewProrationCalculator(), now, nil)

	opp := insertionOpportunity()
	opp.ContractStart = "2024-06-01"
	opp.ContractEnd = "2024-07-01"
	opp.LineItems = []business.LineItem{
		{
			ProductCode:     "usage-tier",
			ProductName:     "Usage Tier",
			Quantity:        1,
			UnitPrice:       30,
			TotalPrice:      30,
			BillingPeriod:   business.PeriodMonthly,
			ProrationNeeded: true,
		},
	}

	actions, err := generator.Generate(context.Background(), opp, insertionState())
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, business.ActionProrateCharges, action.Type)
	require.NotNil(t, action.AmountCents)
	assert.Equal(t, int64(0), *action.AmountCents)

	foundNote := false
	for _, note := range action.Notes {
		if strings.Contains(note, "No prorated charge") {
			foundNote = true
		}
	}
	assert.True(t, foundNote, "expected a note explaining the empty period, got %v", action.Notes)
}

func TestInsertionOrderGenerator_OneTimeItem(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewInsertionOrderGenerator(provider, services.NewRiskCalculator(), services.NewProrationCalculator(), nil, nil)

	opp := insertionOpportunity()
	opp.LineItems = []business.LineItem{
		{
			ProductCode:   "training",
			ProductName:   "Onsite Training",
			Quantity:      1,
			UnitPrice:     2_500,
			TotalPrice:    2_500,
			BillingPeriod: business.PeriodOneTime,
		},
	}

	actions, err := generator.Generate(context.Background(), opp, insertionState())
	require.NoError(t, err)
	require.Len(t, actions, 1)

	action := actions[0]
	assert.Equal(t, business.ActionChargeOneTime, action.Type)
	require.NotNil(t, action.AmountCents)
	assert.Equal(t, int64(250_000), *action.AmountCents)
	assert.True(t, action.RequiresReview)
	assert.Equal(t, business.RiskMedium, action.RiskLevel)
}

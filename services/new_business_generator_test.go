package services_test

import (
	"context"
	"testing"

	"github.com/dealbridge/billing-engine/mocks"
	"github.com/dealbridge/billing-engine/services"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newBusinessOpportunity() *business.Opportunity {
	return &business.Opportunity{
		ID:               "opp-nb-1",
		OrderType:        business.OrderTypeNewBusiness,
		AccountID:        "acct-42",
		AccountCode:      "acme-corp",
		ContractStart:    "2024-01-01",
		ContractEnd:      "2024-12-31",
		BillingFrequency: business.FrequencyMonthly,
		PaymentTerms:     "net_30",
		LineItems: []business.LineItem{
			{
				ProductCode:   "platform-monthly",
				ProductName:   "Platform Subscription",
				Quantity:      1,
				UnitPrice:     1_000,
				TotalPrice:    12_000,
				BillingPeriod: business.PeriodMonthly,
			},
			{
				ProductCode:   "setup-fee",
				ProductName:   "Setup Fee",
				Quantity:      1,
				UnitPrice:     5_000,
				TotalPrice:    5_000,
				BillingPeriod: business.PeriodOneTime,
			},
		},
	}
}

func TestNewBusinessGenerator_SimpleOrder(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewNewBusinessGenerator(provider, services.NewRiskCalculator(), nil)

	opp := newBusinessOpportunity()

	provider.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(&business.Account{ID: "prov-acct-1", Code: "acme-corp"}, nil)
	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(&business.Subscription{ID: "prov-sub-1", PlanCode: "platform-monthly", State: "active"}, nil)

	actions, err := generator.Generate(context.Background(), opp, nil)
	require.NoError(t, err)
	require.Len(t, actions, 3)

	assert.Equal(t, business.ActionCreateAccount, actions[0].Type)
	assert.Equal(t, business.RiskLow, actions[0].RiskLevel)

	assert.Equal(t, business.ActionCreateSubscription, actions[1].Type)
	require.NotNil(t, actions[1].AmountCents)
	assert.Equal(t, int64(100_000), *actions[1].AmountCents)
	assert.Equal(t, business.RiskLow, actions[1].RiskLevel)

	assert.Equal(t, business.ActionChargeOneTime, actions[2].Type)
	require.NotNil(t, actions[2].AmountCents)
	assert.Equal(t, int64(500_000), *actions[2].AmountCents)
	assert.True(t, actions[2].RequiresReview)
	assert.Contains(t, actions[2].Notes, "High-value one-time charge")
}

func TestNewBusinessGenerator_AccountCreationFailure(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewNewBusinessGenerator(provider, services.NewRiskCalculator(), nil)

	provider.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	actions, err := generator.Generate(context.Background(), newBusinessOpportunity(), nil)
	require.NoError(t, err)
	require.Len(t, actions, 1)

	assert.Equal(t, business.ActionError, actions[0].Type)
	assert.Equal(t, business.RiskHigh, actions[0].RiskLevel)
	assert.True(t, actions[0].RequiresReview)
}

func TestNewBusinessGenerator_CompensatesOnMidSequenceFailure(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewNewBusinessGenerator(provider, services.NewRiskCalculator(), nil)

	opp := newBusinessOpportunity()
	opp.LineItems = []business.LineItem{
		{ProductCode: "plan-a", ProductName: "Plan A", Quantity: 1, UnitPrice: 100, TotalPrice: 1_200, BillingPeriod: business.PeriodMonthly},
		{ProductCode: "plan-b", ProductName: "Plan B", Quantity: 1, UnitPrice: 200, TotalPrice: 2_400, BillingPeriod: business.PeriodMonthly},
	}

	provider.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(&business.Account{ID: "prov-acct-1"}, nil)
	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(&business.Subscription{ID: "prov-sub-a", State: "active"}, nil)
	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(nil, assert.AnError)

	// The successfully created subscription must be rolled back.
	provider.EXPECT().CancelSubscription(gomock.Any(), "prov-sub-a").Return(nil)

	actions, err := generator.Generate(context.Background(), opp, nil)
	require.NoError(t, err)

	// create_account, create_subscription for plan-a, then the abort action.
	require.Len(t, actions, 3)
	last := actions[len(actions)-1]
	assert.Equal(t, business.ActionError, last.Type)
	assert.Equal(t, business.RiskHigh, last.RiskLevel)
	assert.True(t, last.RequiresReview)
	assert.Contains(t, last.Notes[0], "cannot be automatically reversed")
}

func TestNewBusinessGenerator_FailedRollbackBecomesErrorAction(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewNewBusinessGenerator(provider, services.NewRiskCalculator(), nil)

	opp := newBusinessOpportunity()
	opp.LineItems = []business.LineItem{
		{ProductCode: "plan-a", ProductName: "Plan A", Quantity: 1, UnitPrice: 100, TotalPrice: 1_200, BillingPeriod: business.PeriodMonthly},
		{ProductCode: "plan-b", ProductName: "Plan B", Quantity: 1, UnitPrice: 200, TotalPrice: 2_400, BillingPeriod: business.PeriodMonthly},
	}

	provider.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		Return(&business.Account{ID: "prov-acct-1"}, nil)
	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(&business.Subscription{ID: "prov-sub-a", State: "active"}, nil)
	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(nil, assert.AnError)
	provider.EXPECT().
		CancelSubscription(gomock.Any(), "prov-sub-a").
		Return(assert.AnError)

	actions, err := generator.Generate(context.Background(), opp, nil)
	require.NoError(t, err)

	// The failed rollback adds its own error action before the abort action.
	require.Len(t, actions, 4)
	assert.Equal(t, business.ActionError, actions[2].Type)
	assert.Contains(t, actions[2].Description, "roll back")
	assert.Equal(t, business.ActionError, actions[3].Type)
}

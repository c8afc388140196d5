package services_test

import (
	"context"
	"testing"

	"github.com/dealbridge/billing-engine/constants"
	"github.com/dealbridge/billing-engine/mocks"
	"github.com/dealbridge/billing-engine/services"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func conversionOpportunity() *business.Opportunity {
	return &business.Opportunity{
		ID:               "opp-cv-1",
		OrderType:        business.OrderTypeConversion,
		AccountID:        "acct-42",
		AccountCode:      "acme-corp",
		ContractStart:    "2024-01-01",
		ContractEnd:      "2024-12-31",
		BillingFrequency: business.FrequencyMonthly,
		PaymentTerms:     "net_30",
		Transition: &business.BillingTransition{
			PreviousPlatform: "self-serve",
			CreditAmount:     133,
			EffectiveDate:    "2024-02-01",
		},
		LineItems: []business.LineItem{
			{
				ProductCode:   "enterprise-plan",
				ProductName:   "Enterprise Plan",
				Quantity:      1,
				UnitPrice:     500,
				TotalPrice:    6_000,
				BillingPeriod: business.PeriodMonthly,
			},
		},
	}
}

func conversionState() *business.AccountState {
	return &business.AccountState{
		Account: business.Account{ID: "prov-acct-1", Code: "acme-corp"},
		Subscriptions: []business.Subscription{
			{ID: "prov-sub-old", PlanCode: "self-serve-plan", UnitAmountCents: 9_900, Quantity: 1, State: "active"},
		},
	}
}

func TestConversionGenerator_MissingStateIsTerminal(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewConversionGenerator(provider, nil)

	actions, err := generator.Generate(context.Background(), conversionOpportunity(), nil)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0].Description, "ERROR")
	assert.Equal(t, business.RiskHigh, actions[0].RiskLevel)
}

func TestConversionGenerator_FullSequence(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewConversionGenerator(provider, nil)

	provider.EXPECT().CancelSubscription(gomock.Any(), "prov-sub-old").Return(nil)
	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, spec business.SubscriptionSpec) (*business.Subscription, error) {
			assert.Equal(t, constants.ManualCollection, spec.CollectionMethod)
			assert.Equal(t, 30, spec.NetTerms)
			return &business.Subscription{ID: "prov-sub-new", PlanCode: spec.PlanCode, State: "active"}, nil
		})

	actions, err := generator.Generate(context.Background(), conversionOpportunity(), conversionState())
	require.NoError(t, err)
	require.Len(t, actions, 3)

	assert.Equal(t, business.ActionCancelSubscription, actions[0].Type)
	assert.Equal(t, business.RiskMedium, actions[0].RiskLevel)
	assert.Contains(t, actions[0].Notes, "Verify no service interruption during the billing transition")

	assert.Equal(t, business.ActionApplyCredit, actions[1].Type)
	require.NotNil(t, actions[1].AmountCents)
	assert.Equal(t, int64(13_300), *actions[1].AmountCents)
	assert.True(t, actions[1].RequiresReview)
	require.NotNil(t, actions[1].EffectiveDate)
	assert.Equal(t, "2024-02-01", actions[1].EffectiveDate.Format("2006-01-02"))

	assert.Equal(t, business.ActionCreateSubscription, actions[2].Type)
	assert.Equal(t, constants.ManualCollection, actions[2].Details["collection_method"])
	assert.Equal(t, 30, actions[2].Details["net_terms"])
}

func TestConversionGenerator_InactiveSubscriptionsAreSkipped(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewConversionGenerator(provider, nil)

	opp := conversionOpportunity()
	opp.Transition = nil

	state := conversionState()
	state.Subscriptions[0].State = "canceled"

	provider.EXPECT().
		CreateSubscription(gomock.Any(), "prov-acct-1", gomock.Any()).
		Return(&business.Subscription{ID: "prov-sub-new", State: "active"}, nil)

	actions, err := generator.Generate(context.Background(), opp, state)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, business.ActionCreateSubscription, actions[0].Type)
}

func TestConversionGenerator_CancellationFailureCompensates(t *testing.T) {
	provider := mocks.NewMockBillingProviderForTest(t)
	generator := services.NewConversionGenerator(provider, nil)

	provider.EXPECT().CancelSubscription(gomock.Any(), "prov-sub-old").Return(assert.AnError)

	actions, err := generator.Generate(context.Background(), conversionOpportunity(), conversionState())
	require.NoError(t, err)
	require.Len(t, actions, 1)

	last := actions[0]
	assert.Equal(t, business.ActionError, last.Type)
	assert.Equal(t, business.RiskHigh, last.RiskLevel)
	assert.Contains(t, last.Notes[0], "cannot be automatically reversed")
}

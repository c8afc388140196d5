package helpers_test

import (
	"testing"

	"github.com/dealbridge/billing-engine/helpers"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOpportunity() *business.Opportunity {
	return &business.Opportunity{
		ID:               "opp-1",
		OrderType:        business.OrderTypeNewBusiness,
		AccountID:        "acct-1",
		ContractStart:    "2024-01-01",
		ContractEnd:      "2024-12-31",
		BillingFrequency: business.FrequencyMonthly,
		LineItems: []business.LineItem{
			{
				ProductCode:   "platform-monthly",
				ProductName:   "Platform Subscription",
				Quantity:      1,
				UnitPrice:     1_000,
				TotalPrice:    12_000,
				BillingPeriod: business.PeriodMonthly,
			},
		},
	}
}

func TestParseContractDate(t *testing.T) {
	parsed, err := helpers.ParseContractDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, 15, parsed.Day())

	_, err = helpers.ParseContractDate("06/15/2024")
	assert.Error(t, err)
}

func TestValidateOpportunity(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*business.Opportunity)
		problem string
	}{
		{
			name:    "missing id",
			mutate:  func(o *business.Opportunity) { o.ID = "" },
			problem: "missing opportunity id",
		},
		{
			name:    "missing order type",
			mutate:  func(o *business.Opportunity) { o.OrderType = "" },
			problem: "missing order type",
		},
		{
			name:    "missing account id",
			mutate:  func(o *business.Opportunity) { o.AccountID = "" },
			problem: "missing account id",
		},
		{
			name:    "missing start date",
			mutate:  func(o *business.Opportunity) { o.ContractStart = "" },
			problem: "missing contract start date",
		},
		{
			name:    "unparseable end date",
			mutate:  func(o *business.Opportunity) { o.ContractEnd = "31-12-2024" },
			problem: `unparseable contract end date "31-12-2024"`,
		},
		{
			name: "start equals end",
			mutate: func(o *business.Opportunity) {
				o.ContractStart = "2024-12-31"
			},
			problem: "contract start date must precede end date",
		},
		{
			name:    "no line items",
			mutate:  func(o *business.Opportunity) { o.LineItems = nil },
			problem: "opportunity has no line items",
		},
		{
			name:    "missing product code",
			mutate:  func(o *business.Opportunity) { o.LineItems[0].ProductCode = "" },
			problem: "line item 1 is missing a product identifier",
		},
		{
			name:    "zero quantity",
			mutate:  func(o *business.Opportunity) { o.LineItems[0].Quantity = 0 },
			problem: "line item 1 has non-positive quantity",
		},
		{
			name:    "negative unit price",
			mutate:  func(o *business.Opportunity) { o.LineItems[0].UnitPrice = -1 },
			problem: "line item 1 has a negative unit price",
		},
		{
			name:    "zero total price",
			mutate:  func(o *business.Opportunity) { o.LineItems[0].TotalPrice = 0 },
			problem: "line item 1 has a non-positive total price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := validOpportunity()
			tt.mutate(opp)
			problems := helpers.ValidateOpportunity(opp)
			assert.Contains(t, problems, tt.problem)
		})
	}
}

func TestValidateOpportunity_Clean(t *testing.T) {
	assert.Empty(t, helpers.ValidateOpportunity(validOpportunity()))
}

func TestValidateOpportunity_Nil(t *testing.T) {
	assert.Equal(t, []string{"opportunity is missing"}, helpers.ValidateOpportunity(nil))
}

func TestValidateOpportunity_CollectsAllProblems(t *testing.T) {
	opp := validOpportunity()
	opp.ID = ""
	opp.AccountID = ""
	opp.LineItems[0].Quantity = -1

	problems := helpers.ValidateOpportunity(opp)
	assert.Len(t, problems, 3)
}

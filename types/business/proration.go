package business

// ProrationResult contains the outcome of a partial-period charge
// calculation. Amounts are minor units; Method and DaysUsed are carried into
// the review sheet for audit.
type ProrationResult struct {
	AmountCents int64    `json:"amount_cents"`
	Method      string   `json:"method"`
	DaysUsed    int      `json:"days_used"`
	Notes       []string `json:"notes,omitempty"`
}

// ProrationHints flags the business scenario a proration runs under, which
// selects the post-calculation adjustments. Nil hints means base math only.
type ProrationHints struct {
	// ImmediateInvoice marks an immediate-invoice scenario; items whose
	// activation date is still in the future get a delayed-start discount.
	ImmediateInvoice bool `json:"immediate_invoice,omitempty"`

	// SubscriptionUpdate marks a price-change scenario; only the incremental
	// portion above the item's previous price is prorated.
	SubscriptionUpdate bool `json:"subscription_update,omitempty"`
}

package business

// OrderType identifies which generation flow an opportunity goes through.
type OrderType string

const (
	OrderTypeNewBusiness    OrderType = "new_business"
	OrderTypeRenewal        OrderType = "renewal"
	OrderTypeInsertionOrder OrderType = "insertion_order"
	OrderTypeConversion     OrderType = "conversion_order"
)

// BillingFrequency is the recurring billing cadence of an opportunity.
type BillingFrequency string

const (
	FrequencyMonthly   BillingFrequency = "monthly"
	FrequencyQuarterly BillingFrequency = "quarterly"
	FrequencyAnnually  BillingFrequency = "annually"
)

// BillingPeriod is the billing cadence of a single line item. One-time items
// are charged once and never become subscriptions.
type BillingPeriod string

const (
	PeriodMonthly   BillingPeriod = "monthly"
	PeriodQuarterly BillingPeriod = "quarterly"
	PeriodAnnually  BillingPeriod = "annually"
	PeriodOneTime   BillingPeriod = "one_time"
)

// LineItemClassification describes how a line item relates to the customer's
// base subscription.
type LineItemClassification string

const (
	ClassificationSubscriptionConsumption    LineItemClassification = "subscription_consumption"
	ClassificationNonSubscriptionConsumption LineItemClassification = "non_subscription_consumption"
	ClassificationOneTimeService             LineItemClassification = "one_time_service"
)

// Opportunity is the structured sales-order record the engine consumes. It
// arrives pre-validated for shape from the upstream parser; the engine still
// checks the business invariants it depends on. Monetary fields are decimal
// dollars; contract dates are YYYY-MM-DD strings.
type Opportunity struct {
	ID               string                     `json:"id"`
	OrderType        OrderType                  `json:"order_type"`
	AccountID        string                     `json:"account_id"`
	AccountCode      string                     `json:"account_code,omitempty"`
	ContractStart    string                     `json:"contract_start"`
	ContractEnd      string                     `json:"contract_end"`
	BillingFrequency BillingFrequency           `json:"billing_frequency"`
	PaymentTerms     string                     `json:"payment_terms"`
	LineItems        []LineItem                 `json:"line_items"`
	Contact          *ContactInfo               `json:"contact,omitempty"`
	Transition       *BillingTransition         `json:"billing_transition,omitempty"`
	Outstanding      *OutstandingInvoiceSummary `json:"outstanding_invoices,omitempty"`
}

// LineItem is one priced product or service entry within an opportunity.
type LineItem struct {
	ProductCode    string                 `json:"product_code"`
	ProductName    string                 `json:"product_name"`
	Quantity       int64                  `json:"quantity"`
	UnitPrice      float64                `json:"unit_price"`
	TotalPrice     float64                `json:"total_price"`
	BillingPeriod  BillingPeriod          `json:"billing_period"`
	Classification LineItemClassification `json:"classification,omitempty"`

	ProrationNeeded         bool `json:"proration_needed,omitempty"`
	AffectsBaseSubscription bool `json:"affects_base_subscription,omitempty"`
	ImmediateInvoice        bool `json:"immediate_invoice,omitempty"`
	ReplacesSelfService     bool `json:"replaces_self_service,omitempty"`

	PreviousPrice     *float64 `json:"previous_price,omitempty"`
	MonthsRemaining   *int     `json:"months_remaining,omitempty"`
	ActivationDate    string   `json:"activation_date,omitempty"`
	PriceChangeReason string   `json:"price_change_reason,omitempty"`
}

// IsOneTime reports whether the item is billed once rather than recurring.
func (li *LineItem) IsOneTime() bool {
	return li.BillingPeriod == PeriodOneTime
}

// IsSubscriptionAffecting reports whether the item changes the customer's
// base recurring subscription price, which controls the minimum-charge floor
// during proration.
func (li *LineItem) IsSubscriptionAffecting() bool {
	return li.Classification == ClassificationSubscriptionConsumption || li.AffectsBaseSubscription
}

// ContactInfo is the billing contact block carried on an opportunity.
type ContactInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Street1 string `json:"street1,omitempty"`
	Street2 string `json:"street2,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// BillingTransition carries the self-serve to direct-sales switch details on
// conversion orders. CreditAmount is decimal dollars owed back to the
// customer for unused self-serve service.
type BillingTransition struct {
	PreviousPlatform string  `json:"previous_platform,omitempty"`
	CreditAmount     float64 `json:"credit_amount,omitempty"`
	EffectiveDate    string  `json:"effective_date,omitempty"`
}

// OutstandingInvoiceSummary carries the unpaid-invoice snapshot on insertion
// orders. TotalOutstanding is decimal dollars.
type OutstandingInvoiceSummary struct {
	HasOutstanding   bool    `json:"has_outstanding"`
	TotalOutstanding float64 `json:"total_outstanding"`
	InvoiceCount     int     `json:"invoice_count,omitempty"`
}

package constants

// Common string constants used throughout the codebase
const (
	// Log levels
	ErrorLevel = "error"

	// Environments
	ProdEnvironment = "prod"
	TestEnvironment = "test"

	// Date layout used for contract and activation dates arriving from the
	// upstream order parser.
	ContractDateLayout = "2006-01-02"

	// Payment terms
	Net30Terms        = "net_30"
	Net60Terms        = "net_60"
	Net90Terms        = "net_90"
	Net120Terms       = "net_120"
	DueOnReceiptTerms = "due_on_receipt"

	// Subscription collection methods
	AutomaticCollection = "automatic"
	ManualCollection    = "manual"

	// Subscription lifecycle states as reported by the billing provider
	ActiveSubscriptionState   = "active"
	CanceledSubscriptionState = "canceled"
	ExpiredSubscriptionState  = "expired"

	// Currencies
	USDCurrency = "USD"
)

// Review thresholds in minor units (cents).
const (
	// OneTimeReviewThresholdCents is the amount above which a one-time charge
	// requires manual review.
	OneTimeReviewThresholdCents int64 = 100_000 // $1,000

	// HighValueOneTimeThresholdCents is the amount at or above which a
	// one-time charge is annotated as high value.
	HighValueOneTimeThresholdCents int64 = 500_000 // $5,000

	// RenewalDeltaReviewThresholdCents is the absolute per-unit price delta
	// above which a renewal update requires manual review.
	RenewalDeltaReviewThresholdCents int64 = 100 // $1.00

	// MinimumSubscriptionChargeCents is the floor applied to sub-dollar
	// prorated amounts on subscription-affecting items.
	MinimumSubscriptionChargeCents int64 = 100 // $1.00
)

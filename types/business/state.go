package business

import "time"

// AccountState is the read-only snapshot of a customer's existing billing
// state supplied by the billing provider. The engine only reads it to decide
// matching subscriptions and compute deltas; it is never mutated.
type AccountState struct {
	Account       Account        `json:"account"`
	Subscriptions []Subscription `json:"subscriptions,omitempty"`
	Invoices      []Invoice      `json:"invoices,omitempty"`
	Transactions  []Transaction  `json:"transactions,omitempty"`
}

// Account is a provider-side billing account.
type Account struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	State     string    `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Subscription is a provider-side recurring subscription. UnitAmountCents is
// minor units as reported by the provider.
type Subscription struct {
	ID               string `json:"id"`
	PlanCode         string `json:"plan_code"`
	UnitAmountCents  int64  `json:"unit_amount_cents"`
	Quantity         int64  `json:"quantity"`
	State            string `json:"state"`
	CollectionMethod string `json:"collection_method,omitempty"`
	NetTerms         int    `json:"net_terms,omitempty"`
}

// IsActive reports whether the subscription is currently billing.
func (s *Subscription) IsActive() bool {
	return s.State == "active"
}

// Invoice is a provider-side invoice included in the state snapshot.
type Invoice struct {
	ID          string    `json:"id"`
	Number      string    `json:"number,omitempty"`
	State       string    `json:"state"`
	AmountCents int64     `json:"amount_cents"`
	DueAt       time.Time `json:"due_at,omitempty"`
}

// Transaction is a provider-side payment transaction included in the state
// snapshot.
type Transaction struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// SubscriptionSpec is the engine's request shape for creating or updating a
// provider subscription.
type SubscriptionSpec struct {
	PlanCode         string `json:"plan_code"`
	PlanName         string `json:"plan_name,omitempty"`
	UnitAmountCents  int64  `json:"unit_amount_cents"`
	Quantity         int64  `json:"quantity"`
	CollectionMethod string `json:"collection_method,omitempty"`
	NetTerms         int    `json:"net_terms,omitempty"`
}

// AccountFields is the engine's request shape for creating a provider
// account.
type AccountFields struct {
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

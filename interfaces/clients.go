package interfaces

import (
	"context"

	"github.com/dealbridge/billing-engine/types/business"
	"github.com/pkg/errors"
)

// ErrAccountNotFound is returned by GetAccountState when the billing
// provider has no account for the requested code. Renewal, insertion and
// conversion flows treat this as a hard precondition failure and never
// self-heal by creating the account.
var ErrAccountNotFound = errors.New("billing account not found")

// BillingProvider is the external billing system boundary. Every call must
// complete before the caller proceeds to the next line item, since
// compensation bookkeeping needs the provider-assigned identifiers.
type BillingProvider interface {
	// GetAccountState returns the customer's existing billing snapshot, or
	// ErrAccountNotFound when no account exists for the code.
	GetAccountState(ctx context.Context, accountCode string) (*business.AccountState, error)

	CreateAccount(ctx context.Context, fields business.AccountFields) (*business.Account, error)
	CreateSubscription(ctx context.Context, accountID string, spec business.SubscriptionSpec) (*business.Subscription, error)
	UpdateSubscription(ctx context.Context, subscriptionID string, spec business.SubscriptionSpec) (*business.Subscription, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
}

// Package sandbox provides an in-memory billing provider used by the CLI and
// local API server. It mimics the external provider's interface so the whole
// review pipeline can run against fixture data with no network access.
package sandbox

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/dealbridge/billing-engine/interfaces"
	"github.com/dealbridge/billing-engine/types/business"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Client is an in-memory billing provider. Safe for concurrent use.
type Client struct {
	mu       sync.Mutex
	accounts map[string]*business.AccountState // keyed by account code
}

var _ interfaces.BillingProvider = (*Client)(nil)

// NewClient creates an empty sandbox provider.
func NewClient() *Client {
	return &Client{accounts: make(map[string]*business.AccountState)}
}

// NewClientFromFixture creates a sandbox provider seeded from a JSON fixture
// file containing a list of account states.
func NewClientFromFixture(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read fixture %s", path)
	}

	var states []business.AccountState
	if err := json.Unmarshal(data, &states); err != nil {
		return nil, errors.Wrapf(err, "failed to parse fixture %s", path)
	}

	client := NewClient()
	for i := range states {
		client.SeedAccount(&states[i])
	}
	return client, nil
}

// SeedAccount installs an account state snapshot under its account code.
func (c *Client) SeedAccount(state *business.AccountState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts[state.Account.Code] = state
}

// GetAccountState returns the snapshot for an account code, or
// ErrAccountNotFound when the sandbox has no such account.
func (c *Client) GetAccountState(_ context.Context, accountCode string) (*business.AccountState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.accounts[accountCode]
	if !ok {
		return nil, errors.Wrapf(interfaces.ErrAccountNotFound, "account code %q", accountCode)
	}

	// Hand out a copy so callers can't mutate sandbox state.
	snapshot := *state
	snapshot.Subscriptions = append([]business.Subscription(nil), state.Subscriptions...)
	snapshot.Invoices = append([]business.Invoice(nil), state.Invoices...)
	snapshot.Transactions = append([]business.Transaction(nil), state.Transactions...)
	return &snapshot, nil
}

// CreateAccount registers a new account and returns it with a generated id.
func (c *Client) CreateAccount(_ context.Context, fields business.AccountFields) (*business.Account, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	account := business.Account{
		ID:    uuid.NewString(),
		Code:  fields.Code,
		Name:  fields.Name,
		Email: fields.Email,
		State: "active",
	}
	c.accounts[fields.Code] = &business.AccountState{Account: account}
	return &account, nil
}

// CreateSubscription opens a subscription under the account and returns it
// with a generated id.
func (c *Client) CreateSubscription(_ context.Context, accountID string, spec business.SubscriptionSpec) (*business.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.findByAccountID(accountID)
	if state == nil {
		return nil, errors.Errorf("unknown account id %q", accountID)
	}

	subscription := business.Subscription{
		ID:               uuid.NewString(),
		PlanCode:         spec.PlanCode,
		UnitAmountCents:  spec.UnitAmountCents,
		Quantity:         spec.Quantity,
		State:            "active",
		CollectionMethod: spec.CollectionMethod,
		NetTerms:         spec.NetTerms,
	}
	state.Subscriptions = append(state.Subscriptions, subscription)
	return &subscription, nil
}

// UpdateSubscription replaces a subscription's plan, price, and quantity.
func (c *Client) UpdateSubscription(_ context.Context, subscriptionID string, spec business.SubscriptionSpec) (*business.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	subscription := c.findSubscription(subscriptionID)
	if subscription == nil {
		return nil, errors.Errorf("unknown subscription id %q", subscriptionID)
	}

	subscription.PlanCode = spec.PlanCode
	subscription.UnitAmountCents = spec.UnitAmountCents
	subscription.Quantity = spec.Quantity
	if spec.CollectionMethod != "" {
		subscription.CollectionMethod = spec.CollectionMethod
	}
	copied := *subscription
	return &copied, nil
}

// CancelSubscription marks a subscription canceled.
func (c *Client) CancelSubscription(_ context.Context, subscriptionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	subscription := c.findSubscription(subscriptionID)
	if subscription == nil {
		return errors.Errorf("unknown subscription id %q", subscriptionID)
	}
	subscription.State = "canceled"
	return nil
}

func (c *Client) findByAccountID(accountID string) *business.AccountState {
	for _, state := range c.accounts {
		if state.Account.ID == accountID {
			return state
		}
	}
	return nil
}

func (c *Client) findSubscription(subscriptionID string) *business.Subscription {
	for _, state := range c.accounts {
		for i := range state.Subscriptions {
			if state.Subscriptions[i].ID == subscriptionID {
				return &state.Subscriptions[i]
			}
		}
	}
	return nil
}

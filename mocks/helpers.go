package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockBillingProviderForTest creates a new mock BillingProvider for testing
func NewMockBillingProviderForTest(t *testing.T) *MockBillingProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockBillingProvider(ctrl)
}

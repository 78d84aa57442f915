package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

//go:generate mockgen -destination=mock_querier.go -package=mocks github.com/cyphera/safe-gateway/internal/db Querier

// VerifierMocks bundles the repositories the transaction verifier depends on
type VerifierMocks struct {
	Safes         *MockSafeRepository
	Transactions  *MockMultisigTransactionRepository
	ContractTrust *MockContractTrustRepository
	Delegates     *MockDelegateRepository
	Metrics       *MockVerificationMetrics
}

// NewVerifierMocksForTest creates every verifier dependency on one controller
func NewVerifierMocksForTest(t *testing.T) *VerifierMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return &VerifierMocks{
		Safes:         NewMockSafeRepository(ctrl),
		Transactions:  NewMockMultisigTransactionRepository(ctrl),
		ContractTrust: NewMockContractTrustRepository(ctrl),
		Delegates:     NewMockDelegateRepository(ctrl),
		Metrics:       NewMockVerificationMetrics(ctrl),
	}
}

// NewMockTransactionServiceWriterForTest creates a new mock TransactionServiceWriter for testing
func NewMockTransactionServiceWriterForTest(t *testing.T) *MockTransactionServiceWriter {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockTransactionServiceWriter(ctrl)
}

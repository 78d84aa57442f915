package interfaces

import (
	"context"

	"github.com/cyphera/safe-gateway/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -source=repositories.go -destination=../mocks/mock_repositories.go -package=mocks

// SafeRepository reads the current state of a Safe from the indexer
type SafeRepository interface {
	GetSafe(ctx context.Context, chainID string, address common.Address) (*business.Safe, error)
}

// MultisigTransactionRepository reads indexed multisig transactions
type MultisigTransactionRepository interface {
	GetMultisigTransaction(ctx context.Context, chainID string, safeTxHash common.Hash) (*business.MultisigTransaction, error)
}

// ContractTrustRepository answers whether a contract may be the target of a delegate call
type ContractTrustRepository interface {
	IsTrustedForDelegateCall(ctx context.Context, chainID string, address common.Address) (bool, error)
}

// DelegateRepository lists the delegates registered for a Safe
type DelegateRepository interface {
	GetDelegates(ctx context.Context, chainID string, safeAddress common.Address) ([]business.Delegate, error)
}

// TransactionServiceWriter forwards verified writes to the transaction service
type TransactionServiceWriter interface {
	ProposeTransaction(ctx context.Context, chainID string, proposal *business.TransactionProposal) error
	AddConfirmation(ctx context.Context, chainID string, safeTxHash common.Hash, signature []byte) error
	CreateMessage(ctx context.Context, chainID string, safeAddress common.Address, message business.Message, signature []byte) error
}

package interfaces

import (
	"context"
	"time"

	"github.com/cyphera/safe-gateway/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
)

//go:generate mockgen -source=services.go -destination=../mocks/mock_services.go -package=mocks

// TransactionVerifier checks hashes and signatures of transactions and messages
type TransactionVerifier interface {
	VerifyTransaction(ctx context.Context, chainID string, safe *business.Safe, tx *business.MultisigTransaction, signatures [][]byte) error
	VerifyMessage(ctx context.Context, chainID string, safe *business.Safe, message business.Message, messageHash *common.Hash, signature []byte) error
	VerifyProposal(ctx context.Context, chainID string, proposal *business.TransactionProposal) error
	VerifyConfirmation(ctx context.Context, chainID string, safeTxHash common.Hash, signature []byte) error
	VerifyAPITransaction(ctx context.Context, chainID string, safe *business.Safe, tx *business.MultisigTransaction) error
}

// TransactionStatusMapper derives the lifecycle status of a multisig transaction
type TransactionStatusMapper interface {
	MapStatus(tx *business.MultisigTransaction, safe *business.Safe, now time.Time) business.TransactionStatus
}

// VerificationMetrics records the outcome of every verification
type VerificationMetrics interface {
	RecordVerification(operation, outcome string)
}

package services

import (
	"time"

	"github.com/cyphera/safe-gateway/internal/types/business"
)

// TransactionStatusService maps indexed multisig transactions to their
// lifecycle status. MapStatus is a pure function of its arguments.
type TransactionStatusService struct {
	gracePeriod time.Duration
}

// NewTransactionStatusService creates a status mapper. gracePeriod is the
// tolerated lag between an execution and the indexer reporting the new nonce.
func NewTransactionStatusService(gracePeriod time.Duration) *TransactionStatusService {
	return &TransactionStatusService{gracePeriod: gracePeriod}
}

// MapStatus returns the status of tx given the current state of its Safe
func (s *TransactionStatusService) MapStatus(tx *business.MultisigTransaction, safe *business.Safe, now time.Time) business.TransactionStatus {
	if tx.IsExecuted {
		if tx.IsSuccessful != nil && *tx.IsSuccessful {
			return business.TransactionStatusSuccess
		}
		return business.TransactionStatusFailed
	}

	hasQuorum := s.hasQuorum(tx, safe)

	if tx.Nonce < safe.Nonce {
		// A fully confirmed transaction may just have been executed and not yet indexed
		if hasQuorum && now.Sub(tx.Modified) <= s.gracePeriod {
			return business.TransactionStatusAwaitingExecution
		}
		return business.TransactionStatusCancelled
	}

	if hasQuorum {
		return business.TransactionStatusAwaitingExecution
	}
	return business.TransactionStatusAwaitingConfirmations
}

func (s *TransactionStatusService) hasQuorum(tx *business.MultisigTransaction, safe *business.Safe) bool {
	required := tx.ConfirmationsRequired
	if required == 0 {
		required = safe.Threshold
	}
	return uint64(len(tx.Confirmations)) >= uint64(required)
}

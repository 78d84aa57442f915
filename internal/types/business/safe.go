package business

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Operation is the Safe call type of a multisig transaction
type Operation uint8

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

// IsValid reports whether the operation is one the Safe contract accepts
func (o Operation) IsValid() bool {
	return o == OperationCall || o == OperationDelegateCall
}

// TransactionStatus is the externally visible lifecycle status of a multisig transaction
type TransactionStatus string

const (
	TransactionStatusSuccess               TransactionStatus = "SUCCESS"
	TransactionStatusFailed                TransactionStatus = "FAILED"
	TransactionStatusCancelled             TransactionStatus = "CANCELLED"
	TransactionStatusAwaitingConfirmations TransactionStatus = "AWAITING_CONFIRMATIONS"
	TransactionStatusAwaitingExecution     TransactionStatus = "AWAITING_EXECUTION"
)

// Safe is the on-chain wallet as reported by the indexer.
// The engine never mutates it.
type Safe struct {
	Address   common.Address
	Owners    []common.Address
	Threshold uint32 // confirmations required to execute
	Nonce     uint64 // next unused nonce
	Version   string // e.g. "1.3.0+L2", empty when unknown
}

// IsOwner reports whether address is one of the Safe owners
func (s *Safe) IsOwner(address common.Address) bool {
	for _, owner := range s.Owners {
		if owner == address {
			return true
		}
	}
	return false
}

// Confirmation is a single owner (or delegate) signature over a safeTxHash
type Confirmation struct {
	Owner          common.Address
	Signature      hexutil.Bytes
	SignatureType  string
	SubmissionDate time.Time
}

// MultisigTransaction is a proposed Safe transaction together with the
// indexer state attached to it
type MultisigTransaction struct {
	Safe           common.Address
	To             common.Address
	Value          *big.Int
	Data           hexutil.Bytes // nil when the transaction carries no calldata
	Operation      Operation
	SafeTxGas      *big.Int
	BaseGas        *big.Int
	GasPrice       *big.Int
	GasToken       common.Address
	RefundReceiver common.Address
	Nonce          uint64
	SafeTxHash     common.Hash

	// Indexer state, set by the transaction service
	Proposer              *common.Address
	Confirmations         []Confirmation
	ConfirmationsRequired uint32 // 0 when the indexer did not report it
	IsExecuted            bool
	IsSuccessful          *bool
	ExecutionDate         *time.Time
	SubmissionDate        time.Time
	Modified              time.Time
}

// TransactionProposal is a new transaction submitted by one of the Safe
// owners or delegates
type TransactionProposal struct {
	Transaction MultisigTransaction
	Sender      common.Address
	Signature   hexutil.Bytes
	Origin      string
}

// Delegate is an address authorized by an owner to sign for a Safe
type Delegate struct {
	Safe       *common.Address // nil for delegates valid across every Safe of the delegator
	Delegate   common.Address
	Delegator  common.Address
	Label      string
	ExpiryDate *time.Time
}

// IsActive reports whether the delegate may sign at the given time
func (d Delegate) IsActive(now time.Time) bool {
	return d.ExpiryDate == nil || now.Before(*d.ExpiryDate)
}

// Message is an off-chain payload signed by the Safe owners. Exactly one
// of Raw and TypedData is set.
type Message struct {
	Raw       *string
	TypedData *apitypes.TypedData
}

// NewRawMessage wraps a plain string message
func NewRawMessage(raw string) Message {
	return Message{Raw: &raw}
}

// NewTypedDataMessage wraps an EIP-712 payload
func NewTypedDataMessage(typedData apitypes.TypedData) Message {
	return Message{TypedData: &typedData}
}

// IsTypedData reports whether the message is an EIP-712 payload
func (m Message) IsTypedData() bool {
	return m.TypedData != nil
}

// MarshalJSON encodes the message the way the transaction service expects it:
// a JSON string for raw messages and an object for typed data
func (m Message) MarshalJSON() ([]byte, error) {
	switch {
	case m.TypedData != nil:
		return json.Marshal(m.TypedData)
	case m.Raw != nil:
		return json.Marshal(*m.Raw)
	default:
		return nil, errors.New("empty message")
	}
}

// UnmarshalJSON accepts either a JSON string or an EIP-712 object
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*m = NewRawMessage(raw)
		return nil
	}

	var typedData apitypes.TypedData
	if err := json.Unmarshal(data, &typedData); err != nil {
		return fmt.Errorf("message is neither a string nor typed data: %w", err)
	}
	if typedData.PrimaryType == "" || len(typedData.Types) == 0 {
		return errors.New("typed data message is missing types or primaryType")
	}
	*m = NewTypedDataMessage(typedData)
	return nil
}

package handlers

import (
	"math/big"
	"time"

	"github.com/cyphera/safe-gateway/internal/client/txservice"
	"github.com/cyphera/safe-gateway/internal/types/business"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// ProposeTransactionRequest is the body of a transaction proposal.
// Numeric fields accept JSON numbers or decimal strings.
type ProposeTransactionRequest struct {
	To             common.Address     `json:"to" binding:"required"`
	Value          txservice.Numeric  `json:"value"`
	Data           *hexutil.Bytes     `json:"data"`
	Operation      business.Operation `json:"operation"`
	SafeTxGas      txservice.Numeric  `json:"safeTxGas"`
	BaseGas        txservice.Numeric  `json:"baseGas"`
	GasPrice       txservice.Numeric  `json:"gasPrice"`
	GasToken       common.Address     `json:"gasToken"`
	RefundReceiver common.Address     `json:"refundReceiver"`
	Nonce          txservice.Numeric  `json:"nonce" binding:"required"`
	SafeTxHash     common.Hash        `json:"safeTxHash" binding:"required"`
	Sender         common.Address     `json:"sender" binding:"required"`
	Signature      *hexutil.Bytes     `json:"signature"`
	Origin         string             `json:"origin"`
}

// ToBusiness converts the request into a proposal for the Safe at safeAddress
func (r *ProposeTransactionRequest) ToBusiness(safeAddress common.Address) (*business.TransactionProposal, error) {
	if !r.Operation.IsValid() {
		return nil, errors.Errorf("invalid operation %d", r.Operation)
	}

	values := make([]*big.Int, 4)
	for i, field := range []struct {
		name  string
		value txservice.Numeric
	}{
		{"value", r.Value},
		{"safeTxGas", r.SafeTxGas},
		{"baseGas", r.BaseGas},
		{"gasPrice", r.GasPrice},
	} {
		parsed, err := field.value.Big()
		if err != nil {
			return nil, errors.Wrap(err, field.name)
		}
		values[i] = parsed
	}
	nonce, err := r.Nonce.Uint64()
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}

	proposal := &business.TransactionProposal{
		Transaction: business.MultisigTransaction{
			Safe:           safeAddress,
			To:             r.To,
			Value:          values[0],
			Operation:      r.Operation,
			SafeTxGas:      values[1],
			BaseGas:        values[2],
			GasPrice:       values[3],
			GasToken:       r.GasToken,
			RefundReceiver: r.RefundReceiver,
			Nonce:          nonce,
			SafeTxHash:     r.SafeTxHash,
		},
		Sender: r.Sender,
		Origin: r.Origin,
	}
	if r.Data != nil {
		proposal.Transaction.Data = *r.Data
	}
	if r.Signature != nil {
		proposal.Signature = *r.Signature
	}
	return proposal, nil
}

// ProposeTransactionResponse acknowledges a forwarded proposal
type ProposeTransactionResponse struct {
	SafeTxHash common.Hash `json:"safeTxHash"`
}

// AddConfirmationRequest is the body of a new confirmation
type AddConfirmationRequest struct {
	Signature hexutil.Bytes `json:"signature" binding:"required"`
}

// CreateMessageRequest is the body of a new off-chain message
type CreateMessageRequest struct {
	Message   business.Message `json:"message"`
	Signature hexutil.Bytes    `json:"signature" binding:"required"`
}

// ConfirmationResponse is a confirmation of a multisig transaction
type ConfirmationResponse struct {
	Owner          common.Address `json:"owner"`
	Signature      hexutil.Bytes  `json:"signature,omitempty"`
	SignatureType  string         `json:"signatureType"`
	SubmissionDate time.Time      `json:"submissionDate"`
}

// MultisigTransactionResponse is a verified multisig transaction with its status
type MultisigTransactionResponse struct {
	Safe                  common.Address             `json:"safe"`
	To                    common.Address             `json:"to"`
	Value                 string                     `json:"value"`
	Data                  *hexutil.Bytes             `json:"data"`
	Operation             business.Operation         `json:"operation"`
	SafeTxGas             string                     `json:"safeTxGas"`
	BaseGas               string                     `json:"baseGas"`
	GasPrice              string                     `json:"gasPrice"`
	GasToken              common.Address             `json:"gasToken"`
	RefundReceiver        common.Address             `json:"refundReceiver"`
	Nonce                 uint64                     `json:"nonce"`
	SafeTxHash            common.Hash                `json:"safeTxHash"`
	Proposer              *common.Address            `json:"proposer"`
	Confirmations         []ConfirmationResponse     `json:"confirmations"`
	ConfirmationsRequired uint32                     `json:"confirmationsRequired"`
	IsExecuted            bool                       `json:"isExecuted"`
	IsSuccessful          *bool                      `json:"isSuccessful"`
	ExecutionDate         *time.Time                 `json:"executionDate"`
	SubmissionDate        time.Time                  `json:"submissionDate"`
	Modified              time.Time                  `json:"modified"`
	Status                business.TransactionStatus `json:"txStatus"`
}

func toMultisigTransactionResponse(tx *business.MultisigTransaction, safe *business.Safe, status business.TransactionStatus) MultisigTransactionResponse {
	response := MultisigTransactionResponse{
		Safe:                  tx.Safe,
		To:                    tx.To,
		Value:                 decimalString(tx.Value),
		Operation:             tx.Operation,
		SafeTxGas:             decimalString(tx.SafeTxGas),
		BaseGas:               decimalString(tx.BaseGas),
		GasPrice:              decimalString(tx.GasPrice),
		GasToken:              tx.GasToken,
		RefundReceiver:        tx.RefundReceiver,
		Nonce:                 tx.Nonce,
		SafeTxHash:            tx.SafeTxHash,
		Proposer:              tx.Proposer,
		Confirmations:         make([]ConfirmationResponse, 0, len(tx.Confirmations)),
		ConfirmationsRequired: tx.ConfirmationsRequired,
		IsExecuted:            tx.IsExecuted,
		IsSuccessful:          tx.IsSuccessful,
		ExecutionDate:         tx.ExecutionDate,
		SubmissionDate:        tx.SubmissionDate,
		Modified:              tx.Modified,
		Status:                status,
	}
	if response.ConfirmationsRequired == 0 {
		response.ConfirmationsRequired = safe.Threshold
	}
	if tx.Data != nil {
		data := tx.Data
		response.Data = &data
	}
	for _, confirmation := range tx.Confirmations {
		response.Confirmations = append(response.Confirmations, ConfirmationResponse{
			Owner:          confirmation.Owner,
			Signature:      confirmation.Signature,
			SignatureType:  confirmation.SignatureType,
			SubmissionDate: confirmation.SubmissionDate,
		})
	}
	return response
}

func decimalString(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

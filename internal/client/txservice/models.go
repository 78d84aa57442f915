package txservice

import (
	"bytes"
	"encoding/json"
	"math/big"
	"time"

	"github.com/cyphera/safe-gateway/internal/types/business"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// Numeric decodes a JSON number or a decimal string. The transaction
// service returns both depending on the endpoint version.
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*n = Numeric(number.String())
	return nil
}

// Big parses the value as a uint256. Empty values are zero.
func (n Numeric) Big() (*big.Int, error) {
	if n == "" {
		return new(big.Int), nil
	}
	value, ok := math.ParseBig256(string(n))
	if !ok || value.Sign() < 0 {
		return nil, errors.Errorf("invalid uint256 %q", string(n))
	}
	return value, nil
}

// Uint64 parses the value as a uint64. Empty values are zero.
func (n Numeric) Uint64() (uint64, error) {
	if n == "" {
		return 0, nil
	}
	value, ok := math.ParseUint64(string(n))
	if !ok {
		return 0, errors.Errorf("invalid uint64 %q", string(n))
	}
	return value, nil
}

// SafeResponse is the body of GET /api/v1/safes/{address}/
type SafeResponse struct {
	Address         common.Address   `json:"address"`
	Nonce           Numeric          `json:"nonce"`
	Threshold       uint32           `json:"threshold"`
	Owners          []common.Address `json:"owners"`
	MasterCopy      common.Address   `json:"masterCopy"`
	Modules         []common.Address `json:"modules"`
	FallbackHandler common.Address   `json:"fallbackHandler"`
	Guard           common.Address   `json:"guard"`
	Version         string           `json:"version"`
}

// ToBusiness converts the response into a Safe
func (r *SafeResponse) ToBusiness() (*business.Safe, error) {
	nonce, err := r.Nonce.Uint64()
	if err != nil {
		return nil, errors.Wrap(err, "safe nonce")
	}
	return &business.Safe{
		Address:   r.Address,
		Owners:    r.Owners,
		Threshold: r.Threshold,
		Nonce:     nonce,
		Version:   r.Version,
	}, nil
}

// ConfirmationResponse is a confirmation as listed by the transaction service
type ConfirmationResponse struct {
	Owner           common.Address `json:"owner"`
	SubmissionDate  time.Time      `json:"submissionDate"`
	TransactionHash *common.Hash   `json:"transactionHash"`
	Signature       *hexutil.Bytes `json:"signature"`
	SignatureType   string         `json:"signatureType"`
}

// MultisigTransactionResponse is the body of GET /api/v1/multisig-transactions/{safeTxHash}/
type MultisigTransactionResponse struct {
	Safe                  common.Address         `json:"safe"`
	To                    common.Address         `json:"to"`
	Value                 Numeric                `json:"value"`
	Data                  *hexutil.Bytes         `json:"data"`
	Operation             uint8                  `json:"operation"`
	GasToken              common.Address         `json:"gasToken"`
	SafeTxGas             Numeric                `json:"safeTxGas"`
	BaseGas               Numeric                `json:"baseGas"`
	GasPrice              Numeric                `json:"gasPrice"`
	RefundReceiver        common.Address         `json:"refundReceiver"`
	Nonce                 Numeric                `json:"nonce"`
	ExecutionDate         *time.Time             `json:"executionDate"`
	SubmissionDate        time.Time              `json:"submissionDate"`
	Modified              time.Time              `json:"modified"`
	TransactionHash       *common.Hash           `json:"transactionHash"`
	SafeTxHash            common.Hash            `json:"safeTxHash"`
	Proposer              *common.Address        `json:"proposer"`
	IsExecuted            bool                   `json:"isExecuted"`
	IsSuccessful          *bool                  `json:"isSuccessful"`
	Origin                string                 `json:"origin"`
	ConfirmationsRequired uint32                 `json:"confirmationsRequired"`
	Confirmations         []ConfirmationResponse `json:"confirmations"`
}

// ToBusiness converts the response into a MultisigTransaction
func (r *MultisigTransactionResponse) ToBusiness() (*business.MultisigTransaction, error) {
	value, err := r.Value.Big()
	if err != nil {
		return nil, errors.Wrap(err, "value")
	}
	safeTxGas, err := r.SafeTxGas.Big()
	if err != nil {
		return nil, errors.Wrap(err, "safeTxGas")
	}
	baseGas, err := r.BaseGas.Big()
	if err != nil {
		return nil, errors.Wrap(err, "baseGas")
	}
	gasPrice, err := r.GasPrice.Big()
	if err != nil {
		return nil, errors.Wrap(err, "gasPrice")
	}
	nonce, err := r.Nonce.Uint64()
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}

	confirmations := make([]business.Confirmation, 0, len(r.Confirmations))
	for _, c := range r.Confirmations {
		var signature hexutil.Bytes
		if c.Signature != nil {
			signature = *c.Signature
		}
		confirmations = append(confirmations, business.Confirmation{
			Owner:          c.Owner,
			Signature:      signature,
			SignatureType:  c.SignatureType,
			SubmissionDate: c.SubmissionDate,
		})
	}

	var data hexutil.Bytes
	if r.Data != nil {
		data = *r.Data
	}

	return &business.MultisigTransaction{
		Safe:                  r.Safe,
		To:                    r.To,
		Value:                 value,
		Data:                  data,
		Operation:             business.Operation(r.Operation),
		SafeTxGas:             safeTxGas,
		BaseGas:               baseGas,
		GasPrice:              gasPrice,
		GasToken:              r.GasToken,
		RefundReceiver:        r.RefundReceiver,
		Nonce:                 nonce,
		SafeTxHash:            r.SafeTxHash,
		Proposer:              r.Proposer,
		Confirmations:         confirmations,
		ConfirmationsRequired: r.ConfirmationsRequired,
		IsExecuted:            r.IsExecuted,
		IsSuccessful:          r.IsSuccessful,
		ExecutionDate:         r.ExecutionDate,
		SubmissionDate:        r.SubmissionDate,
		Modified:              r.Modified,
	}, nil
}

// DelegateResponse is a single delegate of GET /api/v2/delegates/
type DelegateResponse struct {
	Safe       *common.Address `json:"safe"`
	Delegate   common.Address  `json:"delegate"`
	Delegator  common.Address  `json:"delegator"`
	Label      string          `json:"label"`
	ExpiryDate *time.Time      `json:"expiryDate"`
}

// ToBusiness converts the response into a Delegate
func (r *DelegateResponse) ToBusiness() business.Delegate {
	return business.Delegate{
		Safe:       r.Safe,
		Delegate:   r.Delegate,
		Delegator:  r.Delegator,
		Label:      r.Label,
		ExpiryDate: r.ExpiryDate,
	}
}

// DelegatesPage is a page of the paginated delegates listing
type DelegatesPage struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []DelegateResponse `json:"results"`
}

// ProposeTransactionRequest is the body of POST /api/v1/safes/{safe}/multisig-transactions/
type ProposeTransactionRequest struct {
	To                      common.Address `json:"to"`
	Value                   string         `json:"value"`
	Data                    *hexutil.Bytes `json:"data"`
	Operation               uint8          `json:"operation"`
	SafeTxGas               string         `json:"safeTxGas"`
	BaseGas                 string         `json:"baseGas"`
	GasPrice                string         `json:"gasPrice"`
	GasToken                common.Address `json:"gasToken"`
	RefundReceiver          common.Address `json:"refundReceiver"`
	Nonce                   string         `json:"nonce"`
	ContractTransactionHash common.Hash    `json:"contractTransactionHash"`
	Sender                  common.Address `json:"sender"`
	Signature               *hexutil.Bytes `json:"signature"`
	Origin                  *string        `json:"origin"`
}

// NewProposeTransactionRequest builds the wire body of a proposal
func NewProposeTransactionRequest(proposal *business.TransactionProposal) *ProposeTransactionRequest {
	tx := proposal.Transaction
	request := &ProposeTransactionRequest{
		To:                      tx.To,
		Value:                   decimal(tx.Value),
		Operation:               uint8(tx.Operation),
		SafeTxGas:               decimal(tx.SafeTxGas),
		BaseGas:                 decimal(tx.BaseGas),
		GasPrice:                decimal(tx.GasPrice),
		GasToken:                tx.GasToken,
		RefundReceiver:          tx.RefundReceiver,
		Nonce:                   new(big.Int).SetUint64(tx.Nonce).String(),
		ContractTransactionHash: tx.SafeTxHash,
		Sender:                  proposal.Sender,
	}
	if len(tx.Data) > 0 {
		data := tx.Data
		request.Data = &data
	}
	if len(proposal.Signature) > 0 {
		signature := proposal.Signature
		request.Signature = &signature
	}
	if proposal.Origin != "" {
		origin := proposal.Origin
		request.Origin = &origin
	}
	return request
}

// AddConfirmationRequest is the body of POST /api/v1/multisig-transactions/{safeTxHash}/confirmations/
type AddConfirmationRequest struct {
	Signature hexutil.Bytes `json:"signature"`
}

// CreateMessageRequest is the body of POST /api/v1/safes/{safe}/messages/
type CreateMessageRequest struct {
	Message   business.Message `json:"message"`
	Signature hexutil.Bytes    `json:"signature"`
}

func decimal(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

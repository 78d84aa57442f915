package services

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cyphera/safe-gateway/internal/types/business"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/hashicorp/go-version"
)

var (
	// Safes older than 1.3.0 do not bind the chain id in their domain separator
	chainIDDomainVersion = version.Must(version.NewVersion("1.3.0"))
	// Safes older than 1.0.0 call baseGas dataGas
	baseGasVersion = version.Must(version.NewVersion("1.0.0"))
)

// SafeHashService computes safeTxHash and Safe message hashes (EIP-712)
type SafeHashService struct{}

// NewSafeHashService creates a new hash service
func NewSafeHashService() *SafeHashService {
	return &SafeHashService{}
}

// TransactionHash returns the safeTxHash of tx for the given Safe and chain
func (s *SafeHashService) TransactionHash(chainID string, safe *business.Safe, tx *business.MultisigTransaction) (common.Hash, error) {
	safeVersion, err := parseSafeVersion(safe.Version)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate safeTxHash", err)
	}
	domainTypes, domain, err := safeDomain(chainID, safe.Address, safeVersion)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate safeTxHash", err)
	}
	message, err := safeTxMessage(tx, safeVersion)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate safeTxHash", err)
	}

	gasField := baseGasFieldName(safeVersion)

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainTypes,
			"SafeTx": []apitypes.Type{
				{Name: "to", Type: "address"},
				{Name: "value", Type: "uint256"},
				{Name: "data", Type: "bytes"},
				{Name: "operation", Type: "uint8"},
				{Name: "safeTxGas", Type: "uint256"},
				{Name: gasField, Type: "uint256"},
				{Name: "gasPrice", Type: "uint256"},
				{Name: "gasToken", Type: "address"},
				{Name: "refundReceiver", Type: "address"},
				{Name: "nonce", Type: "uint256"},
			},
		},
		PrimaryType: "SafeTx",
		Domain:      domain,
		Message:     message,
	}

	hash, err := hashTypedData(typedData)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate safeTxHash", err)
	}
	return hash, nil
}

// MessageHash returns the SafeMessage hash of message for the given Safe and chain.
// Raw messages are hashed with EIP-191, typed messages with their own EIP-712
// domain, and the result is wrapped in the Safe's domain.
func (s *SafeHashService) MessageHash(chainID string, safe *business.Safe, message business.Message) (common.Hash, error) {
	var payloadHash []byte
	switch {
	case message.TypedData != nil:
		hash, err := hashTypedData(withDomainTypes(*message.TypedData))
		if err != nil {
			return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate messageHash", err)
		}
		payloadHash = hash.Bytes()
	case message.Raw != nil:
		payloadHash = accounts.TextHash([]byte(*message.Raw))
	default:
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate messageHash", errors.New("empty message"))
	}

	safeVersion, err := parseSafeVersion(safe.Version)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate messageHash", err)
	}
	domainTypes, domain, err := safeDomain(chainID, safe.Address, safeVersion)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate messageHash", err)
	}

	typedData := apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": domainTypes,
			"SafeMessage": []apitypes.Type{
				{Name: "message", Type: "bytes"},
			},
		},
		PrimaryType: "SafeMessage",
		Domain:      domain,
		Message: apitypes.TypedDataMessage{
			"message": hexutil.Bytes(payloadHash),
		},
	}

	hash, err := hashTypedData(typedData)
	if err != nil {
		return common.Hash{}, withMessage(ErrMalformedHash, "Could not calculate messageHash", err)
	}
	return hash, nil
}

// parseSafeVersion returns nil for an unknown version, which is treated as the latest
func parseSafeVersion(raw string) (*version.Version, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := version.NewVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid Safe version %q: %w", raw, err)
	}
	return v, nil
}

func safeDomain(chainID string, safeAddress common.Address, safeVersion *version.Version) ([]apitypes.Type, apitypes.TypedDataDomain, error) {
	domain := apitypes.TypedDataDomain{VerifyingContract: safeAddress.Hex()}
	if safeVersion != nil && safeVersion.LessThan(chainIDDomainVersion) {
		return []apitypes.Type{{Name: "verifyingContract", Type: "address"}}, domain, nil
	}

	id, ok := math.ParseBig256(chainID)
	if !ok || id.Sign() <= 0 {
		return nil, apitypes.TypedDataDomain{}, fmt.Errorf("invalid chain id %q", chainID)
	}
	domain.ChainId = (*math.HexOrDecimal256)(id)
	return []apitypes.Type{
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	}, domain, nil
}

func safeTxMessage(tx *business.MultisigTransaction, safeVersion *version.Version) (apitypes.TypedDataMessage, error) {
	if !tx.Operation.IsValid() {
		return nil, fmt.Errorf("invalid operation %d", tx.Operation)
	}

	value, err := uint256String("value", tx.Value)
	if err != nil {
		return nil, err
	}
	safeTxGas, err := uint256String("safeTxGas", tx.SafeTxGas)
	if err != nil {
		return nil, err
	}
	baseGas, err := uint256String("baseGas", tx.BaseGas)
	if err != nil {
		return nil, err
	}
	gasPrice, err := uint256String("gasPrice", tx.GasPrice)
	if err != nil {
		return nil, err
	}

	data := tx.Data
	if data == nil {
		data = hexutil.Bytes{}
	}

	gasField := baseGasFieldName(safeVersion)

	return apitypes.TypedDataMessage{
		"to":             tx.To.Hex(),
		"value":          value,
		"data":           data,
		"operation":      fmt.Sprintf("%d", tx.Operation),
		"safeTxGas":      safeTxGas,
		gasField:         baseGas,
		"gasPrice":       gasPrice,
		"gasToken":       tx.GasToken.Hex(),
		"refundReceiver": tx.RefundReceiver.Hex(),
		"nonce":          fmt.Sprintf("%d", tx.Nonce),
	}, nil
}

func baseGasFieldName(safeVersion *version.Version) string {
	if safeVersion != nil && safeVersion.LessThan(baseGasVersion) {
		return "dataGas"
	}
	return "baseGas"
}

// uint256String renders a Safe uint256 field in decimal; nil encodes as zero
func uint256String(field string, value *big.Int) (string, error) {
	if value == nil {
		return "0", nil
	}
	if value.Sign() < 0 || value.BitLen() > 256 {
		return "", fmt.Errorf("%s out of uint256 range: %s", field, value)
	}
	return value.String(), nil
}

// withDomainTypes returns typedData with an EIP712Domain type derived from
// the populated domain fields when the payload does not declare one.
// typedData itself is left unchanged.
func withDomainTypes(typedData apitypes.TypedData) apitypes.TypedData {
	if _, ok := typedData.Types["EIP712Domain"]; ok {
		return typedData
	}

	types := make(apitypes.Types, len(typedData.Types)+1)
	for name, fields := range typedData.Types {
		types[name] = fields
	}

	domain := typedData.Domain
	var domainTypes []apitypes.Type
	if domain.Name != "" {
		domainTypes = append(domainTypes, apitypes.Type{Name: "name", Type: "string"})
	}
	if domain.Version != "" {
		domainTypes = append(domainTypes, apitypes.Type{Name: "version", Type: "string"})
	}
	if domain.ChainId != nil {
		domainTypes = append(domainTypes, apitypes.Type{Name: "chainId", Type: "uint256"})
	}
	if domain.VerifyingContract != "" {
		domainTypes = append(domainTypes, apitypes.Type{Name: "verifyingContract", Type: "address"})
	}
	if domain.Salt != "" {
		domainTypes = append(domainTypes, apitypes.Type{Name: "salt", Type: "bytes32"})
	}
	types["EIP712Domain"] = domainTypes

	typedData.Types = types
	return typedData
}

func hashTypedData(typedData apitypes.TypedData) (common.Hash, error) {
	hash, _, err := apitypes.TypedDataAndHash(typedData)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(hash), nil
}

package services

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/types/business"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

const testChainID = "1"

type testSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newTestSigner(t *testing.T) testSigner {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return testSigner{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// sign produces an ECDSA Safe signature (v = 27/28) over hash
func (s testSigner) sign(t *testing.T, hash common.Hash) []byte {
	t.Helper()
	sig, err := crypto.Sign(hash.Bytes(), s.key)
	require.NoError(t, err)
	sig[64] += 27
	return sig
}

// ethSign produces an eth_sign Safe signature (v = 31/32) over hash
func (s testSigner) ethSign(t *testing.T, hash common.Hash) []byte {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash(hash.Bytes()), s.key)
	require.NoError(t, err)
	sig[64] += 31
	return sig
}

// approvedHashSignature is the pre-validated signature of an owner who approved on-chain
func approvedHashSignature(owner common.Address) []byte {
	sig := make([]byte, SignatureLength)
	copy(sig[12:32], owner.Bytes())
	sig[64] = 1
	return sig
}

// contractSignature builds a single EIP-1271 signature with its dynamic payload
func contractSignature(contract common.Address, payload []byte) []byte {
	sig := make([]byte, SignatureLength)
	copy(sig[12:32], contract.Bytes())
	copy(sig[32:64], common.LeftPadBytes(big.NewInt(SignatureLength).Bytes(), 32))
	sig[64] = 0
	sig = append(sig, common.LeftPadBytes(big.NewInt(int64(len(payload))).Bytes(), 32)...)
	return append(sig, payload...)
}

func newTestSafe(owners ...common.Address) *business.Safe {
	return &business.Safe{
		Address:   common.HexToAddress("0x5aFE3855358E112B5647B952709E6165e1c1eEEe"),
		Owners:    owners,
		Threshold: 2,
		Nonce:     5,
		Version:   "1.3.0",
	}
}

// newTestTransaction returns a transaction at the Safe's current nonce with a correct safeTxHash
func newTestTransaction(t *testing.T, safe *business.Safe) *business.MultisigTransaction {
	t.Helper()
	tx := &business.MultisigTransaction{
		Safe:      safe.Address,
		To:        common.HexToAddress("0x000000000000000000000000000000000000dEaD"),
		Value:     big.NewInt(1_000_000_000_000_000),
		Data:      common.FromHex("0xa9059cbb"),
		Operation: business.OperationCall,
		SafeTxGas: big.NewInt(0),
		BaseGas:   big.NewInt(0),
		GasPrice:  big.NewInt(0),
		Nonce:     safe.Nonce,
	}
	hash, err := NewSafeHashService().TransactionHash(testChainID, safe, tx)
	require.NoError(t, err)
	tx.SafeTxHash = hash
	return tx
}

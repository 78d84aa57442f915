package services

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is the size of the static part of a Safe signature: r (32) | s (32) | v (1)
const SignatureLength = 65

// SignatureScheme is the signing scheme of a Safe signature, selected by its v byte
type SignatureScheme int

const (
	// SignatureSchemeECDSA is a secp256k1 signature over the hash itself (v = 27/28)
	SignatureSchemeECDSA SignatureScheme = iota
	// SignatureSchemeEthSign is a secp256k1 signature over the EIP-191 prefixed hash (v > 30)
	SignatureSchemeEthSign
	// SignatureSchemeApprovedHash means the owner in r approved the hash on-chain (v = 1)
	SignatureSchemeApprovedHash
	// SignatureSchemeContract is an EIP-1271 signature of the contract in r (v = 0)
	SignatureSchemeContract
)

// String returns the transaction service name of the scheme
func (s SignatureScheme) String() string {
	switch s {
	case SignatureSchemeECDSA:
		return "EOA"
	case SignatureSchemeEthSign:
		return "ETH_SIGN"
	case SignatureSchemeApprovedHash:
		return "APPROVED_HASH"
	case SignatureSchemeContract:
		return "CONTRACT_SIGNATURE"
	default:
		return fmt.Sprintf("SignatureScheme(%d)", int(s))
	}
}

// SignatureInfo is a single parsed Safe signature
type SignatureInfo struct {
	Scheme SignatureScheme
	R      common.Hash
	S      common.Hash
	V      byte
	Data   []byte // contract signature payload, empty for other schemes
}

// Bytes returns the static part followed by the contract payload, if any.
// Two signatures are identical iff their Bytes are equal.
func (si *SignatureInfo) Bytes() []byte {
	out := make([]byte, 0, SignatureLength+len(si.Data))
	out = append(out, si.R.Bytes()...)
	out = append(out, si.S.Bytes()...)
	out = append(out, si.V)
	return append(out, si.Data...)
}

// Equal reports whether both signatures carry the same bytes
func (si *SignatureInfo) Equal(other *SignatureInfo) bool {
	return bytes.Equal(si.Bytes(), other.Bytes())
}

// SignatureService parses Safe signatures and recovers their signers.
// It holds no state and is safe for concurrent use.
type SignatureService struct{}

// NewSignatureService creates a new signature service
func NewSignatureService() *SignatureService {
	return &SignatureService{}
}

// ParseSignature parses a single signature. Contract signatures may carry
// their dynamic payload after the static part.
func (s *SignatureService) ParseSignature(signature []byte) (*SignatureInfo, error) {
	infos, err := s.SplitSignatures(signature)
	if err != nil {
		return nil, err
	}
	if len(infos) != 1 {
		return nil, newVerificationError(ErrMalformedHash, fmt.Errorf("expected a single signature, got %d", len(infos)))
	}
	return infos[0], nil
}

// SplitSignatures splits packed signatures as accepted by Safe.checkSignatures:
// a run of 65 byte static parts followed by the dynamic payloads of contract
// signatures, each addressed by the offset stored in its s value.
func (s *SignatureService) SplitSignatures(signatures []byte) ([]*SignatureInfo, error) {
	if len(signatures) < SignatureLength {
		return nil, newVerificationError(ErrMalformedHash, fmt.Errorf("signature too short: %d bytes", len(signatures)))
	}

	staticEnd := len(signatures)
	var infos []*SignatureInfo
	for offset := 0; offset+SignatureLength <= staticEnd; offset += SignatureLength {
		info, err := parseStaticPart(signatures[offset : offset+SignatureLength])
		if err != nil {
			return nil, newVerificationError(ErrMalformedHash, err)
		}
		if info.Scheme == SignatureSchemeContract && len(signatures) > SignatureLength {
			data, dataOffset, err := readDynamicPart(signatures, info.S)
			if err != nil {
				return nil, newVerificationError(ErrMalformedHash, err)
			}
			if dataOffset < staticEnd {
				staticEnd = dataOffset
			}
			info.Data = data
		}
		infos = append(infos, info)
	}

	if len(infos)*SignatureLength != staticEnd {
		return nil, newVerificationError(ErrMalformedHash, fmt.Errorf("invalid signature length: %d bytes", len(signatures)))
	}
	return infos, nil
}

// RecoverAddress returns the address that produced the signature over hash.
// Approved hash and contract signatures name their signer in r; the chain
// validates those, not this service.
func (s *SignatureService) RecoverAddress(hash common.Hash, info *SignatureInfo) (common.Address, error) {
	switch info.Scheme {
	case SignatureSchemeECDSA:
		return ecrecover(hash.Bytes(), info.R, info.S, info.V)
	case SignatureSchemeEthSign:
		return ecrecover(accounts.TextHash(hash.Bytes()), info.R, info.S, info.V-4)
	case SignatureSchemeApprovedHash, SignatureSchemeContract:
		return embeddedAddress(info.R)
	default:
		return common.Address{}, newVerificationError(ErrUnrecoverableAddress, fmt.Errorf("unknown signature scheme %s", info.Scheme))
	}
}

func parseStaticPart(part []byte) (*SignatureInfo, error) {
	info := &SignatureInfo{
		R: common.BytesToHash(part[:32]),
		S: common.BytesToHash(part[32:64]),
		V: part[64],
	}
	switch {
	case info.V == 0:
		info.Scheme = SignatureSchemeContract
	case info.V == 1:
		info.Scheme = SignatureSchemeApprovedHash
	case info.V == 27 || info.V == 28:
		info.Scheme = SignatureSchemeECDSA
	case info.V == 31 || info.V == 32:
		info.Scheme = SignatureSchemeEthSign
	default:
		return nil, fmt.Errorf("invalid signature type v=%d", info.V)
	}
	return info, nil
}

// readDynamicPart reads the length prefixed payload at offset s
func readDynamicPart(signatures []byte, s common.Hash) ([]byte, int, error) {
	offset := new(big.Int).SetBytes(s.Bytes())
	if !offset.IsUint64() || offset.Uint64() > uint64(len(signatures)) {
		return nil, 0, fmt.Errorf("contract signature offset out of bounds: %s", offset)
	}
	start := int(offset.Uint64())
	if start < SignatureLength || start+32 > len(signatures) {
		return nil, 0, fmt.Errorf("contract signature offset out of bounds: %d", start)
	}

	length := new(big.Int).SetBytes(signatures[start : start+32])
	if !length.IsUint64() || length.Uint64() > uint64(len(signatures)-start-32) {
		return nil, 0, errors.New("contract signature length out of bounds")
	}
	end := start + 32 + int(length.Uint64())
	return common.CopyBytes(signatures[start+32 : end]), start, nil
}

func ecrecover(digest []byte, r, s common.Hash, v byte) (common.Address, error) {
	if v != 27 && v != 28 {
		return common.Address{}, newVerificationError(ErrUnrecoverableAddress, fmt.Errorf("invalid recovery id %d", v))
	}

	sig := make([]byte, SignatureLength)
	copy(sig[:32], r.Bytes())
	copy(sig[32:64], s.Bytes())
	sig[64] = v - 27

	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return common.Address{}, newVerificationError(ErrUnrecoverableAddress, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// embeddedAddress reads an address left padded to 32 bytes
func embeddedAddress(word common.Hash) (common.Address, error) {
	for _, b := range word[:12] {
		if b != 0 {
			return common.Address{}, newVerificationError(ErrUnrecoverableAddress, errors.New("signer is not a left padded address"))
		}
	}
	return common.BytesToAddress(word[12:]), nil
}

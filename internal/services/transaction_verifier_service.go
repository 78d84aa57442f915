package services

import (
	"context"
	"errors"
	"time"

	"github.com/cyphera/safe-gateway/internal/interfaces"
	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/types/business"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
)

const (
	operationTransaction    = "transaction"
	operationMessage        = "message"
	operationProposal       = "proposal"
	operationConfirmation   = "confirmation"
	operationAPITransaction = "api_transaction"
)

// TransactionVerifierServiceConfig contains all dependencies needed to create a TransactionVerifierService
type TransactionVerifierServiceConfig struct {
	SafeRepository          interfaces.SafeRepository
	TransactionRepository   interfaces.MultisigTransactionRepository
	ContractTrustRepository interfaces.ContractTrustRepository
	DelegateRepository      interfaces.DelegateRepository
	// Blocklist is loaded once at startup and never changes afterwards
	Blocklist []common.Address
	Metrics   interfaces.VerificationMetrics
	Logger    *zap.Logger
	// Now defaults to time.Now; used for delegate expiry only
	Now func() time.Time
}

// TransactionVerifierService checks that transactions and messages hash to
// what their proposer claims and that every signature over them comes from
// an owner or an active delegate of the Safe
type TransactionVerifierService struct {
	safes         interfaces.SafeRepository
	transactions  interfaces.MultisigTransactionRepository
	contractTrust interfaces.ContractTrustRepository
	delegates     interfaces.DelegateRepository
	hashes        *SafeHashService
	signatures    *SignatureService
	blocklist     map[common.Address]struct{}
	metrics       interfaces.VerificationMetrics
	logger        *zap.Logger
	now           func() time.Time
}

// NewTransactionVerifierService creates a new verifier
func NewTransactionVerifierService(config TransactionVerifierServiceConfig) *TransactionVerifierService {
	if config.Logger == nil {
		config.Logger = logger.Log
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	blocklist := make(map[common.Address]struct{}, len(config.Blocklist))
	for _, address := range config.Blocklist {
		blocklist[address] = struct{}{}
	}

	return &TransactionVerifierService{
		safes:         config.SafeRepository,
		transactions:  config.TransactionRepository,
		contractTrust: config.ContractTrustRepository,
		delegates:     config.DelegateRepository,
		hashes:        NewSafeHashService(),
		signatures:    NewSignatureService(),
		blocklist:     blocklist,
		metrics:       config.Metrics,
		logger:        config.Logger,
		now:           config.Now,
	}
}

// signatureClaim is one signature blob, optionally with the signer the
// caller says produced it
type signatureClaim struct {
	signature []byte
	signer    *common.Address
}

// VerifyTransaction verifies tx and the given signatures against safe.
// Transactions whose nonce the Safe already moved past are accepted as is.
func (s *TransactionVerifierService) VerifyTransaction(ctx context.Context, chainID string, safe *business.Safe, tx *business.MultisigTransaction, signatures [][]byte) error {
	claims := make([]signatureClaim, 0, len(signatures))
	for _, signature := range signatures {
		claims = append(claims, signatureClaim{signature: signature})
	}
	err := s.verifyTransaction(ctx, chainID, safe, tx, claims, nil)
	return s.finish(operationTransaction, chainID, safe.Address, tx.SafeTxHash, err)
}

// VerifyMessage verifies the hash of message and, when given, its signature.
// messageHash and signature are both optional.
func (s *TransactionVerifierService) VerifyMessage(ctx context.Context, chainID string, safe *business.Safe, message business.Message, messageHash *common.Hash, signature []byte) error {
	expected, err := s.hashes.MessageHash(chainID, safe, message)
	if err == nil && messageHash != nil && *messageHash != expected {
		err = withMessage(ErrHashMismatch, "Invalid messageHash", nil)
	}
	if err == nil && len(signature) > 0 {
		err = s.verifySignatures(ctx, chainID, safe, expected, []signatureClaim{{signature: signature}}, nil)
	}
	return s.finish(operationMessage, chainID, safe.Address, expected, err)
}

// VerifyProposal verifies a new transaction submitted by proposal.Sender.
// The signature, when present, must be the sender's.
func (s *TransactionVerifierService) VerifyProposal(ctx context.Context, chainID string, proposal *business.TransactionProposal) error {
	tx := &proposal.Transaction
	safe, err := s.safes.GetSafe(ctx, chainID, tx.Safe)
	if err != nil {
		return s.finish(operationProposal, chainID, tx.Safe, tx.SafeTxHash, &RepositoryError{Op: "get Safe", Err: err})
	}

	var claims []signatureClaim
	if len(proposal.Signature) > 0 {
		sender := proposal.Sender
		claims = append(claims, signatureClaim{signature: proposal.Signature, signer: &sender})
	}
	err = s.verifyTransaction(ctx, chainID, safe, tx, claims, nil)
	return s.finish(operationProposal, chainID, safe.Address, tx.SafeTxHash, err)
}

// VerifyConfirmation verifies a new signature for an already proposed transaction
func (s *TransactionVerifierService) VerifyConfirmation(ctx context.Context, chainID string, safeTxHash common.Hash, signature []byte) error {
	tx, err := s.transactions.GetMultisigTransaction(ctx, chainID, safeTxHash)
	if err != nil {
		return s.finish(operationConfirmation, chainID, common.Address{}, safeTxHash, &RepositoryError{Op: "get multisig transaction", Err: err})
	}
	safe, err := s.safes.GetSafe(ctx, chainID, tx.Safe)
	if err != nil {
		return s.finish(operationConfirmation, chainID, tx.Safe, safeTxHash, &RepositoryError{Op: "get Safe", Err: err})
	}

	err = s.verifyTransaction(ctx, chainID, safe, tx, []signatureClaim{{signature: signature}}, tx.Confirmations)
	return s.finish(operationConfirmation, chainID, safe.Address, safeTxHash, err)
}

// VerifyAPITransaction verifies a transaction served by the indexer together
// with all of its confirmations
func (s *TransactionVerifierService) VerifyAPITransaction(ctx context.Context, chainID string, safe *business.Safe, tx *business.MultisigTransaction) error {
	err := s.verifyAPITransaction(ctx, chainID, safe, tx)
	return s.finish(operationAPITransaction, chainID, safe.Address, tx.SafeTxHash, err)
}

func (s *TransactionVerifierService) verifyAPITransaction(ctx context.Context, chainID string, safe *business.Safe, tx *business.MultisigTransaction) error {
	// Executed nonces are skipped before the indexed confirmations are inspected
	if safe.Nonce > tx.Nonce {
		return s.verifyTransaction(ctx, chainID, safe, tx, nil, nil)
	}

	owners := make(map[common.Address]struct{}, len(tx.Confirmations))
	claims := make([]signatureClaim, 0, len(tx.Confirmations))
	for _, confirmation := range tx.Confirmations {
		if _, ok := owners[confirmation.Owner]; ok {
			return ErrDuplicateOwners
		}
		owners[confirmation.Owner] = struct{}{}

		// On-chain approvals indexed without a signature have nothing to check
		if len(confirmation.Signature) == 0 {
			continue
		}
		owner := confirmation.Owner
		claims = append(claims, signatureClaim{signature: confirmation.Signature, signer: &owner})
	}
	return s.verifyTransaction(ctx, chainID, safe, tx, claims, nil)
}

func (s *TransactionVerifierService) verifyTransaction(ctx context.Context, chainID string, safe *business.Safe, tx *business.MultisigTransaction, claims []signatureClaim, existing []business.Confirmation) error {
	if safe.Nonce > tx.Nonce {
		s.logger.Debug("Skipping verification of executed nonce",
			zap.String("chain_id", chainID),
			zap.String("safe", safe.Address.Hex()),
			zap.Uint64("safe_nonce", safe.Nonce),
			zap.Uint64("tx_nonce", tx.Nonce),
		)
		return nil
	}

	expected, err := s.hashes.TransactionHash(chainID, safe, tx)
	if err != nil {
		return err
	}
	if expected != tx.SafeTxHash {
		return ErrHashMismatch
	}

	if tx.Operation == business.OperationDelegateCall {
		if err := s.checkDelegateCall(ctx, chainID, tx.To); err != nil {
			return err
		}
	}

	if len(claims) == 0 {
		return nil
	}
	return s.verifySignatures(ctx, chainID, safe, expected, claims, existing)
}

// checkDelegateCall fails closed: a lookup error counts as untrusted
func (s *TransactionVerifierService) checkDelegateCall(ctx context.Context, chainID string, to common.Address) error {
	trusted, err := s.contractTrust.IsTrustedForDelegateCall(ctx, chainID, to)
	if err != nil {
		s.logger.Warn("Delegate call trust lookup failed",
			zap.String("chain_id", chainID),
			zap.String("to", to.Hex()),
			zap.Error(err),
		)
		return newVerificationError(ErrDelegateCallDisabled, err)
	}
	if !trusted {
		return ErrDelegateCallDisabled
	}
	return nil
}

type parsedClaim struct {
	infos  []*SignatureInfo
	signer *common.Address
}

// verifySignatures authorizes every signature in claims against hash.
// existing holds confirmations already stored for the same hash.
func (s *TransactionVerifierService) verifySignatures(ctx context.Context, chainID string, safe *business.Safe, hash common.Hash, claims []signatureClaim, existing []business.Confirmation) error {
	parsed, err := s.parseClaims(claims, existing)
	if err != nil {
		return err
	}

	signers := make(map[common.Address]struct{}, len(existing))
	for _, confirmation := range existing {
		signers[confirmation.Owner] = struct{}{}
	}

	var delegates map[common.Address]struct{}
	for _, claim := range parsed {
		declaredFound := claim.signer == nil
		for _, info := range claim.infos {
			if info.Scheme == SignatureSchemeEthSign {
				return ErrEthSignDisabled
			}

			signer, err := s.signatures.RecoverAddress(hash, info)
			if err != nil {
				return err
			}
			if _, ok := signers[signer]; ok {
				return ErrDuplicateOwners
			}
			signers[signer] = struct{}{}

			if _, blocked := s.blocklist[signer]; blocked {
				s.logger.Warn("Signature from blocked address",
					zap.String("chain_id", chainID),
					zap.String("safe", safe.Address.Hex()),
					zap.String("signer", signer.Hex()),
				)
				return ErrBlockedAddress
			}

			if claim.signer != nil && *claim.signer == signer {
				declaredFound = true
			}

			if safe.IsOwner(signer) {
				continue
			}

			// Delegates are only fetched once no owner matched
			if delegates == nil {
				delegates, err = s.activeDelegates(ctx, chainID, safe)
				if err != nil {
					return err
				}
			}
			if _, ok := delegates[signer]; !ok {
				return ErrInvalidSignature
			}
		}
		if !declaredFound {
			return newVerificationError(ErrInvalidSignature, errors.New("signature does not belong to the declared signer"))
		}
	}
	return nil
}

// parseClaims splits every claim and rejects repeated signature bytes
func (s *TransactionVerifierService) parseClaims(claims []signatureClaim, existing []business.Confirmation) ([]parsedClaim, error) {
	var seen []*SignatureInfo
	for _, confirmation := range existing {
		if len(confirmation.Signature) == 0 {
			continue
		}
		infos, err := s.signatures.SplitSignatures(confirmation.Signature)
		if err != nil {
			// Stored confirmations are the indexer's concern, only new ones are checked
			continue
		}
		seen = append(seen, infos...)
	}

	parsed := make([]parsedClaim, 0, len(claims))
	for _, claim := range claims {
		infos, err := s.signatures.SplitSignatures(claim.signature)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			for _, other := range seen {
				if info.Equal(other) {
					return nil, ErrDuplicateSignatures
				}
			}
			seen = append(seen, info)
		}
		parsed = append(parsed, parsedClaim{infos: infos, signer: claim.signer})
	}
	return parsed, nil
}

// activeDelegates returns the delegates allowed to sign for safe: not expired,
// scoped to this Safe (or to every Safe) and delegated by a current owner
func (s *TransactionVerifierService) activeDelegates(ctx context.Context, chainID string, safe *business.Safe) (map[common.Address]struct{}, error) {
	delegates, err := s.delegates.GetDelegates(ctx, chainID, safe.Address)
	if err != nil {
		return nil, &RepositoryError{Op: "get delegates", Err: err}
	}

	now := s.now()
	active := make(map[common.Address]struct{}, len(delegates))
	for _, delegate := range delegates {
		if !delegate.IsActive(now) {
			continue
		}
		if delegate.Safe != nil && *delegate.Safe != safe.Address {
			continue
		}
		if !safe.IsOwner(delegate.Delegator) {
			continue
		}
		active[delegate.Delegate] = struct{}{}
	}
	return active, nil
}

// finish logs and records the outcome, returning err unchanged
func (s *TransactionVerifierService) finish(operation, chainID string, safeAddress common.Address, hash common.Hash, err error) error {
	if s.metrics != nil {
		s.metrics.RecordVerification(operation, VerificationOutcome(err))
	}
	if err != nil {
		s.logger.Warn("Verification failed",
			zap.String("operation", operation),
			zap.String("chain_id", chainID),
			zap.String("safe", safeAddress.Hex()),
			zap.String("hash", hash.Hex()),
			zap.String("outcome", VerificationOutcome(err)),
			zap.Error(err),
		)
	}
	return err
}

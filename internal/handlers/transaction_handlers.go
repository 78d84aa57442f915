package handlers

import (
	"net/http"
	"time"

	"github.com/cyphera/safe-gateway/internal/constants"
	"github.com/cyphera/safe-gateway/internal/interfaces"
	"github.com/cyphera/safe-gateway/internal/middleware"
	"github.com/cyphera/safe-gateway/internal/types/business"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// TransactionHandlerConfig contains all dependencies needed to create a TransactionHandler
type TransactionHandlerConfig struct {
	Verifier     interfaces.TransactionVerifier
	StatusMapper interfaces.TransactionStatusMapper
	Safes        interfaces.SafeRepository
	Transactions interfaces.MultisigTransactionRepository
	Writer       interfaces.TransactionServiceWriter
	Now          func() time.Time
}

// TransactionHandler serves multisig transaction proposals, confirmations and reads
type TransactionHandler struct {
	verifier     interfaces.TransactionVerifier
	statusMapper interfaces.TransactionStatusMapper
	safes        interfaces.SafeRepository
	transactions interfaces.MultisigTransactionRepository
	writer       interfaces.TransactionServiceWriter
	now          func() time.Time
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(config TransactionHandlerConfig) *TransactionHandler {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &TransactionHandler{
		verifier:     config.Verifier,
		statusMapper: config.StatusMapper,
		safes:        config.Safes,
		transactions: config.Transactions,
		writer:       config.Writer,
		now:          config.Now,
	}
}

// ProposeTransaction verifies a new transaction proposal and forwards it to the transaction service
// POST /v1/chains/:chainId/safes/:safeAddress/transactions
func (h *TransactionHandler) ProposeTransaction(c *gin.Context) {
	chainID, ok := parseChainID(c)
	if !ok {
		return
	}
	safeAddress, ok := parseAddressParam(c, "safeAddress")
	if !ok {
		return
	}

	var req ProposeTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	proposal, err := req.ToBusiness(safeAddress)
	if err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.verifier.VerifyProposal(ctx, chainID, proposal); err != nil {
		handleServiceError(c, err, constants.SafeNotFound)
		return
	}
	if err := h.writer.ProposeTransaction(ctx, chainID, proposal); err != nil {
		handleServiceError(c, err, constants.SafeNotFound)
		return
	}

	middleware.LogWithCorrelationID(ctx).Info("Transaction proposed",
		zap.String("chain_id", chainID),
		zap.String("safe", safeAddress.Hex()),
		zap.String("safe_tx_hash", proposal.Transaction.SafeTxHash.Hex()),
		zap.String("sender", proposal.Sender.Hex()),
	)
	sendSuccess(c, http.StatusCreated, ProposeTransactionResponse{SafeTxHash: proposal.Transaction.SafeTxHash})
}

// AddConfirmation verifies a new signature over an indexed transaction and forwards it
// POST /v1/chains/:chainId/multisig-transactions/:safeTxHash/confirmations
func (h *TransactionHandler) AddConfirmation(c *gin.Context) {
	chainID, ok := parseChainID(c)
	if !ok {
		return
	}
	safeTxHash, ok := parseSafeTxHashParam(c)
	if !ok {
		return
	}

	var req AddConfirmationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.verifier.VerifyConfirmation(ctx, chainID, safeTxHash, req.Signature); err != nil {
		handleServiceError(c, err, constants.TransactionNotFound)
		return
	}
	if err := h.writer.AddConfirmation(ctx, chainID, safeTxHash, req.Signature); err != nil {
		handleServiceError(c, err, constants.TransactionNotFound)
		return
	}

	sendSuccess(c, http.StatusCreated, SuccessResponse{Message: "Confirmation added"})
}

// GetMultisigTransaction returns an indexed transaction after checking its
// hash and confirmations, together with its status
// GET /v1/chains/:chainId/safes/:safeAddress/multisig-transactions/:safeTxHash
func (h *TransactionHandler) GetMultisigTransaction(c *gin.Context) {
	chainID, ok := parseChainID(c)
	if !ok {
		return
	}
	safeAddress, ok := parseAddressParam(c, "safeAddress")
	if !ok {
		return
	}
	safeTxHash, ok := parseSafeTxHashParam(c)
	if !ok {
		return
	}

	var (
		safe *business.Safe
		tx   *business.MultisigTransaction
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		safe, err = h.safes.GetSafe(gctx, chainID, safeAddress)
		return errors.Wrap(err, "failed to get safe")
	})
	g.Go(func() error {
		var err error
		tx, err = h.transactions.GetMultisigTransaction(gctx, chainID, safeTxHash)
		return errors.Wrap(err, "failed to get transaction")
	})
	if err := g.Wait(); err != nil {
		handleServiceError(c, err, constants.TransactionNotFound)
		return
	}

	if tx.Safe != safe.Address {
		sendError(c, http.StatusNotFound, constants.TransactionNotFound,
			errors.Errorf("transaction %s belongs to safe %s", safeTxHash.Hex(), tx.Safe.Hex()))
		return
	}

	ctx := c.Request.Context()
	if err := h.verifier.VerifyAPITransaction(ctx, chainID, safe, tx); err != nil {
		handleServiceError(c, err, constants.TransactionNotFound)
		return
	}

	status := h.statusMapper.MapStatus(tx, safe, h.now())
	sendSuccess(c, http.StatusOK, toMultisigTransactionResponse(tx, safe, status))
}

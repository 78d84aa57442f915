package handlers

import (
	"net/http"

	"github.com/cyphera/safe-gateway/internal/constants"
	"github.com/cyphera/safe-gateway/internal/interfaces"
	"github.com/cyphera/safe-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MessageHandler serves off-chain Safe messages
type MessageHandler struct {
	verifier interfaces.TransactionVerifier
	safes    interfaces.SafeRepository
	writer   interfaces.TransactionServiceWriter
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(verifier interfaces.TransactionVerifier, safes interfaces.SafeRepository, writer interfaces.TransactionServiceWriter) *MessageHandler {
	return &MessageHandler{
		verifier: verifier,
		safes:    safes,
		writer:   writer,
	}
}

// CreateMessage verifies the proposer's signature over a message and forwards it
// POST /v1/chains/:chainId/safes/:safeAddress/messages
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	chainID, ok := parseChainID(c)
	if !ok {
		return
	}
	safeAddress, ok := parseAddressParam(c, "safeAddress")
	if !ok {
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, constants.InvalidRequestBody, err)
		return
	}
	if req.Message.Raw == nil && req.Message.TypedData == nil {
		sendError(c, http.StatusBadRequest, constants.InvalidMessage, errors.New("message is required"))
		return
	}

	ctx := c.Request.Context()
	safe, err := h.safes.GetSafe(ctx, chainID, safeAddress)
	if err != nil {
		handleServiceError(c, err, constants.SafeNotFound)
		return
	}
	if err := h.verifier.VerifyMessage(ctx, chainID, safe, req.Message, nil, req.Signature); err != nil {
		handleServiceError(c, err, constants.SafeNotFound)
		return
	}
	if err := h.writer.CreateMessage(ctx, chainID, safeAddress, req.Message, req.Signature); err != nil {
		handleServiceError(c, err, constants.SafeNotFound)
		return
	}

	middleware.LogWithCorrelationID(ctx).Info("Message created",
		zap.String("chain_id", chainID),
		zap.String("safe", safeAddress.Hex()),
		zap.Bool("typed_data", req.Message.IsTypedData()),
	)
	sendSuccess(c, http.StatusCreated, SuccessResponse{Message: "Message created"})
}

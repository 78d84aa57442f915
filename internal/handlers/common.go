package handlers

import (
	"errors"
	"net/http"
	"strconv"

	httpclient "github.com/cyphera/safe-gateway/internal/client/http"
	"github.com/cyphera/safe-gateway/internal/client/txservice"
	"github.com/cyphera/safe-gateway/internal/constants"
	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/middleware"
	"github.com/cyphera/safe-gateway/internal/services"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error         string `json:"error"`
	Code          string `json:"code,omitempty"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError logs the error with the request's correlation ID and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	sendErrorWithCode(c, statusCode, message, "", err)
}

func sendErrorWithCode(c *gin.Context, statusCode int, message, code string, err error) {
	correlationID := middleware.GetCorrelationID(c)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	}
	if code != "" {
		fields = append(fields, zap.String("code", code))
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Warn(message, fields...)
	}

	c.JSON(statusCode, ErrorResponse{
		Error:         message,
		Code:          code,
		CorrelationID: correlationID,
	})
}

// handleServiceError maps verifier and transaction service errors to HTTP responses
func handleServiceError(c *gin.Context, err error, notFoundMsg string) {
	if err == nil {
		return
	}

	var verr *services.VerificationError
	var httpErr *httpclient.HTTPError
	switch {
	case errors.As(err, &verr):
		sendErrorWithCode(c, http.StatusUnprocessableEntity, verr.Message, string(verr.Code), err)
	case errors.Is(err, txservice.ErrNotFound):
		sendError(c, http.StatusNotFound, notFoundMsg, err)
	case errors.Is(err, txservice.ErrUnsupportedChain):
		sendError(c, http.StatusBadRequest, constants.UnsupportedChain, err)
	case errors.As(err, &httpErr) && httpErr.StatusCode < http.StatusInternalServerError:
		// The transaction service rejected a forwarded write
		sendError(c, http.StatusUnprocessableEntity, constants.UpstreamRejected, err)
	case isRepositoryError(err), errors.As(err, &httpErr):
		sendError(c, http.StatusBadGateway, constants.UpstreamError, err)
	default:
		sendError(c, http.StatusInternalServerError, constants.InternalServerError, err)
	}
}

func isRepositoryError(err error) bool {
	var rerr *services.RepositoryError
	return errors.As(err, &rerr)
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// parseChainID reads the :chainId path parameter, a positive decimal integer
func parseChainID(c *gin.Context) (string, bool) {
	chainID := c.Param("chainId")
	id, err := strconv.ParseUint(chainID, 10, 64)
	if err != nil || id == 0 {
		sendError(c, http.StatusBadRequest, constants.InvalidChainID, err)
		return "", false
	}
	return strconv.FormatUint(id, 10), true
}

// parseAddressParam reads a hex address path parameter
func parseAddressParam(c *gin.Context, name string) (common.Address, bool) {
	value := c.Param(name)
	if !common.IsHexAddress(value) {
		sendError(c, http.StatusBadRequest, constants.InvalidAddress, errors.New("invalid address: "+value))
		return common.Address{}, false
	}
	return common.HexToAddress(value), true
}

// parseSafeTxHashParam reads the :safeTxHash path parameter, a 0x prefixed 32 byte hex string
func parseSafeTxHashParam(c *gin.Context) (common.Hash, bool) {
	value := c.Param("safeTxHash")
	raw, err := hexutil.Decode(value)
	if err != nil || len(raw) != common.HashLength {
		if err == nil {
			err = errors.New("safeTxHash must be 32 bytes")
		}
		sendError(c, http.StatusBadRequest, constants.InvalidSafeTxHash, err)
		return common.Hash{}, false
	}
	return common.BytesToHash(raw), true
}

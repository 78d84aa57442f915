package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpclient "github.com/cyphera/safe-gateway/internal/client/http"
	"github.com/cyphera/safe-gateway/internal/client/txservice"
	"github.com/cyphera/safe-gateway/internal/constants"
	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/middleware"
	"github.com/cyphera/safe-gateway/internal/mocks"
	"github.com/cyphera/safe-gateway/internal/services"
	"github.com/cyphera/safe-gateway/internal/types/business"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

var (
	testSafeAddress = common.HexToAddress("0x5aFE3855358E112B5647B952709E6165e1c1eEEe")
	testSafeTxHash  = common.HexToHash("0x6619dab5401503f2735256e12b898e69eb701d6a7e0d07abf1be4bb8aebfba29")
	testOwner       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testNow         = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
)

type handlerFixture struct {
	verifier     *mocks.MockTransactionVerifier
	statusMapper *mocks.MockTransactionStatusMapper
	safes        *mocks.MockSafeRepository
	transactions *mocks.MockMultisigTransactionRepository
	writer       *mocks.MockTransactionServiceWriter
	router       *gin.Engine
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	ctrl := gomock.NewController(t)
	f := &handlerFixture{
		verifier:     mocks.NewMockTransactionVerifier(ctrl),
		statusMapper: mocks.NewMockTransactionStatusMapper(ctrl),
		safes:        mocks.NewMockSafeRepository(ctrl),
		transactions: mocks.NewMockMultisigTransactionRepository(ctrl),
		writer:       mocks.NewMockTransactionServiceWriter(ctrl),
	}

	transactionHandler := NewTransactionHandler(TransactionHandlerConfig{
		Verifier:     f.verifier,
		StatusMapper: f.statusMapper,
		Safes:        f.safes,
		Transactions: f.transactions,
		Writer:       f.writer,
		Now:          func() time.Time { return testNow },
	})
	messageHandler := NewMessageHandler(f.verifier, f.safes, f.writer)

	router := gin.New()
	router.Use(middleware.CorrelationIDMiddleware())
	chains := router.Group("/v1/chains/:chainId")
	chains.POST("/safes/:safeAddress/transactions", transactionHandler.ProposeTransaction)
	chains.GET("/safes/:safeAddress/multisig-transactions/:safeTxHash", transactionHandler.GetMultisigTransaction)
	chains.POST("/safes/:safeAddress/messages", messageHandler.CreateMessage)
	chains.POST("/multisig-transactions/:safeTxHash/confirmations", transactionHandler.AddConfirmation)
	f.router = router
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func testSafe() *business.Safe {
	return &business.Safe{
		Address:   testSafeAddress,
		Owners:    []common.Address{testOwner},
		Threshold: 1,
		Nonce:     3,
		Version:   "1.3.0",
	}
}

func testTransaction() *business.MultisigTransaction {
	return &business.MultisigTransaction{
		Safe:       testSafeAddress,
		To:         common.HexToAddress("0x2222222222222222222222222222222222222222"),
		Value:      big.NewInt(1000),
		SafeTxGas:  new(big.Int),
		BaseGas:    new(big.Int),
		GasPrice:   new(big.Int),
		Nonce:      3,
		SafeTxHash: testSafeTxHash,
		Confirmations: []business.Confirmation{
			{Owner: testOwner, Signature: []byte{0x01}, SignatureType: "EOA", SubmissionDate: testNow.Add(-time.Hour)},
		},
		SubmissionDate: testNow.Add(-time.Hour),
		Modified:       testNow.Add(-time.Hour),
	}
}

func proposeBody() map[string]interface{} {
	return map[string]interface{}{
		"to":         "0x2222222222222222222222222222222222222222",
		"value":      "1000",
		"data":       "0xa9059cbb",
		"operation":  0,
		"safeTxGas":  0,
		"baseGas":    "0",
		"gasPrice":   "0",
		"nonce":      "3",
		"safeTxHash": testSafeTxHash.Hex(),
		"sender":     testOwner.Hex(),
		"signature":  "0x" + string(bytes.Repeat([]byte("ab"), 65)),
		"origin":     "test",
	}
}

func TestTransactionHandler_ProposeTransaction(t *testing.T) {
	path := "/v1/chains/1/safes/" + testSafeAddress.Hex() + "/transactions"

	tests := []struct {
		name           string
		path           string
		body           interface{}
		setupMocks     func(f *handlerFixture)
		expectedStatus int
		expectedError  string
		expectedCode   string
	}{
		{
			name: "forwards a verified proposal",
			path: path,
			body: proposeBody(),
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().
					VerifyProposal(gomock.Any(), "1", gomock.Any()).
					DoAndReturn(func(_ interface{}, _ string, proposal *business.TransactionProposal) error {
						assert.Equal(t, testSafeAddress, proposal.Transaction.Safe)
						assert.Equal(t, uint64(3), proposal.Transaction.Nonce)
						assert.Equal(t, big.NewInt(1000), proposal.Transaction.Value)
						assert.Equal(t, []byte{0xa9, 0x05, 0x9c, 0xbb}, []byte(proposal.Transaction.Data))
						assert.Equal(t, testOwner, proposal.Sender)
						assert.Len(t, proposal.Signature, 65)
						return nil
					})
				f.writer.EXPECT().ProposeTransaction(gomock.Any(), "1", gomock.Any()).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rejects an invalid chain id",
			path:           "/v1/chains/mainnet/safes/" + testSafeAddress.Hex() + "/transactions",
			body:           proposeBody(),
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidChainID,
		},
		{
			name:           "rejects an invalid safe address",
			path:           "/v1/chains/1/safes/0x1234/transactions",
			body:           proposeBody(),
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidAddress,
		},
		{
			name:           "rejects malformed JSON",
			path:           path,
			body:           "{not json",
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidRequestBody,
		},
		{
			name: "rejects an unknown operation",
			path: path,
			body: func() map[string]interface{} {
				body := proposeBody()
				body["operation"] = 2
				return body
			}(),
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidRequestBody,
		},
		{
			name: "rejects a negative value",
			path: path,
			body: func() map[string]interface{} {
				body := proposeBody()
				body["value"] = "-1"
				return body
			}(),
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidRequestBody,
		},
		{
			name: "maps a verification error to 422 without forwarding",
			path: path,
			body: proposeBody(),
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyProposal(gomock.Any(), "1", gomock.Any()).Return(services.ErrHashMismatch)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  services.ErrHashMismatch.Message,
			expectedCode:   string(services.CodeHashMismatch),
		},
		{
			name: "maps an unknown safe to 404",
			path: path,
			body: proposeBody(),
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyProposal(gomock.Any(), "1", gomock.Any()).
					Return(&services.RepositoryError{Op: "get Safe", Err: txservice.ErrNotFound})
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  constants.SafeNotFound,
		},
		{
			name: "maps an upstream failure to 502",
			path: path,
			body: proposeBody(),
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyProposal(gomock.Any(), "1", gomock.Any()).
					Return(&services.RepositoryError{Op: "get Safe", Err: errors.New("connection refused")})
			},
			expectedStatus: http.StatusBadGateway,
			expectedError:  constants.UpstreamError,
		},
		{
			name: "maps a rejected forward to 422",
			path: path,
			body: proposeBody(),
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyProposal(gomock.Any(), "1", gomock.Any()).Return(nil)
				f.writer.EXPECT().ProposeTransaction(gomock.Any(), "1", gomock.Any()).
					Return(&httpclient.HTTPError{StatusCode: http.StatusBadRequest, Body: `{"nonce":["already executed"]}`})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  constants.UpstreamRejected,
		},
		{
			name: "maps an unsupported chain to 400",
			path: "/v1/chains/999/safes/" + testSafeAddress.Hex() + "/transactions",
			body: proposeBody(),
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyProposal(gomock.Any(), "999", gomock.Any()).
					Return(&services.RepositoryError{Op: "get Safe", Err: txservice.ErrUnsupportedChain})
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.UnsupportedChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			tt.setupMocks(f)

			w := f.do(t, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError == "" {
				var response ProposeTransactionResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				assert.Equal(t, testSafeTxHash, response.SafeTxHash)
				return
			}
			response := decodeError(t, w)
			assert.Equal(t, tt.expectedError, response.Error)
			assert.Equal(t, tt.expectedCode, response.Code)
			assert.NotEmpty(t, response.CorrelationID)
		})
	}
}

func TestTransactionHandler_AddConfirmation(t *testing.T) {
	signature := "0x" + string(bytes.Repeat([]byte("cd"), 65))
	path := "/v1/chains/1/multisig-transactions/" + testSafeTxHash.Hex() + "/confirmations"

	tests := []struct {
		name           string
		path           string
		body           interface{}
		setupMocks     func(f *handlerFixture)
		expectedStatus int
		expectedError  string
	}{
		{
			name: "forwards a verified confirmation",
			path: path,
			body: map[string]string{"signature": signature},
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyConfirmation(gomock.Any(), "1", testSafeTxHash, gomock.Len(65)).Return(nil)
				f.writer.EXPECT().AddConfirmation(gomock.Any(), "1", testSafeTxHash, gomock.Len(65)).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rejects a short safeTxHash",
			path:           "/v1/chains/1/multisig-transactions/0x1234/confirmations",
			body:           map[string]string{"signature": signature},
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidSafeTxHash,
		},
		{
			name:           "requires a signature",
			path:           path,
			body:           map[string]string{},
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidRequestBody,
		},
		{
			name:           "rejects a signature without 0x prefix",
			path:           path,
			body:           map[string]string{"signature": "abcd"},
			setupMocks:     func(f *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
			expectedError:  constants.InvalidRequestBody,
		},
		{
			name: "maps a missing transaction to 404",
			path: path,
			body: map[string]string{"signature": signature},
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyConfirmation(gomock.Any(), "1", testSafeTxHash, gomock.Any()).
					Return(&services.RepositoryError{Op: "get multisig transaction", Err: txservice.ErrNotFound})
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  constants.TransactionNotFound,
		},
		{
			name: "maps a non owner signature to 422",
			path: path,
			body: map[string]string{"signature": signature},
			setupMocks: func(f *handlerFixture) {
				f.verifier.EXPECT().VerifyConfirmation(gomock.Any(), "1", testSafeTxHash, gomock.Any()).
					Return(services.ErrInvalidSignature)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  services.ErrInvalidSignature.Message,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			tt.setupMocks(f)

			w := f.do(t, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, decodeError(t, w).Error)
			}
		})
	}
}

func TestTransactionHandler_GetMultisigTransaction(t *testing.T) {
	path := "/v1/chains/1/safes/" + testSafeAddress.Hex() + "/multisig-transactions/" + testSafeTxHash.Hex()

	t.Run("returns the verified transaction with its status", func(t *testing.T) {
		f := newHandlerFixture(t)
		safe, tx := testSafe(), testTransaction()

		f.safes.EXPECT().GetSafe(gomock.Any(), "1", testSafeAddress).Return(safe, nil)
		f.transactions.EXPECT().GetMultisigTransaction(gomock.Any(), "1", testSafeTxHash).Return(tx, nil)
		f.verifier.EXPECT().VerifyAPITransaction(gomock.Any(), "1", safe, tx).Return(nil)
		f.statusMapper.EXPECT().MapStatus(tx, safe, testNow).Return(business.TransactionStatusAwaitingExecution)

		w := f.do(t, http.MethodGet, path, nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response MultisigTransactionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, business.TransactionStatusAwaitingExecution, response.Status)
		assert.Equal(t, testSafeTxHash, response.SafeTxHash)
		assert.Equal(t, "1000", response.Value)
		assert.Equal(t, uint32(1), response.ConfirmationsRequired)
		assert.Nil(t, response.Data)
		require.Len(t, response.Confirmations, 1)
		assert.Equal(t, testOwner, response.Confirmations[0].Owner)
	})

	t.Run("rejects a transaction whose confirmations fail verification", func(t *testing.T) {
		f := newHandlerFixture(t)
		safe, tx := testSafe(), testTransaction()

		f.safes.EXPECT().GetSafe(gomock.Any(), "1", testSafeAddress).Return(safe, nil)
		f.transactions.EXPECT().GetMultisigTransaction(gomock.Any(), "1", testSafeTxHash).Return(tx, nil)
		f.verifier.EXPECT().VerifyAPITransaction(gomock.Any(), "1", safe, tx).Return(services.ErrDuplicateOwners)

		w := f.do(t, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		response := decodeError(t, w)
		assert.Equal(t, services.ErrDuplicateOwners.Message, response.Error)
		assert.Equal(t, string(services.CodeDuplicateOwners), response.Code)
	})

	t.Run("reports a transaction of another safe as not found", func(t *testing.T) {
		f := newHandlerFixture(t)
		tx := testTransaction()
		tx.Safe = common.HexToAddress("0x3333333333333333333333333333333333333333")

		f.safes.EXPECT().GetSafe(gomock.Any(), "1", testSafeAddress).Return(testSafe(), nil)
		f.transactions.EXPECT().GetMultisigTransaction(gomock.Any(), "1", testSafeTxHash).Return(tx, nil)

		w := f.do(t, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, constants.TransactionNotFound, decodeError(t, w).Error)
	})

	t.Run("maps a missing transaction to 404", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.safes.EXPECT().GetSafe(gomock.Any(), "1", testSafeAddress).Return(testSafe(), nil).AnyTimes()
		f.transactions.EXPECT().GetMultisigTransaction(gomock.Any(), "1", testSafeTxHash).
			Return(nil, txservice.ErrNotFound)

		w := f.do(t, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, constants.TransactionNotFound, decodeError(t, w).Error)
	})

	t.Run("maps an upstream failure to 502", func(t *testing.T) {
		f := newHandlerFixture(t)

		f.safes.EXPECT().GetSafe(gomock.Any(), "1", testSafeAddress).
			Return(nil, &httpclient.HTTPError{StatusCode: http.StatusServiceUnavailable})
		f.transactions.EXPECT().GetMultisigTransaction(gomock.Any(), "1", testSafeTxHash).
			Return(testTransaction(), nil).AnyTimes()

		w := f.do(t, http.MethodGet, path, nil)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, constants.UpstreamError, decodeError(t, w).Error)
	})
}

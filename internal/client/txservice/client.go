package txservice

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	httpclient "github.com/cyphera/safe-gateway/internal/client/http"
	"github.com/cyphera/safe-gateway/internal/interfaces"
	"github.com/cyphera/safe-gateway/internal/logger"
	"github.com/cyphera/safe-gateway/internal/types/business"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const delegatesPageSize = 100

var (
	// ErrNotFound is returned when the transaction service has no such resource
	ErrNotFound = errors.New("resource not found in transaction service")
	// ErrUnsupportedChain is returned for chains without a configured transaction service
	ErrUnsupportedChain = errors.New("unsupported chain")
)

var (
	_ interfaces.SafeRepository                = (*Client)(nil)
	_ interfaces.MultisigTransactionRepository = (*Client)(nil)
	_ interfaces.DelegateRepository            = (*Client)(nil)
	_ interfaces.TransactionServiceWriter      = (*Client)(nil)
)

// Config configures the transaction service client
type Config struct {
	// BaseURLs maps a chain id to the transaction service serving it
	BaseURLs    map[string]string
	APIKey      string
	Timeout     time.Duration
	RetryConfig *httpclient.RetryConfig
	Metrics     httpclient.MetricsCollector
	Logger      *zap.Logger
}

// Client talks to the Safe Transaction Service of every configured chain.
// It is the read model for Safes, transactions and delegates, and forwards
// verified writes.
type Client struct {
	clients map[string]*httpclient.HTTPClient
	logger  *zap.Logger
}

// NewClient creates one HTTP client per configured chain
func NewClient(cfg Config) *Client {
	if cfg.Logger == nil {
		cfg.Logger = logger.Log
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryConfig == nil {
		cfg.RetryConfig = httpclient.DefaultRetryConfig()
	}

	clients := make(map[string]*httpclient.HTTPClient, len(cfg.BaseURLs))
	for chainID, baseURL := range cfg.BaseURLs {
		options := []httpclient.ClientOption{
			httpclient.WithBaseURL(baseURL),
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithRetryConfig(cfg.RetryConfig),
			httpclient.WithMetricsCollector(cfg.Metrics),
			httpclient.WithMiddleware(httpclient.LoggingMiddleware()),
		}
		if cfg.APIKey != "" {
			options = append(options, httpclient.WithDefaultHeader("Authorization", "Bearer "+cfg.APIKey))
		}
		clients[chainID] = httpclient.NewHTTPClient(options...)
	}

	return &Client{clients: clients, logger: cfg.Logger}
}

func (c *Client) forChain(chainID string) (*httpclient.HTTPClient, error) {
	client, ok := c.clients[chainID]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedChain, "chain %s", chainID)
	}
	return client, nil
}

// GetSafe returns the Safe at address
func (c *Client) GetSafe(ctx context.Context, chainID string, address common.Address) (*business.Safe, error) {
	client, err := c.forChain(chainID)
	if err != nil {
		return nil, err
	}

	var response SafeResponse
	if err := c.getJSON(ctx, client, fmt.Sprintf("/api/v1/safes/%s/", address.Hex()), &response); err != nil {
		return nil, errors.Wrapf(err, "failed to get Safe %s", address.Hex())
	}

	safe, err := response.ToBusiness()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid Safe %s", address.Hex())
	}
	return safe, nil
}

// GetMultisigTransaction returns the transaction with the given safeTxHash
func (c *Client) GetMultisigTransaction(ctx context.Context, chainID string, safeTxHash common.Hash) (*business.MultisigTransaction, error) {
	client, err := c.forChain(chainID)
	if err != nil {
		return nil, err
	}

	var response MultisigTransactionResponse
	if err := c.getJSON(ctx, client, fmt.Sprintf("/api/v1/multisig-transactions/%s/", safeTxHash.Hex()), &response); err != nil {
		return nil, errors.Wrapf(err, "failed to get multisig transaction %s", safeTxHash.Hex())
	}

	tx, err := response.ToBusiness()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid multisig transaction %s", safeTxHash.Hex())
	}
	return tx, nil
}

// GetDelegates returns every delegate registered for safeAddress, following pagination
func (c *Client) GetDelegates(ctx context.Context, chainID string, safeAddress common.Address) ([]business.Delegate, error) {
	client, err := c.forChain(chainID)
	if err != nil {
		return nil, err
	}

	var delegates []business.Delegate
	for offset := 0; ; offset += delegatesPageSize {
		var page DelegatesPage
		err := c.getJSON(ctx, client, "/api/v2/delegates/", &page,
			httpclient.WithQueryParam("safe", safeAddress.Hex()),
			httpclient.WithQueryParam("limit", fmt.Sprintf("%d", delegatesPageSize)),
			httpclient.WithQueryParam("offset", fmt.Sprintf("%d", offset)),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get delegates of %s", safeAddress.Hex())
		}
		for _, delegate := range page.Results {
			delegates = append(delegates, delegate.ToBusiness())
		}
		if page.Next == nil || len(page.Results) == 0 {
			return delegates, nil
		}
	}
}

// ProposeTransaction forwards a verified proposal
func (c *Client) ProposeTransaction(ctx context.Context, chainID string, proposal *business.TransactionProposal) error {
	client, err := c.forChain(chainID)
	if err != nil {
		return err
	}

	safe := proposal.Transaction.Safe
	path := fmt.Sprintf("/api/v1/safes/%s/multisig-transactions/", safe.Hex())
	if err := c.postJSON(ctx, client, path, NewProposeTransactionRequest(proposal)); err != nil {
		return errors.Wrapf(err, "failed to propose transaction %s", proposal.Transaction.SafeTxHash.Hex())
	}

	c.logger.Debug("Proposal forwarded",
		zap.String("chain_id", chainID),
		zap.String("safe", safe.Hex()),
		zap.String("safe_tx_hash", proposal.Transaction.SafeTxHash.Hex()),
	)
	return nil
}

// AddConfirmation forwards a verified confirmation
func (c *Client) AddConfirmation(ctx context.Context, chainID string, safeTxHash common.Hash, signature []byte) error {
	client, err := c.forChain(chainID)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/v1/multisig-transactions/%s/confirmations/", safeTxHash.Hex())
	if err := c.postJSON(ctx, client, path, &AddConfirmationRequest{Signature: signature}); err != nil {
		return errors.Wrapf(err, "failed to add confirmation to %s", safeTxHash.Hex())
	}
	return nil
}

// CreateMessage forwards a verified Safe message
func (c *Client) CreateMessage(ctx context.Context, chainID string, safeAddress common.Address, message business.Message, signature []byte) error {
	client, err := c.forChain(chainID)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("/api/v1/safes/%s/messages/", safeAddress.Hex())
	if err := c.postJSON(ctx, client, path, &CreateMessageRequest{Message: message, Signature: signature}); err != nil {
		return errors.Wrapf(err, "failed to create message for %s", safeAddress.Hex())
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, client *httpclient.HTTPClient, path string, target interface{}, options ...httpclient.RequestOption) error {
	resp, err := client.Get(ctx, path, options...)
	if err != nil {
		return translateError(resp, err)
	}
	return client.ProcessJSONResponse(resp, target)
}

func (c *Client) postJSON(ctx context.Context, client *httpclient.HTTPClient, path string, body interface{}) error {
	resp, err := client.Post(ctx, path, body)
	if err != nil {
		return translateError(resp, err)
	}
	return client.ProcessJSONResponse(resp, nil)
}

// translateError closes an error response and maps 404 to ErrNotFound
func translateError(resp *http.Response, err error) error {
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return errors.Wrap(ErrNotFound, strings.TrimSpace(httpErr.Body))
	}
	return err
}

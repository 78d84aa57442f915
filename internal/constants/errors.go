package constants

// Error messages returned by the API handlers
const (
	SafeNotFound        = "Safe not found"
	TransactionNotFound = "Transaction not found"
	InvalidChainID      = "Invalid chain id"
	InvalidAddress      = "Invalid address"
	InvalidSafeTxHash   = "Invalid safeTxHash"
	InvalidRequestBody  = "Invalid request body"
	InvalidMessage      = "Message must be a string or EIP-712 typed data"
	UnsupportedChain    = "Chain is not supported"
	UpstreamError       = "Error communicating with the transaction service"
	UpstreamRejected    = "Rejected by the transaction service"
	InternalServerError = "Internal server error"
)

package services

import (
	"errors"
	"fmt"
)

// VerificationCode identifies why a transaction or message was rejected
type VerificationCode string

const (
	CodeMalformedHash        VerificationCode = "MALFORMED_HASH"
	CodeHashMismatch         VerificationCode = "HASH_MISMATCH"
	CodeUnrecoverableAddress VerificationCode = "UNRECOVERABLE_ADDRESS"
	CodeInvalidSignature     VerificationCode = "INVALID_SIGNATURE"
	CodeEthSignDisabled      VerificationCode = "ETH_SIGN_DISABLED"
	CodeDelegateCallDisabled VerificationCode = "DELEGATE_CALL_DISABLED"
	CodeBlockedAddress       VerificationCode = "BLOCKED_ADDRESS"
	CodeDuplicateOwners      VerificationCode = "DUPLICATE_OWNERS"
	CodeDuplicateSignatures  VerificationCode = "DUPLICATE_SIGNATURES"
)

// VerificationError is a terminal rejection. Message is safe to show to clients.
type VerificationError struct {
	Code    VerificationCode
	Message string
	Err     error
}

func (e *VerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

// Is matches any VerificationError carrying the same code, so callers can
// compare against the package sentinels with errors.Is
func (e *VerificationError) Is(target error) bool {
	t, ok := target.(*VerificationError)
	return ok && t.Code == e.Code
}

var (
	ErrMalformedHash        = &VerificationError{Code: CodeMalformedHash, Message: "Could not calculate hash"}
	ErrHashMismatch         = &VerificationError{Code: CodeHashMismatch, Message: "Invalid safeTxHash"}
	ErrUnrecoverableAddress = &VerificationError{Code: CodeUnrecoverableAddress, Message: "Could not recover address"}
	ErrInvalidSignature     = &VerificationError{Code: CodeInvalidSignature, Message: "Invalid signature"}
	ErrEthSignDisabled      = &VerificationError{Code: CodeEthSignDisabled, Message: "eth_sign is disabled"}
	ErrDelegateCallDisabled = &VerificationError{Code: CodeDelegateCallDisabled, Message: "Delegate call is disabled"}
	ErrBlockedAddress       = &VerificationError{Code: CodeBlockedAddress, Message: "Unauthorized address"}
	ErrDuplicateOwners      = &VerificationError{Code: CodeDuplicateOwners, Message: "Duplicate owners in confirmations"}
	ErrDuplicateSignatures  = &VerificationError{Code: CodeDuplicateSignatures, Message: "Duplicate signatures in confirmations"}
)

// newVerificationError copies a sentinel, attaching the underlying cause
func newVerificationError(sentinel *VerificationError, err error) *VerificationError {
	return &VerificationError{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// withMessage copies a sentinel with a context specific client message
func withMessage(sentinel *VerificationError, message string, err error) *VerificationError {
	return &VerificationError{Code: sentinel.Code, Message: message, Err: err}
}

// RepositoryError wraps a failure of an upstream data source met while verifying
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// VerificationOutcome returns the metric label for a verification result
func VerificationOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	var verr *VerificationError
	if errors.As(err, &verr) {
		return string(verr.Code)
	}
	var rerr *RepositoryError
	if errors.As(err, &rerr) {
		return "UPSTREAM_ERROR"
	}
	return "INTERNAL_ERROR"
}

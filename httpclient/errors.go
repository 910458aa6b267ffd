package httpclient

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType discriminates client error categories.
type ErrorType string

const (
	// NetworkError covers connection failures where no response was
	// obtained (refused, reset, DNS).
	NetworkError ErrorType = "network"
	// TimeoutError covers attempts cut short by a connect or read deadline.
	TimeoutError ErrorType = "timeout"
	// ValidationError covers requests rejected before being sent.
	ValidationError ErrorType = "validation"
)

// ClientError is the error contract returned by the client. Non-2xx
// responses are not errors at this layer; a ClientError means no usable
// response was obtained.
type ClientError interface {
	error
	Type() ErrorType
}

type networkError struct {
	message string
	err     error
}

func (e *networkError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("network error: %s: %v", e.message, e.err)
	}
	return fmt.Sprintf("network error: %s", e.message)
}

func (e *networkError) Type() ErrorType { return NetworkError }

func (e *networkError) Unwrap() error { return e.err }

// NewNetworkError creates a ClientError for a transport-level failure,
// wrapping the underlying error when present.
func NewNetworkError(message string, err error) ClientError {
	return &networkError{message: message, err: err}
}

type timeoutError struct {
	message string
	timeout time.Duration
	err     error
}

func (e *timeoutError) Error() string {
	return fmt.Sprintf("timeout error: %s (timeout: %s)", e.message, e.timeout)
}

func (e *timeoutError) Type() ErrorType { return TimeoutError }

func (e *timeoutError) Unwrap() error { return e.err }

// NewTimeoutError creates a ClientError for an attempt that exceeded the
// given deadline.
func NewTimeoutError(message string, timeout time.Duration, err error) ClientError {
	return &timeoutError{message: message, timeout: timeout, err: err}
}

type validationError struct {
	message string
	field   string
}

func (e *validationError) Error() string {
	if e.field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.message, e.field)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

func (e *validationError) Type() ErrorType { return ValidationError }

// NewValidationError creates a ClientError for a request rejected before
// any transport attempt.
func NewValidationError(message, field string) ClientError {
	return &validationError{message: message, field: field}
}

// IsErrorType reports whether err is a ClientError of the given type.
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}

// IsSuccessStatus reports whether the status code is in the 2xx range.
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

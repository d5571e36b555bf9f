package errors

import (
	"errors"
	"fmt"
)

var (
	// Connector call errors
	ErrAuth             = errors.New("connector credentials rejected or malformed")
	ErrSchemaMismatch   = errors.New("response did not match expected flow schema")
	ErrNotImplemented   = errors.New("flow or payment method not supported by provider")
	ErrNetwork          = errors.New("network failure reaching provider")
	ErrProviderDeclined = errors.New("request declined by provider")
	ErrUnmappedStatus   = errors.New("provider status not in documented enumeration")

	// Webhook errors
	ErrSignatureInvalid  = errors.New("webhook signature verification failed")
	ErrDuplicateDelivery = errors.New("webhook delivery already processed")

	// Registry / configuration errors
	ErrUnknownProvider  = errors.New("provider not registered")
	ErrProviderDisabled = errors.New("provider circuit open")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidFlow  = errors.New("unknown flow")
)

// ConnectorError wraps a canonical error kind with enough context to diagnose
// the call without re-hitting the provider: the provider id, the flow, the
// provider's own code/message, and an opaque reference to the raw body.
type ConnectorError struct {
	Provider   string
	Flow       string
	Code       string
	Message    string
	HTTPStatus int
	RawBody    []byte
	Err        error
}

func (e *ConnectorError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s %s: [%s] %s", e.Provider, e.Flow, e.Code, e.Message)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Flow, e.Err)
}

func (e *ConnectorError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the call. Only network-level
// failures qualify; provider-reported business errors are terminal.
func (e *ConnectorError) Retryable() bool {
	return errors.Is(e.Err, ErrNetwork)
}

// NewConnectorError builds a ConnectorError around a canonical error kind.
func NewConnectorError(provider, flow string, kind error, code, message string) *ConnectorError {
	return &ConnectorError{
		Provider: provider,
		Flow:     flow,
		Code:     code,
		Message:  message,
		Err:      kind,
	}
}

// ValidationError represents a request validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

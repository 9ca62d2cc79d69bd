package types

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation"
	ErrorTypeAuthorization  ErrorType = "authorization"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeWorkflow       ErrorType = "workflow"
	ErrorTypeConflict       ErrorType = "conflict"
	ErrorTypeNetwork        ErrorType = "network"
	ErrorTypeExternal       ErrorType = "external"
)

// PortalError represents a structured error in the asilo portal
type PortalError struct {
	Type    ErrorType              `json:"type"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *PortalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *PortalError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new client-side validation error; these are
// resolved locally and never reach the network.
func NewValidationError(code, message string, details map[string]interface{}) *PortalError {
	return &PortalError{
		Type:    ErrorTypeValidation,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewAuthorizationError creates a new authorization error
func NewAuthorizationError(code, message string) *PortalError {
	return &PortalError{
		Type:    ErrorTypeAuthorization,
		Code:    code,
		Message: message,
	}
}

// NewAuthenticationError creates a new authentication error
func NewAuthenticationError(code, message string) *PortalError {
	return &PortalError{
		Type:    ErrorTypeAuthentication,
		Code:    code,
		Message: message,
	}
}

// NewWorkflowError creates a new workflow guard error
func NewWorkflowError(code, message string, details map[string]interface{}) *PortalError {
	return &PortalError{
		Type:    ErrorTypeWorkflow,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewConflictError creates a new domain conflict error
func NewConflictError(code, message string, details map[string]interface{}) *PortalError {
	return &PortalError{
		Type:    ErrorTypeConflict,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewNetworkError creates a new transport-level error
func NewNetworkError(code, message string, cause error) *PortalError {
	return &PortalError{
		Type:    ErrorTypeNetwork,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewExternalError creates a new error for a rejected API call
func NewExternalError(code, message string, details map[string]interface{}) *PortalError {
	return &PortalError{
		Type:    ErrorTypeExternal,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// HasCode reports whether err or any error in its chain is a PortalError
// carrying the given code.
func HasCode(err error, code string) bool {
	for err != nil {
		var pe *PortalError
		if errors.As(err, &pe) {
			if pe.Code == code {
				return true
			}
			err = pe.Cause
			continue
		}
		return false
	}
	return false
}

// Common error codes
const (
	ErrCodeInvalidToken      = "INVALID_TOKEN"
	ErrCodeTokenExpired      = "TOKEN_EXPIRED"
	ErrCodeSessionExpired    = "SESSION_EXPIRED"
	ErrCodeIncompleteInput   = "INCOMPLETE_INPUT"
	ErrCodeInvalidSelection  = "INVALID_SELECTION"
	ErrCodeIllegalTransition = "ILLEGAL_TRANSITION"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeMutationInFlight  = "MUTATION_IN_FLIGHT"
	ErrCodeNetworkFailure    = "NETWORK_FAILURE"
	ErrCodeServerError       = "SERVER_ERROR"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeAlreadyDelivered  = "ALREADY_DELIVERED"
	ErrCodeBillingIncomplete = "BILLING_INCOMPLETE"
)

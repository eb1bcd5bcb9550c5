package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Network errors
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeTimeout    ErrorType = "timeout"
	ErrorTypeConnection ErrorType = "connection"
	ErrorTypeHTTP       ErrorType = "http"

	// Authentication errors
	ErrorTypeAuth           ErrorType = "auth"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeSessionExpired ErrorType = "session_expired"

	// Validation errors
	ErrorTypeValidation ErrorType = "validation"

	// Server errors
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeConflict  ErrorType = "conflict"
	ErrorTypeRateLimit ErrorType = "rate_limit"

	// Realtime errors
	ErrorTypeChannel  ErrorType = "channel"
	ErrorTypeProtocol ErrorType = "protocol"

	// Optimistic mutation errors (remote write rejected, cache rolled back)
	ErrorTypeMutation ErrorType = "mutation"

	// Unknown errors
	ErrorTypeUnknown ErrorType = "unknown"
)

// ClientError represents a structured error with context
type ClientError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *ClientError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *ClientError) WithSuggestion(suggestion string) *ClientError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *ClientError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// NewClientError creates a new client error
func NewClientError(errorType ErrorType, message string, cause error) *ClientError {
	return &ClientError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *ClientError {
	err := NewClientError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *ClientError {
	err := NewClientError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// AuthError creates an authentication error
func AuthError(message string) *ClientError {
	err := NewClientError(ErrorTypeAuth, message, nil)
	err.Suggestion = "Try logging in again with 'social-cli auth login'"
	return err
}

// SessionExpiredError creates a session expired error
func SessionExpiredError() *ClientError {
	err := NewClientError(ErrorTypeSessionExpired, "Your session has expired", nil)
	err.Suggestion = "Run 'social-cli auth login' to refresh your session."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError() *ClientError {
	err := NewClientError(ErrorTypeUnauthorized, "You don't have permission to perform this action", nil)
	err.Suggestion = "Make sure you're logged in with an account that has the required permissions."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *ClientError {
	err := NewClientError(ErrorTypeForbidden, "Access denied", nil)
	err.Suggestion = "Contact an administrator if you believe this is an error."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *ClientError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewClientError(ErrorTypeValidation, message, nil)
}

// ChannelError creates a realtime channel error
func ChannelError(message string, cause error) *ClientError {
	err := NewClientError(ErrorTypeChannel, message, cause)
	err.Suggestion = "The realtime connection dropped. It will reconnect automatically."
	return err
}

// ChannelFailedError creates an error for a channel that exhausted reconnects
func ChannelFailedError(resource string) *ClientError {
	err := NewClientError(ErrorTypeChannel,
		fmt.Sprintf("Realtime channel for %s gave up after repeated failures", resource),
		nil)
	err.Suggestion = "Re-open the subscription, or log in again if your session expired."
	return err
}

// ProtocolError creates an error for a malformed realtime frame
func ProtocolError(message string, cause error) *ClientError {
	return NewClientError(ErrorTypeProtocol, message, cause)
}

// MutationError wraps a rejected remote write whose local effect was rolled back
func MutationError(action string, cause error) *ClientError {
	err := NewClientError(ErrorTypeMutation,
		fmt.Sprintf("%s failed and was undone", action),
		cause)
	err.Suggestion = "Your change was reverted. Try again in a moment."
	return err
}

// ServerError creates a server error
func ServerError() *ClientError {
	err := NewClientError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *ClientError {
	err := NewClientError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
	return err
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *ClientError {
	err := NewClientError(ErrorTypeRateLimit,
		"Rate limit exceeded. Too many requests.",
		nil)
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// ConflictError creates a conflict error
func ConflictError(message string) *ClientError {
	err := NewClientError(ErrorTypeConflict, message, nil)
	err.Suggestion = "This resource already exists. Try a different name or identifier."
	return err
}

// CategorizeError converts a standard error into a ClientError
func CategorizeError(err error) *ClientError {
	if err == nil {
		return nil
	}

	// Check if it's already a ClientError
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	// Categorize based on error message
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.")
	case strings.Contains(errMsg, "timeout"):
		return TimeoutError()
	case strings.Contains(errMsg, "context deadline exceeded"):
		return TimeoutError()
	case strings.Contains(errMsg, "401") || strings.Contains(errMsg, "unauthorized"):
		return AuthError("Invalid credentials")
	case strings.Contains(errMsg, "403") || strings.Contains(errMsg, "forbidden"):
		return ForbiddenError()
	case strings.Contains(errMsg, "404") || strings.Contains(errMsg, "not found"):
		return NotFoundError("Resource", "unknown")
	case strings.Contains(errMsg, "429") || strings.Contains(errMsg, "rate limit"):
		return RateLimitError(60)
	case strings.Contains(errMsg, "500") || strings.Contains(errMsg, "server error"):
		return ServerError()
	default:
		return NewClientError(ErrorTypeUnknown, errMsg, err)
	}
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	clientErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if clientErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(clientErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(clientErr.Message)
	sb.WriteString("\n")

	if clientErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(clientErr.Suggestion)
		sb.WriteString("\n")
	}

	if clientErr.Type == ErrorTypeRateLimit && clientErr.RetryAfter > 0 {
		sb.WriteString("\nRetry in: ")
		sb.WriteString(fmt.Sprintf("%d seconds\n", clientErr.RetryAfter))
	}

	return sb.String()
}

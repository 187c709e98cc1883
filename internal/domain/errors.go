package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of an assist error.
type ErrorType string

const (
	// ErrorTypeInvalidRequest indicates a malformed or invalid request.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"

	// ErrorTypeGeneration indicates the remote generator failed after the
	// retry budget was exhausted.
	ErrorTypeGeneration ErrorType = "generation"

	// ErrorTypeExtraction indicates a successful generation response that
	// contained no parseable structured payload.
	ErrorTypeExtraction ErrorType = "extraction"

	// ErrorTypeOrchestration indicates a pipeline stage failed and the run
	// was abandoned without a partial result.
	ErrorTypeOrchestration ErrorType = "orchestration"

	// ErrorTypeNotFound indicates a stored record was not found.
	ErrorTypeNotFound ErrorType = "not_found"

	// ErrorTypeServer indicates an internal failure unrelated to the remote
	// generator.
	ErrorTypeServer ErrorType = "server"
)

// TerminalGenerationMessage is the message surfaced to callers when every
// attempt against the remote generator has failed.
const TerminalGenerationMessage = "Failed to get a response from the AI after multiple attempts"

// AssistError is the canonical error returned across package boundaries.
// Handlers translate it to an HTTP status; everything below wraps causes
// with %w so errors.Is/As keep working.
type AssistError struct {
	// Type is the category of error.
	Type ErrorType `json:"type"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Err is the underlying cause, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AssistError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *AssistError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *AssistError) HTTPStatusCode() int {
	switch e.Type {
	case ErrorTypeInvalidRequest:
		return http.StatusBadRequest
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeGeneration, ErrorTypeExtraction, ErrorTypeOrchestration:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewAssistError creates a new assist error.
func NewAssistError(errType ErrorType, message string) *AssistError {
	return &AssistError{Type: errType, Message: message}
}

// Wrap attaches an underlying cause to the error.
func (e *AssistError) Wrap(err error) *AssistError {
	e.Err = err
	return e
}

// Convenience constructors for common errors

// ErrInvalidRequest creates an invalid request error.
func ErrInvalidRequest(message string) *AssistError {
	return NewAssistError(ErrorTypeInvalidRequest, message)
}

// ErrGeneration creates a terminal generation error with the fixed
// user-facing message, wrapping the last attempt's failure.
func ErrGeneration(cause error) *AssistError {
	return NewAssistError(ErrorTypeGeneration, TerminalGenerationMessage).Wrap(cause)
}

// ErrExtraction creates an extraction error.
func ErrExtraction(message string) *AssistError {
	return NewAssistError(ErrorTypeExtraction, message)
}

// ErrOrchestration creates an orchestration error wrapping the stage failure.
func ErrOrchestration(stage string, cause error) *AssistError {
	return NewAssistError(ErrorTypeOrchestration, "stage "+stage+" failed").Wrap(cause)
}

// ErrNotFound creates a not found error.
func ErrNotFound(message string) *AssistError {
	return NewAssistError(ErrorTypeNotFound, message)
}

// IsType reports whether err is an AssistError of the given type.
func IsType(err error, t ErrorType) bool {
	var ae *AssistError
	if errors.As(err, &ae) {
		return ae.Type == t
	}
	return false
}

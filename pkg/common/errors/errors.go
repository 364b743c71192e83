package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the seqflow library

var (
	// ErrClosed indicates that an operation was attempted on a closed resource
	ErrClosed = errors.New("resource is closed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCapacityExceeded indicates that a capacity limit was exceeded
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsTemporary returns true if the error indicates a temporary condition
func IsTemporary(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrCapacityExceeded)
}

// ValidationError describes a configuration value that failed validation.
// It wraps ErrInvalidConfiguration so callers can detect the class of
// failure with errors.Is while still receiving a precise message.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes ValidationError match ErrInvalidConfiguration via errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// OperationError annotates a failure with the module and operation it
// occurred in, preserving the cause for errors.Is/errors.As inspection.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError wrapping cause.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches extra context and returns the same error for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

// Error implements the error interface.
func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}

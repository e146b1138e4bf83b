// Package apperrors defines the structured error types shared by the
// fibmatrix command, server and service layers, together with the process
// exit codes they map to.
//
// All wrapper types implement Unwrap so that errors.Is and errors.As can
// reach sentinels such as fibonacci.ErrOverflow or context.Canceled.
package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The deadline was reached.
	ExitErrorConfig   = 4   // Invalid flags, environment or config file.
	ExitErrorOverflow = 5   // F(n) does not fit in 128 bits and wrapping was refused.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError reports invalid user configuration.
type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure of the Fibonacci computation while
// preserving its cause.
type CalculationError struct {
	// N is the requested index.
	N uint64
	// Cause is the underlying error.
	Cause error
}

func (e CalculationError) Error() string {
	return fmt.Sprintf("calculating F(%d): %v", e.N, e.Cause)
}

func (e CalculationError) Unwrap() error { return e.Cause }

// ServerError represents a failure of the HTTP server component.
type ServerError struct {
	// Message describes what the server was doing.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

// Error combines the message and the cause when there is one.
func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError creates a ServerError. cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// ValidationError reports a rejected input: a request parameter, a flag or
// an argument passed to the service. Cause, when set, is a sentinel callers
// can match with errors.Is.
type ValidationError struct {
	// Field names the offending input, e.g. "n" or "overflow".
	Field string
	// Message says what is wrong with it.
	Message string
	// Value is the rejected value, if known.
	Value any
	// Cause is the underlying sentinel, if any.
	Cause error
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return "invalid input: " + e.Message
}

func (e ValidationError) Unwrap() error { return e.Cause }

// NewValidationError creates a ValidationError without a cause.
func NewValidationError(field, message string, value any) error {
	return ValidationError{Field: field, Message: message, Value: value}
}

// WrapError prefixes err with a formatted context message, keeping it
// reachable through errors.Is and errors.As. A nil err stays nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err is a cancellation or a deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTimeout   = 2   // Indicates the operation timed out.
	ExitErrorRetrieval = 3   // Indicates a creature could not be retrieved.
	ExitErrorConfig    = 4   // Indicates a configuration or input error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrNotFound is the cause carried by a RetrievalError when the lookup
// provider does not know the queried name.
var ErrNotFound = errors.New("creature not found")

// Position identifies which of the two battle arguments an error refers to.
type Position int

const (
	// First is the left-hand creature of a battle.
	First Position = iota + 1
	// Second is the right-hand creature of a battle.
	Second
)

// String returns "first" or "second".
func (p Position) String() string {
	switch p {
	case First:
		return "first"
	case Second:
		return "second"
	}
	return fmt.Sprintf("position(%d)", int(p))
}

// MissingNameError reports that one of the two creature names was not
// supplied. The message is fixed per position and must not change.
type MissingNameError struct {
	Position Position
}

// Error returns "the first entity is not specified" or
// "the second entity is not specified".
func (e MissingNameError) Error() string {
	return fmt.Sprintf("the %s entity is not specified", e.Position)
}

// SameEntityError reports that a creature was asked to battle itself.
type SameEntityError struct{}

// Error returns the fixed same-entity message.
func (SameEntityError) Error() string { return "an entity cannot battle against itself" }

// RetrievalError reports that the details of a creature could not be looked
// up. It carries the queried name and, when known, the underlying cause.
type RetrievalError struct {
	// Name is the creature name that was queried.
	Name string
	// Cause is the underlying failure (transport error, not found, ...).
	Cause error
}

// NewRetrievalError creates a RetrievalError for name wrapping cause.
func NewRetrievalError(name string, cause error) error {
	return RetrievalError{Name: name, Cause: cause}
}

// Error returns a message embedding the failing name.
func (e RetrievalError) Error() string {
	return fmt.Sprintf("unable to retrieve details for '%s'", e.Name)
}

// Unwrap returns the underlying cause, allowing errors.Is checks such as
// errors.Is(err, pokeapi.ErrNotFound).
func (e RetrievalError) Unwrap() error { return e.Cause }

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// TimeoutError represents a battle timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// IsValidationError reports whether err is a MissingNameError or a
// SameEntityError, i.e. a failure caused by the battle input itself.
func IsValidationError(err error) bool {
	var missing MissingNameError
	var same SameEntityError
	return errors.As(err, &missing) || errors.As(err, &same)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps a battle error to the process exit status.
func ExitCode(err error) int {
	var cfgErr ConfigError
	var timeoutErr TimeoutError
	var retrievalErr RetrievalError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case IsValidationError(err), errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &retrievalErr):
		return ExitErrorRetrieval
	}
	return ExitErrorGeneric
}

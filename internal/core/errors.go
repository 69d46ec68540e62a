package core

import (
	"errors" // Error wrapping and inspection
	"fmt"    // Error formatting

	"privypay/internal/store" // Store failure signals
)

// ValidationError reports missing or malformed input
type ValidationError struct {
	Msg string // What was wrong
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports a referenced user or invitation that does not exist
type NotFoundError struct {
	Resource string // What was missing, e.g. "user" or "invite"
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// InvalidStateError reports an operation not valid for the current status,
// e.g. accepting an invitation that is no longer pending
type InvalidStateError struct {
	Msg string // Why the state forbids the operation
}

func (e *InvalidStateError) Error() string { return e.Msg }

// ConflictError reports a uniqueness violation, e.g. a duplicate transaction hash
type ConflictError struct {
	Msg string // What conflicted
}

func (e *ConflictError) Error() string { return e.Msg }

// StoreUnavailableError reports a backing-store timeout or connection failure;
// the caller may retry
type StoreUnavailableError struct {
	Err error // Underlying store error
}

func (e *StoreUnavailableError) Error() string { return "store unavailable: " + e.Err.Error() }
func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// storeErr translates store failures that should not reach the caller raw.
// ErrNotFound is left to call sites, which know which resource was missing.
func storeErr(err error) error {
	if errors.Is(err, store.ErrUnavailable) {
		return &StoreUnavailableError{Err: err}
	}
	return err
}

// notFound builds a NotFoundError for the named resource
func notFound(resource string) error { return &NotFoundError{Resource: resource} }

// invalid builds a ValidationError
func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

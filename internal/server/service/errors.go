package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing event, application, or preference record.
	ErrNotFound = errors.New("record not found")

	// ErrPoolExhausted signals that every pseudonym in the category pool is
	// already held by a paid participant of the event.
	ErrPoolExhausted = errors.New("nickname pool exhausted")

	// ErrTransientAllocation signals that nickname assignment kept losing the
	// commit race and gave up. The caller may retry the whole operation.
	ErrTransientAllocation = errors.New("nickname allocation failed after retries")
)

// ValidationError reports a malformed submission. Nothing is persisted when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

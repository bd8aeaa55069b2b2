package domain

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the services wraps exactly one of
// these, so transports can map them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrClientNotFound  = fmt.Errorf("client %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)

	ErrLoginTaken          = fmt.Errorf("login already exists: %w", ErrConflict)
	ErrUserManagesProjects = fmt.Errorf("user still manages projects: %w", ErrConflict)
)

// ValidationError describes a single invalid input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid is a shorthand for &ValidationError{Field: field, Reason: reason}.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ErrRequestInProgress is returned when an idempotency key is held by a
// request that has not finished yet.
var ErrRequestInProgress = fmt.Errorf("request with this idempotency key is in progress: %w", ErrConflict)

package domain

import (
	"errors"
	"fmt"
)

// Common domain errors surfaced by the evaluation and dashboard workflows.
// None of these are fatal to the process; each degrades to a visible message
// and leaves the previous consistent state intact.
var (
	// ErrNotFound indicates that a roll-number lookup matched no record.
	ErrNotFound = errors.New("contestant not found")

	// ErrNoCriteriaAvailable indicates that neither a fixed schema nor the
	// suggestion service produced criteria for a role. Callers recover by
	// substituting DefaultCriterion.
	ErrNoCriteriaAvailable = errors.New("no marking criteria available")

	// ErrSuggestionUnavailable indicates that interview question generation
	// failed. Recovered by showing an empty list; never blocks submission.
	ErrSuggestionUnavailable = errors.New("question suggestions unavailable")

	// ErrInvalidRole indicates a login attempt for a role this service
	// does not know.
	ErrInvalidRole = errors.New("invalid role")

	// ErrBadCredentials indicates a role secret mismatch at login.
	ErrBadCredentials = errors.New("invalid password")
)

// ValidationError accumulates field-level validation failures for a single
// entity, typically a submitted evaluation.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// Addf adds a formatted error message.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{Entity: entity, Errors: make([]string, 0)}
}

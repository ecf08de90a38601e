package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrDocumentNotFound is returned when a document key has no entry
	// in the index.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvariantViolation backs panics raised when a debug invariant
	// check on a SearchIndex fails. Seeing this means the index's
	// internal maps have gone out of sync with each other, which is
	// always a bug in insertDoc/deleteDoc itself, not something a caller
	// can provoke with valid input or recover from by retrying.
	ErrInvariantViolation = errors.New("search index invariant violation")
)

// DocumentNotFoundError represents a document-not-found error with
// context: the key a caller looked up that has no entry.
type DocumentNotFoundError struct {
	DocKey string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document with key '%s' not found", e.DocKey)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError.
func NewDocumentNotFoundError(docKey string) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocKey: docKey}
}

// ValidationError represents an input validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InvariantViolationError names which check failed inside a
// SearchIndex. It is always raised via panic.
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("search index invariant violation: %s", e.Detail)
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// NewInvariantViolationError creates a new InvariantViolationError.
func NewInvariantViolationError(detail string) *InvariantViolationError {
	return &InvariantViolationError{Detail: detail}
}

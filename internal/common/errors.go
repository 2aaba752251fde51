// Package common defines the error taxonomy shared by repositories,
// services and the HTTP layer.
package common

import (
	"errors"
	"fmt"
)

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal = errors.New("internal error")

	// order-specific errors
	ErrorInvalidStatus = errors.New("invalid order status")

	// ErrorConflict is the match target for errors.Is checks against
	// *ConflictError values.
	ErrorConflict = errors.New("already exists")
)

// ConflictError reports a uniqueness violation on a specific field.
// It is produced only when the store rejects a write with a unique
// constraint violation, never from advisory pre-checks alone.
type ConflictError struct {
	Field string
	Value string
}

func NewConflictError(field, value string) *ConflictError {
	return &ConflictError{Field: field, Value: value}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s %q already exists", e.Field, e.Value)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrorConflict
}

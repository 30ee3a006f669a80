package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRepeatRule indicates a repeat rule value outside the closed set
	ErrInvalidRepeatRule = errors.New("invalid repeat rule")

	// ErrInvalidPriority indicates a priority value outside the closed set
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus indicates a status value outside the closed set
	ErrInvalidStatus = errors.New("invalid status")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

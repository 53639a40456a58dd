package errors

import (
	"errors"
	"fmt"
)

var (
	// General validation errors
	ErrInvalidInput  = errors.New("invalid input")
	ErrRequiredField = errors.New("required field is missing")
	ErrInvalidFormat = errors.New("invalid format")

	// Specific field validation errors
	ErrInvalidRole         = fmt.Errorf("invalid user role: %w", ErrInvalidInput)
	ErrInvalidStatus       = fmt.Errorf("invalid status: %w", ErrInvalidInput)
	ErrInvalidAmount       = fmt.Errorf("invalid amount: %w", ErrInvalidInput)
	ErrInvalidBillingCycle = fmt.Errorf("invalid billing cycle: %w", ErrInvalidInput)
	ErrInvalidAccessType   = fmt.Errorf("invalid access type: %w", ErrInvalidInput)
	ErrInvalidReason       = fmt.Errorf("invalid cancellation reason: %w", ErrInvalidInput)
	ErrInvalidCategory     = fmt.Errorf("invalid creator category: %w", ErrInvalidInput)
)

// ValidationError wraps a field validation error
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed for field '%s': %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     ErrInvalidInput,
	}
}

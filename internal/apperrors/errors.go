package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors used across service and repository layers.
var (
	// ErrNotFound indicates that a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates that input failed validation.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate indicates a uniqueness conflict, typically a replayed
	// reference_id or an already-existing split.
	ErrDuplicate = errors.New("duplicate resource")
	// ErrInvalidState indicates that the resource is not in a state that
	// permits the requested operation.
	ErrInvalidState = errors.New("invalid state for operation")
	// ErrNoLiableSplits indicates that a reversal found nobody to debit.
	ErrNoLiableSplits = errors.New("no liable splits for reversal")
)

// AppError wraps an underlying error with an application-level code and a
// human-readable message suitable for API responses.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

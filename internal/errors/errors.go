package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Relish error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrCancelled      ErrorCode = "CANCELLED"       // 499
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// RelishError represents a structured error with code, status, and details.
type RelishError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *RelishError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *RelishError {
	return &RelishError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record.
func NewNotFound(identifier string) *RelishError {
	return &RelishError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("record not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewFileNotFound creates a 404 error for a missing file path.
func NewFileNotFound(path string) *RelishError {
	return &RelishError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewCancelled creates a 499 error for a cancelled operation.
func NewCancelled(operation string) *RelishError {
	return &RelishError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("operation cancelled: %s", operation),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *RelishError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &RelishError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a RelishError with the given code.
// Wrapped errors are unwrapped before matching.
func Is(err error, code ErrorCode) bool {
	var rErr *RelishError
	if stderrors.As(err, &rErr) {
		return rErr.Code == code
	}
	return false
}

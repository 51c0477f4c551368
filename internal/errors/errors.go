package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrCodeRepository      = "REPOSITORY_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnavailable     = "UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_ARGUMENT")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewInvalidArgumentError creates a new INVALID_ARGUMENT error
func NewInvalidArgumentError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidArgument,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Status:  400,
	}
}

// NewRepositoryError wraps a storage failure. The underlying error is kept
// unmodified so callers can decide on retries themselves.
func NewRepositoryError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeRepository,
		Message: "repository operation failed",
		Status:  500,
		Err:     err,
	}
}

// NewUnavailableError signals temporary back-pressure, such as a full job
// queue. The request itself was fine; the caller should retry later.
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnavailable,
		Message: message,
		Status:  503,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

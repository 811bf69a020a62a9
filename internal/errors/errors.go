package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeValidation           = "VALIDATION_ERROR"
	ErrCodeInternal             = "INTERNAL_ERROR"
	ErrCodeBadRequest           = "BAD_REQUEST"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInsufficientProblems = "INSUFFICIENT_PROBLEMS"
	ErrCodeRateLimited          = "RATE_LIMITED"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
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

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
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

// NewForbiddenError creates a new FORBIDDEN error for resources owned by another user
func NewForbiddenError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeForbidden,
		Message: fmt.Sprintf("no access to %s %v", resource, id),
		Status:  403,
	}
}

// NewInsufficientProblemsError signals that mission creation could not
// assemble any problems under the requested filters
func NewInsufficientProblemsError(minDifficulty, maxDifficulty int) *AppError {
	return &AppError{
		Code:    ErrCodeInsufficientProblems,
		Message: fmt.Sprintf("no problems available for difficulty %d-%d, try again later or broaden the topic filters", minDifficulty, maxDifficulty),
		Status:  409,
	}
}

// NewRateLimitedError creates a new RATE_LIMITED error
func NewRateLimitedError() *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: "too many requests, slow down",
		Status:  429,
	}
}

// IsInsufficientProblems reports whether err is an INSUFFICIENT_PROBLEMS error
func IsInsufficientProblems(err error) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == ErrCodeInsufficientProblems
}

// Package errors provides custom error types for the findash API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so wrapped
// copies still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
)

// Upload errors.
var (
	ErrNoFile         = &AppError{Code: "NO_FILE", Message: "No file provided", StatusCode: http.StatusBadRequest}
	ErrBadExtension   = &AppError{Code: "BAD_EXTENSION", Message: "Invalid file format. Please upload .xlsx or .xls files only", StatusCode: http.StatusBadRequest}
	ErrMissingColumns = &AppError{Code: "MISSING_COLUMNS", Message: "Excel file must contain Month and Amount columns", StatusCode: http.StatusBadRequest}
	ErrFileTooLarge   = &AppError{Code: "FILE_TOO_LARGE", Message: "File exceeds the maximum upload size", StatusCode: http.StatusRequestEntityTooLarge}
	ErrUnreadableFile = &AppError{Code: "UNREADABLE_FILE", Message: "Error processing file: not a readable spreadsheet", StatusCode: http.StatusInternalServerError}
)

// Store errors.
var (
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "Database connection failed", StatusCode: http.StatusInternalServerError}
	ErrStoreFailure     = &AppError{Code: "STORE_ERROR", Message: "Failed to save financial records", StatusCode: http.StatusInternalServerError}
)

// Package errors defines the application error taxonomy.
//
// Row- and detail-level issues are absorbed with diagnostics, page-level
// issues become failure-manifest entries, and only input validation and
// export problems are fatal to the whole run.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error
type ErrorType string

const (
	ErrTypeInvalidDate  ErrorType = "INVALID_DATE"
	ErrTypeFetch        ErrorType = "FETCH"
	ErrTypeParseWarning ErrorType = "PARSE_WARNING"
	ErrTypeExport       ErrorType = "EXPORT"
	ErrTypeConfig       ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new application error
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err (or anything it wraps) is an AppError of
// the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper constructors for the taxonomy

// NewInvalidDateError marks malformed or out-of-range input dates.
// Fatal to the whole run.
func NewInvalidDateError(message string, cause error) *AppError {
	return New(ErrTypeInvalidDate, message, cause)
}

// NewFetchError marks a single page that failed to load. Recorded in
// the failure manifest, non-fatal to the range.
func NewFetchError(url string, cause error) *AppError {
	return New(ErrTypeFetch, fmt.Sprintf("failed to fetch %s", url), cause).
		WithContext("url", url)
}

// NewParseWarning marks a row or detail panel with unexpected structure.
func NewParseWarning(message string, cause error) *AppError {
	return New(ErrTypeParseWarning, message, cause)
}

// NewExportError marks an output destination that could not be written.
// Fatal; no partial file is left behind.
func NewExportError(message string, cause error) *AppError {
	return New(ErrTypeExport, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return New(ErrTypeConfig, message, cause)
}

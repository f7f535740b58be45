package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeKeywordNotFound ErrorType = "keyword_not_found"
	ErrorTypeFetchFailure    ErrorType = "fetch_failure"
	ErrorTypeCache           ErrorType = "cache"
	ErrorTypeAuth            ErrorType = "auth"
	ErrorTypeBrowser         ErrorType = "browser"
	ErrorTypeConfiguration   ErrorType = "configuration"
	ErrorTypeUnknown         ErrorType = "unknown"
)

// Error carries the error type alongside the message and an optional cause
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given type
func New(errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message}
}

// Newf creates an error of the given type with a formatted message
func Newf(errorType ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: errorType, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a type and message to an underlying cause
func Wrap(err error, errorType ErrorType, message string) *Error {
	return &Error{Type: errorType, Message: message, Err: err}
}

// TypeOf extracts the ErrorType from an error chain, ErrorTypeUnknown
// if no typed error is present
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsType reports whether the error chain contains a typed error of the
// given type
func IsType(err error, errorType ErrorType) bool {
	return TypeOf(err) == errorType
}

// IsRecoverable reports whether the run may continue after this error.
// Only per-date fetch failures are recoverable; everything else aborts
// the run.
func IsRecoverable(err error) bool {
	return TypeOf(err) == ErrorTypeFetchFailure
}

package errors

import "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message is the human readable error message.
	// E.g. "failed to decode command envelope".
	Message string

	// Code is the machine readable ErrorCode.
	Code ErrorCode

	// Field (optional) is the operation or field the error occurred on, if any.
	Field string

	// Err (optional) is the underlying cause.
	Err error
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message string, code ErrorCode, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// WithCause attaches the underlying error.
func (e *ErrorDetails) WithCause(err error) *ErrorDetails {
	e.Err = err
	return e
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ErrorDetails) Unwrap() error {
	return e.Err
}

// ErrorCodeEquals checks whether err, or any error it wraps, carries code.
func ErrorCodeEquals(err error, code ErrorCode) bool {
	var details *ErrorDetails
	if !errors.As(err, &details) {
		return false
	}

	return details.Code == code
}

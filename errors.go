package imagemap

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Validation errors
	ErrCodeInvalidPoint    Code = "INVALID_POINT"
	ErrCodeInvalidRegion   Code = "INVALID_REGION"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Collaborator failures
	ErrCodeImageLoad Code = "IMAGE_LOAD"

	// Editing errors
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("imagemap: %s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("imagemap: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// IsCode reports whether err, or any error it wraps, is an *Error with the
// given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

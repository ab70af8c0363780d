// Package errors provides structured error types for the agsi toolkit.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI and agent surfaces
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes map one-to-one onto the failure domains of the toolkit: encoding
// (SERIALIZATION/DESERIALIZATION), document rules (VALIDATION), geometry
// construction and canonicalization (GEOMETRY), the file boundary (IO_ERROR,
// JSON_PARSE) and named lookups (MODEL_NOT_FOUND, MATERIAL_NOT_FOUND).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeGeometry, "linestring needs at least 2 points, got %d", n)
//	if errors.Is(err, errors.ErrCodeGeometry) {
//	    // Handle geometry error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Encoding errors
	ErrCodeSerialization   Code = "SERIALIZATION"
	ErrCodeDeserialization Code = "DESERIALIZATION"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"

	// Document rule errors
	ErrCodeValidation Code = "VALIDATION"

	// Geometry construction/canonicalization errors
	ErrCodeGeometry Code = "GEOMETRY"

	// File boundary errors
	ErrCodeIO        Code = "IO_ERROR"
	ErrCodeJSONParse Code = "JSON_PARSE"

	// Lookup failures
	ErrCodeModelNotFound    Code = "MODEL_NOT_FOUND"
	ErrCodeMaterialNotFound Code = "MATERIAL_NOT_FOUND"
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
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

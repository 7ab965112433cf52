// Package errors provides structured error types for svg2cetz.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the conversion pipeline and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// Every error detected inside the conversion pipeline is fatal for the run:
// the pipeline returns it up the call chain and the CLI reports it and exits
// without printing partial output. The one recoverable condition — an empty
// selection — is not modeled as an error at all (see pipeline.Result.Empty).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedElement, "unsupported object selected: <%s>", tag)
//	if errors.Is(err, errors.ErrCodeUnsupportedElement) {
//	    // Handle unsupported element
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeBoundingBox, origErr, "inkscape query failed")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeParse        Code = "PARSE_ERROR"

	// Conversion errors (all fatal for the run)
	ErrCodeUnsupportedElement Code = "UNSUPPORTED_ELEMENT"
	ErrCodeUnsupportedPaint   Code = "UNSUPPORTED_PAINT"
	ErrCodeMalformedRect      Code = "MALFORMED_RECT"
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	// External collaborator errors
	ErrCodeBoundingBox Code = "BBOX_UNAVAILABLE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

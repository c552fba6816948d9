// Package errors provides the single structured error kind used by every
// pkgutils API client.
//
// Any failure talking to a package index or issue tracker is condensed into
// one *Error. There is rarely anything a caller can do about a specific
// upstream failure, so one type with a machine-readable [Code] is easier to
// handle than many. The original failure is kept as the cause so that
// errors.Is and errors.As still see through it.
//
// # Error Codes
//
//   - TRANSPORT_ERROR, HTTP_STATUS, CONTENT_TYPE: request failures
//   - DECODE_ERROR, SCHEMA_MISMATCH: response body failures
//   - PARSE_ERROR, INVALID_HASH, EMPTY_FIELD, NO_SOURCE_ARTIFACT: typed extraction failures
//   - AUTH_FAILED, CALLBACK_FAILED: issue-tracker failures
//   - INVALID_INPUT, CONFIG_ERROR, IO_ERROR, COMMAND_FAILED: local failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeEmptyField, "`%s` field is empty", name)
//	if errors.Is(err, errors.ErrCodeEmptyField) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "GET request failed")
package errors

import (
	"errors"
	"fmt"
)

// DefaultMessage replaces an empty message so that no error is ever blank.
const DefaultMessage = "An unknown API issue was encountered."

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Request errors
	ErrCodeTransport   Code = "TRANSPORT_ERROR"
	ErrCodeStatus      Code = "HTTP_STATUS"
	ErrCodeContentType Code = "CONTENT_TYPE"

	// Response body errors
	ErrCodeDecode Code = "DECODE_ERROR"
	ErrCodeSchema Code = "SCHEMA_MISMATCH"

	// Typed extraction errors
	ErrCodeParse       Code = "PARSE_ERROR"
	ErrCodeInvalidHash Code = "INVALID_HASH"
	ErrCodeEmptyField  Code = "EMPTY_FIELD"
	ErrCodeNoSource    Code = "NO_SOURCE_ARTIFACT"

	// Issue tracker errors
	ErrCodeAuth     Code = "AUTH_FAILED"
	ErrCodeCallback Code = "CALLBACK_FAILED"

	// Local errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeConfig       Code = "CONFIG_ERROR"
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeCommand      Code = "COMMAND_FAILED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message, never empty
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
		Message: message(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: message(format, args...),
		Cause:   cause,
	}
}

func message(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		return DefaultMessage
	}
	return msg
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

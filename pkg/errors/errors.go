// Package errors provides structured error types for kitshelf.
//
// Errors carry a machine-readable [Code] so the CLI, the HTTP API and the
// enrichment pipeline can classify failures without string matching.
//
// # Error Codes
//
//   - INVALID_*: catalog, config and input validation failures
//   - UNRESOLVABLE_REPOSITORY: a repo URL has no github.com/owner/repo shape
//   - REPOSITORY_NOT_FOUND: GitHub reports no such repository
//   - NETWORK_ERROR, RATE_LIMITED: transient fetch failures
//   - CACHE_PERSISTENCE: the stats cache slot could not be read or written
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnresolvableRepository, "cannot parse %q", url)
//	if errors.Is(err, errors.ErrCodeUnresolvableRepository) {
//	    // keep prior stats
//	}
//
//	err := errors.Wrap(errors.ErrCodeCachePersistence, origErr, "save slot %s", slot)
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
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidCatalog Code = "INVALID_CATALOG"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidURL     Code = "INVALID_URL"

	// Repository resolution errors
	ErrCodeUnresolvableRepository Code = "UNRESOLVABLE_REPOSITORY"
	ErrCodeRepositoryNotFound     Code = "REPOSITORY_NOT_FOUND"

	// Resource not found errors
	ErrCodeKitNotFound Code = "KIT_NOT_FOUND"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Storage errors
	ErrCodeCachePersistence Code = "CACHE_PERSISTENCE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// RateLimitedError provides additional information for rate-limited responses.
type RateLimitedError struct {
	RetryAfter int // Seconds to wait before retrying
	Message    string
}

// Error implements the error interface.
func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
	}
	return "rate limited"
}

// Code returns the error code for this error type.
func (e *RateLimitedError) Code() Code {
	return ErrCodeRateLimited
}

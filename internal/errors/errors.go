package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrHeap     = "HEAP"
	ErrGeometry = "GEOMETRY"
	ErrDisplay  = "DISPLAY"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewMemoryExhaustion reports that free heap dropped past the floor minus tolerance.
// It is never recovered in place; the caller restarts the process.
func NewMemoryExhaustion(free, floor, tolerance uint32) *Error {
	return &Error{
		Code:       ErrHeap,
		Message:    fmt.Sprintf("Out of heap: %d bytes free, floor is %d with %d tolerance", free, floor, tolerance),
		Suggestion: "The console restarts itself before storage gets corrupted",
	}
}

// NewGeometry creates a precondition error for display or buffer geometry.
func NewGeometry(message string) *Error {
	return &Error{
		Code:       ErrGeometry,
		Message:    message,
		Suggestion: "Fix the display section of bleconsole.yaml",
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var bcErr *Error
	if errors.As(err, &bcErr) {
		return bcErr.Code == code
	}
	return false
}

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrArgs      = "ARGS"      // bad flags or flag combinations
	ErrSelector  = "SELECTOR"  // malformed or invalid selector strings
	ErrSelection = "SELECTION" // selectors matched nothing or too much
	ErrSession   = "SESSION"   // refused to run in this session (RDP)
	ErrPlatform  = "PLATFORM"  // display enumeration or mutation failed
	ErrConfig    = "CONFIG"    // persisted config could not be written
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitPlatform = 3
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

// Wrap wraps an existing error with a message, defaulting to ErrPlatform code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrPlatform,
		Message: message,
		Cause:   err,
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

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", indent(e.Cause.Error())))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", indent(e.Suggestion)))
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
	var mdErr *Error
	if errors.As(err, &mdErr) {
		return mdErr.Code == code
	}
	return false
}

// ExitError carries an explicit process exit code through cobra's RunE.
// Used when the command already printed its own report and only the status matters.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an ExitError for the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// GetExitCode extracts the code from an ExitError, if err is one.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}

// ExitCode maps an error to the process exit code.
// Unknown errors are treated as platform failures.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	if code, ok := GetExitCode(err); ok {
		return code
	}

	var mdErr *Error
	if errors.As(err, &mdErr) {
		switch mdErr.Code {
		case ErrArgs, ErrSelector, ErrSelection, ErrSession:
			return ExitUsage
		default:
			return ExitPlatform
		}
	}

	return ExitPlatform
}

// indent keeps multi-line causes and suggestions aligned under the first line.
func indent(s string) string {
	return strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n  ")
}

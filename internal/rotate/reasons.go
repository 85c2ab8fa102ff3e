package rotate

import (
	stderrors "errors"
	"fmt"

	"github.com/rileyhilliard/mosdef/internal/display"
)

var reasons = map[int]string{
	display.CodeRestart:     "The computer must be restarted for the graphics mode to work.",
	display.CodeFailed:      "The display driver failed the specified graphics mode.",
	display.CodeBadMode:     "The graphics mode is not supported.",
	display.CodeNotUpdated:  "Unable to write settings to the registry.",
	display.CodeBadFlags:    "An invalid set of flags was passed in.",
	display.CodeBadParam:    "An invalid parameter was passed in.",
	display.CodeBadDualView: "The settings change was unsuccessful because the system is DualView capable.",
}

// ReasonFor maps a change result code to a readable explanation.
func ReasonFor(code int) string {
	if r, ok := reasons[code]; ok {
		return r
	}
	return "Unknown error occurred."
}

// PlatformError is a per-display mutation failure.
type PlatformError struct {
	Code   int
	Reason string
	Cause  error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Reason, e.Code)
}

func (e *PlatformError) Unwrap() error {
	return e.Cause
}

// Detail includes the provider's own message, for verbose output.
func (e *PlatformError) Detail() string {
	if e.Cause == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s: %v", e.Error(), e.Cause)
}

// NewPlatformError classifies a mutator error. Errors that carry no change
// code are reported as CodeFailed.
func NewPlatformError(err error) *PlatformError {
	code := display.CodeFailed
	var ce *display.ChangeError
	if stderrors.As(err, &ce) {
		code = ce.Code
	}
	return &PlatformError{Code: code, Reason: ReasonFor(code), Cause: err}
}

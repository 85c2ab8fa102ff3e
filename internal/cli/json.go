package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"

	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/selector"
	"gopkg.in/yaml.v3"
)

// Envelope wraps --format json and --format yaml output in a consistent
// structure for machine parsing.
type Envelope struct {
	Success bool        `json:"success" yaml:"success"`
	Data    interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty" yaml:"error,omitempty"`
}

// ErrorInfo provides structured error information for machine parsing.
type ErrorInfo struct {
	Code       string      `json:"code" yaml:"code"`
	Message    string      `json:"message" yaml:"message"`
	Suggestion string      `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeInvalidArgs     = "INVALID_ARGS"
	ErrCodeInvalidSelector = "INVALID_SELECTOR"
	ErrCodeNoMatch         = "NO_MATCH"
	ErrCodeAmbiguous       = "AMBIGUOUS"
	ErrCodeRemoteSession   = "REMOTE_SESSION"
	ErrCodePlatform        = "PLATFORM_FAILED"
	ErrCodeConfigWrite     = "CONFIG_WRITE_FAILED"
	ErrCodeUnknown         = "UNKNOWN"
)

// WriteSuccess writes a successful response in the given format.
func WriteSuccess(w io.Writer, format string, data interface{}) error {
	return writeEnvelope(w, format, Envelope{Success: true, Data: data})
}

// WriteFromError converts a Go error to an error response in the given format.
func WriteFromError(w io.Writer, format string, err error) error {
	return writeEnvelope(w, format, Envelope{Success: false, Error: ErrorToInfo(err)})
}

// writeEnvelope writes the envelope with consistent formatting.
func writeEnvelope(w io.Writer, format string, env Envelope) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(env); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// SuggestionOutput lists the selectors that pick one display.
type SuggestionOutput struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Selectors []string `json:"selectors" yaml:"selectors"`
}

// ErrorToInfo converts a Go error to an ErrorInfo with appropriate code mapping.
func ErrorToInfo(err error) *ErrorInfo {
	if err == nil {
		return nil
	}

	var mdErr *errors.Error
	if !stderrors.As(err, &mdErr) {
		return &ErrorInfo{
			Code:    ErrCodeUnknown,
			Message: err.Error(),
		}
	}

	info := &ErrorInfo{
		Code:       mapErrorCode(mdErr),
		Message:    mdErr.Message,
		Suggestion: mdErr.Suggestion,
	}
	if s := suggestionsOf(err); len(s) > 0 {
		out := make([]SuggestionOutput, len(s))
		for i, sg := range s {
			out[i] = SuggestionOutput{ID: sg.Display.ID, Name: sg.Display.Name, Selectors: sg.Selectors}
		}
		info.Details = map[string]interface{}{"suggestions": out}
	}
	return info
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(e *errors.Error) string {
	switch e.Code {
	case errors.ErrArgs:
		return ErrCodeInvalidArgs
	case errors.ErrSelector:
		return ErrCodeInvalidSelector
	case errors.ErrSelection:
		var amb *selector.AmbiguousError
		if stderrors.As(e, &amb) {
			return ErrCodeAmbiguous
		}
		return ErrCodeNoMatch
	case errors.ErrSession:
		return ErrCodeRemoteSession
	case errors.ErrPlatform:
		return ErrCodePlatform
	case errors.ErrConfig:
		return ErrCodeConfigWrite
	}
	return ErrCodeUnknown
}

// suggestionsOf returns the selector suggestions carried by a selection error.
func suggestionsOf(err error) []selector.Suggestion {
	var noMatch *selector.NoMatchError
	if stderrors.As(err, &noMatch) {
		return noMatch.Suggestions()
	}
	var amb *selector.AmbiguousError
	if stderrors.As(err, &amb) {
		return amb.Suggestions()
	}
	return nil
}

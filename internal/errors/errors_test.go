package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrArgs,
		ErrSelector,
		ErrSelection,
		ErrSession,
		ErrPlatform,
		ErrConfig,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "args error",
			code:       ErrArgs,
			message:    "--only can't be combined with --include",
			suggestion: "Use --only by itself, or --include/--exclude together.",
		},
		{
			name:       "selector error",
			code:       ErrSelector,
			message:    "Invalid selector 'M0'",
			suggestion: "Monitor IDs start at M1",
		},
		{
			name:       "platform error",
			code:       ErrPlatform,
			message:    "Couldn't enumerate displays",
			suggestion: "Is xrandr installed?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrArgs, "No action given", "Pass landscape, portrait, or toggle"),
			expectedParts: []string{"✗", "No action given", "Pass landscape, portrait, or toggle"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrPlatform, "Rotation failed", ""),
			expectedParts: []string{"Rotation failed"},
		},
		{
			name:          "multi-line suggestion is indented",
			err:           New(ErrSelection, "No displays match", "M1  name:\"DELL\"\nM2  name:\"LG\""),
			expectedParts: []string{"\n  M2  name:\"LG\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
		})
	}
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("xrandr: command not found"),
		ErrPlatform,
		"Couldn't enumerate displays",
		"Install xrandr or run under an X11 session",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "✗"))
	assert.Contains(t, lines[0], "Couldn't enumerate displays")
	assert.Contains(t, err.Error(), "xrandr: command not found")
}

func TestWrap(t *testing.T) {
	cause := errors.New("bad mode")
	wrapped := Wrap(cause, "Rotation failed")

	assert.Equal(t, ErrPlatform, wrapped.Code, "Wrap should default to ErrPlatform code")
	assert.Equal(t, cause, wrapped.Cause)
	assert.True(t, errors.Is(wrapped, cause))
}

func TestIsCode(t *testing.T) {
	err := New(ErrSelector, "bad selector", "")

	assert.True(t, IsCode(err, ErrSelector))
	assert.False(t, IsCode(err, ErrArgs))
	assert.True(t, IsCode(fmt.Errorf("context: %w", err), ErrSelector))
	assert.False(t, IsCode(errors.New("standard error"), ErrSelector))
	assert.False(t, IsCode(nil, ErrSelector))
}

func TestExitError(t *testing.T) {
	err := NewExitError(3)
	assert.Equal(t, 3, err.Code)
	assert.Equal(t, "exit code 3", err.Error())
}

func TestGetExitCode(t *testing.T) {
	code, ok := GetExitCode(NewExitError(2))
	assert.True(t, ok)
	assert.Equal(t, 2, code)

	code, ok = GetExitCode(errors.New("plain"))
	assert.False(t, ok)
	assert.Zero(t, code)

	_, ok = GetExitCode(nil)
	assert.False(t, ok)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil is success", err: nil, want: ExitOK},
		{name: "args error", err: New(ErrArgs, "x", ""), want: ExitUsage},
		{name: "selector error", err: New(ErrSelector, "x", ""), want: ExitUsage},
		{name: "selection error", err: New(ErrSelection, "x", ""), want: ExitUsage},
		{name: "session error", err: New(ErrSession, "x", ""), want: ExitUsage},
		{name: "platform error", err: New(ErrPlatform, "x", ""), want: ExitPlatform},
		{name: "config error", err: New(ErrConfig, "x", ""), want: ExitPlatform},
		{name: "explicit exit error", err: NewExitError(2), want: 2},
		{name: "wrapped structured error", err: fmt.Errorf("ctx: %w", New(ErrArgs, "x", "")), want: ExitUsage},
		{name: "plain error", err: errors.New("boom"), want: ExitPlatform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

package cli

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_NoArgumentsPrintsHelp(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run())

	out := h.out.String()
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "mosdef portrait --only M2")
	assert.Contains(t, out, "--revert-seconds")
	assert.Equal(t, 0, h.fake.CallCount())
}

func TestRoot_Version(t *testing.T) {
	withVersion(t, "1.4.0", "abc1234", "2026-02-01")
	h := newHarness(t)

	require.NoError(t, h.run("--version"))
	assert.Equal(t, "mosdef v1.4.0\n", h.out.String())
}

func TestRoot_VersionCommand(t *testing.T) {
	withVersion(t, "1.4.0", "abc1234", "2026-02-01")
	h := newHarness(t)

	require.NoError(t, h.run("version", "--short"))
	assert.Equal(t, "1.4.0\n", h.out.String())
}

func TestRoot_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"sideways"}},
		{"two commands", []string{"toggle", "portrait"}},
		{"unknown flag", []string{"toggle", "--sideways"}},
		{"missing flag value", []string{"toggle", "--only"}},
		{"bad revert seconds", []string{"toggle", "--revert-seconds", "soon"}},
		{"negative revert seconds", []string{"toggle", "--revert-seconds", "-3"}},
		{"unknown format", []string{"list", "--format", "xml"}},
		{"only with include", []string{"toggle", "--only", "M1", "--include", "M2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			err := h.run(tt.args...)

			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrArgs), "got %v", err)
			assert.Equal(t, errors.ExitUsage, errors.ExitCode(err))
			assert.Equal(t, 0, h.fake.CallCount())
		})
	}
}

func TestRoot_Completion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{"bash", "# bash completion"},
		{"zsh", "#compdef mosdef"},
		{"fish", "complete -c mosdef"},
		{"powershell", "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			h := newHarness(t)
			require.NoError(t, h.run("completion", tt.shell))
			assert.Contains(t, h.out.String(), tt.want)
		})
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "structured error",
			err:  errors.New(errors.ErrArgs, "Bad flags", "Try --help."),
			want: "✗ Bad flags\n\n  Try --help.\n",
		},
		{
			name: "plain error gets a newline",
			err:  stderrors.New("boom"),
			want: "boom\n",
		},
		{
			name: "exit status only",
			err:  errors.NewExitError(3),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

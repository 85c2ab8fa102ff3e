package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	displaytesting "github.com/rileyhilliard/mosdef/internal/display/testing"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestDoctor_AllClear(t *testing.T) {
	h := newHarness(t)
	h.env["DISPLAY"] = ":0"

	require.NoError(t, h.run("doctor"))

	out := h.out.String()
	assert.Contains(t, out, "ENVIRONMENT")
	assert.Contains(t, out, "X11 display :0")
	assert.Contains(t, out, "3 displays: M1 DELL U2720Q, M2 DELL U3421W, M3 LG HDR 4K")
	assert.Contains(t, out, "Everything looks good")
	assert.NotContains(t, out, "--fix")
}

func TestDoctor_FailureExitsWithPlatformStatus(t *testing.T) {
	h := newHarness(t)
	h.env["SESSIONNAME"] = "RDP-Tcp#1"

	err := h.run("doctor")

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, errors.ExitPlatform, code)
	assert.Contains(t, h.out.String(), "No display server")
	assert.Contains(t, h.out.String(), "pass --force-rdp to override")
	assert.Contains(t, h.out.String(), "2 issues found")
}

func TestDoctor_SuggestsAndAppliesFix(t *testing.T) {
	h := newHarness(t)
	h.env["DISPLAY"] = ":0"
	writeConfig(t, h.cfg, `{"default_selector":"left-one","last_action":null}`)

	err := h.run("doctor")
	require.Error(t, err)
	assert.Contains(t, h.out.String(), "Run with --fix")

	h.out.Reset()
	require.NoError(t, h.run("doctor", "--fix"))
	assert.Contains(t, h.out.String(), "Everything looks good")
	assert.Nil(t, h.persisted(t).DefaultSelector)
}

func TestDoctor_JSON(t *testing.T) {
	h := newHarness(t)
	h.env["DISPLAY"] = ":0"
	h.env["WAYLAND_DISPLAY"] = "wayland-0"

	require.NoError(t, h.run("--format", "json", "doctor"), "warnings do not fail")

	var env struct {
		Success bool         `json:"success"`
		Data    DoctorOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &env))
	assert.True(t, env.Success)
	require.Len(t, env.Data.Categories, 3)
	assert.Equal(t, "ENVIRONMENT", env.Data.Categories[0].Name)
	assert.Equal(t, 1, env.Data.Summary.Warn)
	assert.False(t, env.Data.Summary.AllClear)
}

func TestDoctor_ToolCheckUsesProviderVersion(t *testing.T) {
	h := newHarness(t)
	h.env["DISPLAY"] = ":0"
	h.app.Provider = versionedProvider{h.fake}

	require.NoError(t, h.run("doctor"))
	assert.Contains(t, h.out.String(), "xrandr 1.5.2")
}

type versionedProvider struct {
	*displaytesting.FakeProvider
}

func (versionedProvider) Version(ctx context.Context) (string, error) {
	return "1.5.2", nil
}

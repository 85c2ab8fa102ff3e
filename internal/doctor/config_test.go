package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, content string) *config.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.FileName)
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	}
	return config.NewStore(path, nil)
}

func TestConfigFileCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    CheckStatus
		fixable bool
	}{
		{name: "missing", want: StatusPass},
		{name: "valid", content: `{"default_selector":"M1","last_action":null}`, want: StatusPass},
		{name: "corrupt", content: "{oops", want: StatusFail, fixable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ConfigFileCheck{Store: newStore(t, tt.content)}
			r := c.Run(context.Background())
			assert.Equal(t, tt.want, r.Status)
			assert.Equal(t, tt.fixable, r.Fixable)
		})
	}
}

func TestConfigFileCheck_Fix(t *testing.T) {
	store := newStore(t, "{oops")
	c := &ConfigFileCheck{Store: store}

	require.NoError(t, c.Fix())

	assert.Equal(t, StatusPass, c.Run(context.Background()).Status)
	_, exists, err := store.Inspect()
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDefaultSelectorCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    CheckStatus
	}{
		{name: "none", want: StatusPass},
		{name: "valid", content: `{"default_selector":"name:DELL,M3","last_action":null}`, want: StatusPass},
		{name: "invalid", content: `{"default_selector":"left-one","last_action":null}`, want: StatusFail},
		{name: "unreadable config", content: "{oops", want: StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &DefaultSelectorCheck{Store: newStore(t, tt.content)}
			assert.Equal(t, tt.want, c.Run(context.Background()).Status)
		})
	}
}

func TestDefaultSelectorCheck_FixClearsInvalid(t *testing.T) {
	store := newStore(t, `{"default_selector":"left-one","last_action":"toggle"}`)
	c := &DefaultSelectorCheck{Store: store}

	require.NoError(t, c.Fix())

	p, _, err := store.Inspect()
	require.NoError(t, err)
	assert.Nil(t, p.DefaultSelector)
	require.NotNil(t, p.LastAction, "other fields survive")
	assert.Equal(t, "toggle", *p.LastAction)
}

package session

import (
	"testing"

	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) Getenv {
	return func(k string) string { return vars[k] }
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		name    string
		session string
		want    bool
	}{
		{"rdp", "RDP-Tcp#3", true},
		{"console", "Console", false},
		{"unset", "", false},
		{"lowercase is not rdp", "rdp-tcp#1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(env(map[string]string{"SESSIONNAME": tt.session})))
		})
	}
}

func TestCheck(t *testing.T) {
	rdp := env(map[string]string{"SESSIONNAME": "RDP-Tcp#0"})

	err := Check(rdp, false)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrSession))
	assert.Equal(t, errors.ExitUsage, errors.ExitCode(err))
	assert.Contains(t, err.Error(), "--force-rdp")

	assert.NoError(t, Check(rdp, true))
	assert.NoError(t, Check(env(nil), false))
}

package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotation(t *testing.T) {
	tests := []struct {
		in        Rotation
		valid     bool
		normal    Rotation
		portrait  bool
		formatted string
	}{
		{in: 0, valid: true, normal: 0, portrait: false, formatted: "0°"},
		{in: 90, valid: true, normal: 90, portrait: true, formatted: "90°"},
		{in: 180, valid: true, normal: 180, portrait: false, formatted: "180°"},
		{in: 270, valid: true, normal: 270, portrait: true, formatted: "270°"},
		{in: 45, valid: false, normal: 0, portrait: false, formatted: "45°"},
		{in: -90, valid: false, normal: 0, portrait: false, formatted: "-90°"},
	}

	for _, tt := range tests {
		t.Run(tt.formatted, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.in.Valid())
			assert.Equal(t, tt.normal, tt.in.Normalize())
			assert.Equal(t, tt.portrait, tt.in.IsPortrait())
			assert.Equal(t, tt.formatted, tt.in.String())
		})
	}
}

func TestParseConnectionType(t *testing.T) {
	for _, name := range ConnectionNames() {
		c, ok := ParseConnectionType(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.String())
	}

	c, ok := ParseConnectionType("hdmi")
	assert.True(t, ok)
	assert.Equal(t, ConnHDMI, c)

	_, ok = ParseConnectionType("THUNDERBOLT")
	assert.False(t, ok)

	assert.Len(t, ConnectionNames(), 12)
}

func TestConnectionFromOutputName(t *testing.T) {
	tests := map[string]ConnectionType{
		"HDMI-1":          ConnHDMI,
		"HDMI-A-0":        ConnHDMI,
		"DP-2":            ConnDisplayPort,
		"DP-1-1":          ConnDisplayPort,
		"eDP-1":           ConnInternal,
		"LVDS1":           ConnInternal,
		"DVI-I-1":         ConnDVI,
		"VGA-0":           ConnVGA,
		"Virtual-1":       ConnVirtual,
		"XWAYLAND0":       ConnVirtual,
		"\\\\.\\DISPLAY1": ConnOther,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, ConnectionFromOutputName(name))
		})
	}
}

func TestChangeError(t *testing.T) {
	err := &ChangeError{Code: CodeBadMode, Detail: "mode not supported"}
	assert.Contains(t, err.Error(), "-2")
	assert.Contains(t, err.Error(), "mode not supported")

	bare := &ChangeError{Code: CodeFailed}
	assert.Equal(t, "display change failed (code -1)", bare.Error())
}

func TestResolution(t *testing.T) {
	d := Display{Width: 3840, Height: 2160}
	assert.Equal(t, "3840x2160", d.Resolution())
}

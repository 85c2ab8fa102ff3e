package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathKey(t *testing.T) {
	k := PathKey(`\\.\DISPLAY1`)
	assert.Len(t, k, PathKeyLength)
	assert.Regexp(t, `^[0-9a-f]+$`, k)
	assert.Equal(t, k, PathKey(`\\.\DISPLAY1`), "path key should be stable")
	assert.NotEqual(t, k, PathKey(`\\.\DISPLAY2`))
}

func TestAssign_OrdersLeftToRight(t *testing.T) {
	raw := []Display{
		{Name: "right", DevicePath: "DP-1", X: 3840},
		{Name: "left", DevicePath: "HDMI-1", X: -1920},
		{Name: "middle", DevicePath: "eDP-1", X: 0},
	}

	got := Assign(raw)

	require.Len(t, got, 3)
	assert.Equal(t, "left", got[0].Name)
	assert.Equal(t, "M1", got[0].ID)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "middle", got[1].Name)
	assert.Equal(t, "M2", got[1].ID)
	assert.Equal(t, "right", got[2].Name)
	assert.Equal(t, "M3", got[2].ID)
	assert.Equal(t, PathKey("DP-1"), got[2].PathKey)

	// input untouched
	assert.Empty(t, raw[0].ID)
}

func TestAssign_TieBreaks(t *testing.T) {
	raw := []Display{
		{Name: "b", DevicePath: "DP-2", X: 0, Y: 0},
		{Name: "bottom", DevicePath: "DP-3", X: 0, Y: 1080},
		{Name: "a", DevicePath: "DP-1", X: 0, Y: 0},
	}

	got := Assign(raw)

	assert.Equal(t, []string{"a", "b", "bottom"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestSortByIndexAndFind(t *testing.T) {
	ds := Assign([]Display{
		{Name: "a", DevicePath: "A", X: 0},
		{Name: "b", DevicePath: "B", X: 100},
		{Name: "c", DevicePath: "C", X: 200},
	})
	shuffled := []Display{ds[2], ds[0], ds[1]}

	sorted := SortByIndex(shuffled)
	assert.Equal(t, "M1", sorted[0].ID)
	assert.Equal(t, "M3", sorted[2].ID)
	assert.Equal(t, "M3", shuffled[0].ID, "SortByIndex must not reorder its input")

	d, ok := FindByID(ds, "M2")
	assert.True(t, ok)
	assert.Equal(t, "b", d.Name)

	_, ok = FindByID(ds, "M9")
	assert.False(t, ok)
}

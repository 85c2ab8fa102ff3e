package display

import (
	"crypto/sha256"
	"fmt"
	"sort"
)

// PathKeyLength is the number of hex characters kept from the path hash.
const PathKeyLength = 8

// PathKey derives the short stable key for a device path.
func PathKey(devicePath string) string {
	h := sha256.Sum256([]byte(devicePath))
	return fmt.Sprintf("%x", h[:])[:PathKeyLength]
}

// Assign orders raw displays left to right and fills in ID, Index and PathKey.
// Ties on X are broken by Y, then by device path, so the result does not
// depend on the order the platform reported them in.
// The input slice is not modified.
func Assign(raw []Display) []Display {
	out := make([]Display, len(raw))
	copy(out, raw)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].DevicePath < out[j].DevicePath
	})

	for i := range out {
		out[i].Index = i + 1
		out[i].ID = fmt.Sprintf("M%d", i+1)
		out[i].PathKey = PathKey(out[i].DevicePath)
	}
	return out
}

// SortByIndex returns a copy of displays in ascending ID order.
func SortByIndex(displays []Display) []Display {
	out := make([]Display, len(displays))
	copy(out, displays)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Index < out[j].Index
	})
	return out
}

// FindByID looks up a display by its M# identifier.
func FindByID(displays []Display, id string) (Display, bool) {
	for _, d := range displays {
		if d.ID == id {
			return d, true
		}
	}
	return Display{}, false
}

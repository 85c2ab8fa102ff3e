// Package display models the monitors of a desktop session and the
// collaborator interface used to enumerate and rotate them.
//
// Display records are rebuilt on every invocation. Only the path key and
// selector strings that reference it outlive the process.
package display

import (
	"context"
	"fmt"
	"strings"
)

// Rotation is a display orientation in degrees clockwise from landscape.
type Rotation int

// Valid rotations.
const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Valid reports whether r is one of 0/90/180/270.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// Normalize maps unknown raw values to 0.
func (r Rotation) Normalize() Rotation {
	if !r.Valid() {
		return Rotate0
	}
	return r
}

// IsPortrait is true for 90 and 270, where width and height are swapped.
func (r Rotation) IsPortrait() bool {
	return r == Rotate90 || r == Rotate270
}

func (r Rotation) String() string {
	return fmt.Sprintf("%d°", int(r))
}

// ConnectionType is the physical or logical link a display is attached through.
type ConnectionType int

// Connection types, in the order they are listed to users.
const (
	ConnHDMI ConnectionType = iota
	ConnDisplayPort
	ConnDVI
	ConnVGA
	ConnInternal
	ConnSVideo
	ConnComposite
	ConnComponent
	ConnMiracast
	ConnIndirect
	ConnVirtual
	ConnOther
)

var connectionNames = []string{
	ConnHDMI:        "HDMI",
	ConnDisplayPort: "DISPLAYPORT",
	ConnDVI:         "DVI",
	ConnVGA:         "VGA",
	ConnInternal:    "INTERNAL",
	ConnSVideo:      "SVIDEO",
	ConnComposite:   "COMPOSITE",
	ConnComponent:   "COMPONENT",
	ConnMiracast:    "MIRACAST",
	ConnIndirect:    "INDIRECT",
	ConnVirtual:     "VIRTUAL",
	ConnOther:       "OTHER",
}

func (c ConnectionType) String() string {
	if c < 0 || int(c) >= len(connectionNames) {
		return connectionNames[ConnOther]
	}
	return connectionNames[c]
}

// ConnectionNames returns the selector vocabulary for conn: selectors.
func ConnectionNames() []string {
	out := make([]string, len(connectionNames))
	copy(out, connectionNames)
	return out
}

// ParseConnectionType matches a token against the vocabulary, ignoring case.
func ParseConnectionType(s string) (ConnectionType, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for i, name := range connectionNames {
		if name == upper {
			return ConnectionType(i), true
		}
	}
	return ConnOther, false
}

// ConnectionFromOutputName guesses the connection type from an output name
// such as "HDMI-1", "DP-2", "eDP-1" or "DVI-I-1".
func ConnectionFromOutputName(name string) ConnectionType {
	upper := strings.ToUpper(name)
	switch {
	case strings.HasPrefix(upper, "HDMI"):
		return ConnHDMI
	case strings.HasPrefix(upper, "EDP"), strings.HasPrefix(upper, "LVDS"), strings.HasPrefix(upper, "DSI"):
		return ConnInternal
	case strings.HasPrefix(upper, "DP"), strings.HasPrefix(upper, "DISPLAYPORT"):
		return ConnDisplayPort
	case strings.HasPrefix(upper, "DVI"):
		return ConnDVI
	case strings.HasPrefix(upper, "VGA"):
		return ConnVGA
	case strings.HasPrefix(upper, "S-VIDEO"), strings.HasPrefix(upper, "SVIDEO"):
		return ConnSVideo
	case strings.HasPrefix(upper, "COMPOSITE"):
		return ConnComposite
	case strings.HasPrefix(upper, "COMPONENT"):
		return ConnComponent
	case strings.HasPrefix(upper, "VIRTUAL"), strings.HasPrefix(upper, "XWAYLAND"):
		return ConnVirtual
	default:
		return ConnOther
	}
}

// Display is one active monitor as seen during a single enumeration.
type Display struct {
	ID         string // "M1".."Mn", assigned left to right
	Index      int    // 1-based position matching ID
	Name       string // friendly name
	DevicePath string // platform device path or output name
	PathKey    string // short stable hash of DevicePath
	Connection ConnectionType
	Rotation   Rotation
	Width      int
	Height     int
	X          int // desktop position, used for ordering
	Y          int
}

// Resolution renders "WIDTHxHEIGHT".
func (d Display) Resolution() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Mutator applies a new orientation to one display.
type Mutator interface {
	ApplyRotation(ctx context.Context, d Display, r Rotation, width, height int) error
}

// Provider enumerates active displays and applies rotations to them.
type Provider interface {
	Mutator
	Enumerate(ctx context.Context) ([]Display, error)
}

// Change result codes reported by providers. The values follow the
// platform display-change API so they can be passed through untouched.
const (
	CodeSuccessful  = 0
	CodeRestart     = 1
	CodeFailed      = -1
	CodeBadMode     = -2
	CodeNotUpdated  = -3
	CodeBadFlags    = -4
	CodeBadParam    = -5
	CodeBadDualView = -6
)

// ChangeError is returned by a Mutator when the platform rejects a change.
type ChangeError struct {
	Code   int
	Detail string
}

func (e *ChangeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("display change failed (code %d): %s", e.Code, e.Detail)
	}
	return fmt.Sprintf("display change failed (code %d)", e.Code)
}

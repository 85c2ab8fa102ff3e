// Package rotate plans and applies orientation changes to a batch of displays.
package rotate

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/display"
)

// Action is the orientation command given on the command line.
type Action int

const (
	Landscape Action = iota
	Portrait
	Toggle
)

func (a Action) String() string {
	switch a {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	case Toggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Actions lists the accepted action words.
func Actions() []string {
	return []string{Landscape.String(), Portrait.String(), Toggle.String()}
}

// ParseAction accepts "landscape", "portrait" or "toggle" in any case.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "landscape":
		return Landscape, nil
	case "portrait":
		return Portrait, nil
	case "toggle":
		return Toggle, nil
	}
	return 0, fmt.Errorf("unknown action '%s' (expected one of: %s)", s, strings.Join(Actions(), ", "))
}

// Target computes the orientation a display should end up in.
//
// Toggle depends on the current orientation: 0→90, 90→0, 180→90, 270→0.
// Upside-down orientations land on the primary pair instead of flipping by
// 90 degrees, and unknown values are treated as landscape.
func Target(current display.Rotation, a Action) display.Rotation {
	switch a {
	case Landscape:
		return display.Rotate0
	case Portrait:
		return display.Rotate90
	}

	switch current {
	case display.Rotate90, display.Rotate270:
		return display.Rotate0
	default:
		return display.Rotate90
	}
}

// NeedsSwap is true when exactly one side of the change is portrait.
func NeedsSwap(from, to display.Rotation) bool {
	return from.IsPortrait() != to.IsPortrait()
}

// Intent is the planned change for one display.
type Intent struct {
	Display display.Display
	From    display.Rotation
	To      display.Rotation
	Width   int
	Height  int
	Swap    bool
}

// NoOp is true when the display is already in the target orientation.
func (i Intent) NoOp() bool {
	return i.From == i.To
}

// Plan computes one intent per target, in target order.
func Plan(targets []display.Display, a Action) []Intent {
	intents := make([]Intent, len(targets))
	for idx, d := range targets {
		from := d.Rotation
		to := Target(from, a)
		in := Intent{Display: d, From: from, To: to, Width: d.Width, Height: d.Height}
		if to != from && NeedsSwap(from, to) {
			in.Swap = true
			in.Width, in.Height = d.Height, d.Width
		}
		intents[idx] = in
	}
	return intents
}

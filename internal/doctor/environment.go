package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/mosdef/internal/session"
)

// ToolCheck verifies the display tool is installed and can reach the
// display server.
type ToolCheck struct {
	Tool    string
	Version func(ctx context.Context) (string, error)
}

func (c *ToolCheck) Name() string     { return "tool_" + c.Tool }
func (c *ToolCheck) Category() string { return CategoryEnvironment }

func (c *ToolCheck) Run(ctx context.Context) CheckResult {
	v, err := c.Version(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s is not usable: %v", c.Tool, err),
			Suggestion: fmt.Sprintf("Install %s (apt install x11-xserver-utils, dnf install xrandr) and run mosdef inside your desktop session", c.Tool),
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s %s", c.Tool, v),
	}
}

func (c *ToolCheck) Fix() error {
	return nil // System package installation is out of scope
}

// DisplayServerCheck looks at the variables that point clients at a
// display server.
type DisplayServerCheck struct {
	Getenv session.Getenv
}

func (c *DisplayServerCheck) Name() string     { return "display_server" }
func (c *DisplayServerCheck) Category() string { return CategoryEnvironment }

func (c *DisplayServerCheck) Run(ctx context.Context) CheckResult {
	x11 := c.Getenv("DISPLAY")
	wayland := c.Getenv("WAYLAND_DISPLAY")

	switch {
	case x11 == "" && wayland == "":
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No display server: DISPLAY is not set",
			Suggestion: "Run mosdef from a terminal inside your desktop session, or export DISPLAY=:0",
		}
	case wayland != "":
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Wayland session (%s)", wayland),
			Suggestion: "xrandr only controls XWayland outputs here; rotate native outputs with your compositor's tools",
		}
	default:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("X11 display %s", x11),
		}
	}
}

func (c *DisplayServerCheck) Fix() error {
	return nil
}

// RemoteSessionCheck reports whether rotations would be refused because
// of a Remote Desktop session.
type RemoteSessionCheck struct {
	Getenv session.Getenv
	Force  bool
}

func (c *RemoteSessionCheck) Name() string     { return "remote_session" }
func (c *RemoteSessionCheck) Category() string { return CategoryEnvironment }

func (c *RemoteSessionCheck) Run(ctx context.Context) CheckResult {
	if !session.IsRemote(c.Getenv) {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Local session",
		}
	}
	if c.Force {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Remote Desktop session, allowed by --force-rdp",
		}
	}
	return CheckResult{
		Name:       c.Name(),
		Status:     StatusFail,
		Message:    fmt.Sprintf("Remote Desktop session (%s)", c.Getenv("SESSIONNAME")),
		Suggestion: "Rotations are refused here; pass --force-rdp to override",
	}
}

func (c *RemoteSessionCheck) Fix() error {
	return nil
}

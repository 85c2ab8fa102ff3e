// Package session detects interactive sessions that display changes
// should not be made from.
package session

import (
	"os"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/errors"
)

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(string) string

// IsRemote reports whether the process runs inside a Remote Desktop session.
func IsRemote(getenv Getenv) bool {
	if getenv == nil {
		getenv = os.Getenv
	}
	return strings.HasPrefix(getenv("SESSIONNAME"), "RDP-")
}

// Check refuses remote sessions unless force is set.
func Check(getenv Getenv, force bool) error {
	if force || !IsRemote(getenv) {
		return nil
	}
	return errors.New(errors.ErrSession,
		"mosdef can't run under an RDP session",
		"Rotating the remote session's virtual display can leave it unusable.\nUse --force-rdp to override.")
}

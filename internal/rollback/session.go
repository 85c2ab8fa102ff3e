// Package rollback restores displays to their previous orientation unless
// the user confirms a change in time.
package rollback

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/logger"
)

// Entry is the pre-change state of one display.
type Entry struct {
	Display  display.Display
	Rotation display.Rotation
	Width    int
	Height   int
}

// Snapshot holds an Entry for every display of a batch.
type Snapshot struct {
	Entries []Entry
}

// Capture records the current state of every target, including displays
// that will not change.
func Capture(targets []display.Display) Snapshot {
	entries := make([]Entry, len(targets))
	for i, d := range targets {
		entries[i] = Entry{Display: d, Rotation: d.Rotation, Width: d.Width, Height: d.Height}
	}
	return Snapshot{Entries: entries}
}

// State of a rollback session.
type State int

const (
	Applied State = iota
	Confirmed
	Reverting
	Reverted
	RevertFailed
)

func (s State) String() string {
	switch s {
	case Applied:
		return "applied"
	case Confirmed:
		return "confirmed"
	case Reverting:
		return "reverting"
	case Reverted:
		return "reverted"
	case RevertFailed:
		return "revert_failed"
	default:
		return "unknown"
	}
}

// Terminal is true once the session can no longer change state.
func (s State) Terminal() bool {
	return s == Confirmed || s == Reverted || s == RevertFailed
}

// Failure is a display that could not be restored.
type Failure struct {
	Display display.Display
	Err     error
}

// TransitionError is returned when an operation doesn't fit the current state.
type TransitionError struct {
	From State
	Op   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("can't %s a rollback session that is %s", e.Op, e.From)
}

// Session guards one applied batch.
type Session struct {
	mutator  display.Mutator
	snapshot Snapshot
	log      logger.Logger

	state  State
	failed []Failure
}

// NewSession starts a session in the Applied state.
func NewSession(m display.Mutator, snap Snapshot, log logger.Logger) *Session {
	if log == nil {
		log = logger.Noop()
	}
	return &Session{mutator: m, snapshot: snap, log: log, state: Applied}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Failed lists the displays a revert could not restore.
func (s *Session) Failed() []Failure {
	return s.failed
}

// Confirm keeps the applied changes.
func (s *Session) Confirm() error {
	if s.state != Applied {
		return &TransitionError{From: s.state, Op: "confirm"}
	}
	s.state = Confirmed
	s.log.Debug("Changes confirmed")
	return nil
}

// Revert restores every snapshot entry. A display that fails to restore
// does not stop the others.
func (s *Session) Revert(ctx context.Context) error {
	if s.state != Applied {
		return &TransitionError{From: s.state, Op: "revert"}
	}
	s.state = Reverting

	for _, e := range s.snapshot.Entries {
		s.log.Debug("Rolling back %s (%s) to %s", e.Display.ID, e.Display.DevicePath, e.Rotation)
		if err := s.mutator.ApplyRotation(ctx, e.Display, e.Rotation, e.Width, e.Height); err != nil {
			s.log.Debug("Failed to roll back %s: %v", e.Display.ID, err)
			s.failed = append(s.failed, Failure{Display: e.Display, Err: err})
		}
	}

	if len(s.failed) > 0 {
		s.state = RevertFailed
	} else {
		s.state = Reverted
	}
	return nil
}

// Policy decides how a session is concluded.
type Policy struct {
	NoConfirm bool
	Timeout   time.Duration
	Prompt    string
}

// Run concludes the session: confirm immediately with NoConfirm, otherwise
// ask the confirmer and revert on anything but Keep.
func (s *Session) Run(ctx context.Context, c Confirmer, p Policy) (State, error) {
	if p.NoConfirm {
		err := s.Confirm()
		return s.state, err
	}

	prompt := p.Prompt
	if prompt == "" {
		prompt = "Keep these display settings?"
	}

	decision, err := c.Confirm(ctx, prompt, p.Timeout)
	if err != nil {
		s.log.Warn("Confirmation failed, reverting: %v", err)
		decision = Decline
	}

	if decision == Keep {
		err := s.Confirm()
		return s.state, err
	}

	s.log.Debug("Decision %s, reverting", decision)
	// ctx may already be cancelled by an interrupt; the restore still runs.
	err = s.Revert(context.WithoutCancel(ctx))
	return s.state, err
}

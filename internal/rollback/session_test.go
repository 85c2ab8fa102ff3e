package rollback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rileyhilliard/mosdef/internal/display"
	displaytesting "github.com/rileyhilliard/mosdef/internal/display/testing"
	"github.com/rileyhilliard/mosdef/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appliedFake returns a provider where M1 and M2 were just rotated to
// portrait, and the snapshot taken before that change.
func appliedFake(t *testing.T) (*displaytesting.FakeProvider, Snapshot) {
	t.Helper()
	fake := displaytesting.NewFakeProvider(
		displaytesting.Monitor("DELL U2720Q", "HDMI-1", display.ConnHDMI, 0, display.Rotate0, 3840, 2160),
		displaytesting.Monitor("LG HDR 4K", "DP-1", display.ConnDisplayPort, 3840, display.Rotate0, 3840, 2160),
		displaytesting.Monitor("ThinkPad", "eDP-1", display.ConnInternal, 7680, display.Rotate90, 1080, 1920),
	)
	before, err := fake.Enumerate(context.Background())
	require.NoError(t, err)
	snap := Capture(before)

	for _, d := range before[:2] {
		require.NoError(t, fake.ApplyRotation(context.Background(), d, display.Rotate90, d.Height, d.Width))
	}
	fake.Calls = nil
	return fake, snap
}

func TestCapture_CoversEveryTarget(t *testing.T) {
	targets := []display.Display{
		{ID: "M1", Rotation: display.Rotate0, Width: 3840, Height: 2160},
		{ID: "M2", Rotation: display.Rotate90, Width: 1080, Height: 1920},
	}

	snap := Capture(targets)

	require.Len(t, snap.Entries, 2)
	assert.Equal(t, display.Rotate90, snap.Entries[1].Rotation)
	assert.Equal(t, 1080, snap.Entries[1].Width)
	assert.Equal(t, 1920, snap.Entries[1].Height)
}

func TestSession_Confirm(t *testing.T) {
	fake, snap := appliedFake(t)
	s := NewSession(fake, snap, nil)
	assert.Equal(t, Applied, s.State())

	require.NoError(t, s.Confirm())
	assert.Equal(t, Confirmed, s.State())
	assert.True(t, s.State().Terminal())
	assert.Equal(t, 0, fake.CallCount())

	var te *TransitionError
	require.ErrorAs(t, s.Confirm(), &te)
	require.ErrorAs(t, s.Revert(context.Background()), &te)
	assert.Equal(t, Confirmed, te.From)
}

func TestSession_RevertRestoresEverything(t *testing.T) {
	fake, snap := appliedFake(t)
	s := NewSession(fake, snap, logger.Noop())

	require.NoError(t, s.Revert(context.Background()))

	assert.Equal(t, Reverted, s.State())
	assert.Empty(t, s.Failed())
	assert.Equal(t, 3, fake.CallCount(), "unchanged displays are restored too")

	m1, _ := fake.Get("M1")
	assert.Equal(t, display.Rotate0, m1.Rotation)
	assert.Equal(t, 3840, m1.Width)
	assert.Equal(t, 2160, m1.Height)

	m3, _ := fake.Get("M3")
	assert.Equal(t, display.Rotate90, m3.Rotation)
}

func TestSession_RevertIsBestEffort(t *testing.T) {
	fake, snap := appliedFake(t)
	fake.SetFail("M1", &display.ChangeError{Code: display.CodeFailed})
	s := NewSession(fake, snap, nil)

	require.NoError(t, s.Revert(context.Background()))

	assert.Equal(t, RevertFailed, s.State())
	require.Len(t, s.Failed(), 1)
	assert.Equal(t, "M1", s.Failed()[0].Display.ID)

	m2, _ := fake.Get("M2")
	assert.Equal(t, display.Rotate0, m2.Rotation, "other displays still revert")
	m1, _ := fake.Get("M1")
	assert.Equal(t, display.Rotate90, m1.Rotation)
}

func TestSession_Run(t *testing.T) {
	tests := []struct {
		name      string
		confirmer Confirmer
		policy    Policy
		want      State
		calls     int
	}{
		{"no confirm", StaticConfirmer{Decision: Decline}, Policy{NoConfirm: true, Timeout: 15 * time.Second}, Confirmed, 0},
		{"keep before timeout", StaticConfirmer{Decision: Keep}, Policy{Timeout: 15 * time.Second}, Confirmed, 0},
		{"timeout expires", StaticConfirmer{Decision: Expired}, Policy{Timeout: 15 * time.Second}, Reverted, 3},
		{"declined", StaticConfirmer{Decision: Decline}, Policy{}, Reverted, 3},
		{"prompt kept", StaticConfirmer{Decision: Keep}, Policy{}, Confirmed, 0},
		{"confirmer error", failingConfirmer{}, Policy{}, Reverted, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake, snap := appliedFake(t)
			s := NewSession(fake, snap, logger.NewBufferLogger())

			state, err := s.Run(context.Background(), tt.confirmer, tt.policy)

			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
			assert.Equal(t, tt.calls, fake.CallCount())
		})
	}
}

func TestSession_RunRevertsAfterCancel(t *testing.T) {
	fake, snap := appliedFake(t)
	s := NewSession(fake, snap, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := s.Run(ctx, StaticConfirmer{Decision: Decline}, Policy{Timeout: time.Second})

	require.NoError(t, err)
	assert.Equal(t, Reverted, state)
}

type failingConfirmer struct{}

func (failingConfirmer) Confirm(ctx context.Context, prompt string, timeout time.Duration) (Decision, error) {
	return Expired, errors.New("no tty")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "revert_failed", RevertFailed.String())
	assert.False(t, Reverting.Terminal())
}

package rollback

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCountdown() (CountdownModel, time.Time) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return NewCountdownModel("Keep these display settings?", start.Add(15*time.Second), start), start
}

func TestCountdownModel_Keys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Decision
		quit bool
	}{
		{"y keeps", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, Keep, true},
		{"Y keeps", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'Y'}}, Keep, true},
		{"n declines", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, Decline, true},
		{"esc declines", tea.KeyMsg{Type: tea.KeyEsc}, Decline, true},
		{"ctrl+c declines", tea.KeyMsg{Type: tea.KeyCtrlC}, Decline, true},
		{"other keys are ignored", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, Expired, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newCountdown()

			updated, cmd := m.Update(tt.msg)
			cm := updated.(CountdownModel)

			assert.Equal(t, tt.want, cm.Decision())
			if tt.quit {
				require.NotNil(t, cmd)
				assert.Equal(t, tea.Quit(), cmd())
				assert.Empty(t, cm.View())
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

func TestCountdownModel_Ticks(t *testing.T) {
	m, start := newCountdown()
	assert.Contains(t, m.View(), "15s")

	updated, cmd := m.Update(tickMsg(start.Add(10*time.Second + 200*time.Millisecond)))
	cm := updated.(CountdownModel)
	require.NotNil(t, cmd, "countdown keeps ticking")
	assert.Equal(t, Expired, cm.Decision())
	assert.Contains(t, cm.View(), "5s")

	updated, cmd = cm.Update(tickMsg(start.Add(15 * time.Second)))
	cm = updated.(CountdownModel)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Equal(t, Expired, cm.Decision())
	assert.Zero(t, cm.Remaining())
}

func TestCountdownConfirmer_NoTimeout(t *testing.T) {
	d, err := CountdownConfirmer{}.Confirm(context.Background(), "keep?", 0)
	require.NoError(t, err)
	assert.Equal(t, Expired, d)
}

func TestStaticConfirmer(t *testing.T) {
	d, err := StaticConfirmer{Decision: Keep}.Confirm(context.Background(), "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, Keep, d)
	assert.Equal(t, "keep", d.String())
	assert.Equal(t, "expired", Expired.String())
}

func TestCountdownModel_Program(t *testing.T) {
	t.Run("keypress keeps", func(t *testing.T) {
		now := time.Now()
		tm := teatest.NewTestModel(t, NewCountdownModel("Keep changes?", now.Add(10*time.Second), now),
			teatest.WithInitialTermSize(80, 24))

		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

		final := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		assert.Equal(t, Keep, final.(CountdownModel).Decision())
	})

	t.Run("deadline expires", func(t *testing.T) {
		now := time.Now()
		tm := teatest.NewTestModel(t, NewCountdownModel("Keep changes?", now.Add(300*time.Millisecond), now),
			teatest.WithInitialTermSize(80, 24))

		final := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		assert.Equal(t, Expired, final.(CountdownModel).Decision())
	})
}

package rollback

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/mosdef/internal/ui"
)

// Decision is the user's answer to a confirmation.
type Decision int

const (
	Keep Decision = iota
	Decline
	Expired
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "keep"
	case Decline:
		return "decline"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Confirmer asks whether applied changes should be kept. A zero timeout
// means wait for an answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string, timeout time.Duration) (Decision, error)
}

// StaticConfirmer always returns the same decision.
type StaticConfirmer struct {
	Decision Decision
}

func (c StaticConfirmer) Confirm(ctx context.Context, prompt string, timeout time.Duration) (Decision, error) {
	return c.Decision, nil
}

// PromptConfirmer asks a yes/no question with a huh form.
type PromptConfirmer struct {
	Input  io.Reader
	Output io.Writer
}

func (c PromptConfirmer) Confirm(ctx context.Context, prompt string, timeout time.Duration) (Decision, error) {
	keep := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(prompt).
				Affirmative("Keep").
				Negative("Revert").
				Value(&keep),
		),
	)
	if c.Input != nil {
		form = form.WithInput(c.Input)
	}
	if c.Output != nil {
		form = form.WithOutput(c.Output)
	}

	if err := form.RunWithContext(ctx); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return Decline, nil
		}
		return Decline, err
	}
	if keep {
		return Keep, nil
	}
	return Decline, nil
}

// CountdownInterval is how often the countdown refreshes and checks the deadline.
const CountdownInterval = 100 * time.Millisecond

type countdownKeyMap struct {
	Keep    key.Binding
	Decline key.Binding
}

var countdownKeys = countdownKeyMap{
	Keep: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "keep"),
	),
	Decline: key.NewBinding(
		key.WithKeys("n", "N", "esc", "ctrl+c"),
		key.WithHelp("n/esc", "revert now"),
	),
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(CountdownInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CountdownModel is a Bubble Tea model that waits for y/n until a deadline.
type CountdownModel struct {
	prompt    string
	deadline  time.Time
	remaining time.Duration
	decision  Decision
	done      bool
}

// NewCountdownModel creates a countdown that expires at deadline.
func NewCountdownModel(prompt string, deadline time.Time, now time.Time) CountdownModel {
	return CountdownModel{
		prompt:    prompt,
		deadline:  deadline,
		remaining: deadline.Sub(now),
		decision:  Expired,
	}
}

// Init implements tea.Model.
func (m CountdownModel) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m CountdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, countdownKeys.Keep):
			m.decision = Keep
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, countdownKeys.Decline):
			m.decision = Decline
			m.done = true
			return m, tea.Quit
		}

	case tickMsg:
		m.remaining = m.deadline.Sub(time.Time(msg))
		if m.remaining <= 0 {
			m.remaining = 0
			m.decision = Expired
			m.done = true
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

// View implements tea.Model.
func (m CountdownModel) View() string {
	if m.done {
		return ""
	}
	secs := int((m.remaining + time.Second - 1) / time.Second)
	countdown := lipgloss.NewStyle().Foreground(ui.ColorWarning).Bold(true).
		Render(fmt.Sprintf("%ds", secs))
	help := lipgloss.NewStyle().Foreground(ui.ColorMuted).
		Render(fmt.Sprintf("%s %s  %s %s",
			countdownKeys.Keep.Help().Key, countdownKeys.Keep.Help().Desc,
			countdownKeys.Decline.Help().Key, countdownKeys.Decline.Help().Desc))
	return fmt.Sprintf("%s %s\n%s\n", m.prompt, countdown, help)
}

// Decision is the outcome once the program has quit.
func (m CountdownModel) Decision() Decision {
	return m.decision
}

// Remaining is the time left at the last tick.
func (m CountdownModel) Remaining() time.Duration {
	return m.remaining
}

// CountdownConfirmer shows a live countdown and reverts when it runs out.
type CountdownConfirmer struct {
	Input  io.Reader
	Output io.Writer
}

func (c CountdownConfirmer) Confirm(ctx context.Context, prompt string, timeout time.Duration) (Decision, error) {
	if timeout <= 0 {
		return Expired, nil
	}

	input, output := c.Input, c.Output
	if input == nil {
		input = os.Stdin
	}
	if output == nil {
		output = os.Stderr
	}

	now := time.Now()
	p := tea.NewProgram(
		NewCountdownModel(prompt, now.Add(timeout), now),
		tea.WithInput(input),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) {
			return Decline, nil
		}
		return Expired, err
	}
	if m, ok := final.(CountdownModel); ok {
		return m.Decision(), nil
	}
	return Expired, nil
}

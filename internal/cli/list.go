package cli

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/session"
	"github.com/rileyhilliard/mosdef/internal/ui"
)

// DisplayOutput is one display in --format json/yaml output.
type DisplayOutput struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Device     string `json:"device" yaml:"device"`
	Connection string `json:"connection" yaml:"connection"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Rotation   int    `json:"rotation" yaml:"rotation"`
	Portrait   bool   `json:"portrait" yaml:"portrait"`
	PathKey    string `json:"path_key" yaml:"path_key"`
	X          int    `json:"x" yaml:"x"`
	Y          int    `json:"y" yaml:"y"`
}

// ListOutput is the --list payload.
type ListOutput struct {
	Displays        []DisplayOutput `json:"displays" yaml:"displays"`
	DefaultSelector *string         `json:"default_selector" yaml:"default_selector"`
}

// HistoryOutput is the --history payload.
type HistoryOutput struct {
	DefaultSelector *string  `json:"default_selector" yaml:"default_selector"`
	LastAction      *string  `json:"last_action" yaml:"last_action"`
	History         []string `json:"history" yaml:"history"`
}

func toDisplayOutput(d display.Display) DisplayOutput {
	return DisplayOutput{
		ID:         d.ID,
		Name:       d.Name,
		Device:     d.DevicePath,
		Connection: d.Connection.String(),
		Width:      d.Width,
		Height:     d.Height,
		Rotation:   int(d.Rotation),
		Portrait:   d.Rotation.IsPortrait(),
		PathKey:    d.PathKey,
		X:          d.X,
		Y:          d.Y,
	}
}

// list prints the display inventory.
func (a *App) list(ctx context.Context, s *config.Settings) error {
	if err := session.Check(a.Getenv, s.ForceRemote); err != nil {
		return a.fail(s, err)
	}

	store, err := a.newStore(s)
	if err != nil {
		return a.fail(s, err)
	}
	persisted := store.Load()

	all, err := a.enumerate(ctx)
	if err != nil {
		return a.fail(s, err)
	}
	all = display.SortByIndex(all)

	if s.Format != "table" {
		out := ListOutput{
			Displays:        make([]DisplayOutput, len(all)),
			DefaultSelector: persisted.DefaultSelector,
		}
		for i, d := range all {
			out.Displays[i] = toDisplayOutput(d)
		}
		return WriteSuccess(a.Out, s.Format, out)
	}

	fmt.Fprintln(a.Out, ui.RenderDisplayTable(all))
	muted := ui.MutedStyle()
	if sel := persisted.Selector(); sel != "" {
		fmt.Fprintln(a.Out, muted.Render("Default selector: "+sel))
	} else if len(all) > 0 {
		fmt.Fprintln(a.Out, muted.Render("No default selector saved; commands target every display."))
	}
	return nil
}

// history prints the saved default and the recently used selectors.
func (a *App) history(s *config.Settings) error {
	store, err := a.newStore(s)
	if err != nil {
		return a.fail(s, err)
	}
	p := store.Load()

	if s.Format != "table" {
		return WriteSuccess(a.Out, s.Format, HistoryOutput{
			DefaultSelector: p.DefaultSelector,
			LastAction:      p.LastAction,
			History:         append([]string{}, p.SelectorHistory...),
		})
	}

	muted := ui.MutedStyle()
	if sel := p.Selector(); sel != "" {
		fmt.Fprintf(a.Out, "Default selector: %s\n", sel)
	}
	if p.LastAction != nil {
		fmt.Fprintf(a.Out, "Last action: %s\n", *p.LastAction)
	}
	if len(p.SelectorHistory) == 0 {
		fmt.Fprintln(a.Out, muted.Render("No selectors used yet."))
		return nil
	}
	fmt.Fprintln(a.Out, "Recent selectors:")
	for i, sel := range p.SelectorHistory {
		fmt.Fprintf(a.Out, "  %s %s\n", muted.Render(fmt.Sprintf("%2d.", i+1)), sel)
	}
	return nil
}

// fail reports err in the machine format when one was requested. The
// table format leaves printing to Execute.
func (a *App) fail(s *config.Settings, err error) error {
	if s.Format == "table" {
		return err
	}
	if werr := WriteFromError(a.Out, s.Format, err); werr != nil {
		return errors.Wrap(werr, "Failed to write output")
	}
	return errors.NewExitError(errors.ExitCode(err))
}

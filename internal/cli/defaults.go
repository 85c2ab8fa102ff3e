package cli

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/ui"
)

// updateDefault saves or clears the default selector. The selector was
// validated with the other flags.
func (a *App) updateDefault(s *config.Settings, opts *Options) error {
	store, err := a.newStore(s)
	if err != nil {
		return err
	}
	p := store.Load()

	var msg string
	if opts.ClearDefault {
		p.ClearDefault()
		msg = "Default selector cleared"
	} else {
		sel := strings.TrimSpace(opts.SaveDefault)
		p.SetDefault(sel)
		p.PushHistory(sel)
		msg = fmt.Sprintf("Default selector saved: %s", sel)
	}

	if err := store.Save(p); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, ui.SuccessStyle().Render(ui.SymbolSuccess+" "+msg))
	return nil
}

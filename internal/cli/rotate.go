package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/logger"
	"github.com/rileyhilliard/mosdef/internal/rollback"
	"github.com/rileyhilliard/mosdef/internal/rotate"
	"github.com/rileyhilliard/mosdef/internal/selector"
	"github.com/rileyhilliard/mosdef/internal/session"
	"github.com/rileyhilliard/mosdef/internal/ui"
)

// rotate resolves the targets, applies the action and runs the
// confirm-or-revert session.
func (a *App) rotate(ctx context.Context, s *config.Settings, p *plan) error {
	if err := session.Check(a.Getenv, s.ForceRemote); err != nil {
		return err
	}

	log := a.logger(s)
	store, err := a.newStore(s)
	if err != nil {
		return err
	}
	persisted := store.Load()

	req := p.req
	req.Default = persisted.Selector()
	if len(req.Only) == 0 && len(req.Include) == 0 && req.Default != "" {
		// A hand-edited default is only checked once it is about to be used.
		if _, err := selector.ParseList(req.Default); err != nil {
			return errors.WrapWithCode(err, errors.ErrSelector,
				fmt.Sprintf("The saved default selector '%s' is invalid", req.Default),
				"Save a new one with --save-default, or remove it with --clear-default.")
		}
	}

	all, err := a.enumerate(ctx)
	if err != nil {
		return err
	}

	targets, err := selector.Resolve(all, req)
	if err != nil {
		return a.selectionError(err, s)
	}
	log.Debug("Selected %s for %s", joinIDs(targets), p.action)

	snap := rollback.Capture(targets)
	report := rotate.NewOrchestrator(a.Provider, log).
		Apply(ctx, targets, p.action, rotate.Options{DryRun: s.DryRun})

	renderer := ui.NewSummaryRenderer(s.Verbose)
	fmt.Fprint(a.Out, renderer.RenderReport(report, p.action))

	code := report.ExitCode()
	if s.DryRun || len(report.Changed()) == 0 {
		return exitStatus(code)
	}

	sess := rollback.NewSession(a.Provider, snap, log)
	state, err := sess.Run(ctx, a.confirmer(s, log), rollback.Policy{
		NoConfirm: s.NoConfirm,
		Timeout:   time.Duration(s.RevertSeconds) * time.Second,
		Prompt: fmt.Sprintf("Applied %s rotation to %d monitor(s). Keep changes?",
			p.action, report.Success),
	})
	if err != nil {
		return errors.Wrap(err, "Rollback session failed")
	}

	switch state {
	case rollback.Confirmed:
		a.remember(store, persisted, p, log)
	case rollback.Reverted:
		fmt.Fprint(a.Out, renderer.RenderRevert(len(report.Changed()), nil))
	case rollback.RevertFailed:
		fmt.Fprint(a.Out, renderer.RenderRevert(0, revertFailures(sess.Failed())))
		code = errors.ExitPlatform
	}

	return exitStatus(code)
}

// enumerate lists the displays, mapping failures to platform errors.
func (a *App) enumerate(ctx context.Context) ([]display.Display, error) {
	all, err := a.Provider.Enumerate(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrPlatform,
			"Failed to enumerate displays",
			"Check that xrandr is installed and DISPLAY points at your session.")
	}
	return all, nil
}

// selectionError turns NoMatch and Ambiguous results into exit-2 errors
// that list the selectors the user could have typed.
func (a *App) selectionError(err error, s *config.Settings) error {
	suggestions := suggestionsOf(err)
	if suggestions == nil {
		return errors.WrapWithCode(err, errors.ErrSelector, "Invalid selector", "")
	}

	var msg, hint string
	if _, ok := err.(*selector.AmbiguousError); ok {
		msg = "Selection is ambiguous"
		hint = "Use a path selector to pick exactly one display:\n"
	} else {
		msg = "No displays selected"
		hint = "Available displays:\n"
	}
	hint += strings.TrimRight(ui.NewSummaryRenderer(s.Verbose).RenderSuggestions(suggestions), "\n")
	return errors.WrapWithCode(err, errors.ErrSelection, msg, hint)
}

// confirmer picks how the user is asked to keep the change.
func (a *App) confirmer(s *config.Settings, log logger.Logger) rollback.Confirmer {
	if a.Confirmer != nil {
		return a.Confirmer
	}

	interactive := a.Interactive != nil && a.Interactive()
	switch {
	case !interactive && s.RevertSeconds > 0:
		log.Warn("stdin is not a terminal, nobody can confirm within %ds; reverting", s.RevertSeconds)
		return rollback.StaticConfirmer{Decision: rollback.Expired}
	case !interactive:
		log.Warn("stdin is not a terminal, keeping the new rotation without asking")
		return rollback.StaticConfirmer{Decision: rollback.Keep}
	case s.RevertSeconds > 0:
		return rollback.CountdownConfirmer{Input: a.In, Output: a.Err}
	default:
		return rollback.PromptConfirmer{Input: a.In, Output: a.Err}
	}
}

// remember records the last action and the selectors that were used.
// A failed save is not fatal to a rotation that already happened.
func (a *App) remember(store *config.Store, p *config.Persisted, pl *plan, log logger.Logger) {
	p.SetLastAction(pl.action.String())
	for _, raw := range append(append([]string{}, pl.req.Only...), pl.req.Include...) {
		p.PushHistory(raw)
	}
	if err := store.Save(p); err != nil {
		log.Warn("Could not save %s: %v", store.Path(), err)
	}
}

func revertFailures(failed []rollback.Failure) []ui.RevertFailure {
	out := make([]ui.RevertFailure, len(failed))
	for i, f := range failed {
		out[i] = ui.RevertFailure{
			ID:     f.Display.ID,
			Name:   f.Display.Name,
			Reason: rotate.NewPlatformError(f.Err).Reason,
		}
	}
	return out
}

func joinIDs(ds []display.Display) string {
	ids := make([]string, len(ds))
	for i, d := range ds {
		ids[i] = d.ID
	}
	return strings.Join(ids, ", ")
}

// exitStatus turns a non-zero report code into an error that carries only
// the status; the report has already been printed.
func exitStatus(code int) error {
	if code == errors.ExitOK {
		return nil
	}
	return errors.NewExitError(code)
}

package rotate

import (
	"context"

	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/logger"
)

// Options controls a single Apply call.
type Options struct {
	DryRun bool
}

// Result is the outcome for one display.
type Result struct {
	Intent
	DryRun bool
	Err    *PlatformError
}

// OK is true when the display ended up (or would end up) in its target.
func (r Result) OK() bool {
	return r.Err == nil
}

// Report collects one Result per target.
type Report struct {
	Results []Result
	Success int
	Failure int
	DryRun  bool
}

// Changed returns the successful results that moved a display.
func (r *Report) Changed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.OK() && !res.NoOp() {
			out = append(out, res)
		}
	}
	return out
}

// Unchanged returns the displays that were already in place.
func (r *Report) Unchanged() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.NoOp() {
			out = append(out, res)
		}
	}
	return out
}

// Failed returns the results the platform rejected.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// ExitCode is 0 when every display succeeded and 3 otherwise.
func (r *Report) ExitCode() int {
	if r.Failure > 0 {
		return errors.ExitPlatform
	}
	return errors.ExitOK
}

// Orchestrator applies a rotation action to a batch of displays.
type Orchestrator struct {
	mutator display.Mutator
	log     logger.Logger
}

// NewOrchestrator creates an orchestrator. A nil log discards messages.
func NewOrchestrator(m display.Mutator, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.Noop()
	}
	return &Orchestrator{mutator: m, log: log}
}

// Apply rotates every target. A failure on one display does not stop the
// rest; each outcome is recorded in the report. Dry runs never call the
// mutator.
func (o *Orchestrator) Apply(ctx context.Context, targets []display.Display, a Action, opts Options) *Report {
	report := &Report{DryRun: opts.DryRun}

	for _, in := range Plan(targets, a) {
		res := Result{Intent: in, DryRun: opts.DryRun}
		d := in.Display

		switch {
		case in.NoOp():
			o.log.Debug("%s (%s) already at %s", d.ID, d.Name, in.From)

		case opts.DryRun:
			o.log.Debug("%s (%s) would rotate %s -> %s", d.ID, d.Name, in.From, in.To)

		default:
			o.log.Debug("Rotating %s (%s) from %s to %s", d.ID, d.Name, in.From, in.To)
			if in.Swap {
				o.log.Debug("Swapping dimensions: %s -> %dx%d", d.Resolution(), in.Width, in.Height)
			}

			err := ctx.Err()
			if err == nil {
				err = o.mutator.ApplyRotation(ctx, d, in.To, in.Width, in.Height)
			}
			if err != nil {
				res.Err = NewPlatformError(err)
				o.log.Debug("Failed to rotate %s: %s", d.ID, res.Err.Detail())
			} else {
				o.log.Debug("Rotated %s", d.ID)
			}
		}

		if res.OK() {
			report.Success++
		} else {
			report.Failure++
		}
		report.Results = append(report.Results, res)
	}

	return report
}

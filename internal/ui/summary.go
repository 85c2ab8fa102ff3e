package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/mosdef/internal/rotate"
	"github.com/rileyhilliard/mosdef/internal/selector"
)

// SummaryRenderer formats rotation outcomes for terminal display.
type SummaryRenderer struct {
	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	warnStyle    lipgloss.Style
	infoStyle    lipgloss.Style
	mutedStyle   lipgloss.Style

	// Verbose adds platform codes and details to failures.
	Verbose bool
}

// NewSummaryRenderer creates a new summary renderer with default styles.
func NewSummaryRenderer(verbose bool) *SummaryRenderer {
	return &SummaryRenderer{
		errorStyle:   ErrorStyle(),
		successStyle: SuccessStyle(),
		warnStyle:    WarningStyle(),
		infoStyle:    InfoStyle(),
		mutedStyle:   MutedStyle(),
		Verbose:      verbose,
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// RenderReport renders one line per display followed by a totals line.
func (r *SummaryRenderer) RenderReport(report *rotate.Report, action rotate.Action) string {
	if report == nil || len(report.Results) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, res := range report.Results {
		sb.WriteString(r.renderResult(res))
		sb.WriteString("\n")
	}

	changed := len(report.Changed())
	switch {
	case report.DryRun:
		sb.WriteString(r.warnStyle.Render(fmt.Sprintf("[DRY RUN] %s would change, nothing was applied",
			plural(changed, "display"))))
	case report.Failure > 0:
		sb.WriteString(r.errorStyle.Render(fmt.Sprintf("%s %d succeeded, %d failed",
			SymbolFail, report.Success, report.Failure)))
	case changed == 0:
		sb.WriteString(r.mutedStyle.Render(fmt.Sprintf("All displays already %s", action)))
	default:
		sb.WriteString(r.successStyle.Render(fmt.Sprintf("%s Rotated %s to %s",
			SymbolSuccess, plural(changed, "display"), action)))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (r *SummaryRenderer) renderResult(res rotate.Result) string {
	d := res.Display
	label := padRight(d.ID, 4) + padRight(d.Name, 24)

	switch {
	case !res.OK():
		line := fmt.Sprintf("%s %s%s", r.errorStyle.Render(SymbolFail), label, r.errorStyle.Render(res.Err.Reason))
		if r.Verbose {
			line += "\n      " + r.mutedStyle.Render(res.Err.Detail())
		}
		return line

	case res.NoOp():
		return fmt.Sprintf("%s %s%s", r.mutedStyle.Render(SymbolComplete), label,
			r.mutedStyle.Render("already at "+res.From.String()))

	case res.DryRun:
		return fmt.Sprintf("%s %s", r.warnStyle.Render(SymbolPending),
			fmt.Sprintf("[DRY RUN] Would rotate %s from %s to %s", d.ID, res.From, res.To))

	default:
		line := fmt.Sprintf("%s %s%s %s %s", r.successStyle.Render(SymbolSuccess), label,
			res.From, SymbolArrow, res.To)
		if r.Verbose && res.Swap {
			line += r.mutedStyle.Render(fmt.Sprintf("  (%s %s %dx%d)", d.Resolution(), SymbolArrow, res.Width, res.Height))
		}
		return line
	}
}

// RenderSuggestions lists, per display, the selectors that would pick it.
func (r *SummaryRenderer) RenderSuggestions(suggestions []selector.Suggestion) string {
	if len(suggestions) == 0 {
		return r.mutedStyle.Render("  No displays are connected.") + "\n"
	}

	var sb strings.Builder
	for _, s := range suggestions {
		sb.WriteString("  ")
		sb.WriteString(padRight(s.Display.ID, 4))
		sb.WriteString(padRight(s.Display.Name, 24))
		styled := make([]string, len(s.Selectors))
		for i, sel := range s.Selectors {
			styled[i] = r.infoStyle.Render(sel)
		}
		sb.WriteString(strings.Join(styled, r.mutedStyle.Render("  ")))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RevertFailure is a display a rollback could not restore.
type RevertFailure struct {
	ID     string
	Name   string
	Reason string
}

// RenderRevert reports the outcome of a rollback.
func (r *SummaryRenderer) RenderRevert(restored int, failures []RevertFailure) string {
	if len(failures) == 0 {
		return r.warnStyle.Render(fmt.Sprintf("%s Reverted %s", SymbolSkipped, plural(restored, "display"))) + "\n"
	}

	var sb strings.Builder
	sb.WriteString(r.errorStyle.Render(fmt.Sprintf("%s Could not restore %s", SymbolFail, plural(len(failures), "display"))))
	sb.WriteString("\n")
	for _, f := range failures {
		sb.WriteString("  ")
		sb.WriteString(padRight(f.ID, 4))
		sb.WriteString(padRight(f.Name, 24))
		sb.WriteString(r.mutedStyle.Render(f.Reason))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderReport renders a report with a default renderer.
func RenderReport(report *rotate.Report, action rotate.Action, verbose bool) string {
	return NewSummaryRenderer(verbose).RenderReport(report, action)
}

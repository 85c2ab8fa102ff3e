package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/doctor"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/ui"
	"github.com/spf13/cobra"
)

// DoctorOutput is the --format json|yaml payload of the doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories" yaml:"categories"`
	Summary    SummaryOutput    `json:"summary" yaml:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name" yaml:"name"`
	Results []doctor.CheckResult `json:"results" yaml:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass" yaml:"pass"`
	Warn     int  `json:"warn" yaml:"warn"`
	Fail     int  `json:"fail" yaml:"fail"`
	Fixable  int  `json:"fixable" yaml:"fixable"`
	AllClear bool `json:"all_clear" yaml:"all_clear"`
}

// versioner is implemented by providers that wrap an external tool.
type versioner interface {
	Version(ctx context.Context) (string, error)
}

func newDoctorCmd(app *App) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose display, session and config problems",
		Long: heredoc.Doc(`
			Check that mosdef can reach the display server, read its config
			and see your displays. Exits with status 3 when any check fails.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.doctor(cmd, fix)
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "attempt automatic fixes where possible")
	return cmd
}

func (a *App) doctor(cmd *cobra.Command, fix bool) error {
	s, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	if s.NoColor || a.getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	store, err := a.newStore(s)
	if err != nil {
		return a.fail(s, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := doctor.Options{
		Provider:    a.Provider,
		Store:       store,
		Getenv:      a.getenv,
		ForceRemote: s.ForceRemote,
	}
	if v, ok := a.Provider.(versioner); ok {
		opts.Tool = "xrandr"
		opts.Version = v.Version
	}
	checks := doctor.NewChecks(opts)

	results := doctor.RunAll(ctx, checks)
	if fix {
		results = doctor.FixAll(ctx, checks, results)
	}

	if s.Format != "table" {
		if err := WriteSuccess(a.Out, s.Format, doctorOutput(checks, results)); err != nil {
			return errors.Wrap(err, "Failed to write output")
		}
	} else {
		renderDoctor(a.Out, checks, results, fix)
	}

	if doctor.HasFailures(results) {
		return errors.NewExitError(errors.ExitPlatform)
	}
	return nil
}

func groupByCategory(checks []doctor.Check, results []doctor.CheckResult) map[string][]doctor.CheckResult {
	grouped := make(map[string][]doctor.CheckResult)
	for i, check := range checks {
		grouped[check.Category()] = append(grouped[check.Category()], results[i])
	}
	return grouped
}

func doctorOutput(checks []doctor.Check, results []doctor.CheckResult) DoctorOutput {
	grouped := groupByCategory(checks, results)

	out := DoctorOutput{Categories: []CategoryOutput{}}
	for _, cat := range doctor.Categories() {
		if rs, ok := grouped[cat]; ok {
			out.Categories = append(out.Categories, CategoryOutput{Name: cat, Results: rs})
		}
	}

	counts := doctor.CountByStatus(results)
	out.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}
	return out
}

func renderDoctor(w io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	muted := ui.MutedStyle()

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("mosdef diagnostic report"))
	fmt.Fprintln(w)

	grouped := groupByCategory(checks, results)
	for _, cat := range doctor.Categories() {
		rs, ok := grouped[cat]
		if !ok {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(cat))
		for _, r := range rs {
			renderCheckResult(w, r)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))
		if doctor.FixableCount(results) > 0 && !fixed {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n", muted.Render("--fix"))
		}
	}
	fmt.Fprintln(w)
}

func renderCheckResult(w io.Writer, r doctor.CheckResult) {
	symbol, style := ui.SymbolComplete, ui.SuccessStyle()
	switch r.Status {
	case doctor.StatusWarn:
		style = ui.WarningStyle()
	case doctor.StatusFail:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), r.Message)
	if r.Suggestion == "" || r.Status == doctor.StatusPass {
		return
	}
	for _, line := range strings.Split(r.Suggestion, "\n") {
		fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
	}
}

// Package doctor diagnoses why mosdef cannot see or rotate displays.
package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/session"
)

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalText writes the status as its name in JSON and YAML output.
func (s CheckStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Categories in report order.
const (
	CategoryEnvironment = "ENVIRONMENT"
	CategoryConfig      = "CONFIG"
	CategoryDisplays    = "DISPLAYS"
)

// Categories lists every category in the order reports show them.
func Categories() []string {
	return []string{CategoryEnvironment, CategoryConfig, CategoryDisplays}
}

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name" yaml:"name"`
	Status     CheckStatus `json:"status" yaml:"status"`
	Message    string      `json:"message" yaml:"message"`
	Suggestion string      `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Fixable    bool        `json:"fixable,omitempty" yaml:"fixable,omitempty"` // Whether --fix can address this
}

// Check defines the interface for diagnostic checks.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns one of the Category* constants.
	Category() string

	// Run executes the check and returns the result.
	Run(ctx context.Context) CheckResult

	// Fix attempts to repair the issue. Returns nil if the fix worked or
	// there was nothing to do.
	Fix() error
}

// RunAll executes all checks in order and returns the results.
func RunAll(ctx context.Context, checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		results[i] = check.Run(ctx)
	}
	return results
}

// FixAll runs Fix for every fixable issue. Checks read shared state, so
// every check runs again once any fix succeeds.
func FixAll(ctx context.Context, checks []Check, results []CheckResult) []CheckResult {
	fixed := false
	for i, r := range results {
		if !r.Fixable || r.Status == StatusPass {
			continue
		}
		if err := checks[i].Fix(); err == nil {
			fixed = true
		}
	}
	if !fixed {
		return results
	}
	return RunAll(ctx, checks)
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	for _, r := range results {
		if r.Status != StatusPass {
			return true
		}
	}
	return false
}

// FixableCount returns the number of issues --fix can address.
func FixableCount(results []CheckResult) int {
	count := 0
	for _, r := range results {
		if r.Fixable && r.Status != StatusPass {
			count++
		}
	}
	return count
}

// Summary returns a one-line summary of the results.
func Summary(results []CheckResult) string {
	counts := CountByStatus(results)
	total := counts[StatusWarn] + counts[StatusFail]
	if total == 0 {
		return "Everything looks good"
	}
	return fmt.Sprintf("%d issue%s found", total, pluralize(total))
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// Options wires the checks to the collaborators of one invocation.
type Options struct {
	Provider    display.Provider
	Store       *config.Store
	Getenv      session.Getenv
	ForceRemote bool

	// Tool names the display tool; Version reports its version. A nil
	// Version skips the tool check.
	Tool    string
	Version func(ctx context.Context) (string, error)
}

// NewChecks returns every check in report order.
func NewChecks(o Options) []Check {
	var checks []Check
	if o.Version != nil {
		checks = append(checks, &ToolCheck{Tool: o.Tool, Version: o.Version})
	}
	checks = append(checks,
		&DisplayServerCheck{Getenv: o.Getenv},
		&RemoteSessionCheck{Getenv: o.Getenv, Force: o.ForceRemote},
		&ConfigFileCheck{Store: o.Store},
		&DefaultSelectorCheck{Store: o.Store},
		&InventoryCheck{Provider: o.Provider},
		&DefaultTargetsCheck{Provider: o.Provider, Store: o.Store},
	)
	return checks
}

package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/selector"
)

// InventoryCheck verifies that at least one active display is found.
type InventoryCheck struct {
	Provider display.Provider
}

func (c *InventoryCheck) Name() string     { return "inventory" }
func (c *InventoryCheck) Category() string { return CategoryDisplays }

func (c *InventoryCheck) Run(ctx context.Context) CheckResult {
	all, err := c.Provider.Enumerate(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot enumerate displays: %v", err),
			Suggestion: "Check the ENVIRONMENT results above",
		}
	}
	if len(all) == 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "No active displays found",
			Suggestion: "Connected but disabled outputs are not listed; enable them in your display settings",
		}
	}

	ids := make([]string, len(all))
	for i, d := range display.SortByIndex(all) {
		ids[i] = fmt.Sprintf("%s %s", d.ID, d.Name)
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%d display%s: %s", len(all), pluralize(len(all)), strings.Join(ids, ", ")),
	}
}

func (c *InventoryCheck) Fix() error {
	return nil
}

// DefaultTargetsCheck verifies that the saved default still picks at least
// one connected display.
type DefaultTargetsCheck struct {
	Provider display.Provider
	Store    *config.Store
}

func (c *DefaultTargetsCheck) Name() string     { return "default_targets" }
func (c *DefaultTargetsCheck) Category() string { return CategoryDisplays }

func (c *DefaultTargetsCheck) Run(ctx context.Context) CheckResult {
	p, _, err := c.Store.Inspect()
	if err != nil || p.Selector() == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No default selector to resolve",
		}
	}
	if _, err := selector.ParseList(p.Selector()); err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Default selector is invalid, skipped",
		}
	}

	all, err := c.Provider.Enumerate(ctx)
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Cannot resolve the default selector without displays",
		}
	}

	targets, err := selector.Resolve(all, selector.Request{Default: p.Selector()})
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Default selector '%s' matches no connected display", p.Selector()),
			Suggestion: "Commands without --only or --include will fail until that display is back; run 'mosdef --list' to pick another",
		}
	}

	ids := make([]string, len(targets))
	for i, d := range targets {
		ids[i] = d.ID
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Default selector '%s' picks %s", p.Selector(), strings.Join(ids, ", ")),
	}
}

func (c *DefaultTargetsCheck) Fix() error {
	return nil
}

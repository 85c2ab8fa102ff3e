package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/selector"
)

// ConfigFileCheck verifies that the config file, if present, parses.
type ConfigFileCheck struct {
	Store *config.Store
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(ctx context.Context) CheckResult {
	_, exists, err := c.Store.Inspect()
	switch {
	case err != nil:
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Config %s is unreadable: %v", c.Store.Path(), err),
			Suggestion: "mosdef ignores it and uses defaults; --fix rewrites it with defaults",
			Fixable:    true,
		}
	case !exists:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("No config yet (%s)", c.Store.Path()),
		}
	default:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("Config file: %s", c.Store.Path()),
		}
	}
}

// Fix replaces an unreadable config with an empty one.
func (c *ConfigFileCheck) Fix() error {
	if _, _, err := c.Store.Inspect(); err == nil {
		return nil
	}
	return c.Store.Save(config.Default())
}

// DefaultSelectorCheck verifies the saved default selector parses.
type DefaultSelectorCheck struct {
	Store *config.Store
}

func (c *DefaultSelectorCheck) Name() string     { return "default_selector" }
func (c *DefaultSelectorCheck) Category() string { return CategoryConfig }

func (c *DefaultSelectorCheck) Run(ctx context.Context) CheckResult {
	p, _, err := c.Store.Inspect()
	if err != nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusWarn,
			Message: "Cannot check the default selector: config is unreadable",
		}
	}

	sel := p.Selector()
	if sel == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No default selector; commands target every display",
		}
	}

	if _, err := selector.ParseList(sel); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Default selector '%s' is invalid: %v", sel, err),
			Suggestion: "Save a new one with --save-default; --fix clears it",
			Fixable:    true,
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Default selector: %s", sel),
	}
}

// Fix clears an invalid default selector.
func (c *DefaultSelectorCheck) Fix() error {
	p, _, err := c.Store.Inspect()
	if err != nil {
		return err
	}
	if _, err := selector.ParseList(p.Selector()); err == nil {
		return nil
	}
	p.ClearDefault()
	return c.Store.Save(p)
}

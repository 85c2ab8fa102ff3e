package cli

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/rotate"
	"github.com/rileyhilliard/mosdef/internal/selector"
	"github.com/spf13/cobra"
)

// Options holds the command-specific flags of one invocation. Flags that
// viper also reads from the environment live in config.Settings.
type Options struct {
	Only    []string
	Include []string
	Exclude []string

	SaveDefault    string
	hasSaveDefault bool
	ClearDefault   bool

	List    bool
	History bool
}

// addFlags registers the root command's flags.
func addFlags(cmd *cobra.Command, opts *Options) {
	f := cmd.Flags()

	f.StringArrayVar(&opts.Only, "only", nil, "rotate only these displays (comma-separated selectors, repeatable)")
	f.StringArrayVar(&opts.Include, "include", nil, "rotate these displays instead of the default (comma-separated, repeatable)")
	f.StringArrayVar(&opts.Exclude, "exclude", nil, "skip these displays (comma-separated, repeatable)")
	f.StringVar(&opts.SaveDefault, "save-default", "", "save a selector as the default target")
	f.BoolVar(&opts.ClearDefault, "clear-default", false, "remove the saved default selector")
	f.BoolVar(&opts.List, "list", false, "list connected displays")
	f.BoolVar(&opts.History, "history", false, "show recently used selectors")

	f.BoolP(config.KeyDryRun, "n", false, "show what would change without rotating")
	f.Bool(config.KeyNoConfirm, false, "keep changes without asking")
	f.Int(config.KeyRevertSeconds, 0, "revert unless confirmed within N seconds (0 asks without a countdown)")

	// Shared with subcommands.
	pf := cmd.PersistentFlags()
	pf.BoolP(config.KeyVerbose, "v", false, "show per-display details")
	pf.Bool(config.KeyForceRDP, false, "allow running inside a Remote Desktop session")
	pf.String(config.KeyConfig, "", "config file (default is the per-user mosdef/config.json)")
	pf.String(config.KeyFormat, "table", "output format for list, history and doctor: "+strings.Join(config.Formats, ", "))
	pf.Bool(config.KeyNoColor, false, "disable colored output")
}

type mode int

const (
	modeUsage mode = iota
	modeRotate
	modeList
	modeHistory
	modeDefaults
)

// plan is what one invocation will do, decided before anything touches
// the displays or the config file.
type plan struct {
	mode   mode
	action rotate.Action
	req    selector.Request
}

// validate checks flag combinations and every selector up front.
func (o *Options) validate(args []string) (*plan, error) {
	p := &plan{
		mode: modeUsage,
		req:  selector.Request{Only: o.Only, Include: o.Include, Exclude: o.Exclude},
	}

	if len(args) > 0 {
		if strings.EqualFold(args[0], "list") {
			p.mode = modeList
		} else {
			a, err := rotate.ParseAction(args[0])
			if err != nil {
				return nil, errors.New(errors.ErrArgs,
					fmt.Sprintf("Unknown command '%s'", args[0]),
					"Expected one of: "+strings.Join(append(rotate.Actions(), "list"), ", "))
			}
			p.mode = modeRotate
			p.action = a
		}
	}

	if o.List {
		if p.mode == modeRotate {
			return nil, errors.New(errors.ErrArgs,
				"--list can't be combined with "+p.action.String(),
				"List displays first, then rotate in a second call.")
		}
		p.mode = modeList
	}

	if o.History {
		if p.mode != modeUsage {
			return nil, errors.New(errors.ErrArgs,
				"--history can't be combined with a command",
				"Run 'mosdef --history' on its own.")
		}
		p.mode = modeHistory
	}

	if o.hasSaveDefault && o.ClearDefault {
		return nil, errors.New(errors.ErrArgs,
			"--save-default and --clear-default can't be used together",
			"Use one or the other.")
	}

	if o.hasSaveDefault || o.ClearDefault {
		switch p.mode {
		case modeUsage:
			p.mode = modeDefaults
		case modeList, modeHistory:
			return nil, errors.New(errors.ErrArgs,
				"--save-default and --clear-default can't be combined with --list or --history",
				"")
		}
	}

	hasSelectors := len(o.Only) > 0 || len(o.Include) > 0 || len(o.Exclude) > 0
	if hasSelectors && p.mode != modeRotate {
		return nil, errors.New(errors.ErrArgs,
			"--only, --include and --exclude need an action",
			"Example: mosdef portrait --only M2")
	}

	if err := p.req.Validate(); err != nil {
		return nil, err
	}
	if o.hasSaveDefault {
		if strings.TrimSpace(o.SaveDefault) == "" {
			return nil, errors.New(errors.ErrSelector,
				"--save-default needs a selector",
				"Use --clear-default to remove the saved default.")
		}
		if err := (selector.Request{Default: o.SaveDefault}).Validate(); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// positionalArgs accepts at most one command word and reports extras as
// argument errors.
func positionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return errors.New(errors.ErrArgs,
			fmt.Sprintf("Expected one command, got %d: %s", len(args), strings.Join(args, " ")),
			"Quote selectors that contain spaces: --only 'name:\"DELL U2720Q\"'")
	}
	return nil
}

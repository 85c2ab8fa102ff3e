package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc"
	"github.com/rileyhilliard/mosdef/internal/config"
	"github.com/rileyhilliard/mosdef/internal/display"
	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/rileyhilliard/mosdef/internal/logger"
	"github.com/rileyhilliard/mosdef/internal/rollback"
	"github.com/rileyhilliard/mosdef/internal/session"
	"github.com/rileyhilliard/mosdef/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// App carries the collaborators of one invocation. Tests replace them with
// fakes; Execute wires the real ones.
type App struct {
	Provider display.Provider
	Getenv   session.Getenv

	In  io.Reader
	Out io.Writer
	Err io.Writer

	// Interactive reports whether someone can answer a prompt on In.
	Interactive func() bool

	// Confirmer, when set, replaces the confirmer picked from the settings.
	Confirmer rollback.Confirmer

	// Log, when set, replaces the verbose stderr logger.
	Log logger.Logger
}

// NewApp wires the real display provider and the process's terminal.
func NewApp() *App {
	return &App{
		Provider: display.NewXrandrProvider(),
		Getenv:   os.Getenv,
		In:       os.Stdin,
		Out:      os.Stdout,
		Err:      os.Stderr,
		Interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func (a *App) logger(s *config.Settings) logger.Logger {
	if a.Log != nil {
		return a.Log
	}
	return logger.New(a.Err, "[mosdef]", s.Verbose)
}

var longHelp = heredoc.Doc(`
	Rotate monitors between landscape and portrait.

	Commands:
	  landscape   rotate the selected displays to 0°
	  portrait    rotate the selected displays to 90°
	  toggle      flip each selected display between landscape and portrait
	  list        show connected displays and their selectors

	Selectors:
	  M1, M2, ...          display by position, left to right
	  name:"DELL U2720Q"   exact name (case-insensitive)
	  name:DELL            partial name
	  name:/^LG/           regular expression
	  conn:HDMI            connection type
	  path:1a2b3c4d        stable path key shown by --list

	Without --only or --include, the saved default selector is used, and
	every display when no default is saved.
`)

const examples = `  mosdef list
  mosdef portrait --only M2
  mosdef toggle --include M1,M3
  mosdef landscape --exclude 'name:"TV"'
  mosdef --save-default M2
  mosdef toggle --revert-seconds 15`

// NewRootCmd builds the mosdef command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:           "mosdef [flags] <landscape|portrait|toggle|list>",
		Short:         "Monitor Orientation Switcher",
		Long:          longHelp,
		Example:       examples,
		Version:       formatVersion(build.Version),
		Args:          positionalArgs,
		ValidArgs:     []string{"landscape", "portrait", "toggle", "list"},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasSaveDefault = cmd.Flags().Changed("save-default")
			return app.run(cmd, opts, args)
		},
	}

	if app.In != nil {
		cmd.SetIn(app.In)
	}
	if app.Out != nil {
		cmd.SetOut(app.Out)
	}
	if app.Err != nil {
		cmd.SetErr(app.Err)
	}

	addFlags(cmd, opts)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.WrapWithCode(err, errors.ErrArgs,
			"Invalid arguments",
			"Run 'mosdef --help' for usage.")
	})
	cmd.SetVersionTemplate("mosdef {{.Version}}\n")

	cmd.AddCommand(newDoctorCmd(app), newVersionCmd(), newCompletionCmd(cmd))
	return cmd
}

// run dispatches one invocation after validating every flag.
func (a *App) run(cmd *cobra.Command, opts *Options, args []string) error {
	settings, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return err
	}
	if settings.NoColor || a.getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}

	p, err := opts.validate(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	switch p.mode {
	case modeUsage:
		return cmd.Help()
	case modeDefaults:
		return a.updateDefault(settings, opts)
	case modeHistory:
		return a.history(settings)
	case modeList:
		return a.list(ctx, settings)
	}

	if opts.hasSaveDefault || opts.ClearDefault {
		if err := a.updateDefault(settings, opts); err != nil {
			return err
		}
	}
	return a.rotate(ctx, settings, p)
}

func (a *App) getenv(key string) string {
	if a.Getenv == nil {
		return os.Getenv(key)
	}
	return a.Getenv(key)
}

func (a *App) newStore(s *config.Settings) (*config.Store, error) {
	path, err := s.ResolvePath()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't locate the config directory",
			"Pass --config or set MOSDEF_CONFIG.")
	}
	return config.NewStore(path, a.logger(s)), nil
}

// newCompletionCmd generates shell completion scripts for root.
func newCompletionCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion scripts for mosdef.

Examples:
  # Bash
  mosdef completion bash > /etc/bash_completion.d/mosdef

  # Zsh
  mosdef completion zsh > "${fpath[1]}/_mosdef"

  # Fish
  mosdef completion fish > ~/.config/fish/completions/mosdef.fish`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletion(out)
			}
		},
	}
}

// Execute runs the root command and exits with the mapped status code.
func Execute() {
	app := NewApp()
	err := NewRootCmd(app).ExecuteContext(context.Background())
	if err == nil {
		return
	}

	printError(app.Err, err)
	os.Exit(errors.ExitCode(err))
}

// printError writes err unless it only carries an exit status.
func printError(w io.Writer, err error) {
	if _, ok := errors.GetExitCode(err); ok {
		return
	}
	msg := err.Error()
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(w, msg)
}

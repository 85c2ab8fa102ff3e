package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/mosdef/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override (MOSDEF_VERBOSE, ...).
const EnvPrefix = "MOSDEF"

// Keys shared by flags, environment variables and Settings.
const (
	KeyVerbose       = "verbose"
	KeyDryRun        = "dry-run"
	KeyNoConfirm     = "no-confirm"
	KeyForceRDP      = "force-rdp"
	KeyRevertSeconds = "revert-seconds"
	KeyConfig        = "config"
	KeyFormat        = "format"
	KeyNoColor       = "no-color"
)

// Output formats accepted by --format.
var Formats = []string{"table", "json", "yaml"}

// Settings is the runtime configuration of one invocation.
type Settings struct {
	Verbose       bool
	DryRun        bool
	NoConfirm     bool
	ForceRemote   bool
	RevertSeconds int
	ConfigPath    string
	Format        string
	NoColor       bool
}

// LoadSettings merges flags, MOSDEF_* environment variables and defaults,
// in that order of precedence. Flags that were not set on the command line
// fall through to the environment.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyRevertSeconds, 0)
	v.SetDefault(KeyFormat, "table")

	keys := []string{KeyVerbose, KeyDryRun, KeyNoConfirm, KeyForceRDP, KeyRevertSeconds, KeyConfig, KeyFormat, KeyNoColor}
	if flags != nil {
		for _, k := range keys {
			if f := flags.Lookup(k); f != nil {
				if err := v.BindPFlag(k, f); err != nil {
					return nil, errors.WrapWithCode(err, errors.ErrArgs, "Cannot read --"+k, "")
				}
			}
		}
	}

	s := &Settings{
		Verbose:       v.GetBool(KeyVerbose),
		DryRun:        v.GetBool(KeyDryRun),
		NoConfirm:     v.GetBool(KeyNoConfirm),
		ForceRemote:   v.GetBool(KeyForceRDP),
		RevertSeconds: v.GetInt(KeyRevertSeconds),
		ConfigPath:    v.GetString(KeyConfig),
		Format:        strings.ToLower(v.GetString(KeyFormat)),
		NoColor:       v.GetBool(KeyNoColor),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects values no command can use.
func (s *Settings) Validate() error {
	if s.RevertSeconds < 0 {
		return errors.New(errors.ErrArgs,
			fmt.Sprintf("--revert-seconds must be 0 or more, got %d", s.RevertSeconds),
			"Use 0 to ask for confirmation without a countdown.")
	}

	for _, f := range Formats {
		if s.Format == f {
			return nil
		}
	}
	return errors.New(errors.ErrArgs,
		fmt.Sprintf("Unknown format '%s'", s.Format),
		"Use one of: "+strings.Join(Formats, ", "))
}

// ResolvePath picks the config file: --config / MOSDEF_CONFIG, else the
// per-user default.
func (s *Settings) ResolvePath() (string, error) {
	if s.ConfigPath != "" {
		return s.ConfigPath, nil
	}
	return DefaultPath()
}

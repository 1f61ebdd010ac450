package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	keyLogLevel = "log-level"
	keyScheme   = "scheme"
	keySigned   = "signed"
	keyZstd     = "zstd"
	keyOutput   = "output"
)

// An app holds the configuration and logger shared by the subcommands.
type app struct {
	// Configuration from flags and environment variables.
	v *viper.Viper
	// Logger of the tool; writes to standard error.
	log zerolog.Logger
}

// newRootCmd returns the root command of the tool.
func newRootCmd() *cobra.Command {
	a := &app{v: newConfig()}
	root := &cobra.Command{
		Use:           "bitenc",
		Short:         "Pack integers into variable-length codes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Only the flags of the executing command are bound, as
			// subcommands share flag names.
			if err := a.v.BindPFlags(cmd.Flags()); err != nil {
				return errors.WithStack(err)
			}
			return a.initLogger(cmd)
		},
	}
	root.PersistentFlags().String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	root.AddCommand(a.newEncodeCmd(), a.newDecodeCmd(), a.newStatsCmd())
	return root
}

// newConfig returns the configuration with defaults and environment variable
// overrides.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyScheme, "gamma")
	v.SetDefault(keySigned, false)
	v.SetDefault(keyZstd, false)
	v.SetEnvPrefix("BITENC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// initLogger configures the logger from the log level setting.
func (a *app) initLogger(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", a.v.GetString(keyLogLevel))
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
	return nil
}

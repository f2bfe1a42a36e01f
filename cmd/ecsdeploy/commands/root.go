// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cplee/ecsdeploy/internal/logging"
)

// envPrefix prefixes the environment variable bound to every flag,
// e.g. ECSDEPLOY_LOG_LEVEL for --log-level.
const envPrefix = "ECSDEPLOY"

// Root returns the root command for the ecsdeploy CLI.
//
// The root command owns the persistent --config and --log-level flags. Before
// any subcommand runs it fills unset flags from ECSDEPLOY_* environment
// variables and puts the logger into the command context.
func Root() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "ecsdeploy",
		Short:         "Deliver a Fargate service through a multi-region CDK pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyEnv(cmd, newViper()); err != nil {
				return err
			}

			logger, err := logging.New(logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), logger))
			return nil
		},
	}

	cmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file (default: auto-detect ecsdeploy.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Authoring
	cmd.AddCommand(Init())
	cmd.AddCommand(Validate())
	cmd.AddCommand(Describe())
	cmd.AddCommand(Cost())
	cmd.AddCommand(Doctor())

	// Synthesis and artifacts
	cmd.AddCommand(Synth())
	cmd.AddCommand(Template())
	cmd.AddCommand(Publish())

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	return v
}

// applyEnv sets every flag the user did not pass from its environment variable.
func applyEnv(cmd *cobra.Command, v *viper.Viper) error {
	flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.InheritedFlags()}
	for _, fs := range flagSets {
		if err := v.BindPFlags(fs); err != nil {
			return err
		}
	}

	var errs []string
	for _, fs := range flagSets {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Changed || !v.IsSet(f.Name) {
				return
			}
			val := fmt.Sprintf("%v", v.Get(f.Name))
			if val == "" || val == f.Value.String() {
				return
			}
			if err := f.Value.Set(val); err != nil {
				errs = append(errs, fmt.Sprintf("%s_%s: %v", envPrefix, envName(f.Name), err))
			}
		})
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func envName(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// configPath returns the persistent --config value, or "" when the command
// runs without the root.
func configPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}
	return path
}

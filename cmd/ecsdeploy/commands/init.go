package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
	"github.com/cplee/ecsdeploy/internal/config"
)

// Init returns the command for creating a configuration file.
//
// Flags:
//
//	--output, -o: Path to output file (default "ecsdeploy.yaml")
//	--defaults: Write the reference deployment without prompting
func Init() *cobra.Command {
	var (
		outputPath  string
		useDefaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a service and pipeline configuration",
		Long: `Interactively create an ecsdeploy configuration file.

The wizard asks about:

  - Application name and task size
  - Container port, health check path and image
  - Pipeline account, region, repository and connection
  - Gamma and Production regions, and an optional manual approval

Everything else keeps the reference defaults: security scans gate the
Gamma wave and E2E tests run against every Gamma stage.

Use --defaults to write the reference deployment without prompting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, useDefaults)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")
	cmd.Flags().BoolVar(&useDefaults, "defaults", false, "Write the reference configuration without prompting")

	return cmd
}

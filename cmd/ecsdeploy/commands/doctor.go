package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
)

// Doctor returns the command that checks local prerequisites.
//
// Optional flags:
//
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check tools and configuration needed to synthesize",
		Long: `Check that synthesis can run on this machine:

  - node and npx are installed (jsii runtime and CDK CLI)
  - docker is installed when the image is built from a local directory
  - git and aws are reported when present
  - cdk.json exists next to the configuration
  - the configuration is valid

Exits non-zero when a required tool is missing or the configuration is invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath(cmd), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

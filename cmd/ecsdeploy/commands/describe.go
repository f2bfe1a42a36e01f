package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
)

// Describe returns the command that prints the resolved pipeline topology.
func Describe() *cobra.Command {
	var (
		jsonOutput bool
		bootstrap  bool
	)

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Show the waves, stages and gates of the pipeline",
		Long: `Resolve the pipeline topology and print it in execution order: waves run
one after another, stages inside a wave deploy in parallel.

Use --bootstrap to print the cdk bootstrap command for every target
account and region, trusting the pipeline account where needed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Describe(cmd.Context(), configPath(cmd), jsonOutput, bootstrap)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&bootstrap, "bootstrap", false, "Print only the cdk bootstrap commands")

	return cmd
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
)

// Synth returns the command that synthesizes the cloud assembly.
//
// This is also the entry point the CDK CLI runs through cdk.json.
func Synth() *cobra.Command {
	opts := handlers.SynthOptions{}

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Synthesize the CloudFormation templates",
		Long: `Declare the pipeline stack (or, with --service-only, a standalone service
stack) and synthesize the cloud assembly.

The CDK CLI runs this command through cdk.json and sets CDK_OUTDIR; when
run directly the assembly is written to --output or cdk.out.

Examples:
  # Synthesize the pipeline and list its stacks
  ecsdeploy synth

  # Deploy only the service during development
  ecsdeploy synth --service-only -o cdk.out && npx cdk deploy --app cdk.out

  # Export synthesis metrics for a node-exporter textfile collector
  ecsdeploy synth --metrics-file /var/lib/node_exporter/ecsdeploy.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.ConfigPath = configPath(cmd)
			return handlers.Synth(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Outdir, "output", "o", "", "Cloud assembly directory (default: $CDK_OUTDIR or cdk.out)")
	cmd.Flags().BoolVar(&opts.ServiceOnly, "service-only", false, "Synthesize a standalone service stack instead of the pipeline")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus text-format synthesis metrics to this file")

	return cmd
}

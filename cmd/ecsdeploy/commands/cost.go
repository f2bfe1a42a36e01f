package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
)

// Cost returns the command for the monthly cost estimate.
func Cost() *cobra.Command {
	var (
		jsonOutput   bool
		pricesSource string
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate the monthly cost of every stage",
		Long: `Estimate the monthly on-demand cost of the deployment.

Every stage is priced as Fargate vCPU and memory hours for the desired
task count, one Application Load Balancer with its LCUs, and one NAT
gateway per availability zone. One pipeline is added on top.

Regions missing from the price table are priced as us-east-1 and marked.
Use --prices to overlay a YAML or JSON price sheet from a file or URL.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cost(cmd.Context(), configPath(cmd), jsonOutput, pricesSource)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().StringVar(&pricesSource, "prices", "", "Price sheet file or URL overriding the built-in prices")

	return cmd
}

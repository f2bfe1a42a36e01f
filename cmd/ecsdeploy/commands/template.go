package commands

import (
	"github.com/spf13/cobra"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/handlers"
)

// Template returns the command that prints one synthesized template.
func Template() *cobra.Command {
	var (
		dir        string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "template <stack>",
		Short: "Print a synthesized CloudFormation template",
		Long: `Print the template of one stack from the cloud assembly as YAML.

The stack is matched by artifact id, stack name or construct path, for
example NestRecipesAppPipelineStack/GammaUsEast1/EcsService.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Template(cmd.Context(), args[0], dir, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", handlers.DefaultAssemblyDir, "Cloud assembly directory")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

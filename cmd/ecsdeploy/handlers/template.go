package handlers

import (
	"context"
	"fmt"

	"github.com/cplee/ecsdeploy/internal/assembly"
)

// DefaultAssemblyDir is where the CDK writes the cloud assembly.
const DefaultAssemblyDir = "cdk.out"

// Template prints the synthesized template of one stack as YAML, or JSON.
// stackName is an artifact id or a display name such as
// NestRecipesAppPipelineStack/GammaUsEast1/EcsService.
func Template(_ context.Context, stackName, dir string, jsonOutput bool) error {
	if dir == "" {
		dir = DefaultAssemblyDir
	}

	asm, err := loadAssembly(dir)
	if err != nil {
		return err
	}

	stack, err := asm.Stack(stackName)
	if err != nil {
		return err
	}

	tmpl, err := assembly.ReadTemplate(stack.TemplateFile)
	if err != nil {
		return err
	}

	var out []byte
	if jsonOutput {
		out, err = tmpl.JSON()
	} else {
		out, err = tmpl.YAML()
	}
	if err != nil {
		return fmt.Errorf("failed to render template for %s: %w", stack.DisplayName, err)
	}

	if jsonOutput {
		fmt.Println(string(out))
	} else {
		fmt.Print(string(out))
	}
	return nil
}

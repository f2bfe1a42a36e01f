package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/cplee/ecsdeploy/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteYAML
)

// Init writes a configuration file, either from the interactive wizard or,
// with useDefaults, from the reference deployment.
func Init(ctx context.Context, outputPath string, useDefaults bool) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	var cfg *config.Config
	if useDefaults {
		cfg = config.Default()
	} else {
		printWelcome()

		result, err := runWizard(ctx)
		if err != nil {
			return err
		}
		cfg = result.ToConfig()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated configuration is invalid: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("ecsdeploy - Fargate services delivered by CDK Pipelines")
	fmt.Println("=======================================================")
	fmt.Println()
	fmt.Println("This wizard creates a service and pipeline configuration.")
	fmt.Println("Anything it does not ask about keeps the reference defaults.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Service Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:     %s\n", cfg.Name)
	fmt.Printf("  Tasks:    %d x %g vCPU / %d MiB\n", cfg.Service.DesiredCount, cfg.Service.VCPU(), cfg.Service.MemoryMiB)
	fmt.Printf("  Image:    %s\n", cfg.Service.Image)
	fmt.Printf("  Pipeline: %s (%s/%s)\n", cfg.Pipeline.Name, cfg.Pipeline.Account, cfg.Pipeline.Region)
	for _, w := range cfg.Pipeline.Waves {
		fmt.Printf("  Wave %-10s %d stage(s)\n", w.Name+":", len(w.Stages))
	}
	fmt.Println()

	fmt.Println("Next steps:")
	fmt.Println("  1. ecsdeploy doctor          check local prerequisites")
	fmt.Println("  2. ecsdeploy describe --bootstrap")
	fmt.Println("                               bootstrap every target account/region")
	fmt.Println("  3. npx cdk deploy            deploy the pipeline; it takes over from there")
	fmt.Println()
}

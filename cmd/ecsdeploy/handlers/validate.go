package handlers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/cplee/ecsdeploy/internal/topology"
)

// Validate loads and validates the configuration and prints a summary.
func Validate(ctx context.Context, configPath string) error {
	log := logr.FromContextOrDiscard(ctx)

	path, err := resolveConfigPath(configPath)
	if err != nil {
		return err
	}
	log.V(1).Info("Validating configuration", "path", path)

	cfg, err := loadConfigFile(path)
	if err != nil {
		return err
	}

	plan, err := topology.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve topology: %w", err)
	}

	gates := plan.Gates()
	fmt.Printf("%s is valid\n", path)
	fmt.Printf("  app:      %s\n", cfg.Name)
	fmt.Printf("  service:  %d x %g vCPU / %d MiB, port %d, %s\n",
		cfg.Service.DesiredCount, cfg.Service.VCPU(), cfg.Service.MemoryMiB,
		cfg.Service.ContainerPort, cfg.Service.Image)
	fmt.Printf("  pipeline: %s in %s\n", plan.PipelineName, plan.PipelineTarget())
	fmt.Printf("  topology: %d wave(s), %d stage(s), %d target(s)\n",
		len(plan.Waves), len(plan.Stages()), len(plan.Targets()))
	fmt.Printf("  gates:    %d security, %d e2e, %d approval(s)\n",
		gates.Security, gates.EndToEnd, gates.Approvals)
	if plan.IsCrossAccount() {
		fmt.Printf("  accounts: %v (cross-account)\n", plan.Accounts())
	}
	return nil
}

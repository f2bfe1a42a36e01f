package handlers

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/cplee/ecsdeploy/internal/pricing"
	"github.com/cplee/ecsdeploy/internal/topology"
)

// Factory function variables for cost - can be replaced in tests.
var (
	// loadPrices loads a price sheet override, falling back to the built-in table.
	loadPrices = pricing.FetchOrDefault
)

// Cost prints the monthly on-demand estimate for every stage and the pipeline.
// pricesSource optionally names a price sheet file or URL overriding the built-in table.
func Cost(ctx context.Context, configPath string, jsonOutput bool, pricesSource string) error {
	log := logr.FromContextOrDiscard(ctx)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	plan, err := topology.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve topology: %w", err)
	}

	prices, err := loadPrices(ctx, pricesSource)
	if err != nil {
		log.Error(err, "Price sheet unavailable, using built-in prices", "source", pricesSource)
	}

	estimate := pricing.NewCalculatorWithPrices(prices).Calculate(cfg, plan)
	formatter := pricing.NewFormatter()

	switch {
	case jsonOutput:
		fmt.Println(formatter.FormatJSON(estimate))
	case isInteractiveTTY():
		fmt.Print(renderCostSummary(estimate))
	default:
		fmt.Print(formatter.Format(estimate))
	}
	return nil
}

package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/topology"
)

func testPrices() *Prices {
	return &Prices{
		Currency:        "USD",
		PipelineMonthly: 1,
		LCUs:            1,
		Regions: map[string]RegionPrices{
			"us-east-1": {FargateVCPUHour: 0.04, FargateGBHour: 0.004, ALBHour: 0.02, LCUHour: 0.01, NATHour: 0.05},
			"eu-west-1": {FargateVCPUHour: 0.05, FargateGBHour: 0.005, ALBHour: 0.03, LCUHour: 0.01, NATHour: 0.06},
		},
	}
}

func planFor(t *testing.T, cfg *config.Config) *topology.Plan {
	t.Helper()
	plan, err := topology.Build(cfg)
	require.NoError(t, err)
	return plan
}

func TestCalculator_Calculate(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Pipeline.Waves = []config.Wave{{
		Name:   "Prod",
		Stages: []config.Stage{{Region: "us-east-1"}},
	}}

	e := NewCalculatorWithPrices(testPrices()).Calculate(cfg, planFor(t, cfg))
	require.Len(t, e.Stages, 1)

	s := e.Stages[0]
	assert.Equal(t, "ProdUsEast1", s.Stage)
	assert.False(t, s.Fallback)
	require.Len(t, s.Items, 5)

	// 0.25 vCPU * 730h * 0.04
	assert.InDelta(t, 7.30, s.Items[0].Total, 1e-9)
	// 0.5 GB * 730h * 0.004
	assert.InDelta(t, 1.46, s.Items[1].Total, 1e-9)
	// ALB 730h * 0.02
	assert.InDelta(t, 14.60, s.Items[2].Total, 1e-9)
	// 1 LCU * 730h * 0.01
	assert.InDelta(t, 7.30, s.Items[3].Total, 1e-9)
	// 2 NAT * 730h * 0.05
	assert.InDelta(t, 73.00, s.Items[4].Total, 1e-9)

	assert.InDelta(t, 103.66, s.Total, 1e-9)
	assert.InDelta(t, 104.66, e.Total, 1e-9)
	assert.InDelta(t, 104.66*12, e.AnnualCost(), 1e-9)
	assert.Equal(t, "USD", e.Currency)
}

func TestCalculator_ScalesWithTasks(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Service.DesiredCount = 3
	cfg.Service.CPU = 1024
	cfg.Service.MemoryMiB = 2048

	e := NewCalculatorWithPrices(testPrices()).Calculate(cfg, planFor(t, cfg))
	require.Len(t, e.Stages, 4)

	first := e.Stages[0]
	assert.InDelta(t, 3*730*0.04, first.Items[0].Total, 1e-9)
	assert.InDelta(t, 3*2*730*0.004, first.Items[1].Total, 1e-9)
	assert.Equal(t, 3, e.DesiredCount)
	assert.InDelta(t, 1.0, e.VCPU, 1e-9)
}

func TestCalculator_Fallback(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	e := NewCalculatorWithPrices(testPrices()).Calculate(cfg, planFor(t, cfg))

	byStage := map[string]StageEstimate{}
	for _, s := range e.Stages {
		byStage[s.Stage] = s
	}

	assert.False(t, byStage["GammaUsEast1"].Fallback)
	assert.True(t, byStage["GammaUsWest2"].Fallback)
	assert.False(t, byStage["ProdEuWest1"].Fallback)
	assert.InDelta(t, byStage["GammaUsEast1"].Total, byStage["GammaUsWest2"].Total, 1e-9)
	assert.True(t, e.HasFallback())
}

func TestDefaultPrices_CoverKnownRegions(t *testing.T) {
	t.Parallel()

	prices := DefaultPrices()
	for _, region := range config.KnownRegions() {
		_, fallback := prices.ForRegion(region)
		assert.False(t, fallback, region)
	}
}

func TestPrices_Merge(t *testing.T) {
	t.Parallel()

	base := testPrices()
	merged := base.Merge(&Prices{
		Currency: "EUR",
		Regions: map[string]RegionPrices{
			"eu-central-1": {FargateVCPUHour: 1},
		},
	})

	assert.Equal(t, "EUR", merged.Currency)
	assert.InDelta(t, 1.0, merged.PipelineMonthly, 1e-9)
	assert.Len(t, merged.Regions, 3)
	assert.Len(t, base.Regions, 2)

	assert.Equal(t, base.Regions, base.Merge(nil).Regions)
}

func TestLineItem_String(t *testing.T) {
	t.Parallel()

	li := LineItem{Description: "NAT gateways", Quantity: 1460, Unit: "h", UnitPrice: 0.045, Total: 65.7}
	assert.Equal(t, "NAT gateways: 1460.0 h @ $0.04500 = $65.70/mo", li.String())
}

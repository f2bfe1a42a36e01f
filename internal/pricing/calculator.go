package pricing

import (
	"fmt"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/topology"
)

// Calculator estimates deployment costs from a price table.
type Calculator struct {
	prices *Prices
}

// Estimate is the monthly cost of every stage plus the pipeline.
type Estimate struct {
	App      string `json:"app"`
	Currency string `json:"currency"`

	// Tasks, CPU and memory per stage, for display.
	DesiredCount int     `json:"desiredCount"`
	VCPU         float64 `json:"vcpu"`
	MemoryGB     float64 `json:"memoryGb"`

	Stages   []StageEstimate `json:"stages"`
	Pipeline float64         `json:"pipeline"`
	Total    float64         `json:"total"`
}

// StageEstimate is the monthly cost of one deployed stage.
type StageEstimate struct {
	Stage  string     `json:"stage"`
	Wave   string     `json:"wave"`
	Region string     `json:"region"`
	Items  []LineItem `json:"items"`
	Total  float64    `json:"total"`

	// Fallback is true when the region was priced as FallbackRegion.
	Fallback bool `json:"fallback,omitempty"`
}

// LineItem is a single cost line.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// String returns a formatted string representation of the line item.
func (l LineItem) String() string {
	return fmt.Sprintf("%s: %.1f %s @ $%.5f = $%.2f/mo",
		l.Description, l.Quantity, l.Unit, l.UnitPrice, l.Total)
}

// AnnualCost returns the estimated annual cost.
func (e *Estimate) AnnualCost() float64 {
	return e.Total * 12
}

// HasFallback reports whether any stage was priced with fallback prices.
func (e *Estimate) HasFallback() bool {
	for _, s := range e.Stages {
		if s.Fallback {
			return true
		}
	}
	return false
}

// NewCalculator creates a calculator with [DefaultPrices].
func NewCalculator() *Calculator {
	return &Calculator{prices: DefaultPrices()}
}

// NewCalculatorWithPrices creates a calculator with specific prices.
func NewCalculatorWithPrices(prices *Prices) *Calculator {
	return &Calculator{prices: prices}
}

// Calculate estimates the monthly cost of every stage in plan running cfg's service.
func (c *Calculator) Calculate(cfg *config.Config, plan *topology.Plan) *Estimate {
	svc := cfg.Service
	e := &Estimate{
		App:          cfg.Name,
		Currency:     c.prices.Currency,
		DesiredCount: svc.DesiredCount,
		VCPU:         svc.VCPU(),
		MemoryGB:     svc.MemoryGB(),
		Pipeline:     c.prices.PipelineMonthly,
	}

	for _, s := range plan.Stages() {
		se := c.stage(svc, s)
		e.Stages = append(e.Stages, se)
		e.Total += se.Total
	}
	e.Total += e.Pipeline

	return e
}

func (c *Calculator) stage(svc config.Service, s topology.Stage) StageEstimate {
	rp, fallback := c.prices.ForRegion(s.Region)
	tasks := float64(svc.DesiredCount)

	items := []LineItem{
		item("Fargate vCPU", svc.VCPU()*tasks*HoursPerMonth, "vCPU-h", rp.FargateVCPUHour),
		item("Fargate memory", svc.MemoryGB()*tasks*HoursPerMonth, "GB-h", rp.FargateGBHour),
		item("Load balancer", HoursPerMonth, "h", rp.ALBHour),
		item("Load balancer LCUs", c.prices.LCUs*HoursPerMonth, "LCU-h", rp.LCUHour),
		item("NAT gateways", float64(svc.MaxAZs)*HoursPerMonth, "h", rp.NATHour),
	}

	se := StageEstimate{
		Stage:    s.ID,
		Wave:     s.Wave,
		Region:   s.Region,
		Items:    items,
		Fallback: fallback,
	}
	for _, it := range items {
		se.Total += it.Total
	}
	return se
}

func item(desc string, qty float64, unit string, price float64) LineItem {
	return LineItem{
		Description: desc,
		Quantity:    qty,
		Unit:        unit,
		UnitPrice:   price,
		Total:       qty * price,
	}
}

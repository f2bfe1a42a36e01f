package pricing

import "maps"

// HoursPerMonth is the AWS billing convention for a month of on-demand usage.
const HoursPerMonth = 730

// FallbackRegion is priced in place of regions missing from the price table.
const FallbackRegion = "us-east-1"

// RegionPrices holds hourly on-demand prices in USD for one region.
type RegionPrices struct {
	// FargateVCPUHour is the Linux/x86 price per vCPU-hour.
	FargateVCPUHour float64 `json:"fargateVcpuHour"`
	// FargateGBHour is the price per GB-hour of task memory.
	FargateGBHour float64 `json:"fargateGbHour"`
	// ALBHour is the application load balancer hourly charge.
	ALBHour float64 `json:"albHour"`
	// LCUHour is the price per load balancer capacity unit hour.
	LCUHour float64 `json:"lcuHour"`
	// NATHour is the NAT gateway hourly charge, excluding data processing.
	NATHour float64 `json:"natHour"`
}

// Prices is the price table used by the calculator.
type Prices struct {
	Currency string                  `json:"currency"`
	Regions  map[string]RegionPrices `json:"regions"`

	// PipelineMonthly is the charge per active pipeline per month.
	PipelineMonthly float64 `json:"pipelineMonthly"`

	// LCUs is the assumed steady load balancer capacity usage.
	LCUs float64 `json:"lcus"`
}

// ForRegion returns the prices for region. When the region is missing the
// FallbackRegion prices are returned and fallback is true.
func (p *Prices) ForRegion(region string) (prices RegionPrices, fallback bool) {
	if rp, ok := p.Regions[region]; ok {
		return rp, false
	}
	return p.Regions[FallbackRegion], true
}

// Merge overlays other onto p. Regions in other replace those in p; zero
// scalar fields in other keep p's values.
func (p *Prices) Merge(other *Prices) *Prices {
	out := &Prices{
		Currency:        p.Currency,
		Regions:         maps.Clone(p.Regions),
		PipelineMonthly: p.PipelineMonthly,
		LCUs:            p.LCUs,
	}
	if other == nil {
		return out
	}
	if other.Currency != "" {
		out.Currency = other.Currency
	}
	if other.PipelineMonthly > 0 {
		out.PipelineMonthly = other.PipelineMonthly
	}
	if other.LCUs > 0 {
		out.LCUs = other.LCUs
	}
	if out.Regions == nil {
		out.Regions = make(map[string]RegionPrices)
	}
	maps.Copy(out.Regions, other.Regions)
	return out
}

// DefaultPrices returns published on-demand prices in USD (2025).
// Data transfer and per-request charges are not modeled.
func DefaultPrices() *Prices {
	return &Prices{
		Currency:        "USD",
		PipelineMonthly: 1.00,
		LCUs:            1,
		Regions: map[string]RegionPrices{
			"us-east-1":      {FargateVCPUHour: 0.04048, FargateGBHour: 0.004445, ALBHour: 0.0225, LCUHour: 0.008, NATHour: 0.045},
			"us-east-2":      {FargateVCPUHour: 0.04048, FargateGBHour: 0.004445, ALBHour: 0.0225, LCUHour: 0.008, NATHour: 0.045},
			"us-west-1":      {FargateVCPUHour: 0.04656, FargateGBHour: 0.00511, ALBHour: 0.0252, LCUHour: 0.008, NATHour: 0.048},
			"us-west-2":      {FargateVCPUHour: 0.04048, FargateGBHour: 0.004445, ALBHour: 0.0225, LCUHour: 0.008, NATHour: 0.045},
			"ca-central-1":   {FargateVCPUHour: 0.04456, FargateGBHour: 0.004865, ALBHour: 0.02475, LCUHour: 0.0088, NATHour: 0.05},
			"eu-west-1":      {FargateVCPUHour: 0.04048, FargateGBHour: 0.004445, ALBHour: 0.0252, LCUHour: 0.008, NATHour: 0.048},
			"eu-west-2":      {FargateVCPUHour: 0.04656, FargateGBHour: 0.00511, ALBHour: 0.02646, LCUHour: 0.0084, NATHour: 0.05},
			"eu-west-3":      {FargateVCPUHour: 0.04656, FargateGBHour: 0.00511, ALBHour: 0.02646, LCUHour: 0.0084, NATHour: 0.05},
			"eu-central-1":   {FargateVCPUHour: 0.04656, FargateGBHour: 0.00511, ALBHour: 0.027, LCUHour: 0.008, NATHour: 0.052},
			"eu-north-1":     {FargateVCPUHour: 0.04445, FargateGBHour: 0.004865, ALBHour: 0.02394, LCUHour: 0.0076, NATHour: 0.046},
			"ap-northeast-1": {FargateVCPUHour: 0.05056, FargateGBHour: 0.00553, ALBHour: 0.0243, LCUHour: 0.008, NATHour: 0.062},
			"ap-southeast-1": {FargateVCPUHour: 0.05056, FargateGBHour: 0.00553, ALBHour: 0.0252, LCUHour: 0.008, NATHour: 0.059},
			"ap-southeast-2": {FargateVCPUHour: 0.04856, FargateGBHour: 0.00532, ALBHour: 0.0252, LCUHour: 0.008, NATHour: 0.059},
			"ap-south-1":     {FargateVCPUHour: 0.04256, FargateGBHour: 0.00467, ALBHour: 0.0239, LCUHour: 0.008, NATHour: 0.056},
			"sa-east-1":      {FargateVCPUHour: 0.0696, FargateGBHour: 0.0076, ALBHour: 0.034, LCUHour: 0.011, NATHour: 0.093},
		},
	}
}

package handlers

import (
	"fmt"
	"strings"

	"github.com/cplee/ecsdeploy/internal/pricing"
)

// renderCostSummary produces a lipgloss-styled cost summary string.
func renderCostSummary(e *pricing.Estimate) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  ecsdeploy cost: %s", e.App)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %d task(s) x %g vCPU / %g GB per stage", e.DesiredCount, e.VCPU, e.MemoryGB)))
	b.WriteString("\n")

	wave := ""
	for _, s := range e.Stages {
		if s.Wave != wave {
			wave = s.Wave
			b.WriteString("\n")
			b.WriteString(sectionStyle.Render("  " + wave))
			b.WriteString("\n")
		}
		renderCostStage(&b, s)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "    %-28s %12s\n", "Pipeline", formatMoney(e.Currency, e.Pipeline))
	fmt.Fprintf(&b, "    %-28s %12s\n", "Monthly total", okStyle.Render(formatMoney(e.Currency, e.Total)))
	fmt.Fprintf(&b, "    %-28s %12s\n", "Annual estimate", formatMoney(e.Currency, e.AnnualCost()))

	if e.HasFallback() {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("  * no price data for region, priced as %s", pricing.FallbackRegion)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("  On-demand list prices; data transfer and requests not included"))
	b.WriteString("\n")

	return b.String()
}

func renderCostStage(b *strings.Builder, s pricing.StageEstimate) {
	region := s.Region
	if s.Fallback {
		region += " *"
	}
	fmt.Fprintf(b, "    %-20s %-16s %10.2f/mo\n", s.Stage, dimStyle.Render(region), s.Total)
	for _, it := range s.Items {
		b.WriteString(dimStyle.Render(fmt.Sprintf("      %-18s %8.1f %-6s %10.2f", it.Description, it.Quantity, it.Unit, it.Total)))
		b.WriteString("\n")
	}
}

func formatMoney(currency string, amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

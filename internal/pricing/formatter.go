package pricing

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Formatter formats cost estimates for display.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns a boxed, per-stage cost breakdown for terminal display.
func (f *Formatter) Format(e *Estimate) string {
	var sb strings.Builder

	width := 64

	sb.WriteString(boxTop(width))
	sb.WriteString(boxLine("ecsdeploy Cost Estimate", width))
	sb.WriteString(boxLine(fmt.Sprintf("App: %s", e.App), width))
	sb.WriteString(boxSep(width))
	sb.WriteString(boxLine(fmt.Sprintf("Service: %d task(s) x %g vCPU / %g GB", e.DesiredCount, e.VCPU, e.MemoryGB), width))
	sb.WriteString(boxLine(fmt.Sprintf("Stages: %d", len(e.Stages)), width))
	sb.WriteString(boxSep(width))

	for _, s := range e.Stages {
		region := s.Region
		if s.Fallback {
			region += " *"
		}
		sb.WriteString(boxLine(fmt.Sprintf("%-22s %-16s %10.2f/mo", s.Stage, region, s.Total), width))
	}
	sb.WriteString(boxLine(fmt.Sprintf("%-39s %10.2f/mo", "Pipeline", e.Pipeline), width))

	sb.WriteString(boxDash(width))
	sb.WriteString(boxLine(fmt.Sprintf("%-39s %10.2f/mo", "Total ("+e.Currency+")", e.Total), width))
	sb.WriteString(boxEmpty(width))
	sb.WriteString(boxLine(fmt.Sprintf("Annual estimate: %.2f", e.AnnualCost()), width))
	sb.WriteString(boxBottom(width))

	if e.HasFallback() {
		fmt.Fprintf(&sb, "\n  * no price data for region, priced as %s\n", FallbackRegion)
	}
	sb.WriteString("\n  On-demand list prices; data transfer and requests not included\n")

	return sb.String()
}

// FormatStage returns the line items of one stage.
func (f *Formatter) FormatStage(s StageEstimate) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", s.Stage, s.Region)
	for _, it := range s.Items {
		fmt.Fprintf(&sb, "  %-20s %10.1f %-6s %10.2f/mo\n", it.Description, it.Quantity, it.Unit, it.Total)
	}
	return sb.String()
}

// FormatCompact returns a single-line cost summary.
func (f *Formatter) FormatCompact(e *Estimate) string {
	return fmt.Sprintf("%s (%d stages): %.2f %s/mo (%.2f/yr)",
		e.App, len(e.Stages), e.Total, e.Currency, e.AnnualCost())
}

// FormatJSON returns the estimate as JSON.
func (f *Formatter) FormatJSON(e *Estimate) string {
	type jsonEstimate struct {
		*Estimate
		Annual float64 `json:"annual"`
	}

	data, _ := json.MarshalIndent(jsonEstimate{Estimate: e, Annual: e.AnnualCost()}, "", "  ")
	return string(data)
}

// Helper functions for box drawing

func boxTop(width int) string {
	return fmt.Sprintf("┌%s┐\n", strings.Repeat("─", width-2))
}

func boxBottom(width int) string {
	return fmt.Sprintf("└%s┘\n", strings.Repeat("─", width-2))
}

func boxSep(width int) string {
	return fmt.Sprintf("├%s┤\n", strings.Repeat("─", width-2))
}

func boxDash(width int) string {
	return fmt.Sprintf("│ %s │\n", strings.Repeat("─", width-4))
}

func boxLine(text string, width int) string {
	padding := width - 4 - utf8.RuneCountInString(text)
	if padding < 0 {
		padding = 0
		text = string([]rune(text)[:width-4])
	}
	return fmt.Sprintf("│ %s%s │\n", text, strings.Repeat(" ", padding))
}

func boxEmpty(width int) string {
	return fmt.Sprintf("│%s│\n", strings.Repeat(" ", width-2))
}

package handlers

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cplee/ecsdeploy/internal/topology"
)

// describeOutput is the JSON form of describe.
type describeOutput struct {
	Plan      *topology.Plan    `json:"plan"`
	Targets   []topology.Target `json:"targets"`
	Gates     topology.Gates    `json:"gates"`
	Bootstrap []string          `json:"bootstrap"`
}

// Describe prints the resolved pipeline topology, or with bootstrap only the
// cdk bootstrap commands every target needs.
func Describe(ctx context.Context, configPath string, jsonOutput, bootstrap bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	plan, err := topology.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve topology: %w", err)
	}

	switch {
	case jsonOutput && bootstrap:
		return printJSON(plan.BootstrapCommands())
	case jsonOutput:
		return printJSON(describeOutput{
			Plan:      plan,
			Targets:   plan.Targets(),
			Gates:     plan.Gates(),
			Bootstrap: plan.BootstrapCommands(),
		})
	case bootstrap:
		for _, c := range plan.BootstrapCommands() {
			fmt.Println(c)
		}
		return nil
	}

	fmt.Print(renderPlan(plan, isInteractiveTTY()))
	return nil
}

// renderPlan draws the waves as a tree, styled when styled is true.
func renderPlan(plan *topology.Plan, styled bool) string {
	style := func(s func(string) string, text string) string {
		if styled {
			return s(text)
		}
		return text
	}
	title := func(t string) string { return titleStyle.Render(t) }
	section := func(t string) string { return sectionStyle.Render(t) }
	dim := func(t string) string { return dimStyle.Render(t) }

	var b strings.Builder
	b.WriteString(style(title, fmt.Sprintf("%s: %s", plan.App, plan.PipelineName)))
	b.WriteString("\n")
	b.WriteString(style(dim, fmt.Sprintf("  source %s@%s, pipeline in %s", plan.Repository, plan.Branch, plan.PipelineTarget())))
	b.WriteString("\n")

	for i, w := range plan.Waves {
		b.WriteString("\n")
		b.WriteString(style(section, fmt.Sprintf("%d. Wave %s", i+1, w.Name)))
		b.WriteString("\n")
		writeSteps(&b, "   pre ", w.Pre, style, dim)
		for _, s := range w.Stages {
			fmt.Fprintf(&b, "   - %s  %s\n", s.ID, style(dim, s.Environment()))
			writeSteps(&b, "       pre ", s.Pre, style, dim)
			writeSteps(&b, "       post", s.Post, style, dim)
		}
		writeSteps(&b, "   post", w.Post, style, dim)
	}

	g := plan.Gates()
	b.WriteString("\n")
	b.WriteString(style(dim, fmt.Sprintf("%d target(s), %d security gate(s), %d e2e gate(s), %d approval(s)",
		len(plan.Targets()), g.Security, g.EndToEnd, g.Approvals)))
	b.WriteString("\n")
	return b.String()
}

func writeSteps(b *strings.Builder, label string, steps []topology.Step, style func(func(string) string, string) string, dim func(string) string) {
	for _, st := range steps {
		detail := fmt.Sprintf("%d command(s)", len(st.Commands))
		if st.Kind == topology.StepApproval {
			detail = "manual approval"
		}
		if len(st.EnvFromOutputs) > 0 {
			detail += fmt.Sprintf(", env from %s", strings.Join(sortedValues(st.EnvFromOutputs), ", "))
		}
		fmt.Fprintf(b, "%s %s %s\n", label, st.Name, style(dim, "("+detail+")"))
	}
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	slices.Sort(out)
	return out
}

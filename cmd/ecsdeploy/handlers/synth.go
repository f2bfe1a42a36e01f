package handlers

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"

	"github.com/cplee/ecsdeploy/internal/assembly"
	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/infra"
	"github.com/cplee/ecsdeploy/internal/metrics"
	"github.com/cplee/ecsdeploy/internal/topology"
)

// cdkOutdirEnv is set by the CDK CLI when it runs the app.
const cdkOutdirEnv = "CDK_OUTDIR"

// Factory function variables for synth - can be replaced in tests.
var (
	// synthesize builds the construct tree for cfg and returns the assembly directory.
	synthesize = func(cfg *config.Config, outdir string, opts infra.Options) (dir string, err error) {
		// jsii surfaces JavaScript exceptions as panics.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("synthesis failed: %v", r)
			}
		}()

		app := infra.NewApp(outdir)
		if _, err := infra.Build(app, cfg, opts); err != nil {
			return "", err
		}
		return infra.Synth(app), nil
	}

	// loadAssembly reads a synthesized cloud assembly.
	loadAssembly = assembly.Load

	// now returns the current time.
	now = time.Now
)

// SynthOptions holds the synth flags.
type SynthOptions struct {
	ConfigPath  string
	Outdir      string
	ServiceOnly bool
	MetricsFile string
}

// Synth declares the stacks for the configuration, synthesizes the cloud
// assembly and lists the stacks it contains.
func Synth(ctx context.Context, opts SynthOptions) error {
	log := logr.FromContextOrDiscard(ctx)

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	outdir := opts.Outdir
	if outdir == "" {
		outdir = os.Getenv(cdkOutdirEnv)
	}

	start := now()
	log.Info("Synthesizing", "app", cfg.Name, "serviceOnly", opts.ServiceOnly, "outdir", outdir)
	dir, err := synthesize(cfg, outdir, infra.Options{ServiceOnly: opts.ServiceOnly})
	if err != nil {
		return err
	}
	finished := now()
	log.Info("Synthesized cloud assembly", "dir", dir, "duration", finished.Sub(start).String())

	asm, err := loadAssembly(dir)
	if err != nil {
		return err
	}

	if opts.MetricsFile != "" {
		if err := writeSynthMetrics(cfg, asm, finished.Sub(start), finished, opts.MetricsFile); err != nil {
			return err
		}
		log.V(1).Info("Wrote metrics", "file", opts.MetricsFile)
	}

	// The CDK CLI reads the assembly itself; keep stdout quiet under it.
	if os.Getenv(cdkOutdirEnv) != "" {
		return nil
	}

	printStacks(asm)
	return nil
}

func writeSynthMetrics(cfg *config.Config, asm *assembly.Assembly, duration time.Duration, finished time.Time, path string) error {
	rec := metrics.NewRecorder()
	rec.RecordSynth(cfg.Name, duration, finished)

	plan, err := topology.Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to resolve topology: %w", err)
	}
	rec.RecordPlan(plan)

	if err := rec.RecordAssembly(cfg.Name, asm); err != nil {
		return err
	}
	return rec.WriteTextfile(path)
}

func printStacks(asm *assembly.Assembly) {
	fmt.Printf("Cloud assembly: %s\n", asm.Dir)
	fmt.Println()
	for _, s := range asm.Stacks {
		indent := "  "
		if s.Nested() {
			indent = "    "
		}
		env := ""
		if s.Account != "" || s.Region != "" {
			env = fmt.Sprintf(" (%s/%s)", s.Account, s.Region)
		}
		fmt.Printf("%s%s%s\n", indent, s.DisplayName, env)
	}
	fmt.Println()
	fmt.Printf("%d stack(s)\n", len(asm.Stacks))
}

// Package metrics records synthesis metrics in a Prometheus registry and
// writes them in text format for a node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/cplee/ecsdeploy/internal/assembly"
	"github.com/cplee/ecsdeploy/internal/topology"
)

const namespace = "ecsdeploy"

// Recorder holds the synthesis metrics of one run.
type Recorder struct {
	registry *prometheus.Registry

	synthDuration *prometheus.GaugeVec
	stacksTotal   *prometheus.GaugeVec
	resources     *prometheus.GaugeVec
	stagesPerWave *prometheus.GaugeVec
	lastSynth     *prometheus.GaugeVec
}

// NewRecorder creates a recorder backed by a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		synthDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "synth",
				Name:      "duration_seconds",
				Help:      "Duration of the last synthesis in seconds",
			},
			[]string{"app"},
		),

		stacksTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "assembly",
				Name:      "stacks_total",
				Help:      "Number of CloudFormation stacks in the cloud assembly",
			},
			[]string{"app"},
		),

		resources: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "assembly",
				Name:      "resources",
				Help:      "Number of CloudFormation resources by stack and type",
			},
			[]string{"app", "stack", "type"},
		),

		stagesPerWave: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "pipeline",
				Name:      "wave_stages",
				Help:      "Number of stages deployed by each pipeline wave",
			},
			[]string{"app", "wave"},
		),

		lastSynth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "synth",
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful synthesis",
			},
			[]string{"app"},
		),
	}

	r.registry.MustRegister(
		r.synthDuration,
		r.stacksTotal,
		r.resources,
		r.stagesPerWave,
		r.lastSynth,
	)

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordSynth records a completed synthesis.
func (r *Recorder) RecordSynth(app string, duration time.Duration, finishedAt time.Time) {
	r.synthDuration.WithLabelValues(app).Set(duration.Seconds())
	r.lastSynth.WithLabelValues(app).Set(float64(finishedAt.Unix()))
}

// RecordPlan records the number of stages in each wave.
func (r *Recorder) RecordPlan(plan *topology.Plan) {
	for _, w := range plan.Waves {
		r.stagesPerWave.WithLabelValues(plan.App, w.Name).Set(float64(len(w.Stages)))
	}
}

// RecordAssembly records stack and per-type resource counts, reading every template.
func (r *Recorder) RecordAssembly(app string, asm *assembly.Assembly) error {
	r.stacksTotal.WithLabelValues(app).Set(float64(len(asm.Stacks)))

	for _, s := range asm.Stacks {
		tmpl, err := assembly.ReadTemplate(s.TemplateFile)
		if err != nil {
			return fmt.Errorf("stack %s: %w", s.ID, err)
		}
		for typ, n := range tmpl.ResourceCounts() {
			r.resources.WithLabelValues(app, s.DisplayName, typ).Set(float64(n))
		}
	}
	return nil
}

// WriteTextfile writes every recorded metric to path in Prometheus text format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

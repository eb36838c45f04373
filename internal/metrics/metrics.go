// Package metrics exports benchmark results as a Prometheus textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neuppl/are-we-sdd-yet/internal/adapter"
	"github.com/neuppl/are-we-sdd-yet/internal/strategy"
)

const namespace = "awsy"

// Recorder collects per-attempt metrics. It is safe for concurrent use.
type Recorder struct {
	reg     *prometheus.Registry
	runs    *prometheus.CounterVec
	seconds *prometheus.GaugeVec
	size    *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_runs_total",
			Help:      "Tool invocations by outcome.",
		}, []string{"tool", "outcome"}),
		seconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compile_seconds",
			Help:      "Compilation time reported by the tool.",
		}, []string{"tool", "file", "strategy"}),
		size: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "artifact_size",
			Help:      "Size of the compiled diagram reported by the tool.",
		}, []string{"tool", "file", "strategy"}),
	}
	r.reg.MustRegister(r.runs, r.seconds, r.size)
	return r
}

// Observe records one attempt of a tool on file.
func (r *Recorder) Observe(file string, s strategy.Strategy, a *adapter.Attempt) {
	outcome := a.Outcome.String()
	if a.Outcome == adapter.NotApplicable {
		outcome = "not_applicable"
	}
	r.runs.WithLabelValues(a.Tool, outcome).Inc()
	if a.Log == nil {
		return
	}
	fam, ok := adapter.LookupFamily(a.Log.Family)
	if !ok {
		return
	}
	if v, ok := fam.Value(a.Log.Log, adapter.MetricTime); ok {
		r.seconds.WithLabelValues(a.Tool, file, s.ID()).Set(v)
	}
	if v, ok := fam.Value(a.Log.Log, adapter.MetricSize); ok {
		r.size.WithLabelValues(a.Tool, file, s.ID()).Set(v)
	}
}

// WriteTextfile writes all collected metrics in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// Package metrics provides Prometheus metrics collection and export.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the harness metrics. All metrics are registered on
// the registry passed to NewCollector so tests can use isolated
// registries.
type Collector struct {
	info             *prometheus.GaugeVec
	stageDuration    *prometheus.GaugeVec
	stageFailures    *prometheus.CounterVec
	runsTotal        prometheus.Counter
	runDuration      prometheus.Histogram
	samplesCollected prometheus.Gauge
}

// NewCollector creates and registers the harness metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sample_check_info",
				Help: "Information about the validation run (value always 1)",
			},
			[]string{"version", "sample", "build_type"},
		),
		stageDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sample_check_stage_duration_seconds",
				Help: "Wall time of each pipeline stage",
			},
			[]string{"stage"},
		),
		stageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sample_check_stage_failures_total",
				Help: "Stages that produced a diagnostic",
			},
			[]string{"stage"},
		),
		runsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sample_check_runs_total",
				Help: "Benchmark executions completed",
			},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sample_check_run_duration_seconds",
				Help:    "Benchmark execution wall time",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms .. ~82s
			},
		),
		samplesCollected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "sample_check_samples_collected",
				Help: "Sample count parsed from the last benchmark run",
			},
		),
	}

	reg.MustRegister(
		c.info,
		c.stageDuration,
		c.stageFailures,
		c.runsTotal,
		c.runDuration,
		c.samplesCollected,
	)

	return c
}

// SetInfo records run identity labels.
func (c *Collector) SetInfo(version, sample, buildType string) {
	c.info.WithLabelValues(version, sample, buildType).Set(1)
}

// ObserveStage records a completed stage.
func (c *Collector) ObserveStage(stage string, elapsed time.Duration, failed bool) {
	c.stageDuration.WithLabelValues(stage).Set(elapsed.Seconds())
	if failed {
		c.stageFailures.WithLabelValues(stage).Inc()
	}
}

// ObserveRun records one benchmark execution.
func (c *Collector) ObserveRun(elapsed time.Duration, samples int) {
	c.runsTotal.Inc()
	c.runDuration.Observe(elapsed.Seconds())
	c.samplesCollected.Set(float64(samples))
}

// Package stats aggregates benchmark run timings for repeat mode.
package stats

import (
	"time"

	"github.com/influxdata/tdigest"
)

// RunStats accumulates per-execution benchmark timings. Quantiles are
// estimated with a t-digest so repeat counts can grow without storing
// every observation for sorting.
type RunStats struct {
	digest *tdigest.TDigest

	count       int
	total       time.Duration
	min         time.Duration
	max         time.Duration
	lastSamples int
}

// NewRunStats creates an empty accumulator.
func NewRunStats() *RunStats {
	return &RunStats{
		digest: tdigest.NewWithCompression(100),
	}
}

// Record adds one benchmark execution.
func (r *RunStats) Record(elapsed time.Duration, samples int) {
	r.digest.Add(elapsed.Seconds(), 1)
	r.count++
	r.total += elapsed
	if r.count == 1 || elapsed < r.min {
		r.min = elapsed
	}
	if elapsed > r.max {
		r.max = elapsed
	}
	r.lastSamples = samples
}

// Count returns the number of recorded executions.
func (r *RunStats) Count() int {
	return r.count
}

// Quantile returns the q-th duration quantile (0 <= q <= 1).
func (r *RunStats) Quantile(q float64) time.Duration {
	if r.count == 0 {
		return 0
	}
	return time.Duration(r.digest.Quantile(q) * float64(time.Second))
}

// Mean returns the average execution duration.
func (r *RunStats) Mean() time.Duration {
	if r.count == 0 {
		return 0
	}
	return r.total / time.Duration(r.count)
}

// Min returns the fastest execution.
func (r *RunStats) Min() time.Duration {
	return r.min
}

// Max returns the slowest execution.
func (r *RunStats) Max() time.Duration {
	return r.max
}

// Total returns the summed execution time.
func (r *RunStats) Total() time.Duration {
	return r.total
}

// LastSamples returns the sample count of the most recent execution.
func (r *RunStats) LastSamples() int {
	return r.lastSamples
}

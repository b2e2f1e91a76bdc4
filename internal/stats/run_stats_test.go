package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/gpuperf/go-sample-check/internal/metrics"
)

func TestRunStats_Record(t *testing.T) {
	r := NewRunStats()

	if r.Count() != 0 {
		t.Errorf("empty Count = %d, want 0", r.Count())
	}
	if r.Quantile(0.5) != 0 {
		t.Errorf("empty Quantile = %v, want 0", r.Quantile(0.5))
	}

	r.Record(100*time.Millisecond, 520)
	r.Record(200*time.Millisecond, 521)
	r.Record(300*time.Millisecond, 522)

	if r.Count() != 3 {
		t.Errorf("Count = %d, want 3", r.Count())
	}
	if r.Min() != 100*time.Millisecond {
		t.Errorf("Min = %v, want 100ms", r.Min())
	}
	if r.Max() != 300*time.Millisecond {
		t.Errorf("Max = %v, want 300ms", r.Max())
	}
	if r.Mean() != 200*time.Millisecond {
		t.Errorf("Mean = %v, want 200ms", r.Mean())
	}
	if r.Total() != 600*time.Millisecond {
		t.Errorf("Total = %v, want 600ms", r.Total())
	}
	if r.LastSamples() != 522 {
		t.Errorf("LastSamples = %d, want 522", r.LastSamples())
	}

	// The median estimate must land within the observed range.
	p50 := r.Quantile(0.5)
	if p50 < r.Min() || p50 > r.Max() {
		t.Errorf("P50 %v outside [%v, %v]", p50, r.Min(), r.Max())
	}
}

func TestFormatSummary(t *testing.T) {
	r := NewRunStats()
	for i := 0; i < 10; i++ {
		r.Record(time.Duration(100+i)*time.Millisecond, 520)
	}

	out := FormatSummary(r, SummaryConfig{
		Sample:    "cl_gemm_inst",
		BuildType: "Release",
		StageDurations: map[string]time.Duration{
			"configure": 2 * time.Second,
			"build":     30 * time.Second,
			"run":       time.Second,
		},
		Host: &metrics.HostMetrics{
			Healthy:    true,
			CPUPercent: 42.5,
			CPUP50:     40,
			CPUMax:     55,
			MemUsed:    750_000_000,
			MemTotal:   1_000_000_000,
			MemPercent: 75,
			Load1:      1.5,
		},
	})

	for _, want := range []string{
		"cl_gemm_inst",
		"Benchmark Runs:         10",
		"Samples Collected:      520",
		"P50 (median):",
		"configure:",
		"Host Load During Run",
		"42.5%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummary_SingleRunOmitsDistribution(t *testing.T) {
	r := NewRunStats()
	r.Record(time.Second, 520)

	out := FormatSummary(r, SummaryConfig{Sample: "cl_gemm_inst", BuildType: "Release"})
	if strings.Contains(out, "Distribution") {
		t.Error("single-run summary should omit the distribution section")
	}
	if strings.Contains(out, "Host Load") {
		t.Error("summary without host metrics should omit the host section")
	}
}

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		d    time.Duration
		want string
	}{
		{250 * time.Millisecond, "250 ms"},
		{1500 * time.Millisecond, "1.500 s"},
		{0, "0 ms"},
	}
	for _, tc := range testCases {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		n    int64
		want string
	}{
		{500, "500 B"},
		{1_500, "1.50 KB"},
		{2_500_000, "2.50 MB"},
		{3_000_000_000, "3.00 GB"},
	}
	for _, tc := range testCases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/gpuperf/go-sample-check/internal/metrics"
)

// SummaryConfig holds configuration for summary formatting.
type SummaryConfig struct {
	// Sample is the validated sample name.
	Sample string

	// BuildType is the CMake build type used.
	BuildType string

	// StageDurations are the wall times of the completed stages, in
	// pipeline order.
	StageDurations map[string]time.Duration

	// Host holds the last host load snapshot (nil when disabled).
	Host *metrics.HostMetrics
}

const summaryRule = "───────────────────────────────────────────────────────────────────────"
const summaryBorder = "═══════════════════════════════════════════════════════════════════════"

// FormatSummary formats repeat-mode run statistics for display at
// exit. Written to stderr by the caller; stdout stays reserved for
// the diagnostic.
func FormatSummary(runs *RunStats, cfg SummaryConfig) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(summaryBorder + "\n")
	b.WriteString("                     go-sample-check Run Summary\n")
	b.WriteString(summaryBorder + "\n\n")

	fmt.Fprintf(&b, "Sample:                 %s\n", cfg.Sample)
	fmt.Fprintf(&b, "Build Type:             %s\n", cfg.BuildType)
	fmt.Fprintf(&b, "Benchmark Runs:         %d\n", runs.Count())
	fmt.Fprintf(&b, "Samples Collected:      %d (last run)\n\n", runs.LastSamples())

	if len(cfg.StageDurations) > 0 {
		b.WriteString(summaryRule + "\n")
		b.WriteString("                           Stage Durations\n")
		b.WriteString(summaryRule + "\n\n")
		for _, stage := range []string{"configure", "build", "run"} {
			if d, ok := cfg.StageDurations[stage]; ok {
				fmt.Fprintf(&b, "  %-20s %s\n", stage+":", FormatDuration(d))
			}
		}
		b.WriteString("\n")
	}

	if runs.Count() > 1 {
		b.WriteString(summaryRule + "\n")
		b.WriteString("                        Run Duration Distribution\n")
		b.WriteString(summaryRule + "\n\n")
		fmt.Fprintf(&b, "  P50 (median):         %s\n", FormatDuration(runs.Quantile(0.50)))
		fmt.Fprintf(&b, "  P95:                  %s\n", FormatDuration(runs.Quantile(0.95)))
		fmt.Fprintf(&b, "  P99:                  %s\n", FormatDuration(runs.Quantile(0.99)))
		fmt.Fprintf(&b, "  Min:                  %s\n", FormatDuration(runs.Min()))
		fmt.Fprintf(&b, "  Max:                  %s\n", FormatDuration(runs.Max()))
		fmt.Fprintf(&b, "  Mean:                 %s\n\n", FormatDuration(runs.Mean()))
	}

	if cfg.Host != nil && cfg.Host.Healthy {
		b.WriteString(summaryRule + "\n")
		b.WriteString("                         Host Load During Run\n")
		b.WriteString(summaryRule + "\n\n")
		fmt.Fprintf(&b, "  CPU:                  %.1f%% (p50 %.1f%%, max %.1f%%)\n",
			cfg.Host.CPUPercent, cfg.Host.CPUP50, cfg.Host.CPUMax)
		fmt.Fprintf(&b, "  Memory:               %s / %s (%.1f%%)\n",
			FormatBytes(cfg.Host.MemUsed), FormatBytes(cfg.Host.MemTotal), cfg.Host.MemPercent)
		fmt.Fprintf(&b, "  Load (1m):            %.2f\n\n", cfg.Host.Load1)
	}

	b.WriteString(summaryBorder + "\n")
	return b.String()
}

// FormatDuration renders a duration with millisecond precision.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.3f s", d.Seconds())
}

// FormatBytes formats bytes with KB/MB/GB suffixes.
func FormatBytes(n int64) string {
	if n >= 1_000_000_000 {
		return fmt.Sprintf("%.2f GB", float64(n)/1_000_000_000)
	}
	if n >= 1_000_000 {
		return fmt.Sprintf("%.2f MB", float64(n)/1_000_000)
	}
	if n >= 1_000 {
		return fmt.Sprintf("%.2f KB", float64(n)/1_000)
	}
	return fmt.Sprintf("%d B", n)
}

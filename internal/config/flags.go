package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// ParseFlags parses command-line flags and returns a Config.
func ParseFlags() (*Config, error) {
	cfg := DefaultConfig()

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `go-sample-check - configure, build, run, and validate a compute sample

Usage:
  go-sample-check [flags] [samples-root]

Sample Selection:
`)
		printFlagCategory([]string{"sample", "samples-root", "build-type"})

		fmt.Fprintf(os.Stderr, "\nBenchmark Arguments:\n")
		printFlagCategory([]string{"size", "iterations", "repeat"})

		fmt.Fprintf(os.Stderr, "\nToolchain:\n")
		printFlagCategory([]string{"cmake", "make"})

		fmt.Fprintf(os.Stderr, "\nSafety & Diagnostics:\n")
		printFlagCategory([]string{"print-cmd", "skip-preflight"})

		fmt.Fprintf(os.Stderr, "\nObservability:\n")
		printFlagCategory([]string{"metrics", "host-metrics", "host-metrics-interval", "host-metrics-window", "v", "log-format"})

		fmt.Fprintf(os.Stderr, "\nDashboard:\n")
		printFlagCategory([]string{"tui"})

		fmt.Fprintf(os.Stderr, `
On success the program prints nothing to stdout and exits 0.
On failure it prints the first diagnostic to stdout and exits 1.

Examples:
  # Validate cl_gemm_inst under /opt/pti/samples
  go-sample-check /opt/pti/samples

  # Debug build, verbose logs
  go-sample-check -build-type Debug -v /opt/pti/samples

  # Ten timed runs with a live dashboard
  go-sample-check -repeat 10 -tui /opt/pti/samples

`)
	}

	// Sample selection
	flag.StringVar(&cfg.Sample, "sample", cfg.Sample, "Sample name to validate")
	flag.StringVar(&cfg.SamplesRoot, "samples-root", cfg.SamplesRoot, "Directory containing sample source trees")
	flag.StringVar(&cfg.BuildType, "build-type", cfg.BuildType, `CMake build type (overridden by SAMPLE_BUILD_TYPE env)`)

	// Benchmark arguments
	flag.IntVar(&cfg.MatrixSize, "size", cfg.MatrixSize, "Matrix size passed to the benchmark")
	flag.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Iteration count passed to the benchmark")
	flag.IntVar(&cfg.Repeat, "repeat", cfg.Repeat, "Benchmark executions after one build (timing stats when >1)")

	// Toolchain
	flag.StringVar(&cfg.CMakePath, "cmake", cfg.CMakePath, "Path to the cmake binary")
	flag.StringVar(&cfg.MakePath, "make", cfg.MakePath, "Path to the make binary")

	// Safety & Diagnostics
	flag.BoolVar(&cfg.PrintCmd, "print-cmd", cfg.PrintCmd, "Print the commands that would run and exit")
	flag.BoolVar(&cfg.SkipPreflight, "skip-preflight", cfg.SkipPreflight, "Skip preflight checks")

	// Observability
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address (empty = disabled)")
	flag.StringVar(&cfg.HostMetricsURL, "host-metrics", cfg.HostMetricsURL,
		"node_exporter URL to sample host load during the run (e.g., http://127.0.0.1:9100/metrics). "+
			"If empty, host metrics are disabled.")
	flag.DurationVar(&cfg.HostMetricsInterval, "host-metrics-interval", cfg.HostMetricsInterval,
		"Interval for scraping host metrics")
	flag.DurationVar(&cfg.HostMetricsWindow, "host-metrics-window", cfg.HostMetricsWindow,
		"Rolling window for host CPU percentiles")
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)

	// Dashboard
	flag.BoolVar(&cfg.TUIEnabled, "tui", cfg.TUIEnabled, "Live terminal dashboard of stage progress")

	flag.Parse()

	// Positional argument: samples root
	args := flag.Args()
	if len(args) >= 1 {
		cfg.SamplesRoot = args[0]
	}

	return cfg, nil
}

// printFlagCategory prints flags matching the given names (helper for usage).
func printFlagCategory(names []string) {
	flag.VisitAll(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				fmt.Fprintf(os.Stderr, "  -%s %s\n    \t%s", f.Name, flagType(f), f.Usage)
				if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" && f.DefValue != "0s" {
					fmt.Fprintf(os.Stderr, " (default %s)", f.DefValue)
				}
				fmt.Fprintln(os.Stderr)
				return
			}
		}
	})
}

// flagType returns a type hint for the flag value.
func flagType(f *flag.Flag) string {
	switch f.DefValue {
	case "true", "false":
		return ""
	}

	if strings.HasSuffix(f.DefValue, "s") || strings.HasSuffix(f.DefValue, "m") || strings.HasSuffix(f.DefValue, "h") {
		return "duration"
	}

	if _, err := fmt.Sscanf(f.DefValue, "%d", new(int)); err == nil {
		return "int"
	}

	return "string"
}

// Package main provides the go-sample-check CLI entry point.
//
// go-sample-check validates a native compute benchmark sample by
// driving its configure, build and run stages and checking the
// output. On failure the first diagnostic is printed to stdout and
// the process exits non-zero; stdout stays empty on success.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gpuperf/go-sample-check/internal/config"
	"github.com/gpuperf/go-sample-check/internal/harness"
	"github.com/gpuperf/go-sample-check/internal/logging"
	"github.com/gpuperf/go-sample-check/internal/metrics"
	"github.com/gpuperf/go-sample-check/internal/paths"
	"github.com/gpuperf/go-sample-check/internal/preflight"
	"github.com/gpuperf/go-sample-check/internal/process"
	"github.com/gpuperf/go-sample-check/internal/stats"
	"github.com/gpuperf/go-sample-check/internal/tui"

	"github.com/prometheus/client_golang/prometheus"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/go-sample-check
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Handle version flag early (before flag parsing)
	if len(os.Args) > 1 {
		arg := os.Args[1]
		if arg == "-version" || arg == "--version" || arg == "version" {
			fmt.Printf("go-sample-check %s\n", version)
			return 0
		}
	}

	// Parse command-line flags
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	// Initialize logger
	// When TUI is enabled, suppress logs to avoid interfering with TUI rendering
	var logger *slog.Logger
	if cfg.TUIEnabled {
		logger = logging.NewLoggerWithWriter(io.Discard, "json", "info")
	} else {
		logger = logging.NewLogger(cfg.LogFormat, "info", cfg.Verbose)
	}
	logging.SetDefault(logger)

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	runner := process.NewRunner(logger)
	h := harness.New(cfg, runner, logger)
	buildPath := h.BuildPath()

	// Handle -print-cmd mode
	if cfg.PrintCmd {
		printPipelineCommands(h, buildPath)
		return 0
	}

	// Preflight checks
	if !cfg.SkipPreflight {
		result := preflight.RunAll(cfg.CMakePath, cfg.MakePath, buildPath)
		if !cfg.TUIEnabled {
			preflight.PrintResults(result)
		}
		if !result.Passed {
			logger.Error("preflight_failed")
			return 1
		}
	}

	if err := paths.EnsureBuildDir(buildPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating build directory: %v\n", err)
		return 1
	}

	// Log startup
	logger.Info("starting",
		"version", version,
		"sample", cfg.Sample,
		"build_path", buildPath,
		"build_type", paths.BuildFlag(cfg.BuildType),
		"size", cfg.MatrixSize,
		"iterations", cfg.Iterations,
		"repeat", cfg.Repeat,
	)

	if !cfg.TUIEnabled {
		printBanner(cfg, buildPath)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prometheus collection; the server only runs when -metrics is set
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	collector.SetInfo(version, cfg.Sample, paths.BuildFlag(cfg.BuildType))
	if cfg.MetricsAddr != "" {
		server := metrics.NewServer(cfg.MetricsAddr, registry, logger)
		server.Start()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer shutdownCancel()
			server.Shutdown(shutdownCtx)
		}()
	}

	// Host load scraper (nil when disabled; all methods are nil-safe)
	scraper := metrics.NewHostScraper(cfg.HostMetricsURL, cfg.HostMetricsInterval, cfg.HostMetricsWindow, logger)
	go scraper.Run(ctx)

	runStats := stats.NewRunStats()
	stageDurations := make(map[string]time.Duration)

	var program *tea.Program
	h.SetCallbacks(harness.Callbacks{
		OnStageStart: func(name string) {
			if program != nil {
				program.Send(tui.StageStartMsg{Name: name})
			}
		},
		OnStageDone: func(name string, diag string, elapsed time.Duration) {
			collector.ObserveStage(name, elapsed, diag != "")
			stageDurations[name] = elapsed
			if program != nil {
				program.Send(tui.StageDoneMsg{Name: name, Diagnostic: diag, Elapsed: elapsed})
			}
		},
		OnRunIteration: func(iteration int, elapsed time.Duration, samples int) {
			collector.ObserveRun(elapsed, samples)
			runStats.Record(elapsed, samples)
			if program != nil {
				program.Send(tui.RunIterationMsg{Iteration: iteration, Elapsed: elapsed, Samples: samples})
			}
		},
	})

	var report *harness.Report
	var runErr error

	if cfg.TUIEnabled {
		program = tea.NewProgram(tui.New(tui.Config{
			Sample:    cfg.Sample,
			BuildPath: buildPath,
			Repeat:    cfg.Repeat,
		}), tea.WithOutput(os.Stderr))

		go func() {
			report, runErr = h.Run(ctx)
			var diag string
			if report != nil {
				diag = report.Diagnostic
			}
			program.Send(tui.PipelineDoneMsg{Diagnostic: diag, Err: runErr})
		}()

		if _, err := program.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Dashboard error: %v\n", err)
			return 1
		}
	} else {
		report, runErr = h.Run(ctx)
	}

	if runErr != nil {
		logger.Error("pipeline_failed", "error", runErr)
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}

	if cfg.Repeat > 1 && !report.Failed() {
		fmt.Fprint(os.Stderr, stats.FormatSummary(runStats, stats.SummaryConfig{
			Sample:         cfg.Sample,
			BuildType:      paths.BuildFlag(cfg.BuildType),
			StageDurations: stageDurations,
			Host:           scraper.Snapshot(),
		}))
	}

	// The diagnostic is the only thing ever written to stdout.
	if report.Failed() {
		fmt.Println(report.Diagnostic)
		logger.Warn("validation_failed", "sample", cfg.Sample)
		return 1
	}

	logger.Info("validation_passed", "sample", cfg.Sample, "samples", report.SampleCount)
	fmt.Fprintf(os.Stderr, "PASSED: %s collected %d samples\n", cfg.Sample, report.SampleCount)
	return 0
}

// printBanner prints the startup banner to stderr.
func printBanner(cfg *config.Config, buildPath string) {
	w := os.Stderr
	fmt.Fprintln(w)
	fmt.Fprintln(w, "╔═══════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                        go-sample-check                             ║")
	fmt.Fprintln(w, "║          Compute Sample Build and Run Validation                   ║")
	fmt.Fprintln(w, "╚═══════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Sample:      %s\n", cfg.Sample)
	fmt.Fprintf(w, "  Build dir:   %s\n", buildPath)
	fmt.Fprintf(w, "  Build type:  %s\n", paths.BuildFlag(cfg.BuildType))
	fmt.Fprintf(w, "  Arguments:   size=%d iterations=%d\n", cfg.MatrixSize, cfg.Iterations)
	if cfg.Repeat > 1 {
		fmt.Fprintf(w, "  Repeat:      %d benchmark runs\n", cfg.Repeat)
	}
	if cfg.MetricsAddr != "" {
		fmt.Fprintf(w, "  Metrics:     http://%s/metrics\n", cfg.MetricsAddr)
	}
	fmt.Fprintln(w)
}

// printPipelineCommands prints the commands the pipeline would run.
func printPipelineCommands(h *harness.Harness, buildPath string) {
	fmt.Printf("# Commands that would run in %s:\n", buildPath)
	fmt.Println()
	for _, cmd := range h.Commands() {
		fmt.Println(cmd)
	}
}

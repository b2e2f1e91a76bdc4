// Package harness runs the configure/build/run/parse validation
// pipeline for a compute sample.
//
// The pipeline is strictly sequential. Each stage either succeeds or
// produces a diagnostic string; the first non-empty diagnostic stops
// the pipeline and is surfaced to the caller unchanged. Diagnostics
// are never combined.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gpuperf/go-sample-check/internal/config"
	"github.com/gpuperf/go-sample-check/internal/logging"
	"github.com/gpuperf/go-sample-check/internal/parser"
	"github.com/gpuperf/go-sample-check/internal/paths"
	"github.com/gpuperf/go-sample-check/internal/process"
)

// Stage names, in pipeline order.
const (
	StageConfigure = "configure"
	StageBuild     = "build"
	StageRun       = "run"
)

// cmakeErrorMarker flags a failed configure. The match is
// case-sensitive: cmake prints exactly this and warnings must not
// trip it.
const cmakeErrorMarker = "CMake Error"

// correctMarker is the correctness marker the benchmark prints on a
// successful verification. The leading space is significant: it keeps
// a longer token like "INCORRECT" from matching.
const correctMarker = " CORRECT"

// Executor runs an external command in a directory and captures both
// output streams. Satisfied by *process.Runner; faked in tests.
type Executor interface {
	Capture(ctx context.Context, dir string, name string, args ...string) (*process.Result, error)
}

// Callbacks contains optional callback functions for pipeline events.
type Callbacks struct {
	// OnStageStart is called when a stage begins.
	OnStageStart func(name string)

	// OnStageDone is called when a stage finishes. diag is empty on
	// success.
	OnStageDone func(name string, diag string, elapsed time.Duration)

	// OnRunIteration is called after each benchmark execution in
	// repeat mode.
	OnRunIteration func(iteration int, elapsed time.Duration, samples int)
}

// StageResult records the outcome of a single stage.
type StageResult struct {
	Name       string
	Diagnostic string
	Elapsed    time.Duration
}

// RunSample records one benchmark execution in repeat mode.
type RunSample struct {
	Elapsed time.Duration
	Samples int
}

// Report is the outcome of a full pipeline execution.
type Report struct {
	// Stages holds the stages that actually ran, in order.
	Stages []StageResult

	// Diagnostic is the first failure observed, or empty on success.
	Diagnostic string

	// SampleCount is the parsed sample count of the last successful
	// benchmark execution.
	SampleCount int

	// Runs holds per-execution records (len > 1 only in repeat mode).
	Runs []RunSample
}

// Failed reports whether the pipeline produced a diagnostic.
func (r *Report) Failed() bool {
	return r.Diagnostic != ""
}

// Harness executes the validation pipeline for one sample.
type Harness struct {
	cfg       *config.Config
	exec      Executor
	logger    *slog.Logger
	callbacks Callbacks
}

// New creates a harness. exec must not be nil.
func New(cfg *config.Config, exec Executor, logger *slog.Logger) *Harness {
	return &Harness{
		cfg:    cfg,
		exec:   exec,
		logger: logger,
	}
}

// SetCallbacks registers pipeline event callbacks. Must be called
// before Run.
func (h *Harness) SetCallbacks(cb Callbacks) {
	h.callbacks = cb
}

// BuildPath returns the working directory every stage shares.
func (h *Harness) BuildPath() string {
	return paths.SampleBuildPath(h.cfg.SamplesRoot, h.cfg.Sample)
}

// Commands returns the command lines the pipeline would execute, for
// the -print-cmd diagnostic mode.
func (h *Harness) Commands() []string {
	return []string{
		strings.Join(h.configureArgs(), " "),
		h.cfg.MakePath,
		strings.Join(h.runArgs(), " "),
	}
}

// Run executes the pipeline once and returns its report. The returned
// error covers environmental failures (a tool that could not be
// spawned); tool-reported failures travel in Report.Diagnostic.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	path := h.BuildPath()
	report := &Report{}

	stages := []struct {
		name string
		run  func(ctx context.Context, path string, report *Report) (string, error)
	}{
		{StageConfigure, h.configure},
		{StageBuild, h.build},
		{StageRun, h.runSample},
	}

	for _, stage := range stages {
		if h.callbacks.OnStageStart != nil {
			h.callbacks.OnStageStart(stage.name)
		}
		h.logger.Info("stage_started", "stage", stage.name, "path", path)

		start := time.Now()
		diag, err := stage.run(ctx, path, report)
		elapsed := time.Since(start)

		if err != nil {
			return report, fmt.Errorf("%s stage: %w", stage.name, err)
		}

		report.Stages = append(report.Stages, StageResult{
			Name:       stage.name,
			Diagnostic: diag,
			Elapsed:    elapsed,
		})
		if h.callbacks.OnStageDone != nil {
			h.callbacks.OnStageDone(stage.name, diag, elapsed)
		}

		if diag != "" {
			report.Diagnostic = diag
			h.logger.Warn("stage_failed",
				"stage", stage.name,
				"elapsed", elapsed.String(),
			)
			return report, nil
		}

		h.logger.Info("stage_completed",
			"stage", stage.name,
			"elapsed", elapsed.String(),
		)
	}

	return report, nil
}

// configure invokes cmake in the build directory. Only the exact
// "CMake Error" marker fails the stage; stderr warnings are tolerated.
func (h *Harness) configure(ctx context.Context, path string, _ *Report) (string, error) {
	args := h.configureArgs()
	res, err := h.exec.Capture(ctx, path, args[0], args[1:]...)
	if err != nil {
		return "", err
	}
	h.logToolOutput(h.cfg.CMakePath, res.Stderr)

	if res.Stderr != "" && strings.Contains(res.Stderr, cmakeErrorMarker) {
		return res.Stderr, nil
	}
	return "", nil
}

// build invokes make in the build directory. The case-insensitive
// "error" match is looser than configure's on purpose: make error
// output is less predictable, and existing log scraping expects this
// exact behavior, false positives included.
func (h *Harness) build(ctx context.Context, path string, _ *Report) (string, error) {
	res, err := h.exec.Capture(ctx, path, h.cfg.MakePath)
	if err != nil {
		return "", err
	}
	h.logToolOutput(h.cfg.MakePath, res.Stderr)

	if res.Stderr != "" && strings.Contains(strings.ToLower(res.Stderr), "error") {
		return res.Stderr, nil
	}
	return "", nil
}

// runSample executes the benchmark binary, once normally or
// cfg.Repeat times in repeat mode, and validates its output. The
// first failing execution aborts the loop.
func (h *Harness) runSample(ctx context.Context, path string, report *Report) (string, error) {
	for i := 0; i < h.cfg.Repeat; i++ {
		start := time.Now()
		diag, samples, err := h.runOnce(ctx, path)
		elapsed := time.Since(start)
		if err != nil {
			return "", err
		}
		if diag != "" {
			return diag, nil
		}

		report.SampleCount = samples
		report.Runs = append(report.Runs, RunSample{Elapsed: elapsed, Samples: samples})
		if h.callbacks.OnRunIteration != nil {
			h.callbacks.OnRunIteration(i+1, elapsed, samples)
		}
		h.logger.Debug("benchmark_run_completed",
			"iteration", i+1,
			"elapsed", elapsed.String(),
			"samples", samples,
		)
	}
	return "", nil
}

// runOnce executes the benchmark binary a single time.
//
// Failure checks are ordered: any stderr output dominates, then empty
// stdout, then the correctness marker, then the parsed sample count.
// Each failure returns before the next check runs.
func (h *Harness) runOnce(ctx context.Context, path string) (diag string, samples int, err error) {
	args := h.runArgs()
	res, err := h.exec.Capture(ctx, path, args[0], args[1:]...)
	if err != nil {
		return "", 0, err
	}

	if res.Stderr != "" {
		return res.Stderr, 0, nil
	}
	if res.Stdout == "" {
		return "stdout is empty", 0, nil
	}
	if !strings.Contains(res.Stdout, correctMarker) {
		return res.Stdout, 0, nil
	}
	count := parser.SampleCount(res.Stdout)
	if count <= 0 {
		return res.Stdout, 0, nil
	}
	return "", count, nil
}

// configureArgs returns the full cmake command line. The source tree
// is the parent of the build directory, hence "..".
func (h *Harness) configureArgs() []string {
	return []string{
		h.cfg.CMakePath,
		"-DCMAKE_BUILD_TYPE=" + paths.BuildFlag(h.cfg.BuildType),
		"..",
	}
}

// runArgs returns the benchmark command line.
func (h *Harness) runArgs() []string {
	return []string{
		"./" + h.cfg.Sample,
		strconv.Itoa(h.cfg.MatrixSize),
		strconv.Itoa(h.cfg.Iterations),
	}
}

// logToolOutput feeds captured tool stderr through the classifying
// line logger.
func (h *Harness) logToolOutput(tool string, stderr string) {
	if stderr == "" {
		return
	}
	logging.NewToolOutputHandler(tool, h.logger, h.cfg.Verbose).HandleOutput(stderr)
}

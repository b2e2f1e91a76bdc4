// Package process provides external process execution with stream capture.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// Result captures the outcome of a single process execution.
type Result struct {
	// Stdout is the decoded standard output text.
	Stdout string

	// Stderr is the decoded standard error text.
	Stderr string

	// ExitCode is the process exit status (128+signal for signaled exits).
	ExitCode int
}

// Runner executes external commands and captures both output streams.
//
// Both streams are drained concurrently. A sequential read of one pipe
// after the other can deadlock once the unread pipe's buffer fills, so
// each stream gets its own reader goroutine.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a new process runner.
func NewRunner(logger *slog.Logger) *Runner {
	return &Runner{logger: logger}
}

// Capture runs name with args in dir, waits for completion, and returns
// the captured streams. A non-zero exit code is not an error: callers
// decide failure from the stream contents.
func (r *Runner) Capture(ctx context.Context, dir string, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	r.logger.Debug("process_started",
		"command", name,
		"args", args,
		"dir", dir,
		"pid", cmd.Process.Pid,
	)

	// Drain both pipes concurrently before Wait closes them.
	var wg sync.WaitGroup
	var outBytes, errBytes []byte
	var outErr, errErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		outBytes, outErr = io.ReadAll(stdout)
	}()
	go func() {
		defer wg.Done()
		errBytes, errErr = io.ReadAll(stderr)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	exitCode := extractExitCode(waitErr)

	if outErr != nil {
		return nil, fmt.Errorf("read stdout of %s: %w", name, outErr)
	}
	if errErr != nil {
		return nil, fmt.Errorf("read stderr of %s: %w", name, errErr)
	}

	r.logger.Debug("process_exited",
		"command", name,
		"exit_code", exitCode,
		"elapsed", time.Since(start).String(),
		"stdout_bytes", len(outBytes),
		"stderr_bytes", len(errBytes),
	)

	return &Result{
		Stdout:   string(outBytes),
		Stderr:   string(errBytes),
		ExitCode: exitCode,
	}, nil
}

// extractExitCode extracts the exit code from a Wait() error.
func extractExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			if status.Signaled() {
				// Signal exit: 128 + signal number
				return 128 + int(status.Signal())
			}
			return status.ExitStatus()
		}
	}

	// Unknown error, assume exit code 1
	return 1
}

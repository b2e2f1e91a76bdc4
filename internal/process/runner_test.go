package process

import (
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
)

func testRunner() *Runner {
	return NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCapture_SeparateStreams(t *testing.T) {
	requireShell(t)

	r := testRunner()
	result, err := r.Capture(context.Background(), t.TempDir(),
		"sh", "-c", "echo out; echo err >&2")
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}

	if result.Stdout != "out\n" {
		t.Errorf("Stdout = %q, want %q", result.Stdout, "out\n")
	}
	if result.Stderr != "err\n" {
		t.Errorf("Stderr = %q, want %q", result.Stderr, "err\n")
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestCapture_NonZeroExitIsNotError(t *testing.T) {
	requireShell(t)

	r := testRunner()
	result, err := r.Capture(context.Background(), t.TempDir(), "sh", "-c", "exit 3")
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
}

func TestCapture_WorkingDirectory(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	r := testRunner()
	result, err := r.Capture(context.Background(), dir, "sh", "-c", "pwd")
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}

	// macOS may prefix with /private; compare the trailing component.
	if !strings.Contains(strings.TrimSpace(result.Stdout), dir[strings.LastIndex(dir, "/"):]) {
		t.Errorf("pwd output %q does not reflect dir %q", result.Stdout, dir)
	}
}

// A process that writes well past the pipe buffer size on both streams
// must not deadlock. 256KB per stream exceeds the typical 64KB buffer.
func TestCapture_LargeOutputBothStreams(t *testing.T) {
	requireShell(t)

	script := `i=0; while [ $i -lt 4096 ]; do
  printf '%064d\n' $i
  printf '%064d\n' $i >&2
  i=$((i+1))
done`

	r := testRunner()
	result, err := r.Capture(context.Background(), t.TempDir(), "sh", "-c", script)
	if err != nil {
		t.Fatalf("Capture returned error: %v", err)
	}

	wantLen := 4096 * 65
	if len(result.Stdout) != wantLen {
		t.Errorf("len(Stdout) = %d, want %d", len(result.Stdout), wantLen)
	}
	if len(result.Stderr) != wantLen {
		t.Errorf("len(Stderr) = %d, want %d", len(result.Stderr), wantLen)
	}
}

func TestCapture_MissingBinary(t *testing.T) {
	r := testRunner()
	_, err := r.Capture(context.Background(), t.TempDir(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestExtractExitCode(t *testing.T) {
	if code := extractExitCode(nil); code != 0 {
		t.Errorf("extractExitCode(nil) = %d, want 0", code)
	}

	requireShell(t)
	cmd := exec.Command("sh", "-c", "exit 7")
	err := cmd.Run()
	if code := extractExitCode(err); code != 7 {
		t.Errorf("extractExitCode = %d, want 7", code)
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			if got := parseLevel(tc.input); got != tc.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNewLoggerWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "json", "info")

	logger.Info("stage_started", "stage", "configure")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "stage_started" {
		t.Errorf("msg = %v, want stage_started", record["msg"])
	}
	if record["stage"] != "configure" {
		t.Errorf("stage = %v, want configure", record["stage"])
	}
}

func TestNewLoggerWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "text", "info")

	logger.Info("stage_started", "stage", "build")

	out := buf.String()
	if !strings.Contains(out, "msg=stage_started") {
		t.Errorf("text output missing message: %q", out)
	}
	if !strings.Contains(out, "stage=build") {
		t.Errorf("text output missing attribute: %q", out)
	}
}

func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "json", "warn")

	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("info record emitted at warn level: %q", buf.String())
	}

	logger.Warn("emitted")
	if buf.Len() == 0 {
		t.Error("warn record not emitted at warn level")
	}
}

func TestNewLogger_VerboseEnablesDebug(t *testing.T) {
	logger := NewLogger("json", "info", true)
	if !logger.Enabled(nil, slog.LevelDebug) {
		t.Error("verbose logger should enable debug level")
	}

	logger = NewLogger("json", "info", false)
	if logger.Enabled(nil, slog.LevelDebug) {
		t.Error("non-verbose info logger should not enable debug level")
	}
}

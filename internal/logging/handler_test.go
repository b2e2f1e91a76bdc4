package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestToolOutputHandler_Classification(t *testing.T) {
	testCases := []struct {
		name    string
		line    string
		verbose bool
		logged  bool
	}{
		{"cmake error always logged", "CMake Error at CMakeLists.txt:12", false, true},
		{"compiler error always logged", "gemm.cc:40:1: error: expected ';'", false, true},
		{"make fatal always logged", "make: *** [all] Error 2", false, true},
		{"cmake warning always logged", "CMake Warning (dev) in CMakeLists.txt", false, true},
		{"progress hidden when quiet", "[ 50%] Building CXX object gemm.o", false, false},
		{"progress shown when verbose", "[ 50%] Building CXX object gemm.o", true, true},
		{"configure chatter hidden", "-- Configuring done", false, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := NewToolOutputHandler("cmake", NewLoggerWithWriter(&buf, "text", "debug"), tc.verbose)
			h.HandleLine(tc.line)

			if tc.logged && buf.Len() == 0 {
				t.Errorf("line %q was not logged", tc.line)
			}
			if !tc.logged && buf.Len() != 0 {
				t.Errorf("line %q was logged: %q", tc.line, buf.String())
			}
		})
	}
}

func TestToolOutputHandler_HandleOutput(t *testing.T) {
	var buf bytes.Buffer
	h := NewToolOutputHandler("make", NewLoggerWithWriter(&buf, "text", "debug"), true)

	h.HandleOutput("line one\n\nline two\n")

	out := buf.String()
	if got := strings.Count(out, "tool_output"); got != 2 {
		t.Errorf("logged %d lines, want 2 (empty lines skipped): %q", got, out)
	}
	if !strings.Contains(out, "tool=make") {
		t.Errorf("missing tool attribute: %q", out)
	}
}

func TestToolOutputHandler_Truncation(t *testing.T) {
	var buf bytes.Buffer
	h := NewToolOutputHandler("make", NewLoggerWithWriter(&buf, "text", "debug"), true)

	h.HandleLine("error: " + strings.Repeat("x", MaxLineLength))

	if !strings.Contains(buf.String(), "truncated") {
		t.Error("oversized line was not truncated")
	}
}

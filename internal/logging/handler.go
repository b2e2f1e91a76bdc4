package logging

import (
	"log/slog"
	"strings"
)

// MaxLineLength is the maximum length of a single logged line before truncation.
const MaxLineLength = 4096

// ToolOutputHandler logs the stderr text of a build tool line by line.
// CMake and make interleave diagnostics and progress chatter on
// stderr; classification keeps non-verbose logs quiet.
type ToolOutputHandler struct {
	tool    string
	logger  *slog.Logger
	verbose bool
}

// NewToolOutputHandler creates a handler for one tool invocation.
func NewToolOutputHandler(tool string, logger *slog.Logger, verbose bool) *ToolOutputHandler {
	return &ToolOutputHandler{
		tool:    tool,
		logger:  logger,
		verbose: verbose,
	}
}

// HandleOutput splits captured stderr text and logs each line.
func (h *ToolOutputHandler) HandleOutput(stderr string) {
	for _, line := range strings.Split(stderr, "\n") {
		if line == "" {
			continue
		}
		h.HandleLine(line)
	}
}

// HandleLine logs a single line of tool output.
func (h *ToolOutputHandler) HandleLine(line string) {
	if len(line) > MaxLineLength {
		line = line[:MaxLineLength] + "...(truncated)"
	}

	level := h.classifyLine(line)
	if !h.verbose && level == slog.LevelDebug {
		return
	}

	h.logger.Log(nil, level, "tool_output",
		"tool", h.tool,
		"line", line,
	)
}

// classifyLine determines the log level for a line based on content.
func (h *ToolOutputHandler) classifyLine(line string) slog.Level {
	lower := strings.ToLower(line)

	if strings.Contains(line, "CMake Error") ||
		strings.Contains(lower, "error:") ||
		strings.Contains(lower, "fatal") ||
		strings.Contains(lower, "*** ") {
		return slog.LevelWarn
	}

	if strings.Contains(line, "CMake Warning") ||
		strings.Contains(lower, "warning:") ||
		strings.Contains(lower, "deprecated") {
		return slog.LevelWarn
	}

	// Progress chatter ("[ 50%] Building CXX object ...", "-- Configuring done")
	return slog.LevelDebug
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gpuperf/go-sample-check/internal/stats"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(" go-sample-check ") + "\n")
	b.WriteString(labelStyle.Render("Sample:") + valueStyle.Render(m.sample) + "\n")
	b.WriteString(labelStyle.Render("Build dir:") + mutedStyle.Render(m.buildPath) + "\n")
	b.WriteString(labelStyle.Render("Elapsed:") + valueStyle.Render(formatClock(time.Since(m.startTime))) + "\n\n")

	b.WriteString(boxStyle.Render(m.renderStages()) + "\n")

	if m.repeat > 1 && m.iteration > 0 {
		b.WriteString("\n" + m.renderIterations() + "\n")
	}

	if m.done {
		b.WriteString("\n" + m.renderVerdict() + "\n")
	}

	b.WriteString(footerStyle.Render("q: quit") + "\n")

	return b.String()
}

// renderStages renders one line per pipeline stage.
func (m Model) renderStages() string {
	lines := make([]string, 0, len(m.stages))
	for _, s := range m.stages {
		var elapsed string
		switch s.state {
		case stageRunning:
			elapsed = dimStyle.Render(formatClock(time.Since(s.started)))
		case stagePassed, stageFailed:
			elapsed = dimStyle.Render(stats.FormatDuration(s.elapsed))
		}

		line := lipgloss.JoinHorizontal(lipgloss.Left,
			stageGlyph(s.state),
			" ",
			labelStyle.Render(s.name),
			elapsed,
		)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderIterations renders repeat-mode progress.
func (m Model) renderIterations() string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		labelStyle.Render("Runs:"),
		valueStyle.Render(fmt.Sprintf("%d/%d", m.iteration, m.repeat)),
		mutedStyle.Render(fmt.Sprintf("  last %s, %d samples",
			stats.FormatDuration(m.lastElapsed), m.samples)),
	)
}

// renderVerdict renders the final pass/fail line.
func (m Model) renderVerdict() string {
	if m.err != nil {
		return verdictFail.Render("ERROR ") + warnStyle.Render(m.err.Error())
	}
	if m.diagnostic != "" {
		// The full diagnostic goes to stdout after the TUI closes;
		// here only the first line fits.
		first := m.diagnostic
		if idx := strings.IndexByte(first, '\n'); idx >= 0 {
			first = first[:idx]
		}
		return verdictFail.Render("FAILED ") + warnStyle.Render(first)
	}
	return verdictPass.Render("PASSED")
}

// formatClock renders a live elapsed time as M:SS.
func formatClock(d time.Duration) string {
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}

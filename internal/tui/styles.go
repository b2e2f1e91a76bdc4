// Package tui provides a live terminal dashboard for the validation
// pipeline.
//
// The TUI uses Bubble Tea for the application framework and Lipgloss
// for styling. It shows per-stage status and, in repeat mode, the
// benchmark iteration progress.
package tui

import "github.com/charmbracelet/lipgloss"

// Colors based on a modern dark theme
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan

	colorSuccess = lipgloss.Color("#10B981") // Green
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorError   = lipgloss.Color("#EF4444") // Red

	colorText      = lipgloss.Color("#E5E7EB") // Light gray
	colorTextMuted = lipgloss.Color("#9CA3AF") // Medium gray
	colorTextDim   = lipgloss.Color("#6B7280") // Dark gray
	colorBorder    = lipgloss.Color("#374151") // Border gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorPrimary).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			MarginTop(1)

	statusPending = lipgloss.NewStyle().
			Foreground(colorTextDim)

	statusRunning = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	statusPassed = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	statusFailed = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	verdictPass = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	verdictFail = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)
)

// stageGlyph returns the styled status indicator for a stage state.
func stageGlyph(state stageState) string {
	switch state {
	case stageRunning:
		return statusRunning.Render("▶")
	case stagePassed:
		return statusPassed.Render("✓")
	case stageFailed:
		return statusFailed.Render("✗")
	default:
		return statusPending.Render("·")
	}
}

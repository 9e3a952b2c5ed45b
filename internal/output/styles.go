package output

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#3B82F6") // Blue
	colorSuccess   = lipgloss.Color("#22C55E") // Green
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
	colorMuted     = lipgloss.Color("#6B7280") // Gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSecondary)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	pidStyle = lipgloss.NewStyle().
			Faint(true)

	pathStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	argStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	unknownStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	branchStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// paint renders s with style only when color output is enabled.
func paint(style lipgloss.Style, s string, colorEnabled bool) string {
	if !colorEnabled {
		return s
	}
	return style.Render(s)
}

const unknownText = "(unknown)"

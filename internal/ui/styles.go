package ui

import "github.com/charmbracelet/lipgloss"

// Color palette: plain text for content, a single accent for ids and paths,
// muted gray for secondary detail. Status is carried by unicode symbols, not
// color.
var (
	// Accent style for object ids, file paths, highlights.
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))

	// Muted style for secondary info and hints.
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis.
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureTheme overrides the accent color. Accepts ANSI color codes or hex
// colors; empty leaves the default.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(accent))
}

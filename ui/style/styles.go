package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds all the lipgloss styles for the preview.
type Styles struct {
	// Layout
	App    lipgloss.Style
	Editor lipgloss.Style
	Art    lipgloss.Style

	// Status bar
	StatusBar      lipgloss.Style
	StatusKey      lipgloss.Style
	StatusOK       lipgloss.Style
	StatusPending  lipgloss.Style
	StatusFallback lipgloss.Style

	// Misc
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle(),
		Editor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")),
		Art: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		StatusKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1),
		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("179")), // Muted yellow
		StatusFallback: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
	}
}

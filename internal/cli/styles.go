package cli

import "github.com/charmbracelet/lipgloss"

const (
	accentColorCode  = "62"  // Blue
	dimColorCode     = "240" // Dark gray
	errorColorCode   = "196" // Red
	primaryColorCode = "205" // Pink/purple
	successColorCode = "42"  // Green
	warningColorCode = "226" // Yellow
)

// Styles holds the lipgloss styles for one output.
type Styles struct {
	Box     lipgloss.Style
	Dim     lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Title   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles builds styles for renderer. Colors are dropped when the
// renderer's output is not a terminal.
func NewStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		Box: renderer.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accentColorCode)).
			Padding(0, 1),
		Dim: renderer.NewStyle().
			Foreground(lipgloss.Color(dimColorCode)),
		Error: renderer.NewStyle().
			Foreground(lipgloss.Color(errorColorCode)).
			Bold(true),
		Success: renderer.NewStyle().
			Foreground(lipgloss.Color(successColorCode)),
		Title: renderer.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(primaryColorCode)),
		Warning: renderer.NewStyle().
			Foreground(lipgloss.Color(warningColorCode)),
	}
}

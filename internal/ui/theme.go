package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color values used by the arena watcher.
type Theme struct {
	Title    lipgloss.Style
	Accent   lipgloss.Style
	Win      lipgloss.Style
	Loss     lipgloss.Style
	Draw     lipgloss.Style
	Help     lipgloss.Style
	Border   lipgloss.Style
	Disabled bool
}

// NewTheme builds the default theme. Colors are dropped when useColors is
// false or the terminal reports no color support.
func NewTheme(useColors bool) Theme {
	if !useColors || termenv.ColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return Theme{
			Title:    plain.Bold(true),
			Accent:   plain,
			Win:      plain,
			Loss:     plain,
			Draw:     plain,
			Help:     plain,
			Border:   plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
			Disabled: true,
		}
	}
	return Theme{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Win:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Loss:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Draw:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

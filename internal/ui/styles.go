package ui

import "github.com/charmbracelet/lipgloss"

// Color palette: a single lime accent on grays.
const (
	ColorLime     = "154" // Primary accent (#AFFF00)
	ColorLimeDim  = "106" // Borders of the focused panel
	ColorWhite    = "255" // Author names
	ColorGray     = "245" // Dates, hints
	ColorDarkGray = "238" // Box borders, separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
)

// Styles holds all styles of the search panel.
type Styles struct {
	Header      lipgloss.Style
	Prompt      lipgloss.Style
	Author      lipgloss.Style
	Date        lipgloss.Style
	Highlight   lipgloss.Style
	Selected    lipgloss.Style
	Placeholder lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Dim         lipgloss.Style
	Panel       lipgloss.Style
}

// DefaultStyles returns the colored styles.
func DefaultStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Author:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Date:        lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Highlight:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Selected:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Placeholder: lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorGray)),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorLimeDim)).
			Padding(0, 1),
	}
}

// NoColorStyles returns styles without colors. Highlights stay visible
// through text attributes.
func NoColorStyles() Styles {
	return Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Prompt:      lipgloss.NewStyle(),
		Author:      lipgloss.NewStyle().Bold(true),
		Date:        lipgloss.NewStyle(),
		Highlight:   lipgloss.NewStyle().Underline(true),
		Selected:    lipgloss.NewStyle().Bold(true),
		Placeholder: lipgloss.NewStyle(),
		Error:       lipgloss.NewStyle(),
		Warning:     lipgloss.NewStyle(),
		Dim:         lipgloss.NewStyle(),
		Panel:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

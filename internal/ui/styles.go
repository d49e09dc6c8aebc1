package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	ColorActive  = "#32CD32" // Lime Green
	ColorDormant = "#FFD700" // Gold
	ColorStale   = "#DC143C" // Crimson
	ColorInfo    = "#4169E1" // Royal Blue

	ColorBorder    = "#555555"
	ColorText      = "#FFFFFF"
	ColorSubtle    = "#666666"
	ColorHighlight = "#00FFFF"
)

// Styles contains all the lipgloss styles for the dashboard
type Styles struct {
	// Idea status colors
	Active  lipgloss.Style
	Dormant lipgloss.Style
	Unknown lipgloss.Style

	// Layout styles
	Header      lipgloss.Style
	StatusBar   lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Panel styles
	Panel       lipgloss.Style
	PanelTitle  lipgloss.Style
	PanelActive lipgloss.Style

	// List styles
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Cursor     lipgloss.Style
	Analyzed   lipgloss.Style

	// Help styles
	Help lipgloss.Style
	Key  lipgloss.Style

	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Subtle   lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Info     lipgloss.Style
	Label    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Active:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive)),
		Dormant: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDormant)),
		Unknown: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle)),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)).
			Background(lipgloss.Color(ColorBorder)).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)).
			Background(lipgloss.Color(ColorBorder)).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)).
			Underline(true).
			Padding(0, 1),

		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)),

		PanelActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorHighlight)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHighlight)).
			Background(lipgloss.Color("#222222")).
			Bold(true),

		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)),

		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHighlight)).
			Bold(true),

		Analyzed: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive)),

		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHighlight)).
			Background(lipgloss.Color("#222222")).
			Padding(0, 1).
			Bold(true),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorHighlight)),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorText)).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorStale)).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDormant)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInfo)),

		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSubtle)),
	}
}

// StatusStyle returns the style for an idea's README status
func (s *Styles) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "active":
		return s.Active
	case "dormant":
		return s.Dormant
	default:
		return s.Unknown
	}
}

// StatusIcon returns the icon for an idea's README status
func StatusIcon(status string) string {
	switch status {
	case "active":
		return "●"
	case "dormant":
		return "◐"
	default:
		return "○"
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the demo UI
const (
	ColorAccent  = "86"  // Cyan/green - titles, armed indicator
	ColorHint    = "205" // Magenta - hint labels
	ColorMuted   = "241" // Gray - dimmed text, help
	ColorText    = "252" // Light gray - normal text
	ColorFocused = "208" // Orange - focused node marker
)

// Styles contains shared style definitions used across the demo views.
var Styles = struct {
	Title   lipgloss.Style // Bold accent - page title
	Section lipgloss.Style // Section headers
	Item    lipgloss.Style // Normal items
	Focused lipgloss.Style // The focused node
	Hint    lipgloss.Style // Hint labels without inline colors
	Status  lipgloss.Style // Status bar text
	Muted   lipgloss.Style // Help and dimmed text
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorText)),
	Item: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Focused: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorFocused)),
	Hint: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorHint)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}

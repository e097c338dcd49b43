package hints

import "github.com/charmbracelet/lipgloss"

// StyleMode selects how hints are styled: computed inline colors, or a
// class list the host resolves against its own stylesheet.
type StyleMode interface {
	isStyleMode()
}

// InlineStyle carries explicit hint colors from configuration.
type InlineStyle struct {
	Color     string // background
	TextColor string // foreground
}

func (InlineStyle) isStyleMode() {}

// ClassList defers styling to host-side classes.
type ClassList struct {
	Names []string
}

func (ClassList) isStyleMode() {}

// buildLabelStyle returns the shared hint label style. Built once per
// renderer, lazily, the first time a label is styled.
func buildLabelStyle(mode StyleMode) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	inline, ok := mode.(InlineStyle)
	if !ok {
		return st
	}
	if inline.Color != "" {
		st = st.Background(lipgloss.Color(inline.Color))
	}
	if inline.TextColor != "" {
		st = st.Foreground(lipgloss.Color(inline.TextColor))
	}
	return st
}

package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap describes the demo's chrome keys for the help footer.
// Mnemonic letters and digits are handled by the session, not listed here.
type KeyMap struct {
	Arm    key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the demo bindings. Terminals report no bare
// modifier press/release, so arming is a hold toggle on one key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Arm: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "arm/release hints"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Arm, k.Cancel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

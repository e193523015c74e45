package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the chat keybindings.
type KeyMap struct {
	// Send submits the typed message.
	Send key.Binding

	// Quit exits the session.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

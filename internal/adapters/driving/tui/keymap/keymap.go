// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the full key list.
	Help key.Binding

	// Export runs an export batch.
	Export key.Binding

	// Import runs an import batch.
	Import key.Binding

	// NextMethod selects the next method.
	NextMethod key.Binding

	// PrevMethod selects the previous method.
	PrevMethod key.Binding

	// History lists recent runs in the log.
	History key.Binding

	// Guide shows the usage guide in the log.
	Guide key.Binding

	// Up scrolls the log up.
	Up key.Binding

	// Down scrolls the log down.
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export to TXT"),
		),
		Import: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "import from TXT"),
		),
		NextMethod: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next method"),
		),
		PrevMethod: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("shift+tab/←", "prev method"),
		),
		History: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recent runs"),
		),
		Guide: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "guide"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings shown while idle.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Export, k.Import, k.NextMethod, k.Help, k.Quit}
}

// BusyHelp returns the bindings usable while a batch runs.
func (k *KeyMap) BusyHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Export, k.Import},
		{k.NextMethod, k.PrevMethod},
		{k.History, k.Guide},
		{k.Up, k.Down},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}

// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the editor's keybindings. Printable input is not bound here;
// any rune key that matches no binding is inserted as text.
type KeyMap struct {
	// Navigation
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	LineStart     key.Binding
	LineEnd       key.Binding
	WordForward   key.Binding
	WordBackward  key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	DocumentStart key.Binding
	DocumentEnd   key.Binding

	// Editing
	Newline        key.Binding
	DeleteBackward key.Binding
	DeleteForward  key.Binding
	Tab            key.Binding

	// General
	Save key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "line down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous character"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next character"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		WordForward: key.NewBinding(
			key.WithKeys("ctrl+right", "alt+f"),
			key.WithHelp("ctrl+→", "next word"),
		),
		WordBackward: key.NewBinding(
			key.WithKeys("ctrl+left", "alt+b"),
			key.WithHelp("ctrl+←", "previous word"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		DocumentStart: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home", "document start"),
		),
		DocumentEnd: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("ctrl+end", "document end"),
		),

		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		DeleteBackward: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete before cursor"),
		),
		DeleteForward: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete under cursor"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "insert tab"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the message bar on startup.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit}
}

// FullHelp returns every binding grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.LineStart, k.LineEnd}, // Navigation
		{k.WordForward, k.WordBackward, k.PageUp, k.PageDown, k.DocumentStart, k.DocumentEnd},
		{k.Newline, k.DeleteBackward, k.DeleteForward, k.Tab}, // Editing
		{k.Save, k.Quit}, // General
	}
}

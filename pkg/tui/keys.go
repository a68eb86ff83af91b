package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the dispute page
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Activate   key.Binding
	SelectAll  key.Binding
	NextOption key.Binding
	PrevOption key.Binding
	Edit       key.Binding
	Dropdown   key.Binding
	AddAll     key.Binding
	Save       key.Binding
	Reset      key.Binding
	Details    key.Binding
	ExpandAll  key.Binding
	Scan       key.Binding
	Preview    key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("space", "toggle / open"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all in section"),
		),
		NextOption: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next option"),
		),
		PrevOption: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous option"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit text"),
		),
		Dropdown: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "back to dropdown"),
		),
		AddAll: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "add all violations"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save dispute"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset form"),
		),
		Details: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "details"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "expand section"),
		),
		Scan: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "compliance scan"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview letter"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy letter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Save, k.Scan, k.Preview, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Activate, k.SelectAll, k.NextOption, k.PrevOption, k.Edit},
		{k.Dropdown, k.AddAll, k.Save, k.Reset, k.Details, k.ExpandAll},
		{k.Scan, k.Preview, k.Copy, k.Help, k.Quit},
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Cycle    key.Binding
	Cancel   key.Binding
	Edit     key.Binding
	OlderDay key.Binding
	NewerDay key.Binding
	Listing  key.Binding
	Search   key.Binding
	Select   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
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
		Cycle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "cycle task"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "cancel task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "$EDITOR"),
		),
		OlderDay: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "older day"),
		),
		NewerDay: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "newer day"),
		),
		Listing: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "pick day"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
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

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  space cycle  x cancel  e $EDITOR  [/] day  l days  / search  ? help  q quit"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"space", "Cycle task open/done, reopen finished"},
		{"x", "Cancel task, reopen cancelled"},
		{"e", "Edit in $EDITOR"},
		{"[", "Go to previous day's plan"},
		{"]", "Go to next day's plan"},
		{"l", "Pick a day from all plans"},
		{"/", "Search across plans"},
		{"R", "Reload from filesystem"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}

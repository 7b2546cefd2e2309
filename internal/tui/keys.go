package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding

	// Actions
	Quit          key.Binding
	Search        key.Binding
	QuickFilter   key.Binding
	GlobalSearch  key.Binding
	Category      key.Binding
	Premium       key.Binding
	Favorites     key.Binding
	ToggleStar    key.Binding
	ClearFilters  key.Binding
	SwitchKind    key.Binding
	Retry         key.Binding
	Escape        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "h"),
			key.WithHelp("h", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		QuickFilter: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("C-f", "quick filter"),
		),
		GlobalSearch: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "global search"),
		),
		Category: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "cycle category"),
		),
		Premium: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "premium only"),
		),
		Favorites: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorites only"),
		),
		ToggleStar: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "favorite"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear filters"),
		),
		SwitchKind: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "lessons/activities"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

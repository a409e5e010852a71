package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the demo.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Content
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Gestures
	PullDown key.Binding
	PullUp   key.Binding
	Release  key.Binding

	// Programmatic
	Refresh  key.Binding
	LoadMore key.Binding

	// Settings
	CycleMode        key.Binding
	AlwaysScrollable key.Binding
	AutoLoad         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		PullDown: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "Drag down one row"),
		),
		PullUp: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "Drag up one row"),
		),
		Release: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "Release drag"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Load more"),
		),

		CycleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Cycle scroll mode"),
		),
		AlwaysScrollable: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle always scrollable"),
		),
		AutoLoad: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "Toggle auto load"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PullDown, k.PullUp, k.Release, k.Refresh, k.CycleMode, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.PullDown, k.PullUp, k.Release},
		{k.Refresh, k.LoadMore},
		{k.CycleMode, k.AlwaysScrollable, k.AutoLoad},
		{k.CycleTheme, k.Help, k.Quit},
	}
}

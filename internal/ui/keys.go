package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding

	// View switching (not while typing a query)
	ViewSearch    key.Binding
	ViewShortlist key.Binding
	ViewWheel     key.Binding
	ViewLogs      key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Search
	AddMovie key.Binding

	// Shortlist
	Remove    key.Binding
	ResetWins key.Binding
	CycleMode key.Binding
	MoreWins  key.Binding
	FewerWins key.Binding

	// Wheel
	Spin key.Binding

	// Logs
	CycleLevel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q/ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?/f1", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T", "ctrl+t"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Clear query / back to search"),
		),

		// View switching
		ViewSearch: key.NewBinding(
			key.WithKeys("1", "/"),
			key.WithHelp("1 or /", "Search"),
		),
		ViewShortlist: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Shortlist"),
		),
		ViewWheel: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Wheel"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Log"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Search
		AddMovie: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Add to shortlist"),
		),

		// Shortlist
		Remove: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Remove movie"),
		),
		ResetWins: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reset wins"),
		),
		CycleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Cycle win mode"),
		),
		MoreWins: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "More wins needed"),
		),
		FewerWins: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Fewer wins needed"),
		),

		// Wheel
		Spin: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "Spin"),
		),

		// Logs
		CycleLevel: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle minimum level"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Views
		{k.Tab, k.ShiftTab, k.ViewSearch, k.ViewShortlist, k.ViewWheel, k.ViewLogs},
		{k.Up, k.Down, k.Top, k.Bottom},
		// Search
		{k.AddMovie, k.Escape},
		// Shortlist
		{k.Remove, k.ResetWins, k.CycleMode, k.MoreWins, k.FewerWins},
		// Wheel
		{k.Spin},
		// Logs
		{k.CycleLevel},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}

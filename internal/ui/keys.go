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
	ReloadAll  key.Binding
	ViewLogs   key.Binding
	QuickLink  key.Binding
	OpenMail   key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Item actions
	Expand key.Binding
	Open   key.Binding
	Copy   key.Binding

	// Todo actions
	AddTodo    key.Binding
	ToggleTodo key.Binding
	RenameTodo key.Binding
	DeleteTodo key.Binding
	MoveDown   key.Binding
	MoveUp     key.Binding

	// Dialogs and input
	Confirm   key.Binding
	Authorize key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next widget"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous widget"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / dismiss"),
		),
		ReloadAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reload everything"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics log"),
		),
		QuickLink: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "Open quick link"),
		),
		OpenMail: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Open Gmail"),
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

		// Item actions
		Expand: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Expand / collapse"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open in browser"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy link"),
		),

		// Todo actions
		AddTodo: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add todo"),
		),
		ToggleTodo: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Toggle done"),
		),
		RenameTodo: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Rename todo"),
		),
		DeleteTodo: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete todo"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J"),
			key.WithHelp("J", "Move todo down"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Move todo up"),
		),

		// Dialogs and input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Authorize: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Authorize Google account"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Tab, k.ShiftTab, k.Up, k.Down, k.Top, k.Bottom},
		// Items
		{k.Expand, k.Open, k.Copy},
		// Todos
		{k.AddTodo, k.ToggleTodo, k.RenameTodo, k.DeleteTodo, k.MoveDown, k.MoveUp},
		// General
		{k.QuickLink, k.OpenMail, k.ReloadAll, k.ViewLogs, k.CycleTheme, k.Help, k.Quit},
	}
}

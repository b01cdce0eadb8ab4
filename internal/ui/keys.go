package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	CycleTheme  key.Binding
	LineNumbers key.Binding

	// Main pane
	MainUp       key.Binding
	MainDown     key.Binding
	MainPageUp   key.Binding
	MainPageDown key.Binding
	MainTop      key.Binding
	MainAuto     key.Binding

	// Diagnostic pane
	DiagUp   key.Binding
	DiagDown key.Binding
	DiagAuto key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		LineNumbers: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Toggle line numbers"),
		),

		// Main pane
		MainUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "Scroll up"),
		),
		MainDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "Scroll down"),
		),
		MainPageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		MainPageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "Page down"),
		),
		MainTop: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "Go to top"),
		),
		MainAuto: key.NewBinding(
			key.WithKeys("a", "end", "G"),
			key.WithHelp("a", "Follow live output"),
		),

		// Diagnostic pane
		DiagUp: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Scroll up"),
		),
		DiagDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Scroll down"),
		),
		DiagAuto: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Follow live output"),
		),
	}
}

// ShortHelp returns key bindings for the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MainAuto, k.DiagAuto, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MainUp, k.MainDown, k.MainPageUp, k.MainPageDown, k.MainTop, k.MainAuto},
		{k.DiagUp, k.DiagDown, k.DiagAuto},
		{k.CycleTheme, k.LineNumbers, k.Help, k.Quit},
	}
}

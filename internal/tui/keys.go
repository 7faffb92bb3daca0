package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Incr     key.Binding
	Decr     key.Binding
	Finish   key.Binding
	Zero     key.Binding
	Cancel   key.Binding
	Reset    key.Binding
	ResetAll key.Binding
	Pause    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Incr: key.NewBinding(
		key.WithKeys("right", "l", "+", "="),
		key.WithHelp("→/+", "advance"),
	),
	Decr: key.NewBinding(
		key.WithKeys("left", "h", "-", "_"),
		key.WithHelp("←/-", "rewind"),
	),
	Finish: key.NewBinding(
		key.WithKeys("enter", "f"),
		key.WithHelp("enter", "finish"),
	),
	Zero: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "empty"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "cancel"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	ResetAll: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset all"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Incr, k.Decr, k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Incr, k.Decr, k.Finish, k.Zero},
		{k.Cancel, k.Reset, k.ResetAll},
		{k.Pause, k.Help, k.Quit},
	}
}

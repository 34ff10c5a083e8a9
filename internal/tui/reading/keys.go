package reading

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the reading TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Back     key.Binding
	Quick    key.Binding
	Reversed key.Binding
	Shuffle  key.Binding
	Cut      key.Binding
	Stack    key.Binding
	Reveal   key.Binding
	Again    key.Binding
	Menu     key.Binding
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
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quick: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quick reading"),
		),
		Reversed: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "toggle reversed"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "shuffle"),
		),
		Cut: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cut"),
		),
		Stack: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "choose stack"),
		),
		Reveal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "spread cards"),
		),
		Again: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "read again"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "spreads"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Select},
		{k.Quick, k.Reversed, k.Shuffle, k.Cut, k.Stack, k.Reveal},
		{k.Again, k.Menu, k.Back, k.Help, k.Quit},
	}
}

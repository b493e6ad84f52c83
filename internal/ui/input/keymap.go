package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Config    key.Binding
	Share     key.Binding
	Log       key.Binding
	Undo      key.Binding
	EditNames key.Binding
	NewGame   key.Binding
	Accept    key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Save      key.Binding
	Action    key.Binding
}

// TODO make configurable.
var Default = Map{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "Quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "Quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "Help"),
	),
	Config: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "Conf"),
	),
	Share: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "Share"),
	),
	Log: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "Activity log"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "Undo"),
	),
	EditNames: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "Edit names"),
	),
	NewGame: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "New game"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "Side A"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "Side B"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "Toggle"),
	),
	Save: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "Save image"),
	),
	Action: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "Log action"),
	),
}

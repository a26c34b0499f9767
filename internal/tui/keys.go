package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the board view key bindings.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevBoard key.Binding
	NextBoard key.Binding
	NewCard   key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Status    key.Binding
	Priority  key.Binding
	Copy      key.Binding
	Palette   key.Binding
	Logs      key.Binding
	Save      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		PrevBoard: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev board")),
		NextBoard: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next board")),
		NewCard:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit card")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete card")),
		Status:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Priority:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy board")),
		Palette:   key.NewBinding(key.WithKeys("ctrl+p", ":"), key.WithHelp("ctrl+p", "commands")),
		Logs:      key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "logs")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+q"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewCard, k.Edit, k.Palette, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PrevBoard, k.NextBoard, k.NewCard, k.Edit},
		{k.Delete, k.Status, k.Priority, k.Copy},
		{k.Palette, k.Logs, k.Save, k.Help, k.Quit},
	}
}

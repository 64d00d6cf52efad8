package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Digit key.Binding
	Clear key.Binding
	Color key.Binding

	ModeColors     key.Binding
	ModeFixed      key.Binding
	ModeValues     key.Binding
	ModeCandidates key.Binding

	Solve  key.Binding
	Reset  key.Binding
	Save   key.Binding
	Reload key.Binding

	Help key.Binding
	Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		Digit: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "enter digit")),
		Clear: key.NewBinding(key.WithKeys("0", "backspace", "delete"), key.WithHelp("⌫", "clear cell")),
		Color: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle color")),

		ModeColors:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "edit colors")),
		ModeFixed:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "edit clues")),
		ModeValues:     key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "play values")),
		ModeCandidates: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pencil marks")),

		Solve:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "solve")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Save:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "save")),
		Reload: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "reload save")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Digit, k.Clear, k.ModeValues, k.ModeCandidates, k.Solve, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Digit, k.Clear, k.Color},
		{k.ModeColors, k.ModeFixed, k.ModeValues, k.ModeCandidates},
		{k.Solve, k.Reset, k.Save, k.Reload, k.Quit},
	}
}

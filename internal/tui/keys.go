package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Switch    key.Binding
	Add       key.Binding
	Subtract  key.Binding
	Immersive key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap(pomodoro bool) keyMap {
	keys := keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus/break"),
		),
		Add: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "add 1m"),
		),
		Subtract: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "remove 1m"),
		),
		Immersive: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "full screen"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
	keys.Switch.SetEnabled(pomodoro)
	return keys
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Immersive, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Switch},
		{k.Add, k.Subtract},
		{k.Immersive, k.Help, k.Quit},
	}
}

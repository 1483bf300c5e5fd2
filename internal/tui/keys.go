package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap implements help.KeyMap so the status bar lists the bindings.
type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Choose    key.Binding
	Exit      key.Binding
	HalfUp    key.Binding
	HalfDown  key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	ToggleAll key.Binding
}

func newKeyMap(chooseHelp string) keyMap {
	return keyMap{
		Prev:      key.NewBinding(key.WithKeys("up", "ctrl+k", "ctrl+p"), key.WithHelp("up/C-k", "prev")),
		Next:      key.NewBinding(key.WithKeys("down", "ctrl+j", "ctrl+n"), key.WithHelp("dn/C-j", "next")),
		Choose:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", chooseHelp)),
		Exit:      key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
		HalfUp:    key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("C-u", "half page up")),
		HalfDown:  key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("C-d", "half page down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		ToggleAll: key.NewBinding(key.WithKeys("ctrl+h", "f1"), key.WithHelp("F1", "more keys")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Choose, k.Exit, k.ToggleAll}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Choose},
		{k.HalfUp, k.HalfDown, k.PageUp, k.PageDown},
		{k.ToggleAll, k.Exit},
	}
}

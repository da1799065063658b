package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Submit         key.Binding
	Blur           key.Binding
	Focus          key.Binding
	Up             key.Binding
	Down           key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	CycleFilter    key.Binding
	ClearCompleted key.Binding
	Theme          key.Binding
	Copy           key.Binding
	Help           key.Binding
	Quit           key.Binding
	ForceQuit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:         key.NewBinding(key.WithKeys("enter", "ctrl+s"), key.WithHelp("enter", "add")),
		Blur:           key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "list")),
		Focus:          key.NewBinding(key.WithKeys("i", "a", "tab"), key.WithHelp("i", "new todo")),
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "space", "x", "enter"), key.WithHelp("space", "toggle")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		CycleFilter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		ClearCompleted: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy active")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Toggle, k.Delete, k.CycleFilter, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Submit, k.Blur},
		{k.Up, k.Down, k.Toggle, k.Delete},
		{k.FilterAll, k.FilterActive, k.FilterDone, k.CycleFilter},
		{k.ClearCompleted, k.Theme, k.Copy, k.Help, k.Quit},
	}
}

// inputHelp is shown while the text field has focus.
type inputHelp struct{ k keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Submit, h.k.Blur}
}

func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

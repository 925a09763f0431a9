package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Enter       key.Binding
	Back        key.Binding
	Search      key.Binding
	Filter      key.Binding
	Label       key.Binding
	TagToggle   key.Binding
	Diff        key.Binding
	Video       key.Binding
	Trace       key.Binding
	Projects    key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
}

var Keys = KeyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/toggle")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Label:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle label")),
	TagToggle:   key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("alt+enter", "toggle tag")),
	Diff:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "image diff")),
	Video:       key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "video")),
	Trace:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trace")),
	Projects:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
	Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
	ExpandAll:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
	CollapseAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
}

package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	concerts key.Binding
	price    key.Binding
	duration key.Binding
	stops    key.Binding
	nonstop  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		concerts: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "concerts")),
		price:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "sort by price")),
		duration: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "sort by duration")),
		stops:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort by stops")),
		nonstop:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "nonstop only")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.concerts, k.price, k.duration},
		{k.stops, k.nonstop, k.quit},
	}
}

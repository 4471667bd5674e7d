package main

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the bindings of the candle screen. Bindings that do not apply
// to the current phase are disabled so the help line only shows live actions.
type keyMap struct {
	Pause   key.Binding
	Resume  key.Binding
	Snuff   key.Binding
	Write   key.Binding
	Truths  key.Binding
	Players key.Binding
	Copy    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r", "p"),
			key.WithHelp("r", "resume"),
		),
		Snuff: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s/click", "snuff candle"),
		),
		Write: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "write truths"),
		),
		Truths: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "truths"),
		),
		Players: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "players"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy truths"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Resume, k.Snuff, k.Write, k.Truths, k.Players, k.Copy, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// staticHelp is a fixed help line for the forms and overlays.
type staticHelp []key.Binding

func (h staticHelp) ShortHelp() []key.Binding  { return h }
func (h staticHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

func hint(keys, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys), key.WithHelp(keys, desc))
}

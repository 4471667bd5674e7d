package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/ten-candles/pkg/roster"
)

type playersAction int

const (
	playersNone playersAction = iota
	playersChanged
	playersClose
)

// playersView lists the characters at the table and edits one at a time.
type playersView struct {
	selected int
	editing  bool
	field    int
	inputs   []textinput.Model
	err      error
}

func newPlayersView() playersView {
	inputs := make([]textinput.Model, len(roster.Fields))
	for i, f := range roster.Fields {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%-10s ", labelize(string(f))+":")
		in.PromptStyle = promptStyle
		in.CharLimit = 120
		in.Width = 40
		inputs[i] = in
	}
	return playersView{inputs: inputs}
}

// edit loads p into the form.
func (v *playersView) edit(p roster.Player) tea.Cmd {
	v.editing = true
	v.field = 0
	for i, f := range roster.Fields {
		v.inputs[i].SetValue(p.Get(f))
		v.inputs[i].Blur()
	}
	return v.inputs[0].Focus()
}

func (v *playersView) focusField(i int) tea.Cmd {
	v.inputs[v.field].Blur()
	v.field = (i + len(v.inputs)) % len(v.inputs)
	return v.inputs[v.field].Focus()
}

// save writes the form back into the roster.
func (v playersView) save(r roster.Roster) (roster.Roster, error) {
	var err error
	for i, f := range roster.Fields {
		r, err = r.Update(v.selected, f, strings.TrimSpace(v.inputs[i].Value()))
		if err != nil {
			return r, err
		}
	}
	return r, nil
}

func (v playersView) Update(msg tea.Msg, r roster.Roster) (playersView, roster.Roster, playersAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, r, playersNone, nil
	}
	v.err = nil

	if v.editing {
		switch keyMsg.String() {
		case "esc":
			v.editing = false
			return v, r, playersNone, nil
		case "enter":
			next, err := v.save(r)
			if err != nil {
				v.err = err
				return v, r, playersNone, nil
			}
			v.editing = false
			return v, next, playersChanged, nil
		case "tab", "down":
			cmd := v.focusField(v.field + 1)
			return v, r, playersNone, cmd
		case "shift+tab", "up":
			cmd := v.focusField(v.field - 1)
			return v, r, playersNone, cmd
		}
		var cmd tea.Cmd
		v.inputs[v.field], cmd = v.inputs[v.field].Update(msg)
		return v, r, playersNone, cmd
	}

	switch keyMsg.String() {
	case "esc", "c", "q":
		return v, r, playersClose, nil
	case "up", "k":
		v.selected = clamp(v.selected-1, 0, r.Count()-1)
	case "down", "j":
		v.selected = clamp(v.selected+1, 0, r.Count()-1)
	case "+", "=":
		next, err := r.SetCount(r.Count() + 1)
		if err != nil {
			v.err = err
			return v, r, playersNone, nil
		}
		return v, next, playersChanged, nil
	case "-":
		next, err := r.SetCount(r.Count() - 1)
		if err != nil {
			v.err = err
			return v, r, playersNone, nil
		}
		v.selected = clamp(v.selected, 0, next.Count()-1)
		return v, next, playersChanged, nil
	case "e", "enter":
		p, err := r.Player(v.selected)
		if err != nil {
			v.err = err
			return v, r, playersNone, nil
		}
		cmd := v.edit(p)
		return v, r, playersNone, cmd
	case "1", "2", "3", "4":
		t := roster.Traits[int(keyMsg.Runes[0]-'1')]
		next, err := r.Use(v.selected, t)
		if err != nil {
			v.err = err
			return v, r, playersNone, nil
		}
		return v, next, playersChanged, nil
	}
	return v, r, playersNone, nil
}

func (v playersView) View(r roster.Roster) string {
	var b strings.Builder
	b.WriteString(modalTitleStyle.Render(fmt.Sprintf("Players (%d)", r.Count())) + "\n\n")

	if v.editing {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("Editing player %d", v.selected+1)) + "\n\n")
		for _, in := range v.inputs {
			b.WriteString(in.View() + "\n")
		}
		b.WriteString("\n" + promptStyle.Render("tab next field - enter save - esc cancel"))
		return b.String()
	}

	for i, p := range r.Players() {
		cursor := "  "
		name := labelStyle.Render(p.DisplayName())
		if i == v.selected {
			cursor = focusStyle.Render("> ")
			name = focusStyle.Render(p.DisplayName())
		}
		b.WriteString(cursor + name)
		if p.RealName != "" {
			b.WriteString(subtitleStyle.Render(" (" + p.RealName + ")"))
		}
		b.WriteString("\n")
		for n, t := range roster.Traits {
			b.WriteString(fmt.Sprintf("    %d %-7s %s\n", n+1, labelize(string(t)), traitView(p, t)))
		}
	}

	if v.err != nil {
		b.WriteString("\n" + pausedStyle.Render(v.err.Error()) + "\n")
	}
	b.WriteString("\n" + promptStyle.Render("↑/↓ select - e edit - 1-4 mark trait - +/- players - esc close"))
	return b.String()
}

func traitView(p roster.Player, t roster.Trait) string {
	text := orDash(p.Get(roster.Field(t)))
	usage := labelize(p.UsageOf(t))
	switch {
	case p.Spent(t):
		return usedStyle.Render(text) + " " + promptStyle.Render("["+usage+"]")
	case p.UsageOf(t) == roster.StageInUse.String():
		return inUseStyle.Render(text) + " " + inUseStyle.Render("["+usage+"]")
	default:
		return text + " " + promptStyle.Render("["+usage+"]")
	}
}

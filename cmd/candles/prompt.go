package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/ten-candles/pkg/candle"
)

// promptAction is what the truth prompt asks the console to do after a key.
type promptAction int

const (
	promptNone promptAction = iota
	promptSubmit
	promptSkip
	promptClose
)

// truthPrompt is the modal that collects one scene's truths. Positions fixed
// by an override are shown read-only and never take focus.
type truthPrompt struct {
	prompt candle.Prompt
	inputs []textinput.Model
	focus  int
}

func newTruthPrompt(p candle.Prompt, width int) truthPrompt {
	tp := truthPrompt{
		prompt: p,
		inputs: make([]textinput.Model, p.Size),
		focus:  -1,
	}
	for i := range tp.inputs {
		in := textinput.New()
		in.Prompt = fmt.Sprintf("%2d. ", i+1)
		in.PromptStyle = promptStyle
		in.Placeholder = fmt.Sprintf("Enter truth %d", i+1)
		in.CharLimit = 280
		in.Width = width
		tp.inputs[i] = in
	}
	tp.focusNext(0, 1)
	return tp
}

// editable reports whether position i takes user input.
func (tp truthPrompt) editable(i int) bool {
	_, fixed := tp.prompt.Fixed(i)
	return !fixed
}

// focusNext moves focus to the first editable position at or after from,
// walking in dir. Focus stays put when no editable position exists that way.
func (tp *truthPrompt) focusNext(from, dir int) tea.Cmd {
	for i := from; i >= 0 && i < len(tp.inputs); i += dir {
		if !tp.editable(i) {
			continue
		}
		if tp.focus >= 0 {
			tp.inputs[tp.focus].Blur()
		}
		tp.focus = i
		return tp.inputs[i].Focus()
	}
	return nil
}

// lastEditable returns the highest editable position, or -1.
func (tp truthPrompt) lastEditable() int {
	for i := len(tp.inputs) - 1; i >= 0; i-- {
		if tp.editable(i) {
			return i
		}
	}
	return -1
}

// Entries returns the typed values in prompt order.
func (tp truthPrompt) Entries() []string {
	out := make([]string, len(tp.inputs))
	for i, in := range tp.inputs {
		out[i] = in.Value()
	}
	return out
}

func (tp truthPrompt) Update(msg tea.Msg) (truthPrompt, promptAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return tp, promptNone, nil
	}

	switch keyMsg.String() {
	case "ctrl+s":
		return tp, promptSubmit, nil
	case "ctrl+x":
		return tp, promptSkip, nil
	case "esc":
		return tp, promptClose, nil
	case "tab", "down":
		cmd := tp.focusNext(tp.focus+1, 1)
		return tp, promptNone, cmd
	case "shift+tab", "up":
		cmd := tp.focusNext(tp.focus-1, -1)
		return tp, promptNone, cmd
	case "enter":
		if tp.focus == tp.lastEditable() {
			return tp, promptSubmit, nil
		}
		cmd := tp.focusNext(tp.focus+1, 1)
		return tp, promptNone, cmd
	}

	if tp.focus < 0 {
		return tp, promptNone, nil
	}
	var cmd tea.Cmd
	tp.inputs[tp.focus], cmd = tp.inputs[tp.focus].Update(msg)
	return tp, promptNone, cmd
}

func (tp truthPrompt) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Scene %d - Write %d Truths", tp.prompt.Scene(), tp.prompt.Size)
	if tp.prompt.Size == 1 {
		title = fmt.Sprintf("Scene %d - Write the Last Truth", tp.prompt.Scene())
	}
	b.WriteString(modalTitleStyle.Render(title) + "\n\n")

	for i, in := range tp.inputs {
		if text, fixed := tp.prompt.Fixed(i); fixed {
			b.WriteString(promptStyle.Render(fmt.Sprintf("%2d. ", i+1)) + fixedStyle.Render(text) + "\n")
			continue
		}
		b.WriteString(in.View() + "\n")
	}

	b.WriteString("\n" + promptStyle.Render("enter next/submit - ctrl+s submit - ctrl+x skip writing truths - esc close"))
	return b.String()
}

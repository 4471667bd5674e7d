package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/ten-candles/pkg/candle"
)

// Setup form focus positions.
const (
	setupDuration = iota
	setupFirstToggle
	setupFirstText
	setupLastToggle
	setupLastText
	setupStart
	setupFieldCount
)

// setupForm edits the session settings before the candles are lit.
type setupForm struct {
	duration textinput.Model
	first    textinput.Model
	last     textinput.Model

	firstEnabled bool
	lastEnabled  bool
	focus        int
}

// setupAction is what the form asks the console to do after a key.
type setupAction int

const (
	setupNone setupAction = iota
	setupApplyDuration
	setupSyncOverrides
	setupStartSession
)

func newSetupForm(settings candle.Settings) setupForm {
	duration := textinput.New()
	duration.Prompt = ""
	duration.CharLimit = 3
	duration.Width = 4
	duration.SetValue(strconv.Itoa(settings.DurationMinutes))
	duration.CursorEnd()

	first := textinput.New()
	first.Prompt = ""
	first.Placeholder = "first truth of every scene"
	first.CharLimit = 200
	first.Width = 40
	first.SetValue(settings.First.Text)
	first.CursorEnd()

	last := textinput.New()
	last.Prompt = ""
	last.Placeholder = "last truth of every scene"
	last.CharLimit = 200
	last.Width = 40
	last.SetValue(settings.Last.Text)
	last.CursorEnd()

	f := setupForm{
		duration:     duration,
		first:        first,
		last:         last,
		firstEnabled: settings.First.Enabled,
		lastEnabled:  settings.Last.Enabled,
	}
	f.setFocus(setupDuration)
	return f
}

// Minutes parses the duration field. Blank input reads as one minute and the
// value is clamped to 1..candle.MaxMinutes.
func (f setupForm) Minutes() int {
	n, err := strconv.Atoi(strings.TrimSpace(f.duration.Value()))
	if err != nil {
		return 1
	}
	return candle.ClampMinutes(n)
}

func (f setupForm) FirstOverride() candle.Override {
	return candle.Override{Enabled: f.firstEnabled, Text: f.first.Value()}
}

func (f setupForm) LastOverride() candle.Override {
	return candle.Override{Enabled: f.lastEnabled, Text: f.last.Value()}
}

func (f *setupForm) setFocus(i int) tea.Cmd {
	f.focus = (i + setupFieldCount) % setupFieldCount
	f.duration.Blur()
	f.first.Blur()
	f.last.Blur()
	switch f.focus {
	case setupDuration:
		return f.duration.Focus()
	case setupFirstText:
		if f.firstEnabled {
			return f.first.Focus()
		}
	case setupLastText:
		if f.lastEnabled {
			return f.last.Focus()
		}
	}
	return nil
}

// Update handles one message and reports which session change it calls for.
func (f setupForm) Update(msg tea.Msg) (setupForm, setupAction, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, setupNone, nil
	}

	switch keyMsg.String() {
	case "tab", "down":
		cmd := f.setFocus(f.focus + 1)
		return f, setupNone, cmd
	case "shift+tab", "up":
		cmd := f.setFocus(f.focus - 1)
		return f, setupNone, cmd
	case "enter":
		switch f.focus {
		case setupDuration:
			return f, setupApplyDuration, nil
		case setupFirstToggle, setupLastToggle:
			f.toggle()
			return f, setupSyncOverrides, nil
		case setupStart:
			return f, setupStartSession, nil
		default:
			cmd := f.setFocus(f.focus + 1)
			return f, setupNone, cmd
		}
	case " ":
		if f.focus == setupFirstToggle || f.focus == setupLastToggle {
			f.toggle()
			return f, setupSyncOverrides, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case setupDuration:
		if keyMsg.Type == tea.KeyRunes && !allDigits(keyMsg.Runes) {
			return f, setupNone, nil
		}
		f.duration, cmd = f.duration.Update(msg)
		return f, setupNone, cmd
	case setupFirstText:
		if !f.firstEnabled {
			return f, setupNone, nil
		}
		f.first, cmd = f.first.Update(msg)
		return f, setupSyncOverrides, cmd
	case setupLastText:
		if !f.lastEnabled {
			return f, setupNone, nil
		}
		f.last, cmd = f.last.Update(msg)
		return f, setupSyncOverrides, cmd
	}
	return f, setupNone, nil
}

func (f *setupForm) toggle() {
	if f.focus == setupFirstToggle {
		f.firstEnabled = !f.firstEnabled
	} else {
		f.lastEnabled = !f.lastEnabled
	}
}

func allDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (f setupForm) View(applied int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Customize Truth Fields") + "\n\n")
	b.WriteString(f.line(setupFirstToggle, checkbox(f.firstEnabled)+" Fill the first field with:") + "\n")
	b.WriteString(f.line(setupFirstText, "    "+f.overrideView(f.first, f.firstEnabled)) + "\n")
	b.WriteString(f.line(setupLastToggle, checkbox(f.lastEnabled)+" Fill the last field with:") + "\n")
	b.WriteString(f.line(setupLastText, "    "+f.overrideView(f.last, f.lastEnabled)) + "\n\n")

	b.WriteString(titleStyle.Render("Candle Duration (minutes)") + "\n\n")
	b.WriteString(f.line(setupDuration, "["+f.duration.View()+"]") + "  ")
	b.WriteString(promptStyle.Render(fmt.Sprintf("enter to set - currently %d min per candle", applied)) + "\n\n")

	b.WriteString(f.line(setupStart, "[ Start Candles ]"))
	return b.String()
}

func (f setupForm) overrideView(in textinput.Model, enabled bool) string {
	if !enabled {
		return promptStyle.Render(orDash(in.Value()))
	}
	return in.View()
}

func (f setupForm) line(pos int, s string) string {
	if f.focus == pos {
		return focusStyle.Render("> ") + s
	}
	return "  " + s
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

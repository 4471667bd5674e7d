package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/ten-candles/internal/config"
	"github.com/jwebster45206/ten-candles/pkg/candle"
	"github.com/jwebster45206/ten-candles/pkg/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(t *testing.T) (ConsoleUI, *string) {
	t.Helper()
	cfg := &config.Config{CandleMinutes: 1, Players: roster.DefaultPlayers, AltScreen: true}
	m := NewConsoleUI(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	copied := new(string)
	m.copy = func(s string) error {
		*copied = s
		return nil
	}
	return m, copied
}

func send(t *testing.T, m ConsoleUI, msg tea.Msg) (ConsoleUI, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	ui, ok := next.(ConsoleUI)
	require.True(t, ok)
	return ui, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// started tabs to the start button and lights the candles.
func started(t *testing.T, m ConsoleUI) ConsoleUI {
	t.Helper()
	for i := 0; i < setupFieldCount && m.setup.focus != setupStart; i++ {
		m, _ = send(t, m, keyOf(tea.KeyTab))
	}
	require.Equal(t, setupStart, m.setup.focus)
	m, _ = send(t, m, keyOf(tea.KeyEnter))
	require.Equal(t, candle.PhaseAwaitingTruths, m.session.Phase())
	return m
}

// fillPrompt types one truth per editable field, pressing enter after each.
func fillPrompt(t *testing.T, m ConsoleUI) (ConsoleUI, tea.Cmd) {
	t.Helper()
	p, ok := m.session.Prompt()
	require.True(t, ok)
	var cmd tea.Cmd
	for i := 0; i < p.Size; i++ {
		if _, fixed := p.Fixed(i); fixed {
			continue
		}
		m, _ = send(t, m, runes(fmt.Sprintf("truth %d", i+1)))
		m, cmd = send(t, m, keyOf(tea.KeyEnter))
	}
	return m, cmd
}

func TestConsoleUI_StartOpensPrompt(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)

	assert.False(t, m.promptHidden)
	assert.Equal(t, 10, m.prompt.prompt.Size)
	assert.Equal(t, 9, m.session.ActiveIndex())
	assert.Contains(t, m.View(), "Scene 10 - Write 10 Truths")
}

func TestConsoleUI_SubmitTruthsStartsBurning(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)

	m, cmd := fillPrompt(t, m)
	assert.Equal(t, candle.PhaseBurning, m.session.Phase())
	assert.NotNil(t, cmd, "lighting the candle schedules a tick")

	slot, err := m.session.Slot(0)
	require.NoError(t, err)
	assert.Len(t, slot.Truths, 10)
	assert.Equal(t, "truth 1", slot.Truths[0])
	assert.Equal(t, "truth 10", slot.Truths[9])
}

func TestConsoleUI_BlankSubmitKeepsPromptOpen(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)

	status := m.status
	m, cmd := send(t, m, keyOf(tea.KeyCtrlS))
	assert.Nil(t, cmd)
	assert.Equal(t, candle.PhaseAwaitingTruths, m.session.Phase())
	assert.False(t, m.promptHidden)
	assert.Equal(t, status, m.status, "blank truths are rejected in place")
}

func TestConsoleUI_SkipTruths(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)

	m, _ = send(t, m, keyOf(tea.KeyCtrlX))
	assert.Equal(t, candle.PhaseBurning, m.session.Phase())

	slot, err := m.session.Slot(0)
	require.NoError(t, err)
	assert.True(t, slot.Written)
	assert.Empty(t, slot.Truths)
	assert.Equal(t, "Candle 10 is burning.", m.status)
}

func TestConsoleUI_TickCountsDown(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	tok, ok := m.session.Token()
	require.True(t, ok)

	m, cmd := send(t, m, tickMsg{token: tok})
	assert.Equal(t, 59, m.session.Remaining(9))
	assert.NotNil(t, cmd, "a live tick reschedules itself")
	assert.Contains(t, m.View(), "0:59")
}

func TestConsoleUI_PauseDropsInFlightTicks(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))
	old, ok := m.session.Token()
	require.True(t, ok)

	m, _ = send(t, m, runes("p"))
	require.Equal(t, candle.PhasePaused, m.session.Phase())
	assert.Contains(t, m.View(), "paused")

	m, cmd := send(t, m, tickMsg{token: old})
	assert.Nil(t, cmd)
	assert.Equal(t, 60, m.session.Remaining(9))

	m, cmd = send(t, m, runes("r"))
	require.Equal(t, candle.PhaseBurning, m.session.Phase())
	assert.NotNil(t, cmd)
	fresh, ok := m.session.Token()
	require.True(t, ok)
	assert.NotEqual(t, old, fresh)

	m, _ = send(t, m, tickMsg{token: old})
	assert.Equal(t, 60, m.session.Remaining(9), "old schedule stays closed")
	m, _ = send(t, m, tickMsg{token: fresh})
	assert.Equal(t, 59, m.session.Remaining(9))
}

func TestConsoleUI_PauseKeyTogglesResume(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	m, _ = send(t, m, runes("p"))
	assert.Equal(t, candle.PhasePaused, m.session.Phase())
	m, _ = send(t, m, runes("p"))
	assert.Equal(t, candle.PhaseBurning, m.session.Phase())
}

func TestConsoleUI_SnuffOpensNextPrompt(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	m, _ = send(t, m, runes("s"))
	assert.Equal(t, candle.CauseSnuffed, m.session.Cause(9))
	assert.Equal(t, 8, m.session.ActiveIndex())
	assert.Equal(t, candle.PhaseAwaitingTruths, m.session.Phase())
	assert.Equal(t, 9, m.prompt.prompt.Size)
	assert.False(t, m.promptHidden)
}

func TestConsoleUI_ClickSnuffsActiveCandle(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	click := func(c int) tea.MouseMsg {
		return tea.MouseMsg{
			X:      candleLeft + c*cellWidth + 1,
			Y:      candleTop + 2,
			Action: tea.MouseActionPress,
			Button: tea.MouseButtonLeft,
		}
	}

	m, _ = send(t, m, click(3))
	assert.Equal(t, candle.CauseNone, m.session.Cause(3))
	assert.Equal(t, candle.PhaseBurning, m.session.Phase())

	m, _ = send(t, m, click(9))
	assert.Equal(t, candle.CauseSnuffed, m.session.Cause(9))
	assert.Equal(t, 8, m.session.ActiveIndex())
}

func TestConsoleUI_ClickIgnoredInline(t *testing.T) {
	m, _ := newTestUI(t)
	m.config.AltScreen = false
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	m, _ = send(t, m, tea.MouseMsg{
		X:      candleLeft + 9*cellWidth + 1,
		Y:      candleTop + 2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.Equal(t, candle.CauseNone, m.session.Cause(9))
	assert.Equal(t, candle.PhaseBurning, m.session.Phase())
}

func TestConsoleUI_SetupDurationClampsToMax(t *testing.T) {
	m, _ := newTestUI(t)
	m.setup.duration.CharLimit = 0
	m.setup.duration.SetValue("99999")
	m, _ = send(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, candle.MaxMinutes, m.session.Settings().DurationMinutes)
	assert.Equal(t, fmt.Sprint(candle.MaxMinutes), m.setup.duration.Value())
}

func TestConsoleUI_HiddenPromptReopens(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)

	m, _ = send(t, m, keyOf(tea.KeyEsc))
	assert.True(t, m.promptHidden)
	assert.Equal(t, candle.PhaseAwaitingTruths, m.session.Phase())
	assert.True(t, m.keys.Write.Enabled())
	assert.Contains(t, m.View(), "TEN CANDLES")

	m, _ = send(t, m, runes("s"))
	assert.Equal(t, candle.CauseNone, m.session.Cause(9), "an unlit candle cannot be snuffed")

	m, _ = send(t, m, runes("w"))
	assert.False(t, m.promptHidden)
	assert.False(t, m.keys.Write.Enabled())
}

func TestConsoleUI_CopyTruths(t *testing.T) {
	m, copied := newTestUI(t)
	m = started(t, m)
	m, _ = fillPrompt(t, m)

	m, _ = send(t, m, runes("y"))
	assert.Contains(t, *copied, "Ten Candles - Truths")
	assert.Contains(t, *copied, "1. truth 1")
	assert.Equal(t, "Truths copied to clipboard.", m.status)
}

func TestConsoleUI_CopyFailureShowsStatus(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))
	m.copy = func(string) error { return errors.New("no clipboard") }

	m, _ = send(t, m, runes("y"))
	assert.Contains(t, m.status, "no clipboard")
}

func TestConsoleUI_SetupDuration(t *testing.T) {
	m, _ := newTestUI(t)
	require.Equal(t, setupDuration, m.setup.focus)

	m, _ = send(t, m, keyOf(tea.KeyBackspace))
	m, _ = send(t, m, runes("x"))
	m, _ = send(t, m, runes("3"))
	m, _ = send(t, m, keyOf(tea.KeyEnter))

	assert.Equal(t, 3, m.session.Settings().DurationMinutes)
	assert.Equal(t, 180, m.session.Remaining(9))
	assert.Equal(t, "Each candle burns for 3 min.", m.status)
}

func TestConsoleUI_SetupOverrides(t *testing.T) {
	m, _ := newTestUI(t)

	m, _ = send(t, m, keyOf(tea.KeyTab))
	m, _ = send(t, m, runes(" "))
	require.True(t, m.setup.firstEnabled)
	m, _ = send(t, m, keyOf(tea.KeyTab))
	m, _ = send(t, m, runes("We are alive"))

	first := m.session.Settings().First
	assert.True(t, first.Enabled)
	assert.Equal(t, "We are alive", first.Text)

	m = started(t, m)
	text, fixed := m.prompt.prompt.Fixed(0)
	assert.True(t, fixed)
	assert.Equal(t, "We are alive", text)
	assert.Equal(t, 1, m.prompt.focus, "fixed positions never take focus")
}

func TestConsoleUI_RunToFinish(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)

	for i := 0; i < 2*candle.CandleCount && m.session.Phase() != candle.PhaseFinished; i++ {
		if m.session.PromptOpen() {
			m, _ = send(t, m, keyOf(tea.KeyCtrlX))
			continue
		}
		m, _ = send(t, m, runes("s"))
	}

	require.Equal(t, candle.PhaseFinished, m.session.Phase())
	for c := 0; c < candle.CandleCount; c++ {
		assert.Equal(t, candle.CauseSnuffed, m.session.Cause(c))
	}
	assert.Contains(t, m.View(), "All candles are out.")
	assert.False(t, m.keys.Snuff.Enabled())
}

func TestConsoleUI_QuitModal(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	m, _ = send(t, m, runes("q"))
	require.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Quit?")

	tok, _ := m.session.Token()
	m, _ = send(t, m, tickMsg{token: tok})
	assert.Equal(t, 59, m.session.Remaining(9), "ticks run behind the modal")

	m, _ = send(t, m, runes("n"))
	assert.False(t, m.showQuitModal)

	m, _ = send(t, m, keyOf(tea.KeyCtrlC))
	require.True(t, m.showQuitModal)
	_, cmd := send(t, m, runes("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConsoleUI_TruthsOverlay(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = fillPrompt(t, m)

	m, _ = send(t, m, runes("t"))
	require.Equal(t, overlayTruths, m.overlay)
	view := m.View()
	assert.Contains(t, view, "Scene 10")
	assert.Contains(t, view, "truth 1")

	m, _ = send(t, m, keyOf(tea.KeyRight))
	assert.Equal(t, 1, m.archive.tab)
	assert.Contains(t, m.View(), "(not yet written)")

	m, _ = send(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, overlayNone, m.overlay)
}

func TestConsoleUI_PlayersOverlay(t *testing.T) {
	m, _ := newTestUI(t)
	m = started(t, m)
	m, _ = send(t, m, keyOf(tea.KeyCtrlX))

	m, _ = send(t, m, runes("c"))
	require.Equal(t, overlayPlayers, m.overlay)

	m, _ = send(t, m, runes("+"))
	assert.Equal(t, 5, m.roster.Count())

	m, _ = send(t, m, runes("3"))
	p, err := m.roster.Player(0)
	require.NoError(t, err)
	assert.Equal(t, roster.StageInUse, p.Usage.Moment)

	m, _ = send(t, m, runes("e"))
	require.True(t, m.players.editing)
	m, _ = send(t, m, runes("Rook"))
	m, _ = send(t, m, keyOf(tea.KeyEnter))
	p, err = m.roster.Player(0)
	require.NoError(t, err)
	assert.Equal(t, "Rook", p.Name)

	m, _ = send(t, m, keyOf(tea.KeyEsc))
	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, candle.PhaseBurning, m.session.Phase())
}

func TestCandleAt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		candle int
		ok     bool
	}{
		{"leftmost candle", candleLeft, candleTop, 0, true},
		{"rightmost candle", candleLeft + 9*cellWidth + cellWidth - 1, candleTop + candleHeight - 1, 9, true},
		{"above the row", candleLeft, candleTop - 1, 0, false},
		{"below the row", candleLeft, candleTop + candleHeight, 0, false},
		{"left margin", candleLeft - 1, candleTop, 0, false},
		{"past the last candle", candleLeft + 10*cellWidth, candleTop, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := candleAt(tt.x, tt.y)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.candle, c)
			}
		})
	}
}

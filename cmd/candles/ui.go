package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/ten-candles/internal/config"
	"github.com/jwebster45206/ten-candles/internal/logger"
	"github.com/jwebster45206/ten-candles/pkg/candle"
	"github.com/jwebster45206/ten-candles/pkg/roster"
)

// Candle row geometry. The row is drawn as plain columns so a mouse click
// can be mapped back to a candle.
const (
	candleTop    = 3 // title, subtitle, blank line
	candleLeft   = 2
	cellWidth    = 8
	waxHeight    = 6
	candleHeight = waxHeight + 3 // flame, wax, label, time
	promptWidth  = 56
	candleCount  = candle.CandleCount
)

type overlay int

const (
	overlayNone overlay = iota
	overlayTruths
	overlayPlayers
)

// ConsoleUI is the BubbleTea model that runs the candles.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config  *config.Config
	logger  *slog.Logger
	session candle.Session
	roster  roster.Roster

	setup        setupForm
	prompt       truthPrompt
	promptHidden bool

	overlay overlay
	archive archiveView
	players playersView

	keys   keyMap
	help   help.Model
	wax    progress.Model
	status string
	width  int
	height int

	// Quit confirmation state
	showQuitModal bool

	// copy writes the export to the system clipboard.
	copy func(string) error
}

// tickMsg is one scheduled second for the countdown that issued token.
type tickMsg struct {
	token candle.Token
}

func NewConsoleUI(cfg *config.Config, base *slog.Logger) ConsoleUI {
	session := candle.NewSession(cfg.SessionSettings())

	m := ConsoleUI{
		config:  cfg,
		logger:  logger.WithSessionID(base, session.ID()),
		session: session,
		roster:  roster.New(cfg.Players),
		setup:   newSetupForm(session.Settings()),
		archive: newArchiveView(60, 12),
		players: newPlayersView(),
		keys:    newKeyMap(),
		help:    help.New(),
		wax: progress.New(
			progress.WithGradient("#FFD75F", "#FF5F00"),
			progress.WithoutPercentage(),
			progress.WithWidth(candleCount*cellWidth),
		),
		status: "Set up the candles, then start.",
		copy:   clipboard.WriteAll,
	}
	m.syncKeys()
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return textinput.Blink
}

// scheduleTick delivers one tick for tok after the tick interval.
func scheduleTick(tok candle.Token) tea.Cmd {
	return tea.Tick(candle.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{token: tok}
	})
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.wax.Width = min(max(msg.Width-2*candleLeft, 10), candleCount*cellWidth)
		m.archive.resize(min(max(msg.Width-12, 20), 76), max(msg.Height-14, 4))
		if m.overlay == overlayTruths {
			m.archive.refresh(m.session)
		}
		return m, nil

	case tickMsg:
		// Ticks keep flowing behind every modal.
		return m.onTick(msg)
	}

	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.onMouse(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.showQuitModal = true
			return m, nil
		}
		return m.onKey(msg)
	}
	return m, nil
}

func (m ConsoleUI) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.session.Phase() == candle.PhaseNotStarted:
		if msg.Type == tea.KeyEsc {
			m.showQuitModal = true
			return m, nil
		}
		return m.updateSetup(msg)

	case m.session.PromptOpen() && !m.promptHidden:
		return m.updatePrompt(msg)

	case m.overlay == overlayTruths:
		return m.updateArchive(msg)

	case m.overlay == overlayPlayers:
		return m.updatePlayers(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.showQuitModal = true
		return m, nil
	case key.Matches(msg, m.keys.Resume):
		next, err := m.session.Resume()
		return m.apply("resume", next, err)
	case key.Matches(msg, m.keys.Pause):
		next, err := m.session.Pause()
		return m.apply("pause", next, err)
	case key.Matches(msg, m.keys.Snuff):
		next, err := m.session.Snuff()
		return m.apply("snuff", next, err)
	case key.Matches(msg, m.keys.Write):
		m.promptHidden = false
		m.syncKeys()
		return m, nil
	case key.Matches(msg, m.keys.Truths):
		m.overlay = overlayTruths
		m.archive.refresh(m.session)
		return m, nil
	case key.Matches(msg, m.keys.Players):
		m.overlay = overlayPlayers
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyTruths(), nil
	}
	return m, nil
}

func (m ConsoleUI) updateSetup(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, action, cmd := m.setup.Update(msg)
	m.setup = form

	var (
		next candle.Session
		err  error
		name string
	)
	switch action {
	case setupApplyDuration:
		name = "set_duration"
		next, err = m.session.SetDuration(form.Minutes())
		m.setup.duration.SetValue(fmt.Sprint(form.Minutes()))
	case setupSyncOverrides:
		name = "set_overrides"
		next, err = m.session.SetFirstOverride(form.FirstOverride())
		if err == nil {
			next, err = next.SetLastOverride(form.LastOverride())
		}
	case setupStartSession:
		name = "start"
		next, err = m.session.Start()
	default:
		return m, cmd
	}

	m, applyCmd := m.applySession(name, next, err)
	if action == setupApplyDuration && err == nil {
		m.status = fmt.Sprintf("Each candle burns for %d min.", next.Settings().DurationMinutes)
	}
	return m, tea.Batch(cmd, applyCmd)
}

func (m ConsoleUI) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tp, action, cmd := m.prompt.Update(msg)
	m.prompt = tp

	switch action {
	case promptSubmit:
		next, err := m.session.SubmitTruths(tp.Entries())
		return m.apply("submit_truths", next, err)
	case promptSkip:
		next, err := m.session.SkipTruths()
		return m.apply("skip_truths", next, err)
	case promptClose:
		m.promptHidden = true
		m.syncKeys()
		m.status = "Truths not written yet. Press w to write them."
		return m, nil
	}
	return m, cmd
}

func (m ConsoleUI) updateArchive(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t", "esc", "q":
		m.overlay = overlayNone
		return m, nil
	case "y":
		return m.copyTruths(), nil
	}
	var cmd tea.Cmd
	m.archive, cmd = m.archive.Update(msg, m.session)
	return m, cmd
}

func (m ConsoleUI) updatePlayers(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v, r, action, cmd := m.players.Update(msg, m.roster)
	m.players = v
	switch action {
	case playersClose:
		m.overlay = overlayNone
	case playersChanged:
		m.roster = r
		m.logger.Debug("roster updated", "players", r.Count())
	}
	return m, cmd
}

// onMouse snuffs the active candle when it is clicked. Clicks only map to
// candles on the alt screen, where the view starts at the top row.
func (m ConsoleUI) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.overlay == overlayTruths {
		var cmd tea.Cmd
		m.archive, cmd = m.archive.Update(msg, m.session)
		return m, cmd
	}
	if m.overlay != overlayNone || (m.session.PromptOpen() && !m.promptHidden) {
		return m, nil
	}
	if !m.config.AltScreen || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	c, ok := candleAt(msg.X, msg.Y)
	if !ok || !m.session.IsActive(c) {
		return m, nil
	}
	next, err := m.session.Snuff()
	return m.apply("snuff", next, err)
}

// candleAt maps a screen cell to the candle drawn there.
func candleAt(x, y int) (int, bool) {
	if y < candleTop || y >= candleTop+candleHeight {
		return 0, false
	}
	if x < candleLeft || x >= candleLeft+candleCount*cellWidth {
		return 0, false
	}
	return (x - candleLeft) / cellWidth, true
}

func (m ConsoleUI) onTick(msg tickMsg) (tea.Model, tea.Cmd) {
	next, err := m.session.Tick(msg.token)
	if errors.Is(err, candle.ErrStaleTick) {
		return m, nil
	}
	m, cmd := m.applySession("tick", next, err)
	if tok, ok := m.session.Token(); ok && tok == msg.token {
		return m, tea.Batch(cmd, scheduleTick(tok))
	}
	return m, cmd
}

func (m ConsoleUI) apply(action string, next candle.Session, err error) (tea.Model, tea.Cmd) {
	return m.applySession(action, next, err)
}

// applySession moves the console to next. Every step between the two
// sessions is logged, the newest one becomes the status line, and a tick is
// scheduled whenever a new countdown schedule has opened. Rejected actions
// leave the screen as it was.
func (m ConsoleUI) applySession(action string, next candle.Session, err error) (ConsoleUI, tea.Cmd) {
	if err != nil {
		logger.WithError(m.logger, err).Debug("action rejected", "action", action, "phase", m.session.Phase())
		return m, nil
	}

	prev := m.session
	m.session = next

	for _, ev := range candle.Diff(prev, next) {
		m.logger.Info(ev.String(), "event", ev.Type, "candle", ev.Candle, "action", action)
		m.status = ev.String()
	}

	var cmds []tea.Cmd
	if next.PromptOpen() && (!prev.PromptOpen() || prev.ActiveIndex() != next.ActiveIndex()) {
		p, _ := next.Prompt()
		m.prompt = newTruthPrompt(p, promptWidth-10)
		m.promptHidden = false
		cmds = append(cmds, textinput.Blink)
	}
	if !next.PromptOpen() {
		m.promptHidden = false
	}

	prevTok, prevOK := prev.Token()
	if tok, ok := next.Token(); ok && (!prevOK || tok != prevTok) {
		cmds = append(cmds, scheduleTick(tok))
	}

	m.syncKeys()
	return m, tea.Batch(cmds...)
}

// syncKeys enables only the bindings that do something in the current phase.
func (m *ConsoleUI) syncKeys() {
	phase := m.session.Phase()
	m.keys.Pause.SetEnabled(phase == candle.PhaseBurning)
	m.keys.Resume.SetEnabled(phase == candle.PhasePaused)
	m.keys.Snuff.SetEnabled(phase.Melting())
	m.keys.Write.SetEnabled(phase == candle.PhaseAwaitingTruths && m.promptHidden)
	m.keys.Truths.SetEnabled(phase.Started())
	m.keys.Players.SetEnabled(phase.Started())
	m.keys.Copy.SetEnabled(phase.Started())
}

func (m ConsoleUI) copyTruths() ConsoleUI {
	if err := m.copy(m.session.Export()); err != nil {
		logger.WithError(m.logger, err).Warn("clipboard write failed")
		m.status = "Could not copy truths: " + err.Error()
		return m
	}
	m.logger.Info("truths copied")
	m.status = "Truths copied to clipboard."
	return m
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
		return m, tea.Quit
	}
	switch keyMsg.String() {
	case "y", "Y":
		return m, tea.Quit
	case "n", "N":
		m.showQuitModal = false
	}
	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	if m.session.Phase().Started() && m.session.Phase() != candle.PhaseFinished {
		content.WriteString("The candles are still burning. Truths are not saved.")
	} else {
		content.WriteString("Are you sure you want to quit?")
	}
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	return m.place(modalStyle.Width(50).Render(content.String()))
}

// place centres a modal on the screen once its size is known.
func (m ConsoleUI) place(modal string) string {
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	switch {
	case m.session.PromptOpen() && !m.promptHidden:
		return m.place(modalStyle.Width(promptWidth).Render(m.prompt.View()))
	case m.overlay == overlayTruths:
		return m.place(modalStyle.Render(m.archive.View(m.session)))
	case m.overlay == overlayPlayers:
		return m.place(modalStyle.Width(promptWidth).Render(m.players.View(m.roster)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("TEN CANDLES") + "\n")
	b.WriteString(m.renderSubtitle() + "\n\n")
	b.WriteString(m.renderCandles() + "\n\n")

	switch m.session.Phase() {
	case candle.PhaseNotStarted:
		b.WriteString(panelStyle.Render(m.setup.View(m.session.Settings().DurationMinutes)) + "\n\n")
	case candle.PhaseFinished:
		b.WriteString(titleStyle.Render("All candles are out.") + "\n")
		b.WriteString(subtitleStyle.Render("The story is over. Press t to read the truths or y to copy them.") + "\n\n")
	default:
		b.WriteString(strings.Repeat(" ", candleLeft) + m.wax.ViewAs(m.session.Countdown().Fraction()) + "\n\n")
	}

	b.WriteString(statusStyle.Render(m.status) + "\n")
	if m.session.Phase().Started() {
		b.WriteString(m.help.View(m.keys))
	} else {
		b.WriteString(m.help.View(staticHelp{
			hint("tab", "next field"),
			hint("enter", "apply/toggle/start"),
			hint("esc", "quit"),
		}))
	}
	return b.String()
}

func (m ConsoleUI) renderSubtitle() string {
	s := m.session
	switch s.Phase() {
	case candle.PhaseNotStarted:
		return subtitleStyle.Render(fmt.Sprintf("%d candles, %d min each, %d players",
			candleCount, s.Settings().DurationMinutes, m.roster.Count()))
	case candle.PhaseFinished:
		return subtitleStyle.Render("Darkness.")
	case candle.PhasePaused:
		return pausedStyle.Render(fmt.Sprintf("Scene %d - paused at %s", s.ActiveIndex()+1, s.Countdown()))
	case candle.PhaseAwaitingTruths:
		return subtitleStyle.Render(fmt.Sprintf("Scene %d - %s", s.ActiveIndex()+1, labelize(string(s.Phase()))))
	default:
		return subtitleStyle.Render(fmt.Sprintf("Scene %d - %s left", s.ActiveIndex()+1, s.Countdown()))
	}
}

// renderCandles draws candle 0 on the left and candle 9 on the right.
func (m ConsoleUI) renderCandles() string {
	cols := make([]string, candleCount)
	for c := range cols {
		cols[c] = m.renderCandle(c)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	pad := strings.Repeat(" ", candleLeft)
	return pad + strings.ReplaceAll(row, "\n", "\n"+pad)
}

func (m ConsoleUI) renderCandle(c int) string {
	s := m.session
	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	out := s.Cause(c) != candle.CauseNone

	var flame string
	switch {
	case out:
		flame = spentStyle.Render("~")
	case !s.Phase().Started():
		flame = waxStyle.Render("|")
	case s.IsActive(c) && s.Melting():
		flame = flameStyle.Render("(^)")
	default:
		flame = flameStyle.Render("^")
	}

	total := s.Settings().DurationMinutes * 60
	filled := waxHeight
	if total > 0 {
		filled = (s.Remaining(c)*waxHeight + total - 1) / total
	}

	lines := []string{cell.Render(flame)}
	for row := 0; row < waxHeight; row++ {
		switch {
		case waxHeight-row <= filled:
			lines = append(lines, cell.Render(waxStyle.Render("███")))
		case out && row == waxHeight-1:
			lines = append(lines, cell.Render(spentStyle.Render("▁▁▁")))
		default:
			lines = append(lines, cell.Render(""))
		}
	}

	label := fmt.Sprintf(" %d ", c+1)
	if s.IsActive(c) {
		label = activeLabelStyle.Render(label)
	} else {
		label = labelStyle.Render(label)
	}
	lines = append(lines, cell.Render(label))

	remaining := candle.FormatSeconds(s.Remaining(c))
	if out {
		if s.Cause(c) == candle.CauseSnuffed {
			remaining = spentStyle.Render("snuffed")
		} else {
			remaining = spentStyle.Render("burned")
		}
	}
	lines = append(lines, cell.Render(remaining))

	return strings.Join(lines, "\n")
}

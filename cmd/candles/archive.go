package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/ten-candles/pkg/candle"
)

// archiveView shows the recorded truths one scene at a time, "Scene 10"
// first. It only reads from the session.
type archiveView struct {
	tab      int
	viewport viewport.Model
}

func newArchiveView(width, height int) archiveView {
	vp := viewport.New(width, height)
	vp.MouseWheelEnabled = true
	return archiveView{viewport: vp}
}

func (a *archiveView) resize(width, height int) {
	a.viewport.Width = width
	a.viewport.Height = height
}

// refresh loads the selected scene into the viewport.
func (a *archiveView) refresh(s candle.Session) {
	scenes := s.Archive()
	a.tab = clamp(a.tab, 0, len(scenes)-1)
	a.viewport.SetContent(candle.RenderTruths(scenes[a.tab], max(a.viewport.Width-2, 20)))
	a.viewport.GotoTop()
}

func (a archiveView) Update(msg tea.Msg, s candle.Session) (archiveView, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "left", "h", "shift+tab":
			a.tab--
			a.refresh(s)
			return a, nil
		case "right", "l", "tab":
			a.tab++
			a.refresh(s)
			return a, nil
		}
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a archiveView) View(s candle.Session) string {
	var tabs []string
	for i, sc := range s.Archive() {
		if i == a.tab {
			tabs = append(tabs, activeTabStyle.Render(sc.Label()))
		} else {
			tabs = append(tabs, tabStyle.Render(sc.Label()))
		}
	}

	var b strings.Builder
	b.WriteString(modalTitleStyle.Render("Truths") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")
	b.WriteString(a.viewport.View() + "\n\n")
	b.WriteString(promptStyle.Render("←/→ scene - y copy all - t/esc close"))
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

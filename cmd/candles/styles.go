package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // candle yellow
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	flameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")). // orange
			Bold(true)

	waxStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")) // ivory

	spentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	activeLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("214")).
				Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	fixedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	focusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	usedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	inUseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Align(lipgloss.Center)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("62")).
			Bold(true).
			Padding(0, 1)
)

var titleCaser = cases.Title(language.English)

// labelize turns identifiers like "awaiting_truths" or "in use" into
// "Awaiting Truths" and "In Use".
func labelize(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

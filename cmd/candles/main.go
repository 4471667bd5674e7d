package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/ten-candles/internal/config"
	"github.com/jwebster45206/ten-candles/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	out, err := logger.Output(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = out.Close() // Ignore error in defer
	}()

	log := logger.Setup(cfg, out)
	ui := NewConsoleUI(cfg, log)
	log.Info("console starting",
		"session_id", ui.session.ID().String(),
		"candle_minutes", cfg.CandleMinutes,
		"players", cfg.Players)

	var opts []tea.ProgramOption
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen(), tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(ui, opts...)
	if _, err := p.Run(); err != nil {
		log.Error("console stopped", "error", err)
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Info("console stopped")
}

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/jwebster45206/ten-candles/pkg/candle"
	"github.com/jwebster45206/ten-candles/pkg/roster"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"   envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`

	// Session defaults. Everything here can still be changed on the setup screen.
	CandleMinutes int    `env:"CANDLE_MINUTES" envDefault:"1"`
	FirstTruth    string `env:"FIRST_TRUTH"`
	LastTruth     string `env:"LAST_TRUTH"`
	Players       int    `env:"PLAYERS"        envDefault:"4"`

	// Click-to-snuff needs the alt screen: inline rendering offsets mouse rows.
	AltScreen bool `env:"ALT_SCREEN" envDefault:"true"`
}

// Load reads the configuration from the environment and clamps session
// defaults into range.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.CandleMinutes < 1 {
		cfg.CandleMinutes = candle.DefaultMinutes
	}
	if cfg.CandleMinutes > candle.MaxMinutes {
		cfg.CandleMinutes = candle.MaxMinutes
	}
	if cfg.Players < 1 {
		cfg.Players = 1
	}
	if cfg.Players > roster.MaxPlayers {
		cfg.Players = roster.MaxPlayers
	}
	return &cfg, nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	return parseLogLevel(c.LogLevel)
}

// SessionSettings returns the starting settings for a new session. Override
// texts are prefilled but start disabled.
func (c *Config) SessionSettings() candle.Settings {
	return candle.Settings{
		DurationMinutes: c.CandleMinutes,
		First:           candle.Override{Text: c.FirstTruth},
		Last:            candle.Override{Text: c.LastTruth},
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

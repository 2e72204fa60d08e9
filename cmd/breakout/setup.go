package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/highscore"
	"github.com/vovakirdan/breakout/internal/storage"
)

// gdataAppName names the save-data directory of the gdata backend.
const gdataAppName = "breakout"

// loadGameConfig loads the YAML config and applies the command-line overrides.
func loadGameConfig() (config.BreakoutConfig, error) {
	cfg, err := config.LoadBreakout(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.Window.FPS = flagFPS
	}
	if flagBackend != "" {
		cfg.Scores.Backend = flagBackend
	}
	if flagScores != "" {
		cfg.Scores.Path = flagScores
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// openStore opens the configured high-score backend. The returned close
// function is never nil.
func openStore(cfg config.BreakoutConfig, logger *log.Logger) (highscore.Store, func() error, error) {
	noop := func() error { return nil }
	limit := cfg.Scores.Limit

	switch cfg.Scores.Backend {
	case config.BackendSQLite:
		store, err := storage.Open(cfg.ScoresPath(), limit)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil

	case config.BackendGdata:
		store, err := highscore.OpenGdata(gdataAppName, limit, logger)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil

	default:
		path := cfg.ScoresPath()
		if path == "" {
			return nil, noop, fmt.Errorf("cannot resolve high-score path: set --scores")
		}
		return highscore.NewFileStore(path, limit, logger), noop, nil
	}
}

// newLogger creates a logger at the --log-level level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens the --log-file target for appending, creating its
// directory if needed.
func openLogFile() (*os.File, error) {
	path := flagLogFile
	if path == "" {
		path = config.UserPath("breakout.log")
	}
	if path == "" {
		return nil, fmt.Errorf("cannot resolve log file path: set --log-file")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

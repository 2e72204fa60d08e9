package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/highscore"
	"github.com/vovakirdan/breakout/internal/storage"
)

// resetFlags restores the global flags after a test changes them.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		flagConfig, flagDifficulty, flagBackend, flagScores = "", "", "", ""
		flagLogFile, flagLogLevel = "", "info"
		flagFPS, flagSeed = 0, 0
	})
}

func TestLoadGameConfigOverrides(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()

	flagConfig = filepath.Join(dir, "breakout.yaml")
	if err := os.WriteFile(flagConfig, config.DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}
	flagDifficulty = "hard"
	flagFPS = 60
	flagBackend = config.BackendSQLite
	flagScores = filepath.Join(dir, "scores.db")

	cfg, err := loadGameConfig()
	if err != nil {
		t.Fatalf("loadGameConfig() error = %v", err)
	}
	if cfg.Window.FPS != 60 {
		t.Errorf("FPS = %d, want 60", cfg.Window.FPS)
	}
	if cfg.Gameplay.Lives != 2 {
		t.Errorf("Lives = %d, want hard preset 2", cfg.Gameplay.Lives)
	}
	if cfg.Scores.Backend != config.BackendSQLite || cfg.ScoresPath() != flagScores {
		t.Errorf("Scores = %+v, want sqlite at %s", cfg.Scores, flagScores)
	}
}

func TestLoadGameConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		set  func()
	}{
		{"unknown difficulty", func() { flagDifficulty = "insane" }},
		{"unknown backend", func() { flagBackend = "redis" }},
		{"missing config file", func() { flagConfig = "/nonexistent/breakout.yaml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(t)
			tt.set()
			if _, err := loadGameConfig(); err == nil {
				t.Error("loadGameConfig() should fail")
			}
		})
	}
}

func TestOpenStoreBackends(t *testing.T) {
	dir := t.TempDir()
	logger := log.New(io.Discard)

	tests := []struct {
		backend string
		path    string
		check   func(t *testing.T, s highscore.Store)
	}{
		{
			backend: config.BackendFile,
			path:    filepath.Join(dir, "high_scores.txt"),
			check: func(t *testing.T, s highscore.Store) {
				if _, ok := s.(*highscore.FileStore); !ok {
					t.Errorf("store = %T, want *highscore.FileStore", s)
				}
			},
		},
		{
			backend: config.BackendSQLite,
			path:    filepath.Join(dir, "scores.db"),
			check: func(t *testing.T, s highscore.Store) {
				if _, ok := s.(*storage.Store); !ok {
					t.Errorf("store = %T, want *storage.Store", s)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.DefaultBreakoutConfig()
			cfg.Scores.Backend = tt.backend
			cfg.Scores.Path = tt.path

			store, closeStore, err := openStore(cfg, logger)
			if err != nil {
				t.Fatalf("openStore() error = %v", err)
			}
			defer closeStore()
			tt.check(t, store)

			if err := store.Record(highscore.Entry{Score: 100, Initials: "AAA"}); err != nil {
				t.Fatalf("Record() error = %v", err)
			}
			entries, err := store.Load()
			if err != nil || len(entries) != 1 {
				t.Errorf("Load() = %v, %v", entries, err)
			}
		})
	}
}

func TestNewLoggerLevel(t *testing.T) {
	resetFlags(t)

	flagLogLevel = "warn"
	var buf bytes.Buffer
	logger, err := newLogger(&buf, "test")
	if err != nil {
		t.Fatalf("newLogger() error = %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("log output = %q", buf.String())
	}

	flagLogLevel = "loud"
	if _, err := newLogger(&buf, "test"); err == nil {
		t.Error("newLogger() should reject an unknown level")
	}
}

func TestOpenLogFile(t *testing.T) {
	resetFlags(t)
	flagLogFile = filepath.Join(t.TempDir(), "logs", "breakout.log")

	f, err := openLogFile()
	if err != nil {
		t.Fatalf("openLogFile() error = %v", err)
	}
	defer f.Close()

	if _, err := os.Stat(flagLogFile); err != nil {
		t.Errorf("log file not created: %v", err)
	}
}

func TestConfigCommandPrintsDefault(t *testing.T) {
	var out bytes.Buffer
	configCmd.SetOut(&out)
	defer configCmd.SetOut(nil)

	if err := configCmd.RunE(configCmd, nil); err != nil {
		t.Fatalf("config command error = %v", err)
	}
	if !bytes.Equal(out.Bytes(), config.DefaultYAML()) {
		t.Error("config command output differs from the embedded default")
	}
}

func TestScoresCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	flagBackend = config.BackendFile
	flagScores = filepath.Join(dir, "high_scores.txt")

	if err := os.WriteFile(flagScores, []byte("200 CCC\n100 AAA\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	scoresCmd.SetOut(&out)
	defer scoresCmd.SetOut(nil)

	if err := runScores(scoresCmd, nil); err != nil {
		t.Fatalf("runScores() error = %v", err)
	}
	want := "1. CCC: 200"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output %q missing %q", out.String(), want)
	}
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakout/internal/audio"
	"github.com/vovakirdan/breakout/internal/core"
	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Left/Right  - Move the paddle
  Space       - Start / play again
  A-Z         - Type your initials after the game
  Enter       - Save initials
  Backspace   - Delete a letter
  Esc/Ctrl+C  - Quit
  Ctrl+S      - Save a screenshot

Logs are written to ~/.breakout/breakout.log (see --log-file).

Examples:
  breakout play
  breakout play --difficulty easy
  breakout play --seed 42 --fps 60`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "breakout")
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	sound, closeSound := audio.Open(cfg.Audio, logger)
	defer closeSound()

	session, err := breakout.New(cfg, sound, store)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Window.FPS,
		Seed:     flagSeed,
	}

	logger.Info("starting terminal game", "backend", cfg.Scores.Backend, "size", []int{width, height})
	return tui.Run(session, cfg, runtime, logger)
}

package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakout/internal/audio"
	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/platform/gui"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a 600x500 window and play with the keyboard.

Controls are the same as in the terminal. Closing the window quits.

Examples:
  breakout window
  breakout window --difficulty hard --backend gdata`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr, "breakout")
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

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("opening window", "fps", cfg.Window.FPS, "seed", seed)
	return gui.Run(session, cfg, seed, logger)
}

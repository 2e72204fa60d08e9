package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakout/internal/games/breakout"
	"github.com/vovakirdan/breakout/internal/platform/tui"
	"github.com/vovakirdan/breakout/internal/storage"
)

var (
	flagBrowse bool
	flagReset  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score table",
	Long: `Display the top 10 high scores.

Examples:
  breakout scores
  breakout scores --browse
  breakout scores --backend sqlite
  breakout scores --reset`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Browse scores in an interactive table")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete all high scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
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

	out := cmd.OutOrStdout()

	if flagReset {
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Fprintln(out, "High scores cleared.")
		return nil
	}

	if flagBrowse {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.Load()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, breakout.ScoresTitle)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'breakout' to set the first high score!")
		return nil
	}

	for i, entry := range scores {
		fmt.Fprintf(out, "  %s\n", breakout.FormatTableRow(i+1, entry.Initials, entry.Score))
	}

	// The database also keeps every finished game
	if db, ok := store.(*storage.Store); ok {
		stats, err := db.Stats()
		if err == nil && stats.GamesCount > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Games played: %d  Average: %.0f  Last played: %s\n",
				stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
		}
	}
	return nil
}

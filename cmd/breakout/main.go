// breakout is a brick-breaking game for the terminal, a desktop window or
// an SSH server.
//
// Usage:
//
//	breakout                 - Play in the terminal
//	breakout play            - Play in the terminal
//	breakout window          - Play in a desktop window
//	breakout serve           - Start SSH server for remote play
//	breakout scores          - Show the high-score table
//	breakout config          - Print the default configuration
//
// Global flags:
//
//	--config <path>       - Game config YAML (default: search, then built-in)
//	--difficulty <name>   - easy, normal or hard
//	--fps <rate>          - Override the frame rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--backend <name>      - High-score backend: file, sqlite or gdata
//	--scores <path>       - High-score file or database path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagBackend    string
	flagScores     string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "breakout",
	Short: "Breakout - Bounce a ball, break the blocks",
	Long: `Breakout is the classic brick-breaking game. Move the paddle, keep
the ball in play and clear every block across three levels.

Available commands:
  play     - Play in the terminal (default)
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View or reset high scores
  config   - Print the default configuration

Examples:
  breakout
  breakout window --difficulty hard
  breakout serve --ssh :2222
  breakout scores --browse`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "High-score backend: file, sqlite, gdata (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagScores, "scores", "", "High-score file or database path (default under ~/.breakout)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for terminal play (default ~/.breakout/breakout.log)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

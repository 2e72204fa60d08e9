package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML.

Save it to ~/.breakout/configs/breakout.yaml or ./configs/breakout.yaml
and edit it to change the field, speeds, palette or levels.

Examples:
  breakout config > ~/.breakout/configs/breakout.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}

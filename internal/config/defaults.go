package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Window: WindowConfig{
			Width:  600,
			Height: 500,
			FPS:    30,
			Title:  "Breakout",
		},
		Paddle: PaddleConfig{
			Width:   100,
			Height:  5,
			Speed:   10,
			OffsetY: 50,
			Color:   "white",
		},
		Ball: BallConfig{
			Radius:  7,
			Speed:   5,
			OffsetY: 150,
			Nudge:   2,
			Color:   "white",
		},
		Blocks: BlocksConfig{
			Width:       40,
			Height:      15,
			GapX:        20,
			GapY:        20,
			FieldHeight: 250,
			Palette: []PaletteConfig{
				{Color: "white", Points: 10},
				{Color: "green", Points: 5},
				{Color: "red", Points: 15},
				{Color: "blue", Points: 20},
				{Color: "yellow", Points: 25},
			},
		},
		Levels: []LevelConfig{{}, {BallSpeed: 7}, {BallSpeed: 7}},
		Gameplay: GameplayConfig{
			Lives:       3,
			InitialsMax: 3,
		},
		Audio: AudioConfig{
			Enabled:   true,
			Volume:    0.5,
			SoundsDir: "sounds",
		},
		Scores: ScoresConfig{
			Backend: BackendFile,
			Limit:   10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for Breakout.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/breakout/internal/core"
)

// BreakoutConfig contains all configuration for the game.
type BreakoutConfig struct {
	Window   WindowConfig   `yaml:"window"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Ball     BallConfig     `yaml:"ball"`
	Blocks   BlocksConfig   `yaml:"blocks"`
	Levels   []LevelConfig  `yaml:"levels"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Audio    AudioConfig    `yaml:"audio"`
	Scores   ScoresConfig   `yaml:"scores"`
}

// WindowConfig defines the logical play field and frame rate.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

// PaddleConfig defines the player paddle.
type PaddleConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Speed   float64 `yaml:"speed"`
	OffsetY float64 `yaml:"offset_y"` // Distance from the bottom edge to the paddle top
	Color   string  `yaml:"color"`
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius  float64 `yaml:"radius"`
	Speed   float64 `yaml:"speed"`
	OffsetY float64 `yaml:"offset_y"` // Distance from the bottom edge to the spawn point
	Nudge   float64 `yaml:"nudge"`    // Inward push after a side-wall bounce
	Color   string  `yaml:"color"`
}

// BlocksConfig defines the block grid generator.
type BlocksConfig struct {
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	GapX        float64         `yaml:"gap_x"`
	GapY        float64         `yaml:"gap_y"`
	FieldHeight float64         `yaml:"field_height"` // Rows are generated while y < FieldHeight
	Palette     []PaletteConfig `yaml:"palette"`
}

// PaletteConfig pairs a block color with its point value.
type PaletteConfig struct {
	Color  string `yaml:"color"`
	Points int    `yaml:"points"`
}

// LevelConfig holds per-level overrides. Zero fields inherit the base values.
type LevelConfig struct {
	BallSpeed   float64 `yaml:"ball_speed"`
	PaddleSpeed float64 `yaml:"paddle_speed"`
	FieldHeight float64 `yaml:"field_height"`
}

// GameplayConfig defines session rules.
type GameplayConfig struct {
	Lives       int `yaml:"lives"`
	InitialsMax int `yaml:"initials_max"`
}

// AudioConfig defines the sound subsystem.
type AudioConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Volume    float64 `yaml:"volume"`     // 0.0 to 1.0
	SoundsDir string  `yaml:"sounds_dir"` // Directory searched for WAV overrides
}

// ScoresConfig selects the high-score backend.
type ScoresConfig struct {
	Backend string `yaml:"backend"` // "file", "sqlite" or "gdata"
	Path    string `yaml:"path"`    // Empty means the default under ~/.breakout
	Limit   int    `yaml:"limit"`
}

// Score backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendGdata  = "gdata"
)

// LevelCount returns the number of configured levels.
func (c BreakoutConfig) LevelCount() int {
	return len(c.Levels)
}

// Level returns the effective parameters for a 1-based level number.
// Levels past the end reuse the last entry.
func (c BreakoutConfig) Level(n int) LevelConfig {
	lv := LevelConfig{}
	if len(c.Levels) > 0 {
		lv = c.Levels[core.Clamp(n-1, 0, len(c.Levels)-1)]
	}
	if lv.BallSpeed == 0 {
		lv.BallSpeed = c.Ball.Speed
	}
	if lv.PaddleSpeed == 0 {
		lv.PaddleSpeed = c.Paddle.Speed
	}
	if lv.FieldHeight == 0 {
		lv.FieldHeight = c.Blocks.FieldHeight
	}
	return lv
}

// Validate rejects configurations the game cannot run with.
func (c BreakoutConfig) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.FPS <= 0 {
		errs = append(errs, fmt.Errorf("window: fps must be positive, got %d", c.Window.FPS))
	}
	if c.Paddle.Width <= 0 || c.Paddle.Height <= 0 {
		errs = append(errs, errors.New("paddle: size must be positive"))
	}
	if float64(c.Window.Width) < c.Paddle.Width {
		errs = append(errs, errors.New("paddle: wider than the window"))
	}
	if c.Ball.Radius <= 0 {
		errs = append(errs, errors.New("ball: radius must be positive"))
	}
	if c.Ball.Speed <= 0 {
		errs = append(errs, errors.New("ball: speed must be positive"))
	}
	if c.Blocks.Width <= 0 || c.Blocks.Height <= 0 {
		errs = append(errs, errors.New("blocks: size must be positive"))
	}
	if c.Blocks.GapX < 0 || c.Blocks.GapY < 0 {
		errs = append(errs, fmt.Errorf("blocks: gaps must not be negative, got %v, %v", c.Blocks.GapX, c.Blocks.GapY))
	}
	if c.Blocks.FieldHeight <= 0 {
		errs = append(errs, fmt.Errorf("blocks: field_height must be positive, got %v", c.Blocks.FieldHeight))
	}
	if len(c.Blocks.Palette) == 0 {
		errs = append(errs, errors.New("blocks: palette is empty"))
	}
	for i, p := range c.Blocks.Palette {
		if _, err := core.ParseColor(p.Color); err != nil {
			errs = append(errs, fmt.Errorf("blocks: palette[%d]: %w", i, err))
		}
	}
	for _, name := range []string{c.Paddle.Color, c.Ball.Color} {
		if _, err := core.ParseColor(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels: at least one level is required"))
	}
	for i, lv := range c.Levels {
		if lv.BallSpeed < 0 || lv.PaddleSpeed < 0 || lv.FieldHeight < 0 {
			errs = append(errs, fmt.Errorf("levels[%d]: speeds and field_height must not be negative", i))
		}
	}
	if c.Gameplay.Lives <= 0 {
		errs = append(errs, fmt.Errorf("gameplay: lives must be positive, got %d", c.Gameplay.Lives))
	}
	if c.Gameplay.InitialsMax < 1 || c.Gameplay.InitialsMax > 3 {
		errs = append(errs, fmt.Errorf("gameplay: initials_max must be 1..3, got %d", c.Gameplay.InitialsMax))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio: volume must be 0..1, got %v", c.Audio.Volume))
	}
	switch c.Scores.Backend {
	case BackendFile, BackendSQLite, BackendGdata:
	default:
		errs = append(errs, fmt.Errorf("scores: unknown backend %q", c.Scores.Backend))
	}
	if c.Scores.Limit <= 0 {
		errs = append(errs, fmt.Errorf("scores: limit must be positive, got %d", c.Scores.Limit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

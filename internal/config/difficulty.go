package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name from the command line.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	case "":
		return DifficultyNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched. Per-level ball speed
// overrides are scaled by the same factor as the base speed.
func ApplyPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 130
		setBallSpeed(cfg, 4)
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 70
		setBallSpeed(cfg, 7)
	}
}

func setBallSpeed(cfg *BreakoutConfig, speed float64) {
	if cfg.Ball.Speed > 0 {
		factor := speed / cfg.Ball.Speed
		levels := make([]LevelConfig, len(cfg.Levels))
		for i, lv := range cfg.Levels {
			lv.BallSpeed *= factor
			levels[i] = lv
		}
		cfg.Levels = levels
	}
	cfg.Ball.Speed = speed
}

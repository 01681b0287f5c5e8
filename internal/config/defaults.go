package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the default Snake configuration.
// It mirrors defaults/snake.yaml and is used if the embedded file cannot be parsed.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: SnakeBoard{
			Width:  20,
			Height: 18,
		},
		Rules: SnakeRules{
			BuffDurationTicks:        40,
			ChoiceDurationMultiplier: 2,
			ChoiceCount:              3,
			MinimumLength:            3,
			HalveRichPickup:          true,
			PauseOnChoice:            true,
		},
		PowerUps: SnakePowerUps{
			SpawnPercent: 14,
			Weights:      defaultWeights(),
		},
		Pacing: SnakePacing{
			MoveEveryTicks:    8,
			MinMoveEveryTicks: 3,
			SlowFactor:        2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 120,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

func defaultWeights() []BuffWeight {
	return []BuffWeight{
		{Buff: "ghost", Weight: 3},
		{Buff: "slow", Weight: 3},
		{Buff: "magnet", Weight: 3},
		{Buff: "shield", Weight: 3},
		{Buff: "portal", Weight: 2},
		{Buff: "double", Weight: 3},
		{Buff: "rich", Weight: 1},
		{Buff: "laser", Weight: 2},
		{Buff: "mini", Weight: 2},
	}
}

// devWeights flattens the table so every buff shows up regularly.
func devWeights() []BuffWeight {
	return []BuffWeight{
		{Buff: "ghost", Weight: 2},
		{Buff: "slow", Weight: 2},
		{Buff: "magnet", Weight: 2},
		{Buff: "shield", Weight: 2},
		{Buff: "portal", Weight: 2},
		{Buff: "double", Weight: 2},
		{Buff: "rich", Weight: 2},
		{Buff: "laser", Weight: 2},
		{Buff: "mini", Weight: 2},
	}
}

// ApplySnakeProfile switches the power-up table for the given profile.
func ApplySnakeProfile(cfg *SnakeConfig, profile Profile) {
	if profile != ProfileDev {
		return
	}
	cfg.PowerUps.SpawnPercent = MaxSpawnPercent
	cfg.PowerUps.Weights = devWeights()
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "snake", "snake_dev":
		return defaultSnakeYAML
	default:
		return nil
	}
}

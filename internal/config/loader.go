package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSnake loads Snake configuration for the given profile.
// Search order: customPath -> ~/.snake-rogue/configs/snake.yaml -> ./configs/snake.yaml -> embedded default.
// The profile is applied on top of the file, then environment overrides, then normalization.
func LoadSnake(customPath string, profile Profile) (SnakeConfig, error) {
	cfg, err := readSnakeYAML(customPath)
	if err != nil {
		return cfg, err
	}

	ApplySnakeProfile(&cfg, profile)

	if err := ParseEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}

	NormalizeSnake(&cfg)
	return cfg, nil
}

func readSnakeYAML(customPath string) (SnakeConfig, error) {
	var cfg SnakeConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snake.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// AppDir is the per-user data directory under $HOME.
const AppDir = ".snake-rogue"

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// NormalizeSnake fills missing values from the defaults and clamps ranges.
// Partial user files therefore only need the keys they change.
func NormalizeSnake(cfg *SnakeConfig) {
	def := DefaultSnakeConfig()

	if cfg.Board.Width < 5 {
		cfg.Board.Width = def.Board.Width
	}
	if cfg.Board.Height < 5 {
		cfg.Board.Height = def.Board.Height
	}
	if cfg.Rules.BuffDurationTicks <= 0 {
		cfg.Rules.BuffDurationTicks = def.Rules.BuffDurationTicks
	}
	if cfg.Rules.ChoiceDurationMultiplier <= 0 {
		cfg.Rules.ChoiceDurationMultiplier = def.Rules.ChoiceDurationMultiplier
	}
	if cfg.Rules.ChoiceCount <= 0 {
		cfg.Rules.ChoiceCount = def.Rules.ChoiceCount
	}
	if cfg.Rules.MinimumLength < 1 {
		cfg.Rules.MinimumLength = def.Rules.MinimumLength
	}
	if len(cfg.PowerUps.Weights) == 0 {
		cfg.PowerUps.Weights = defaultWeights()
	}
	cfg.PowerUps.SpawnPercent = clampInt(cfg.PowerUps.SpawnPercent, MinSpawnPercent, MaxSpawnPercent)

	if cfg.Pacing.MoveEveryTicks <= 0 {
		cfg.Pacing.MoveEveryTicks = def.Pacing.MoveEveryTicks
	}
	if cfg.Pacing.MinMoveEveryTicks <= 0 {
		cfg.Pacing.MinMoveEveryTicks = def.Pacing.MinMoveEveryTicks
	}
	if cfg.Pacing.MinMoveEveryTicks > cfg.Pacing.MoveEveryTicks {
		cfg.Pacing.MinMoveEveryTicks = cfg.Pacing.MoveEveryTicks
	}
	if cfg.Pacing.SlowFactor < 1 {
		cfg.Pacing.SlowFactor = def.Pacing.SlowFactor
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Rules.BuffDurationTicks += cfg.Rules.BuffDurationTicks / 2
		cfg.Pacing.MoveEveryTicks++
	case DifficultyHard:
		cfg.Rules.BuffDurationTicks -= cfg.Rules.BuffDurationTicks / 4
		cfg.Pacing.MoveEveryTicks = max(cfg.Pacing.MinMoveEveryTicks, cfg.Pacing.MoveEveryTicks-2)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

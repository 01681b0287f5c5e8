package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolateHome points the user config lookup at an empty directory.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestLoadSnakeEmbeddedDefault(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadSnake("", ProfileDefault)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	def := DefaultSnakeConfig()
	if cfg.Board != def.Board {
		t.Errorf("Board = %+v, expected %+v", cfg.Board, def.Board)
	}
	if cfg.PowerUps.SpawnPercent != def.PowerUps.SpawnPercent {
		t.Errorf("SpawnPercent = %d, expected %d", cfg.PowerUps.SpawnPercent, def.PowerUps.SpawnPercent)
	}
	if len(cfg.PowerUps.Weights) != len(def.PowerUps.Weights) {
		t.Fatalf("Expected %d weights, got %d", len(def.PowerUps.Weights), len(cfg.PowerUps.Weights))
	}
	for i, w := range cfg.PowerUps.Weights {
		if w != def.PowerUps.Weights[i] {
			t.Errorf("Weight %d = %+v, expected %+v", i, w, def.PowerUps.Weights[i])
		}
	}
	if !cfg.Rules.PauseOnChoice || !cfg.Rules.HalveRichPickup {
		t.Error("Embedded defaults should pause on choice and halve rich pickups")
	}
}

func TestLoadSnakeCustomPartialFile(t *testing.T) {
	isolateHome(t)

	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("board:\n  width: 30\n  height: 12\npowerups:\n  spawn_percent: 20\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadSnake(path, ProfileDefault)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	if cfg.Board.Width != 30 || cfg.Board.Height != 12 {
		t.Errorf("Board = %+v, expected 30x12", cfg.Board)
	}
	if cfg.PowerUps.SpawnPercent != 20 {
		t.Errorf("SpawnPercent = %d, expected 20", cfg.PowerUps.SpawnPercent)
	}
	// Missing keys come from defaults
	if cfg.Rules.BuffDurationTicks != DefaultSnakeConfig().Rules.BuffDurationTicks {
		t.Errorf("BuffDurationTicks = %d, expected default", cfg.Rules.BuffDurationTicks)
	}
	if len(cfg.PowerUps.Weights) == 0 {
		t.Error("Weights should fall back to the default table")
	}
}

func TestLoadSnakeMissingCustomFile(t *testing.T) {
	_, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml"), ProfileDefault)
	if err == nil {
		t.Error("Expected error for missing custom config")
	}
}

func TestLoadSnakeEnvOverride(t *testing.T) {
	isolateHome(t)

	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"within range", "18", 18},
		{"above range clamps", "99", MaxSpawnPercent},
		{"below range clamps", "2", MinSpawnPercent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("SNAKE_POWERUP_SPAWN_PERCENT", tc.value)

			cfg, err := LoadSnake("", ProfileDefault)
			if err != nil {
				t.Fatalf("LoadSnake() failed: %v", err)
			}
			if cfg.PowerUps.SpawnPercent != tc.expected {
				t.Errorf("SpawnPercent = %d, expected %d", cfg.PowerUps.SpawnPercent, tc.expected)
			}
		})
	}
}

func TestLoadSnakeEnvInvalid(t *testing.T) {
	isolateHome(t)
	t.Setenv("SNAKE_BOARD_WIDTH", "wide")

	if _, err := LoadSnake("", ProfileDefault); err == nil {
		t.Error("Expected error for non-numeric SNAKE_BOARD_WIDTH")
	}
}

func TestDevProfile(t *testing.T) {
	isolateHome(t)

	cfg, err := LoadSnake("", ProfileDev)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}

	if cfg.PowerUps.SpawnPercent != MaxSpawnPercent {
		t.Errorf("Dev SpawnPercent = %d, expected %d", cfg.PowerUps.SpawnPercent, MaxSpawnPercent)
	}
	for _, w := range cfg.PowerUps.Weights {
		if w.Weight != 2 {
			t.Errorf("Dev weight for %s = %d, expected 2", w.Buff, w.Weight)
		}
	}
}

func TestApplySnakePreset(t *testing.T) {
	cfg := DefaultSnakeConfig()
	ApplySnakePreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("Fixed preset should disable progression")
	}

	cfg = DefaultSnakeConfig()
	ApplySnakePreset(&cfg, DifficultyHard)
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("Hard InitialLevel = %v, expected 0.7", cfg.Difficulty.InitialLevel)
	}
	if cfg.Pacing.MoveEveryTicks >= DefaultSnakeConfig().Pacing.MoveEveryTicks {
		t.Error("Hard preset should move faster")
	}

	cfg = DefaultSnakeConfig()
	ApplySnakePreset(&cfg, "")
	if cfg.Pacing != DefaultSnakeConfig().Pacing {
		t.Error("Empty preset should leave config untouched")
	}
}

package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{50, 0.6},
		{100, 1.0},
		{500, 1.0},
	}

	for _, tc := range tests {
		if got := dm.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 100},
	})
	if got := dm.Level(90, 0); got != 0.4 {
		t.Errorf("Level with progression disabled = %v, expected 0.4", got)
	}
}

func TestPacerMoveEveryTicks(t *testing.T) {
	cfg := DefaultSnakeConfig()
	p := NewPacer(cfg.Pacing, cfg.Difficulty)

	tests := []struct {
		name     string
		score    int
		slow     bool
		expected int
	}{
		{"start pace", 0, false, 8},
		{"start pace slowed", 0, true, 16},
		{"max difficulty clamps to minimum", 120, false, 3},
		{"max difficulty slowed", 120, true, 6},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.MoveEveryTicks(tc.score, 0, tc.slow); got != tc.expected {
				t.Errorf("MoveEveryTicks(%d, slow=%v) = %d, expected %d", tc.score, tc.slow, got, tc.expected)
			}
		})
	}
}

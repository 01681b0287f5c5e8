package config

import "math"

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the current speed multiplier based on difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Pacer turns the tick-interval hint reported by the simulation into a
// number of platform frames between two snake moves.
type Pacer struct {
	pacing     SnakePacing
	difficulty *DifficultyManager
}

// NewPacer creates a pacer for the given pacing and difficulty settings.
func NewPacer(pacing SnakePacing, difficulty DifficultyConfig) *Pacer {
	return &Pacer{
		pacing:     pacing,
		difficulty: NewDifficultyManager(difficulty),
	}
}

// MoveEveryTicks returns frames per move for the current score and move count.
// Slow mode stretches the interval by the configured factor.
func (p *Pacer) MoveEveryTicks(score, moves int, slow bool) int {
	speed := p.difficulty.Speed(1.0, score, moves)
	if speed <= 0 {
		speed = 1
	}
	frames := int(math.Round(float64(p.pacing.MoveEveryTicks) / speed))
	frames = max(p.pacing.MinMoveEveryTicks, frames)
	frames = max(1, frames)
	if slow {
		frames *= max(1, p.pacing.SlowFactor)
	}
	return frames
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

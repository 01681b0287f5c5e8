// Package config provides YAML-based game configuration loading and
// difficulty management for Snake Rogue.
package config

// SnakeConfig contains all tuning for the roguelike Snake game.
// Fields tagged with env can be overridden from the environment.
type SnakeConfig struct {
	Board      SnakeBoard       `yaml:"board"`
	Rules      SnakeRules       `yaml:"rules"`
	PowerUps   SnakePowerUps    `yaml:"powerups"`
	Pacing     SnakePacing      `yaml:"pacing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SnakeBoard defines the torus dimensions.
type SnakeBoard struct {
	Width  int `yaml:"width" env:"SNAKE_BOARD_WIDTH"`
	Height int `yaml:"height" env:"SNAKE_BOARD_HEIGHT"`
}

// SnakeRules defines buff and choice parameters for the simulation core.
type SnakeRules struct {
	BuffDurationTicks        int  `yaml:"buff_duration_ticks" env:"SNAKE_BUFF_DURATION_TICKS"`
	ChoiceDurationMultiplier int  `yaml:"choice_duration_multiplier"`
	ChoiceCount              int  `yaml:"choice_count"`
	MinimumLength            int  `yaml:"minimum_length"`
	HalveRichPickup          bool `yaml:"halve_rich_pickup"`
	PauseOnChoice            bool `yaml:"pause_on_choice"`
}

// SnakePowerUps defines power-up spawning.
type SnakePowerUps struct {
	SpawnPercent int          `yaml:"spawn_percent" env:"SNAKE_POWERUP_SPAWN_PERCENT"`
	Weights      []BuffWeight `yaml:"weights"`
}

// BuffWeight is one row of the weighted power-up table.
type BuffWeight struct {
	Buff   string `yaml:"buff"`
	Weight int    `yaml:"weight"`
}

// SnakePacing converts simulation ticks into platform frames.
type SnakePacing struct {
	MoveEveryTicks    int `yaml:"move_every_ticks" env:"SNAKE_MOVE_EVERY_TICKS"` // Frames per move at initial difficulty
	MinMoveEveryTicks int `yaml:"min_move_every_ticks"`                          // Fastest allowed pace
	SlowFactor        int `yaml:"slow_factor"`                                   // Frame multiplier while slow mode is active
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// Profile selects a tuning table. The dev profile makes power-ups frequent
// and the rare buff as likely as the others, which is handy when testing buffs.
type Profile string

const (
	ProfileDefault Profile = "default"
	ProfileDev     Profile = "dev"
)

// Power-up spawn rate bounds (percent per meal without a choice).
const (
	MinSpawnPercent = 10
	MaxSpawnPercent = 24
)

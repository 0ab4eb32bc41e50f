// Package config provides YAML-based game configuration loading and
// difficulty management for the flappy game and its leaderboard client.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all configuration for the game and its collaborators.
// Distances are world units (canvas pixels at 400x600); speeds are per tick.
type FlappyConfig struct {
	World       FlappyWorld       `yaml:"world"`
	Physics     FlappyPhysics     `yaml:"physics"`
	Obstacles   FlappyObstacles   `yaml:"obstacles"`
	Player      FlappyPlayer      `yaml:"player"`
	Idle        FlappyIdle        `yaml:"idle"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// FlappyWorld defines the playfield.
type FlappyWorld struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"` // bird bottom at or below this line is terminal
}

// FlappyPhysics defines physics parameters.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`      // added to velocity every tick
	JumpImpulse float64 `yaml:"jump_impulse"` // velocity after a flap (negative = up)
	BaseSpeed   float64 `yaml:"base_speed"`   // obstacle scroll per tick
}

// FlappyObstacles defines pipe geometry and the spawn/retire policy.
type FlappyObstacles struct {
	PipeWidth     float64 `yaml:"pipe_width"`
	PipeHeight    float64 `yaml:"pipe_height"`     // height of the top pipe segment
	BottomOffset  float64 `yaml:"bottom_offset"`   // bottom segment top = gap offset + this
	SpawnX        float64 `yaml:"spawn_x"`         // x of newly spawned pipes
	SpawnTriggerX float64 `yaml:"spawn_trigger_x"` // a pipe crossing this spawns the next one
	RetireX       float64 `yaml:"retire_x"`        // front pipe left of this is removed
	InitialX      float64 `yaml:"initial_x"`
	InitialGapY   float64 `yaml:"initial_gap_y"`
	MinGapY       int     `yaml:"min_gap_y"` // random gap offsets are drawn from [min, max]
	MaxGapY       int     `yaml:"max_gap_y"`
}

// FlappyPlayer defines the bird.
type FlappyPlayer struct {
	X      float64 `yaml:"x"`
	StartY float64 `yaml:"start_y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FlappyIdle defines the cosmetic bob shown before the first flap.
type FlappyIdle struct {
	Amplitude float64 `yaml:"amplitude"`
	PeriodMs  float64 `yaml:"period_ms"` // y = start + sin(ms/period) * amplitude
}

// LeaderboardConfig points the client at the remote leaderboard service.
type LeaderboardConfig struct {
	BaseURL    string        `yaml:"base_url"`
	SubmitPath string        `yaml:"submit_path"`
	ScoresPath string        `yaml:"scores_path"`
	Timeout    time.Duration `yaml:"timeout"`
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

// ParsePreset maps a CLI string to a preset. Unknown strings return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

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

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the geometry can produce a playable world.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.World.GroundY <= 0 || c.World.GroundY > c.World.Height:
		return fmt.Errorf("%w: ground_y must be within the world", ErrInvalidConfig)
	case c.Physics.BaseSpeed <= 0:
		return fmt.Errorf("%w: base_speed must be positive", ErrInvalidConfig)
	case c.Obstacles.PipeWidth <= 0 || c.Obstacles.PipeHeight <= 0:
		return fmt.Errorf("%w: pipe size must be positive", ErrInvalidConfig)
	case c.Obstacles.BottomOffset <= c.Obstacles.PipeHeight:
		return fmt.Errorf("%w: bottom_offset must leave a gap below the top pipe", ErrInvalidConfig)
	case c.Obstacles.MinGapY > c.Obstacles.MaxGapY:
		return fmt.Errorf("%w: min_gap_y exceeds max_gap_y", ErrInvalidConfig)
	case c.Obstacles.SpawnTriggerX >= c.Obstacles.SpawnX:
		return fmt.Errorf("%w: spawn_trigger_x must be left of spawn_x", ErrInvalidConfig)
	case c.Obstacles.RetireX >= c.Player.X:
		return fmt.Errorf("%w: retire_x must be left of the bird", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	}
	return nil
}

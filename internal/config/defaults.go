package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: FlappyWorld{
			Width:   400,
			Height:  600,
			GroundY: 500,
		},
		Physics: FlappyPhysics{
			Gravity:     0.4,
			JumpImpulse: -7,
			BaseSpeed:   2,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     60,
			PipeHeight:    300,
			BottomOffset:  420,
			SpawnX:        400,
			SpawnTriggerX: 200,
			RetireX:       -60,
			InitialX:      400,
			InitialGapY:   -150,
			MinGapY:       -200,
			MaxGapY:       -1,
		},
		Player: FlappyPlayer{
			X:      50,
			StartY: 200,
			Width:  34,
			Height: 24,
		},
		Idle: FlappyIdle{
			Amplitude: 10,
			PeriodMs:  300,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
		Leaderboard: LeaderboardConfig{
			BaseURL:    "http://127.0.0.1:8080",
			SubmitPath: "/submit",
			ScoresPath: "/scores",
			Timeout:    5 * time.Second,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML, as printed by `flappy config`.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}

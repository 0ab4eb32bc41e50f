package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// DefaultAutopilotMargin keeps the bird this far above the lower gap edge.
const DefaultAutopilotMargin = 8.0

// Autopilot is a deterministic bot that decides when to flap.
// It aims to keep the bird just above the lower edge of the next gap; a flap
// from there peaks well below the upper edge with the default physics.
type Autopilot struct {
	cfg    config.FlappyConfig
	Margin float64
}

// NewAutopilot creates a bot for worlds built with cfg.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{cfg: cfg, Margin: DefaultAutopilotMargin}
}

// Decide reports whether the bird should flap this tick.
func (a *Autopilot) Decide(s Snapshot) bool {
	switch s.Phase {
	case core.PhaseWaiting:
		return true
	case core.PhaseOver:
		return false
	}

	target := a.cfg.Player.StartY + a.cfg.Player.Height
	if o, ok := nextObstacle(s.Obstacles, a.cfg, s.BirdX); ok {
		target = o.GapBottom(a.cfg.Obstacles) - a.Margin
	}

	// Where the bottom edge ends up next tick if we do nothing
	next := s.BirdY + a.cfg.Player.Height + s.Velocity + a.cfg.Physics.Gravity
	return next >= target
}

// Input wraps Decide for drivers that feed a registry.Game.
func (a *Autopilot) Input(s Snapshot) core.InputFrame {
	if a.Decide(s) {
		return core.InputOf(core.ActionFlap)
	}
	return core.NewInputFrame()
}

func nextObstacle(obstacles []Obstacle, cfg config.FlappyConfig, birdX float64) (Obstacle, bool) {
	for _, o := range obstacles {
		if o.Right(cfg.Obstacles) >= birdX {
			return o, true
		}
	}
	return Obstacle{}, false
}

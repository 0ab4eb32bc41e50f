package flappy

import (
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Snapshot captures the complete world state for determinism testing,
// idempotence checks and drivers that render from a copy.
type Snapshot struct {
	Phase     core.Phase
	Tick      int
	IdleTick  int
	Score     int
	BirdX     float64
	BirdY     float64
	Velocity  float64
	Speed     float64
	Obstacles []Obstacle
}

// Snapshot returns a deep copy of the current world state.
func (w *World) Snapshot() Snapshot {
	return Snapshot{
		Phase:     w.phase,
		Tick:      w.tick,
		IdleTick:  w.idleTick,
		Score:     w.score,
		BirdX:     w.cfg.Player.X,
		BirdY:     w.birdY,
		Velocity:  w.velocity,
		Speed:     w.Speed(),
		Obstacles: w.Obstacles(),
	}
}

// Equal reports whether two snapshots describe the same state.
func (s Snapshot) Equal(o Snapshot) bool {
	return s.Phase == o.Phase &&
		s.Tick == o.Tick &&
		s.IdleTick == o.IdleTick &&
		s.Score == o.Score &&
		s.BirdX == o.BirdX &&
		s.BirdY == o.BirdY &&
		s.Velocity == o.Velocity &&
		s.Speed == o.Speed &&
		slices.Equal(s.Obstacles, o.Obstacles)
}

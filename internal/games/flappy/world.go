package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// World is the complete simulation state of one flappy session.
//
// A World is owned by exactly one driver and is not safe for concurrent use;
// callers that share it across goroutines must hold a lock around Step,
// Trigger and Reset.
type World struct {
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	tickRate   int

	birdY     float64
	velocity  float64
	score     int
	phase     core.Phase
	obstacles []Obstacle
	tick      int // Playing ticks since the first flap
	idleTick  int // Waiting ticks, drives the idle bob
}

// NewWorld creates a world in the Waiting phase.
// tickRate converts idle ticks to milliseconds for the bob animation.
func NewWorld(cfg config.FlappyConfig, seed int64, tickRate int) *World {
	if tickRate <= 0 {
		tickRate = 60
	}
	w := &World{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		tickRate:   tickRate,
		obstacles:  make([]Obstacle, 0, 4),
	}
	w.Reset(seed)
	return w
}

// Reset restores the initial state: bird at its start position with zero
// velocity, score 0, a single initial obstacle, phase Waiting.
// It may be called in any phase.
func (w *World) Reset(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
	w.birdY = w.cfg.Player.StartY
	w.velocity = 0
	w.score = 0
	w.phase = core.PhaseWaiting
	w.tick = 0
	w.idleTick = 0
	w.obstacles = append(w.obstacles[:0], Obstacle{
		X: w.cfg.Obstacles.InitialX,
		Y: w.cfg.Obstacles.InitialGapY,
	})
}

// Trigger applies the single player input. In Waiting it starts the game and
// returns true; while Playing it overwrites the velocity with the jump impulse;
// in Over it does nothing.
func (w *World) Trigger() (started bool) {
	switch w.phase {
	case core.PhaseWaiting:
		w.phase = core.PhasePlaying
		return true
	case core.PhasePlaying:
		w.velocity = w.cfg.Physics.JumpImpulse
	}
	return false
}

// Step advances the world by one tick.
func (w *World) Step() core.StepResult {
	switch w.phase {
	case core.PhaseWaiting:
		w.bob()
		return w.result(nil)
	case core.PhaseOver:
		return w.result(nil)
	}

	w.tick++
	var events []core.Event
	hit := false

	obs := w.cfg.Obstacles
	birdX := w.cfg.Player.X
	bird := w.birdBox()
	speed := w.Speed()

	// Only obstacles present at the start of the tick move; spawned ones
	// appear exactly at spawn_x.
	spawns := 0
	for i := range w.obstacles {
		o := &w.obstacles[i]
		prevX := o.X
		o.X -= speed

		if core.CrossedDown(prevX, o.X, obs.SpawnTriggerX) {
			spawns++
		}
		if core.CrossedDown(prevX+obs.PipeWidth, o.X+obs.PipeWidth, birdX) {
			w.score++
			events = append(events, core.Event{Kind: core.EventScored, Score: w.score})
		}
		if o.Collides(bird, obs) {
			hit = true
		}
	}
	for ; spawns > 0; spawns-- {
		w.spawn()
	}

	w.retire()

	w.velocity += w.cfg.Physics.Gravity
	w.birdY += w.velocity

	if w.birdY+w.cfg.Player.Height >= w.cfg.World.GroundY {
		hit = true
	}

	if hit {
		w.phase = core.PhaseOver
		events = append(events, core.Event{Kind: core.EventGameOver, Score: w.score})
	}

	return w.result(events)
}

// bob moves the bird along the idle oscillation. Not physics driven.
func (w *World) bob() {
	ms := float64(w.idleTick) * 1000 / float64(w.tickRate)
	period := w.cfg.Idle.PeriodMs
	if period <= 0 {
		period = 300
	}
	w.birdY = w.cfg.Player.StartY + math.Sin(ms/period)*w.cfg.Idle.Amplitude
	w.idleTick++
}

// spawn appends a new obstacle at spawn_x with a random gap offset.
func (w *World) spawn() {
	w.obstacles = append(w.obstacles, Obstacle{
		X: w.cfg.Obstacles.SpawnX,
		Y: w.randomGapY(),
	})
}

// randomGapY draws an integer-valued offset uniformly from [min_gap_y, max_gap_y].
func (w *World) randomGapY() float64 {
	lo, hi := w.cfg.Obstacles.MinGapY, w.cfg.Obstacles.MaxGapY
	return float64(lo + w.rng.Intn(hi-lo+1))
}

// retire drops the front obstacle once it has scrolled off the left edge.
// The queue is refilled immediately so it is never empty while playing.
func (w *World) retire() {
	if len(w.obstacles) > 0 && w.obstacles[0].X < w.cfg.Obstacles.RetireX {
		w.obstacles = append(w.obstacles[:0], w.obstacles[1:]...)
	}
	if len(w.obstacles) == 0 {
		w.spawn()
	}
}

func (w *World) birdBox() core.Box {
	p := w.cfg.Player
	return core.NewBox(p.X, w.birdY, p.Width, p.Height)
}

func (w *World) result(events []core.Event) core.StepResult {
	return core.StepResult{
		State:  core.GameState{Score: w.score, Phase: w.phase},
		Events: events,
	}
}

// Speed returns the current obstacle scroll speed.
func (w *World) Speed() float64 {
	return w.difficulty.Speed(w.cfg.Physics.BaseSpeed, w.score, w.tick)
}

// Phase returns the current lifecycle phase. Drivers poll it to decide
// whether to keep scheduling ticks.
func (w *World) Phase() core.Phase {
	return w.phase
}

// Score returns the current score.
func (w *World) Score() int {
	return w.score
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.FlappyConfig {
	return w.cfg
}

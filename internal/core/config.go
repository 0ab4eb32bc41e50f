package core

import "fmt"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Phase is the lifecycle stage of a game session.
// Transitions are Waiting -> Playing -> Over, and Reset returns to Waiting.
type Phase uint8

const (
	PhaseWaiting Phase = iota // before the first trigger
	PhasePlaying              // simulation running
	PhaseOver                 // terminal collision happened; frozen until reset
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// GameState is the externally observable status of a game.
type GameState struct {
	Score  int
	Phase  Phase
	Paused bool
}

// GameOver reports whether the game reached its terminal phase.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseOver
}

// EventKind identifies a side-channel signal emitted by a tick.
type EventKind uint8

const (
	EventStarted  EventKind = iota + 1 // Waiting -> Playing
	EventScored                        // score incremented
	EventGameOver                      // Playing -> Over
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventScored:
		return "scored"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is a signal produced during a tick. Score is the score after the event.
type Event struct {
	Kind  EventKind
	Score int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result carries an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in scrolling pipes.
//
// World holds the pure simulation; Game adapts it to the registry.Game
// interface so any frame driver (terminal, SSH, window, headless) can run it.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Mode is a registered flavor of the game.
type Mode struct {
	ID          string
	Title       string
	Description string
	Progressive bool // scroll speed grows with score
}

var (
	// ModeClassic plays with the fixed arcade constants.
	ModeClassic = Mode{
		ID:          "classic",
		Title:       "Flappy Classic",
		Description: "Fixed speed, the classic rules",
	}
	// ModeRush speeds the pipes up as the score grows.
	ModeRush = Mode{
		ID:          "rush",
		Title:       "Flappy Rush",
		Description: "Pipes speed up as your score grows",
		Progressive: true,
	}
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset used by progressive modes.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts a World to the registry.Game interface and adds pause and rendering.
type Game struct {
	mode    Mode
	runtime core.RuntimeConfig
	cfg     config.FlappyConfig
	world   *World
	paused  bool
}

// New creates a classic-mode game instance.
func New() *Game {
	return NewWithMode(ModeClassic)
}

// NewWithMode creates a game instance for the given mode.
func NewWithMode(m Mode) *Game {
	return &Game{mode: m}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title
}

// Reset loads the configuration and rebuilds the world in the Waiting phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	g.ResetWithConfig(runtime, cfg)
}

// ResetWithConfig is Reset with an explicit configuration, bypassing the loader.
func (g *Game) ResetWithConfig(runtime core.RuntimeConfig, cfg config.FlappyConfig) {
	if g.mode.Progressive {
		cfg.Difficulty.Enabled = true
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
	} else {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = 0
	}

	g.runtime = runtime
	g.cfg = cfg
	g.paused = false
	if g.world == nil {
		g.world = NewWorld(cfg, runtime.Seed, runtime.TickRate)
		return
	}
	if g.world.cfg == cfg && g.world.tickRate == runtime.TickRate {
		g.world.Reset(runtime.Seed)
		return
	}
	g.world = NewWorld(cfg, runtime.Seed, runtime.TickRate)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(core.DefaultConfig())
	}

	if g.world.Phase() == core.PhaseOver {
		return core.StepResult{State: g.State()}
	}

	// Pause only makes sense mid-flight
	if in.Has(core.ActionPause) && g.world.Phase() == core.PhasePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	if in.Has(core.ActionFlap) && g.world.Trigger() {
		events = append(events, core.Event{Kind: core.EventStarted})
	}

	result := g.world.Step()
	result.Events = append(events, result.Events...)
	result.State.Paused = g.paused
	return result
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:  g.world.Score(),
		Phase:  g.world.Phase(),
		Paused: g.paused,
	}
}

// World exposes the underlying simulation for drivers that render it
// themselves and for the autopilot.
func (g *Game) World() *World {
	return g.world
}

// Register the modes with the registry
func init() {
	for _, m := range []Mode{ModeClassic, ModeRush} {
		registry.Register(m.ID, m.Description, func() registry.Game {
			return NewWithMode(m)
		})
	}
}

package flappy

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     1,
}

func newTestGame(m Mode) *Game {
	g := NewWithMode(m)
	g.ResetWithConfig(testRuntime, config.DefaultFlappyConfig())
	return g
}

func flap() core.InputFrame  { return core.InputOf(core.ActionFlap) }
func pause() core.InputFrame { return core.InputOf(core.ActionPause) }
func idle() core.InputFrame  { return core.NewInputFrame() }

func TestGameFirstFlapStarts(t *testing.T) {
	g := newTestGame(ModeClassic)

	res := g.Step(idle())
	if res.State.Phase != core.PhaseWaiting || len(res.Events) != 0 {
		t.Fatalf("idle step changed phase: %+v", res)
	}

	res = g.Step(flap())
	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", res.State.Phase)
	}
	if len(res.Events) == 0 || res.Events[0].Kind != core.EventStarted {
		t.Errorf("events = %v, want started first", res.Events)
	}

	// The starting flap does not jump; gravity applies on the same tick
	if v := g.World().velocity; v != 0.4 {
		t.Errorf("velocity = %v, want 0.4", v)
	}

	res = g.Step(flap())
	if res.Has(core.EventStarted) {
		t.Error("started reported twice")
	}
	if v := g.World().velocity; math.Abs(v+6.6) > 1e-9 {
		t.Errorf("velocity after flap = %v, want -6.6", v)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(ModeClassic)

	// Pause is ignored before the game starts
	if res := g.Step(pause()); res.State.Paused {
		t.Fatal("pause should be ignored while waiting")
	}

	g.Step(flap())
	res := g.Step(pause())
	if !res.State.Paused || !g.State().Paused {
		t.Fatal("game should be paused")
	}

	before := g.World().Snapshot()
	for i := 0; i < 20; i++ {
		g.Step(flap())
	}
	if after := g.World().Snapshot(); !after.Equal(before) {
		t.Errorf("world changed while paused:\n%+v\n%+v", before, after)
	}

	if res := g.Step(pause()); res.State.Paused {
		t.Error("game should be unpaused")
	}
	if g.World().Snapshot().Equal(before) {
		t.Error("unpausing should resume the simulation on the same tick")
	}
}

func TestGameOverIgnoresInput(t *testing.T) {
	g := newTestGame(ModeClassic)
	g.Step(flap())
	for g.State().Phase == core.PhasePlaying {
		g.Step(idle())
	}

	before := g.World().Snapshot()
	for _, in := range []core.InputFrame{flap(), pause(), idle()} {
		res := g.Step(in)
		if len(res.Events) != 0 || res.State.Paused {
			t.Errorf("input %v changed a finished game: %+v", in.Actions(), res)
		}
	}
	if !g.World().Snapshot().Equal(before) {
		t.Error("world changed after game over")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(ModeClassic)
	g.Step(flap())
	for i := 0; i < 20; i++ {
		g.Step(idle())
	}
	g.Step(pause())

	g.ResetWithConfig(testRuntime, config.DefaultFlappyConfig())

	state := g.State()
	if state.Score != 0 || state.Phase != core.PhaseWaiting || state.Paused {
		t.Errorf("unexpected state after reset: %+v", state)
	}
	if !g.World().Snapshot().Equal(newTestWorld(testRuntime.Seed).Snapshot()) {
		t.Error("reset world differs from a fresh one")
	}
}

func TestGameResetLoadsConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	t.Setenv(config.EnvLeaderboardURL, "")
	t.Setenv(config.EnvLeaderboardTimeout, "")

	g := New()
	g.Reset(testRuntime)
	if g.World().Config() != config.DefaultFlappyConfig() {
		t.Error("without config files the embedded defaults should be used")
	}
}

func TestModeDifficulty(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 0.5

	classic := NewWithMode(ModeClassic)
	classic.ResetWithConfig(testRuntime, cfg)
	classic.World().score = 40
	if s := classic.World().Speed(); s != 2 {
		t.Errorf("classic speed = %v, want fixed 2", s)
	}

	rush := NewWithMode(ModeRush)
	rush.ResetWithConfig(testRuntime, config.DefaultFlappyConfig())
	rush.World().score = 50
	if s := rush.World().Speed(); s != 4 {
		t.Errorf("rush speed at max_at = %v, want 4", s)
	}
}

func TestRenderSpeedHUD(t *testing.T) {
	tests := []struct {
		mode Mode
		show bool
	}{
		{ModeClassic, false},
		{ModeRush, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.ID, func(t *testing.T) {
			g := NewWithMode(tt.mode)
			g.ResetWithConfig(testRuntime, config.DefaultFlappyConfig())
			screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)
			g.Render(screen)

			if got := strings.Contains(screen.String(), " x1.00 "); got != tt.show {
				t.Errorf("speed HUD shown = %v, want %v", got, tt.show)
			}
		})
	}
}

func TestGameDeterminism(t *testing.T) {
	// Flap every 15 ticks; same seed and inputs must give the same run
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		if i%15 == 0 {
			inputs[i] = flap()
		}
	}

	run := func() []core.StepResult {
		g := newTestGame(ModeClassic)
		out := make([]core.StepResult, 0, len(inputs))
		for _, in := range inputs {
			out = append(out, g.Step(in))
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i].State != b[i].State || len(a[i].Events) != len(b[i].Events) {
			t.Fatalf("tick %d diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(ModeClassic)
	screen := core.NewScreen(testRuntime.ScreenW, testRuntime.ScreenH)

	g.Render(screen)
	str := screen.String()
	if !strings.Contains(str, "Score: 0") {
		t.Error("HUD should show the score")
	}
	if !strings.Contains(str, ModeClassic.Title) {
		t.Error("waiting banner should show the mode title")
	}

	// Ground line sits at 500/600 of the screen height
	groundRow := 500 * testRuntime.ScreenH / 600
	if got := screen.Get(0, groundRow); got != GroundChar {
		t.Errorf("ground row %d starts with %q", groundRow, got)
	}
	if got := screen.GetCell(0, testRuntime.ScreenH-1); got.Rune != GroundFill || got.Color != core.ColorGround {
		t.Errorf("below ground = %+v", got)
	}

	// Bird at x=50, y=200 of a 400x600 world
	bird := screen.GetCell(50*testRuntime.ScreenW/400, 200*testRuntime.ScreenH/600)
	if bird.Color != core.ColorBird && bird.Color != core.ColorBirdEye {
		t.Errorf("bird cell = %+v", bird)
	}

	g.Step(flap())
	for g.State().Phase == core.PhasePlaying {
		g.Step(idle())
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("game over box missing")
	}
}

func TestRenderTinyScreen(t *testing.T) {
	g := newTestGame(ModeRush)
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 3}} {
		screen := core.NewScreen(size[0], size[1])
		g.Render(screen) // must not panic
	}
}

func TestModesRegistered(t *testing.T) {
	for _, m := range []Mode{ModeClassic, ModeRush} {
		g, err := registry.Create(m.ID)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", m.ID, err)
		}
		if g.ID() != m.ID || g.Title() != m.Title {
			t.Errorf("registry returned %s/%s for %s", g.ID(), g.Title(), m.ID)
		}
	}
}

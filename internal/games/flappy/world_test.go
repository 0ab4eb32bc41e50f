package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestWorld(seed int64) *World {
	return NewWorld(config.DefaultFlappyConfig(), seed, 60)
}

// playing returns a world already past the first flap, with the given
// obstacles and bird position.
func playing(birdY float64, obstacles ...Obstacle) *World {
	w := newTestWorld(1)
	w.phase = core.PhasePlaying
	w.birdY = birdY
	w.velocity = 0
	w.obstacles = append(w.obstacles[:0], obstacles...)
	return w
}

func TestNewWorldInitialState(t *testing.T) {
	w := newTestWorld(7)
	s := w.Snapshot()

	if s.Phase != core.PhaseWaiting {
		t.Errorf("phase = %v, want waiting", s.Phase)
	}
	if s.BirdX != 50 || s.BirdY != 200 || s.Velocity != 0 || s.Score != 0 {
		t.Errorf("unexpected bird state %+v", s)
	}
	if len(s.Obstacles) != 1 || s.Obstacles[0] != (Obstacle{X: 400, Y: -150}) {
		t.Errorf("obstacles = %v, want [{400 -150}]", s.Obstacles)
	}
	if s.Speed != 2 {
		t.Errorf("speed = %v, want 2", s.Speed)
	}
}

func TestWaitingNeverEnds(t *testing.T) {
	w := newTestWorld(3)
	obstacles := w.Obstacles()

	for i := 0; i < 5000; i++ {
		res := w.Step()
		if res.State.Phase != core.PhaseWaiting {
			t.Fatalf("tick %d: phase = %v before the first trigger", i, res.State.Phase)
		}
		if len(res.Events) != 0 {
			t.Fatalf("tick %d: unexpected events %v", i, res.Events)
		}
		if math.Abs(w.birdY-200) > 10+1e-9 {
			t.Fatalf("tick %d: idle bob left its band, y=%v", i, w.birdY)
		}
		if w.velocity != 0 {
			t.Fatalf("tick %d: idle bob must not touch velocity", i)
		}
	}

	if got := w.Obstacles(); len(got) != 1 || got[0] != obstacles[0] {
		t.Errorf("obstacles moved while waiting: %v", got)
	}
}

func TestIdleBob(t *testing.T) {
	w := newTestWorld(1)
	w.Step()
	if w.birdY != 200 {
		t.Errorf("first idle tick y = %v, want 200", w.birdY)
	}

	// 18 ticks at 60 Hz is 300ms, one radian into the sine
	for i := 1; i < 18; i++ {
		w.Step()
	}
	w.Step()
	want := 200 + math.Sin(1)*10
	if math.Abs(w.birdY-want) > 1e-9 {
		t.Errorf("y after 300ms = %v, want %v", w.birdY, want)
	}
}

func TestTrigger(t *testing.T) {
	w := newTestWorld(1)

	if !w.Trigger() {
		t.Fatal("first trigger should start the game")
	}
	if w.Phase() != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", w.Phase())
	}
	if w.velocity != 0 {
		t.Errorf("starting trigger must not flap, velocity = %v", w.velocity)
	}

	if w.Trigger() {
		t.Error("trigger while playing should not report a start")
	}
	if w.velocity != -7 {
		t.Errorf("velocity = %v, want -7", w.velocity)
	}

	// The impulse overwrites, it does not accumulate
	w.Trigger()
	if w.velocity != -7 {
		t.Errorf("velocity after double flap = %v, want -7", w.velocity)
	}
}

func TestFreeFallEndsGame(t *testing.T) {
	w := newTestWorld(1)
	w.Trigger()

	var over []core.Event
	ticks := 0
	for w.Phase() == core.PhasePlaying && ticks < 1000 {
		res := w.Step()
		ticks++
		for _, e := range res.Events {
			if e.Kind == core.EventGameOver {
				over = append(over, e)
			}
		}
	}

	if w.Phase() != core.PhaseOver {
		t.Fatalf("bird never hit the ground after %d ticks", ticks)
	}
	if len(over) != 1 || over[0].Score != 0 {
		t.Errorf("game over events = %v, want one with score 0", over)
	}
	// 0.4*n*(n+1)/2 >= 276 first holds at n = 37
	if ticks != 37 {
		t.Errorf("fell for %d ticks, want 37", ticks)
	}
}

func TestGroundContact(t *testing.T) {
	// Bird bottom exactly on the ground line with zero velocity
	w := playing(476, Obstacle{X: 400, Y: -150})
	res := w.Step()

	if res.State.Phase != core.PhaseOver {
		t.Fatalf("phase = %v, want over", res.State.Phase)
	}
	if !res.Has(core.EventGameOver) {
		t.Error("missing game over event")
	}
}

func TestScoreOnPass(t *testing.T) {
	// After moving by 2 the trailing edge lands exactly on the bird's x
	w := playing(200, Obstacle{X: -8, Y: -150})

	res := w.Step()
	if w.Score() != 1 {
		t.Fatalf("score = %d, want 1", w.Score())
	}
	if len(res.Events) != 1 || res.Events[0] != (core.Event{Kind: core.EventScored, Score: 1}) {
		t.Errorf("events = %v, want one scored event", res.Events)
	}
	if res.State.Phase != core.PhasePlaying {
		t.Fatalf("bird inside the gap should survive, phase = %v", res.State.Phase)
	}

	res = w.Step()
	if w.Score() != 1 || res.Has(core.EventScored) {
		t.Errorf("same obstacle scored twice, score = %d", w.Score())
	}
}

func TestScoreWithFractionalSpeed(t *testing.T) {
	// Speeds that never land exactly on the bird's x still score once
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.BaseSpeed = 2.7
	w := NewWorld(cfg, 1, 60)
	w.phase = core.PhasePlaying
	w.obstacles = []Obstacle{{X: 0, Y: -150}}

	scored := 0
	for i := 0; i < 10; i++ {
		w.velocity = 0
		w.birdY = 200
		scored += len(w.Step().Events)
	}
	if scored != 1 || w.Score() != 1 {
		t.Errorf("scored %d events, score %d, want 1", scored, w.Score())
	}
}

func TestRetireFront(t *testing.T) {
	w := playing(200, Obstacle{X: -59, Y: -150}, Obstacle{X: 141, Y: -100})

	w.Step()
	got := w.Obstacles()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0] != (Obstacle{X: 139, Y: -100}) {
		t.Errorf("remaining obstacle = %v", got[0])
	}
}

func TestRetireLastRespawns(t *testing.T) {
	w := playing(200, Obstacle{X: -59, Y: -150})

	w.Step()
	got := w.Obstacles()
	if len(got) != 1 || got[0].X != 400 {
		t.Errorf("obstacles = %v, want a fresh one at spawn x", got)
	}
}

func TestSpawnOnCrossing(t *testing.T) {
	w := playing(200, Obstacle{X: 202, Y: -150})

	w.Step()
	got := w.Obstacles()
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].X != 200 {
		t.Errorf("front x = %v, want 200", got[0].X)
	}
	if got[1].X != 400 {
		t.Errorf("spawned x = %v, want exactly 400", got[1].X)
	}
	if got[1].Y < -200 || got[1].Y > 0 {
		t.Errorf("spawned gap offset %v out of range", got[1].Y)
	}

	// Moving further left does not spawn again
	w.Step()
	if n := len(w.Obstacles()); n != 2 {
		t.Errorf("len = %d after second tick, want 2", n)
	}
}

func TestGapOffsetsReproducible(t *testing.T) {
	a, b := newTestWorld(99), newTestWorld(99)
	seen := map[float64]bool{}

	for i := 0; i < 5000; i++ {
		ya, yb := a.randomGapY(), b.randomGapY()
		if ya != yb {
			t.Fatalf("draw %d differs: %v vs %v", i, ya, yb)
		}
		if ya < -200 || ya > -1 || ya != math.Trunc(ya) {
			t.Fatalf("draw %d: offset %v not an integer in [-200, -1]", i, ya)
		}
		seen[ya] = true
	}
	if !seen[-200] || !seen[-1] {
		t.Error("both range ends should be reachable")
	}
}

func TestCollision(t *testing.T) {
	tests := []struct {
		name  string
		birdY float64
		obsX  float64 // before the tick's move
		want  core.Phase
	}{
		{"inside gap", 200, 40, core.PhasePlaying},
		{"touching top pipe", 150, 40, core.PhaseOver},
		{"touching bottom pipe", 246, 40, core.PhaseOver},
		{"above gap", 120, 40, core.PhaseOver},
		{"column not reached", 120, 88, core.PhasePlaying},
		{"column leading edge", 120, 86, core.PhaseOver},
		{"column trailing edge", 120, -8, core.PhaseOver},
		{"column passed", 120, -12, core.PhasePlaying},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := playing(tt.birdY, Obstacle{X: tt.obsX, Y: -150})
			res := w.Step()
			if res.State.Phase != tt.want {
				t.Errorf("phase = %v, want %v", res.State.Phase, tt.want)
			}
		})
	}
}

func TestCollisionUsesPositionBeforePhysics(t *testing.T) {
	// Bird just above the bottom pipe and falling fast: the overlap test
	// sees the old position, the ground test is far away.
	w := playing(240, Obstacle{X: 40, Y: -150})
	w.velocity = 10

	if res := w.Step(); res.State.Phase != core.PhasePlaying {
		t.Fatalf("phase = %v, want playing", res.State.Phase)
	}
	if math.Abs(w.birdY-250.4) > 1e-9 {
		t.Errorf("y = %v, want 250.4", w.birdY)
	}
	if res := w.Step(); res.State.Phase != core.PhaseOver {
		t.Errorf("phase = %v, want over on the next tick", res.State.Phase)
	}
}

func TestOverIsTerminal(t *testing.T) {
	w := playing(476, Obstacle{X: 300, Y: -150})
	w.Step()
	before := w.Snapshot()

	for i := 0; i < 10; i++ {
		if w.Trigger() {
			t.Fatal("trigger restarted a finished game")
		}
		res := w.Step()
		if len(res.Events) != 0 {
			t.Fatalf("events after game over: %v", res.Events)
		}
	}

	if after := w.Snapshot(); !after.Equal(before) {
		t.Errorf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestResetIdempotent(t *testing.T) {
	fresh := newTestWorld(5).Snapshot()

	w := newTestWorld(5)
	w.Trigger()
	for i := 0; i < 30; i++ {
		w.Step()
	}
	w.Reset(5)
	once := w.Snapshot()
	w.Reset(5)
	twice := w.Snapshot()

	if !once.Equal(fresh) {
		t.Errorf("reset differs from fresh world:\n%+v\n%+v", once, fresh)
	}
	if !twice.Equal(once) {
		t.Error("second reset changed state")
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() []Snapshot {
		w := newTestWorld(12345)
		pilot := NewAutopilot(w.Config())
		var out []Snapshot
		for i := 0; i < 1500; i++ {
			if pilot.Decide(w.Snapshot()) {
				w.Trigger()
			}
			w.Step()
			out = append(out, w.Snapshot())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("tick %d diverged:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestScoreMonotonic(t *testing.T) {
	w := newTestWorld(2024)
	pilot := NewAutopilot(w.Config())

	last := 0
	for i := 0; i < 3000; i++ {
		if pilot.Decide(w.Snapshot()) {
			w.Trigger()
		}
		res := w.Step()
		if d := res.State.Score - last; d < 0 || d > 1 {
			t.Fatalf("tick %d: score jumped from %d to %d", i, last, res.State.Score)
		}
		last = res.State.Score
	}
}

func TestProgressiveSpeed(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty.Enabled = true
	w := NewWorld(cfg, 1, 60)

	if w.Speed() != 2 {
		t.Errorf("speed at score 0 = %v, want 2", w.Speed())
	}
	w.score = 25
	if w.Speed() != 3 {
		t.Errorf("speed at score 25 = %v, want 3", w.Speed())
	}
	w.score = 500
	if w.Speed() != 4 {
		t.Errorf("speed past max_at = %v, want 4", w.Speed())
	}
}

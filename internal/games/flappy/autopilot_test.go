package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestAutopilotSurvives(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 2024} {
		w := newTestWorld(seed)
		pilot := NewAutopilot(w.Config())

		for i := 0; i < 3000; i++ {
			if pilot.Decide(w.Snapshot()) {
				w.Trigger()
			}
			w.Step()
			if w.Phase() == core.PhaseOver {
				t.Fatalf("seed %d: crashed at tick %d with score %d", seed, i, w.Score())
			}
		}
		if w.Score() < 20 {
			t.Errorf("seed %d: score %d after 3000 ticks, want at least 20", seed, w.Score())
		}
	}
}

func TestAutopilotDecide(t *testing.T) {
	pilot := NewAutopilot(config.DefaultFlappyConfig())
	gap := []Obstacle{{X: 100, Y: -150}} // lower gap edge at 270

	tests := []struct {
		name string
		snap Snapshot
		want bool
	}{
		{"waiting starts", Snapshot{Phase: core.PhaseWaiting}, true},
		{"over never flaps", Snapshot{Phase: core.PhaseOver, BirdY: 480}, false},
		{"high in gap", Snapshot{Phase: core.PhasePlaying, BirdX: 50, BirdY: 160, Obstacles: gap}, false},
		{"near lower edge", Snapshot{Phase: core.PhasePlaying, BirdX: 50, BirdY: 238, Obstacles: gap}, true},
		{"falling fast", Snapshot{Phase: core.PhasePlaying, BirdX: 50, BirdY: 220, Velocity: 20, Obstacles: gap}, true},
		{"no obstacle ahead", Snapshot{Phase: core.PhasePlaying, BirdX: 50, BirdY: 210, Obstacles: []Obstacle{{X: -20, Y: -150}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pilot.Decide(tt.snap); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAutopilotInput(t *testing.T) {
	pilot := NewAutopilot(config.DefaultFlappyConfig())
	if in := pilot.Input(Snapshot{Phase: core.PhaseWaiting}); !in.Has(core.ActionFlap) {
		t.Error("Input should carry a flap when Decide says so")
	}
	if in := pilot.Input(Snapshot{Phase: core.PhaseOver}); !in.Empty() {
		t.Error("Input should be empty otherwise")
	}
}

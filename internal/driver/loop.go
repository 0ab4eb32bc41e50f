// Package driver runs games without a display and reports finished runs.
package driver

import (
	"context"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// InputFunc supplies the input for a tick. It is called before each Step.
type InputFunc func(tick int) core.InputFrame

// Options controls a headless run.
type Options struct {
	// MaxTicks stops the run after this many ticks. Zero means until over.
	MaxTicks int

	// Realtime paces ticks at TickRate; otherwise the loop runs flat out.
	Realtime bool
	TickRate int

	// OnStep, if set, observes every tick.
	OnStep func(tick int, res core.StepResult)
}

// Result summarizes a finished headless run.
type Result struct {
	Ticks int
	State core.GameState
}

// Run steps the game until it is over, the tick limit is reached or ctx is
// done. The game must already be reset. On cancellation the partial result is
// returned together with ctx.Err().
func Run(ctx context.Context, game registry.Game, input InputFunc, opts Options) (Result, error) {
	if input == nil {
		input = func(int) core.InputFrame { return core.NewInputFrame() }
	}

	var tickC <-chan time.Time
	if opts.Realtime {
		rate := opts.TickRate
		if rate <= 0 {
			rate = 60
		}
		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()
		tickC = ticker.C
	}

	res := Result{State: game.State()}
	for opts.MaxTicks <= 0 || res.Ticks < opts.MaxTicks {
		if res.State.Phase == core.PhaseOver {
			break
		}

		if tickC != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-tickC:
			}
		} else if err := ctx.Err(); err != nil {
			return res, err
		}

		step := game.Step(input(res.Ticks))
		res.Ticks++
		res.State = step.State
		if opts.OnStep != nil {
			opts.OnStep(res.Ticks, step)
		}
	}
	return res, nil
}

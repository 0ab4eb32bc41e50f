package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/driver"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	flagTicks    int
	flagRealtime bool
	flagRecord   bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run the autopilot without a display",
	Long: `Play the given mode (default: classic) with the built-in autopilot and
print the result. Useful for checking configs and reproducing seeds.

With --record the run is stored locally, and submitted when --name is set.

Examples:
  flappy sim
  flappy sim --ticks 5000 --seed 42
  flappy sim rush --difficulty hard --ticks 20000
  flappy sim --realtime --log-level debug
  flappy sim --record --name autopilot`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks to simulate (0 = until game over)")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at --fps instead of running flat out")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the run locally (and submit it with --name)")
}

func runSim(_ *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}
	game, err := newFlappy(mode)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	game.ResetWithConfig(cfg, gameCfg)
	pilot := flappy.NewAutopilot(game.World().Config())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := driver.Run(ctx, game,
		func(int) core.InputFrame { return pilot.Input(game.World().Snapshot()) },
		driver.Options{
			MaxTicks: flagTicks,
			Realtime: flagRealtime,
			TickRate: cfg.TickRate,
			OnStep: func(tick int, step core.StepResult) {
				for _, ev := range step.Events {
					logger.Debug(ev.Kind.String(), "tick", tick, "score", ev.Score)
				}
			},
		})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Printf("mode=%s seed=%d ticks=%d score=%d phase=%s\n",
		mode, cfg.Seed, res.Ticks, res.State.Score, res.State.Phase)

	if flagRecord {
		services, closeServices, err := openServices(logger)
		if err != nil {
			return err
		}
		defer closeServices()

		rep := driver.Reporter{
			Store:       services.Store,
			Leaderboard: services.Leaderboard,
			Logger:      logger,
		}.Record(ctx, mode, flagName, res.State.Score)
		switch {
		case rep.Submitted:
			fmt.Println("Score submitted.", rep.Message)
		case rep.RunID != 0:
			fmt.Println("Run saved locally.")
		}
	}
	return nil
}

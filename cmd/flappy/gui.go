package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/driver"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui [mode]",
	Short: "Play in a window",
	Long: `Open a 400x600 window and play the given mode (default: classic).

Controls:
  Click/Space/Up  - Flap
  P               - Pause
  R               - Restart
  Esc/Q           - Quit

When --name is set, each finished run is submitted once to the leaderboard.
Runs with a score are always kept locally.

Examples:
  flappy gui
  flappy gui rush --name ada`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGUI,
}

func runGUI(_ *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	services, closeServices, err := openServices(logger)
	if err != nil {
		return err
	}
	defer closeServices()

	game, err := newFlappy(mode)
	if err != nil {
		return err
	}

	return gui.Run(game, gui.Options{
		Runtime: runtimeConfig(),
		Name:    flagName,
		Reporter: driver.Reporter{
			Store:       services.Store,
			Leaderboard: services.Leaderboard,
			Logger:      logger,
		},
		Logger: logger,
	})
}

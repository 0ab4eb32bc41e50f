package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start playing the given mode (default: classic).

Controls:
  Space/Up/W/Click  - Flap (the first flap starts the run)
  P                 - Pause
  R                 - Restart
  L                 - Leaderboard (when not flying)
  B/Esc             - Back to menu (when not flying)
  Q/Ctrl+C          - Quit

After a crash you are asked for a name; Enter submits the score to the
leaderboard, Esc skips. Runs with a score are always kept locally.

Difficulty options (rush mode):
  easy   - Start slow, progresses to max speed
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty
  fixed  - No progression

Examples:
  flappy play
  flappy play rush --difficulty hard
  flappy play --name ada --leaderboard http://scores.local:8080
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	services, closeServices, err := openServices(logger)
	if err != nil {
		return err
	}
	defer closeServices()

	return tui.Run(services, runtimeConfig(), mode, playerName())
}

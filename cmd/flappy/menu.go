package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game you can return to the menu with B.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab/L        - Leaderboard
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	return tui.RunMenu(services, runtimeConfig(), playerName())
}

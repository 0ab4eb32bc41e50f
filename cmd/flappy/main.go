// flappy is a Flappy Bird-style game for the terminal, an SSH server or a
// window, with a remote leaderboard.
//
// Usage:
//
//	flappy play [mode]        - Play in the terminal (default: classic)
//	flappy menu               - Start on the menu
//	flappy list               - List available modes
//	flappy scores [mode]      - Show the leaderboard (--local for this machine)
//	flappy serve              - Start SSH server for remote play
//	flappy gui [mode]         - Play in a window
//	flappy sim [mode]         - Run the autopilot headless
//	flappy config             - Print the default config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.flappy/scores.db)
//	--leaderboard <url>   - Override the leaderboard service URL
//	--log <path>          - Log file for terminal modes (default: ~/.flappy/flappy.log)
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS         int
	flagSeed        int64
	flagDBPath      string
	flagLeaderboard string
	flagLogPath     string
	flagLogLevel    string
	flagConfig      string
	flagDifficulty  string
	flagName        string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through the pipes in your terminal",
	Long: `Flappy is a Flappy Bird-style game. Play it in the terminal, host it
over SSH, or open a window. Finished runs are kept locally and can be
submitted to a shared leaderboard.

Available commands:
  play     - Play a mode directly
  menu     - Interactive menu
  list     - Show all modes
  scores   - View the leaderboard or local runs
  serve    - Start SSH server for remote play
  gui      - Play in a window
  sim      - Run the autopilot without a display
  config   - Print the game configuration

Examples:
  flappy play
  flappy play rush --difficulty hard
  flappy menu --name ada
  flappy scores --local
  flappy serve --ssh :2222
  flappy sim --ticks 5000 --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := config.LoadDotEnv(); err != nil {
			return err
		}
		flappy.SetConfigPath(flagConfig)
		flappy.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	pf.StringVar(&flagLeaderboard, "leaderboard", "", "Leaderboard service URL (overrides config)")
	pf.StringVar(&flagLogPath, "log", "~/.flappy/flappy.log", "Log file for terminal modes")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for rush: easy, normal, hard, fixed")
	pf.StringVar(&flagName, "name", "", "Player name for score submission")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

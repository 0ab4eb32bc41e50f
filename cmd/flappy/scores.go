package main

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLocal  bool
	flagRecent bool
	flagClear  bool
	flagLimit  int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard or local runs",
	Long: `Display the remote leaderboard, or with --local the runs recorded on
this machine. The mode argument filters local runs.

Examples:
  flappy scores
  flappy scores --leaderboard http://scores.local:8080
  flappy scores --local
  flappy scores rush --local --limit 20
  flappy scores --local --recent
  flappy scores rush --local --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagLocal, "local", false, "Show runs stored on this machine")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "With --local, list the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "With --local, delete the stored runs")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	if len(args) > 0 {
		mode = args[0]
		if !registry.Exists(mode) {
			return fmt.Errorf("unknown mode %q (run 'flappy list' to see available modes)", mode)
		}
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

	if flagLocal || flagClear || flagRecent {
		if services.Store == nil {
			return errors.New("scores database is not available")
		}
		return showLocal(services.Store, mode)
	}
	return showRemote(services.Leaderboard)
}

func showRemote(client *leaderboard.Client) error {
	fmt.Println("Leaderboard")
	fmt.Println()

	if client == nil {
		fmt.Println(leaderboard.PlaceholderText)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRequestTimeout)
	defer cancel()

	entries, err := client.Fetch(ctx)
	if err != nil {
		// Already logged by the client
		fmt.Println(leaderboard.PlaceholderText)
		return nil
	}
	if len(entries) == 0 {
		fmt.Println("No scores on the server yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-24s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-24s  %s\n", "----", "----", "-----")
	for i, e := range entries {
		if flagLimit > 0 && i >= flagLimit {
			break
		}
		fmt.Printf("  %-4d  %-24s  %d\n", i+1, e.Name, e.Score)
	}
	return nil
}

func showLocal(store *storage.Store, mode string) error {
	if flagClear {
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		if mode == "" {
			fmt.Println("Cleared all local runs.")
		} else {
			fmt.Printf("Cleared local runs for %s.\n", mode)
		}
		return nil
	}

	var runs []storage.Run
	var err error
	if flagRecent {
		runs, err = store.RecentRuns(flagLimit)
		runs = slices.DeleteFunc(runs, func(r storage.Run) bool { return mode != "" && r.Mode != mode })
		fmt.Println("Recent runs")
	} else {
		runs, err = store.TopRuns(mode, flagLimit)
		fmt.Println("Local high scores")
	}
	if err != nil {
		return err
	}
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %-16s  %s\n", "Rank", "Name", "Mode", "Score", "Date", "Sent")
	fmt.Printf("  %-4s  %-16s  %-8s  %-6s  %-16s  %s\n", "----", "----", "----", "-----", "----", "----")
	for i, r := range runs {
		name := r.Name
		if name == "" {
			name = "-"
		}
		sent := "no"
		if r.Submitted {
			sent = "yes"
		}
		fmt.Printf("  %-4d  %-16s  %-8s  %-6d  %-16s  %s\n",
			i+1, name, r.Mode, r.Score, r.CreatedAt.Local().Format("2006-01-02 15:04"), sent)
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Println()
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok || (mode != "" && g.ID != mode) {
			continue
		}
		fmt.Printf("%s: best %d, %d runs (%d submitted), avg %.1f\n",
			g.Title, st.HighScore, st.Runs, st.Submitted, st.AvgScore)
	}
	return nil
}

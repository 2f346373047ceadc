package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neometro/internal/platform/tui"
	"github.com/vovakirdan/neometro/internal/storage"
)

var (
	flagLimit       int
	flagRecent      bool
	flagPlayer      string
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show run history",
	Long: `Display the best (or most recent) runs with totals.

Runs from local play have no player. Runs on the SSH server carry the
SSH username; filter them with --player.

Examples:
  neometro scores
  neometro scores --recent --limit 20
  neometro scores --player alice
  neometro scores --interactive`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Only show runs of this player")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a table")
}

func runScores(_ *cobra.Command, _ []string) error {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		return tui.RunScoreboard(store, flagPlayer, cfg.ScreenW, cfg.ScreenH)
	}

	var runs []storage.RunRecord
	if flagRecent {
		runs, err = store.RecentRuns(flagPlayer, flagLimit)
	} else {
		runs, err = store.TopRuns(flagPlayer, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := "Top Runs"
	if flagRecent {
		title = "Recent Runs"
	}
	if flagPlayer != "" {
		title += " - " + flagPlayer
	}
	fmt.Printf("Neo-Metro %s\n\n", title)

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'neometro play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-12s  %s\n", "Rank", "Score", "Distance", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-9s  %-6s  %-12s  %s\n", "----", "-----", "--------", "----", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-9s  %-6s  %-12s  %s\n",
			i+1,
			r.Score,
			fmt.Sprintf("%.0fm", r.Distance),
			tui.FormatDuration(r.Duration),
			player,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats(flagPlayer)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Best: %d  |  Runs: %d  |  Average: %.0f  |  Total: %.1fkm\n",
		stats.HighScore, stats.Runs, stats.AvgScore, stats.TotalDistance/1000)
	return nil
}

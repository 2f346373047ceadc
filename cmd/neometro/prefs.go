package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/storage"
)

var (
	flagScope    string
	flagResetAll bool
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or reset saved progress",
	Long: `Saved progress is the high score, the play count and whether the
story was seen. Local play uses the "local" scope; SSH players each have
a scope named after their username.

Examples:
  neometro prefs show
  neometro prefs show --scope alice
  neometro prefs reset            # tell the story again
  neometro prefs reset --all      # also forget the high score`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print saved progress",
	Args:  cobra.NoArgs,
	RunE:  runPrefsShow,
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replay the story on the next run",
	Args:  cobra.NoArgs,
	RunE:  runPrefsReset,
}

func init() {
	prefsCmd.PersistentFlags().StringVar(&flagScope, "scope", storage.LocalScope, "Prefs scope (SSH username or local)")
	prefsResetCmd.Flags().BoolVar(&flagResetAll, "all", false, "Also reset the high score")

	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsResetCmd)
}

func runPrefsShow(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	values, err := store.Prefs(flagScope).All()
	if err != nil {
		return fmt.Errorf("reading prefs: %w", err)
	}

	fmt.Printf("Prefs - %s\n\n", flagScope)
	if len(values) == 0 {
		fmt.Println("Nothing saved yet.")
		return nil
	}
	for _, k := range slices.Sorted(maps.Keys(values)) {
		fmt.Printf("  %-14s %d\n", k, values[k])
	}
	return nil
}

func runPrefsReset(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	prefs := store.Prefs(flagScope)
	if err := runner.ResetStory(prefs); err != nil {
		return fmt.Errorf("resetting story: %w", err)
	}
	if flagResetAll {
		if err := prefs.Delete(runner.KeyHighScore); err != nil {
			return fmt.Errorf("resetting high score: %w", err)
		}
	}

	fmt.Printf("Progress for %s reset. The story will be told on the next run.\n", flagScope)
	return nil
}

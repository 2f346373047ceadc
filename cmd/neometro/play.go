package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/platform/tui"
	"github.com/vovakirdan/neometro/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoIntro    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run directly, skipping the menu.

Controls:
  Left/A, Right/D  - Change lane
  Space/Up/W       - Jump
  Enter            - Skip the story
  P/Esc            - Pause
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit
  Mouse drag       - Swipe left, right or up

Difficulty options:
  easy   - Slow start, gentle speed ramp
  normal - The configured speeds
  hard   - Fast start, steep speed ramp
  fixed  - No speed ramp, stays at the base speed

Examples:
  neometro play
  neometro play --difficulty easy
  neometro play --no-intro --seed 42
  neometro play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoIntro, "no-intro", false, "Skip the story intro")
}

func runPlay(_ *cobra.Command, _ []string) error {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	opts := runner.Options{
		ConfigPath: flagConfig,
		Preset:     preset,
		Logger:     logger,
		SkipIntro:  flagNoIntro,
	}
	if store != nil {
		opts.Prefs = store.Prefs(storage.LocalScope)
	}

	game, err := runner.New(opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger.Debug("runner config", "source", game.ConfigSource())

	mopts := tui.ModelOptions{
		SwipeThreshold: game.Config().Input.SwipeThresholdCells,
		Logger:         logger,
	}
	if err := tui.Run(game, store, runtimeConfig(), mopts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

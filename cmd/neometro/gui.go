package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/games/runner"
	"github.com/vovakirdan/neometro/internal/platform/gui"
	"github.com/vovakirdan/neometro/internal/storage"
)

var (
	flagScale   float64
	flagNoAudio bool
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Play in a window",
	Long: `Open a window with perspective graphics and synthesized audio.

Swipe with the mouse or a touch screen to change lanes and jump, tap to
skip the story or restart. Keyboard controls match 'neometro play'.

Examples:
  neometro gui
  neometro gui --scale 1.5 --difficulty hard
  neometro gui --no-audio`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	guiCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	guiCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	guiCmd.Flags().BoolVar(&flagNoIntro, "no-intro", false, "Skip the story intro")
	guiCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
	guiCmd.Flags().BoolVar(&flagNoAudio, "no-audio", false, "Disable music and sound effects")
}

func runGUI(_ *cobra.Command, _ []string) error {
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

	opts := gui.Options{
		Runner: runner.Options{
			ConfigPath: flagConfig,
			Preset:     preset,
			SkipIntro:  flagNoIntro,
		},
		TickRate: flagFPS,
		Seed:     flagSeed,
		Scale:    flagScale,
		Store:    store,
		Logger:   logger,
		NoAudio:  flagNoAudio,
	}
	if store != nil {
		opts.Runner.Prefs = store.Prefs(storage.LocalScope)
	}
	return gui.Run(opts)
}

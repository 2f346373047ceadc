// neometro is an endless three-lane runner for the terminal, a desktop
// window or an SSH server.
//
// Usage:
//
//	neometro                 - Start the menu
//	neometro play            - Start a run directly
//	neometro gui             - Play in a window
//	neometro serve           - Start SSH server for remote play
//	neometro scores          - Show run history
//	neometro prefs           - Show or reset saved progress
//	neometro config          - Print the default runner config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.neometro/scores.db)
//	--log <path>    - Write logs to a file
//	--debug         - Log debug messages
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neometro/internal/core"
	"github.com/vovakirdan/neometro/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neometro",
	Short: "Neo-Metro - an endless runner for your terminal",
	Long: `Neo-Metro is an endless runner. Dodge obstacles across three lanes
of a neon metro line for as long as you can.

Available commands:
  play     - Start a run directly
  gui      - Play in a window with mouse and touch swipes
  serve    - Start SSH server for remote play
  scores   - View run history
  prefs    - Show or reset saved progress
  config   - Print the default runner config

Without a command, the interactive menu starts.

Examples:
  neometro
  neometro play --difficulty hard
  neometro gui --scale 2
  neometro serve --ssh :2222
  neometro scores --recent`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neometro/scores.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	rootCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger returns the logger selected by --log and --debug. Terminal
// frontends own the screen, so logs are dropped unless a file is given.
func newLogger() (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}

	path, err := storage.ExpandPath(flagLogPath)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "neometro",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }, nil
}

// openStore opens the run history. Playing still works without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("storage unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

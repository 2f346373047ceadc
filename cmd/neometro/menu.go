package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/platform/tui"
)

// runMenu starts the same menu session SSH players get, on the local
// terminal and with local prefs.
func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	runnerCfg, source, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger.Debug("runner config", "source", source)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	deps := tui.SessionDeps{
		Store:  store,
		Runner: runnerCfg,
		Logger: logger,
	}
	if err := tui.RunSession(deps, runtimeConfig()); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}

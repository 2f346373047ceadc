package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neometro/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default runner config",
	Long: `Print the built-in runner config as YAML. Save it as
~/.neometro/configs/runner.yaml (or pass it with --config) and edit to taste.

Examples:
  neometro config > ~/.neometro/configs/runner.yaml
  neometro config --check ./my-runner.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var flagCheck string

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate this config file instead of printing the default")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagCheck == "" {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	// Load parses and validates, so any problem is an error here.
	if _, _, err := config.Load(flagCheck); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", flagCheck)
	return nil
}

//go:build window

package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dango-maze/internal/platform/window"
	"github.com/vovakirdan/dango-maze/internal/storage"
)

func init() {
	rootCmd.AddCommand(windowCmd)
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open the maze in a desktop window at its native canvas size.

Controls:
  Click a yellow button - Rotate that bar
  P                     - Pause
  R                     - Restart (after reaching the goal)
  Q/Esc                 - Quit`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func runWindow(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dango-window",
		Level:           log.GetLevel(),
	})

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return window.Run(window.Options{
		Config:   cfg,
		Seed:     flagSeed,
		TickRate: flagFPS,
		Store:    store,
		Logger:   logger,
	})
}

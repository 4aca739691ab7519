package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dango-maze/internal/core"
	"github.com/vovakirdan/dango-maze/internal/games/dango"
	"github.com/vovakirdan/dango-maze/internal/maze"
	"github.com/vovakirdan/dango-maze/internal/platform/tui"
	"github.com/vovakirdan/dango-maze/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the maze in the terminal.

Controls:
  Mouse click on ◆  - Rotate that bar
  Tab/Shift+Tab     - Select next/previous bar
  Arrows/WASD/HJKL  - Move the selection across the grid
  Space/Enter       - Rotate the selected bar
  P/Esc             - Pause
  R                 - Restart (after reaching the goal)
  Tab               - Fastest runs (after reaching the goal)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Half speed, longer pause after each turn
  normal - Reference speed
  hard   - Double speed, shorter pause after each turn

Examples:
  dango play
  dango play --seed 42
  dango play --difficulty easy
  dango play --config ./my-maze.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	game := dango.NewWithConfig(cfg, nil)

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open runs database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	res, runErr := tui.Run(game, store, core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return runErr
	}

	if res.SaveErr != nil {
		log.Warn("could not save run", "error", res.SaveErr)
	}
	if res.State.Won {
		log.Info("goal reached", "time", maze.FormatElapsed(res.State.Elapsed), "rotations", res.State.Rotations, "seed", game.Seed())
	}
	return nil
}

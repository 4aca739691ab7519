// dango is a terminal maze game: guide the rolling dango to the goal by
// rotating the L-shaped bars in its way.
//
// Usage:
//
//	dango play              - Play in the terminal (default)
//	dango window            - Play in a desktop window (built with -tags window)
//	dango serve             - Start SSH server for remote play
//	dango scores            - Show the fastest runs
//	dango config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for a reproducible bar layout
//	--db <path>           - Set database path (default: ~/.dango/runs.db)
//	--config <path>       - Use a custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--verbose             - Log debug messages
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dango-maze/internal/config"
	"github.com/vovakirdan/dango-maze/internal/games/dango"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dango",
	Short: "Dango Maze - roll the dango to the goal",
	Long: `Dango Maze is a puzzle game for the terminal. A dango rolls across the
board and turns whenever it bumps into a bar or the wall. You cannot steer it:
rotate the L-shaped bars to guide it into the goal in the bottom-right corner.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window (builds tagged window)
  serve    - Start SSH server for remote play
  scores   - View the fastest runs
  config   - Print the effective configuration

Examples:
  dango
  dango play --seed 42
  dango play --difficulty hard
  dango serve --ssh :2222
  dango scores`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed for the bar layout (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dango/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// setup validates global flags and hands the config selection to the game.
func setup(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		log.SetLevel(log.DebugLevel)
	}
	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	dango.SetConfigPath(flagConfig)
	dango.SetDifficultyPreset(flagDifficulty)
	return nil
}

// loadConfig resolves the game configuration. A broken custom file is an
// error; the game itself would silently fall back to the defaults.
func loadConfig() (config.DangoConfig, error) {
	cfg, err := dango.LoadConfig()
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	log.Debug("config loaded", "path", flagConfig, "difficulty", flagDifficulty)
	return cfg, nil
}

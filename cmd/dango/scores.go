package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dango-maze/internal/games/dango"
	"github.com/vovakirdan/dango-maze/internal/platform/tui"
	"github.com/vovakirdan/dango-maze/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the fastest runs",
	Long: `Display the fastest recorded runs.

Examples:
  dango scores
  dango scores --limit 25
  dango scores --interactive
  dango scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagScoresTUI, "interactive", "i", false, "Browse runs in a scrollable table")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded runs")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(dango.GameID); err != nil {
			return err
		}
		fmt.Println("All runs deleted.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, dango.GameID, "Dango Maze", width, height)
	}

	runs, err := store.FastestRuns(dango.GameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Println("Fastest Runs - Dango Maze")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dango play' to set the first time!")
		return nil
	}

	fmt.Printf("  %-4s  %-9s  %-5s  %-20s  %s\n", "Rank", "Time", "Turns", "Seed", "When")
	fmt.Printf("  %-4s  %-9s  %-5s  %-20s  %s\n", "----", "----", "-----", "----", "----")

	now := time.Now()
	for i, r := range runs {
		fmt.Printf("  %-4d  %-9s  %-5d  %-20s  %s\n",
			i+1,
			fmt.Sprintf("%.2fs", r.Elapsed.Seconds()),
			r.Rotations,
			tui.FormatSeed(r.Seed),
			humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
		)
	}

	stats, err := store.GetGameStats(dango.GameID)
	if err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %.2fs   Average: %.2fs over %s runs   Last played %s\n",
			stats.BestTime.Seconds(),
			stats.AvgTime.Seconds(),
			humanize.Comma(int64(stats.RunsCount)),
			humanize.Time(stats.LastPlayed),
		)
	}
	return nil
}

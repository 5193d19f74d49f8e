package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockdash/internal/games/dash"
	"github.com/vovakirdan/blockdash/internal/platform/tui"
	"github.com/vovakirdan/blockdash/internal/storage"
)

var (
	flagLimit       int
	flagRecent      bool
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best runs, the best score and overall stats.

Examples:
  blockdash scores
  blockdash scores --recent --limit 5
  blockdash scores --interactive
  blockdash scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a scrollable table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete run history (the best score is kept)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(dash.GameID); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, dash.GameID, width, height)
	}

	var runs []storage.Run
	heading := "Best Runs"
	if flagRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(dash.GameID, flagLimit)
	} else {
		runs, err = store.TopRuns(dash.GameID, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Printf("Block Dash - %s\n\n", heading)
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'blockdash play' to set the first score!")
		return nil
	}

	fmt.Println(runsTable(runs))
	fmt.Println()

	best, err := store.Best(dash.GameID)
	if err != nil {
		return err
	}
	stats, err := store.Stats(dash.GameID)
	if err != nil {
		return err
	}
	fmt.Printf("Best: %d\n", best)
	fmt.Printf("Runs: %d  Avg: %.1f  Total distance: %.1fm  Last played: %s\n",
		stats.RunsCount, stats.AvgScore, stats.TotalDistance, stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	return nil
}

func runsTable(runs []storage.Run) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "Score", "Distance", "Time", "Date").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	for i, r := range runs {
		t.Row(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%.1fm", r.Distance),
			r.Duration.Round(100*time.Millisecond).String(),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}
	return t.String()
}

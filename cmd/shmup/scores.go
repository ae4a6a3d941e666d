package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shmup/internal/platform/tui"
	"github.com/vovakirdan/tui-shmup/internal/registry"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <stage>",
	Short: "Show the best runs for a stage",
	Long: `Display the top 10 runs for the specified stage.

Examples:
  shmup scores orb-field
  shmup scores warden --interactive
  shmup scores warden --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse runs in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs for the stage")
}

func runScores(cmd *cobra.Command, args []string) error {
	stageID := args[0]
	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q, run 'shmup list' to see available stages", stageID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open runs database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(stageID); err != nil {
			return err
		}
		fmt.Printf("Cleared runs for %s.\n", stageID)
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunScoreboard(store, stageID, width, height)
	}

	title := stageID
	for _, st := range registry.List() {
		if st.ID == stageID {
			title = st.Title
		}
	}

	runs, err := store.TopRuns(stageID, 10)
	if err != nil {
		return fmt.Errorf("retrieve runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shmup play %s' to record the first run!\n", stageID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-4s  %-7s  %s\n", "Rank", "Score", "Kills", "Hits", "Cleared", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-4s  %-7s  %s\n", "----", "-----", "-----", "----", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-8d  %-5d  %-4d  %-7d  %s\n",
			i+1, r.Score, r.Kills, r.HitsTaken, r.EncountersCleared, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetStageStats(stageID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Avg: %.0f\n", stats.BestScore, stats.RunsCount, stats.AvgScore)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/game"
	"github.com/vovakirdan/tui-shmup/internal/logging"
	"github.com/vovakirdan/tui-shmup/internal/registry"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

var (
	flagMaxSeconds int
	flagNoSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run <stage>",
	Short: "Simulate a stage with the autopilot",
	Long: `Run the specified stage without a terminal UI.

The autopilot holds fire and steers under the nearest enemy. The run
is deterministic: the same stage, difficulty and tick rate always
produce the same result and state hash.

Examples:
  shmup run orb-field
  shmup run warden --difficulty hard --max-seconds 60
  shmup run warden --log-level debug --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagMaxSeconds, "max-seconds", 180, "Stop after this much simulated time")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run")
}

func runRun(cmd *cobra.Command, args []string) error {
	stageID := args[0]
	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q, run 'shmup list' to see available stages", stageID)
	}

	logger := logging.FromContext(cmd.Context())
	g, err := registry.Create(stageID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	stage, ok := g.(*game.Stage)
	if !ok {
		return fmt.Errorf("stage %q cannot run headless", stageID)
	}

	rate := tickRate(cmd, g)
	if err := stage.Reset(core.RuntimeConfig{TickRate: rate}); err != nil {
		return err
	}

	w := stage.World()
	res := game.RunHeadless(w, flagMaxSeconds*rate)
	snap := w.Snapshot()

	status := "timed out"
	if res.Finished {
		status = "complete"
	}
	fmt.Printf("Stage %s (%s)\n", stage.Title(), status)
	fmt.Println()
	fmt.Printf("  Score     %d\n", res.Score)
	fmt.Printf("  Kills     %d\n", res.Kills)
	fmt.Printf("  Hits      %d\n", res.HitsTaken)
	fmt.Printf("  Cleared   %d/%d\n", res.EncountersCleared, len(stage.Config().Encounters))
	fmt.Printf("  Time      %.2fs (%d frames)\n", float64(snap.NowMs)/1000, res.Frames)
	fmt.Printf("  Hash      %016x\n", snap.Hash())

	if flagNoSave || res.Frames == 0 {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveRun(stage.RunRecord())
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	logger.Info("run saved", "run", id)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/game"
	"github.com/vovakirdan/tui-shmup/internal/logging"
	"github.com/vovakirdan/tui-shmup/internal/platform/tui"
	"github.com/vovakirdan/tui-shmup/internal/registry"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <stage>",
	Short: "Play a stage",
	Long: `Start playing the specified stage.

Controls:
  WASD/Arrows  - Move
  Space/Z      - Fire
  F            - Toggle autofire
  P/Esc        - Pause
  R            - Restart (after the stage ends)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower enemy fire and bullets
  normal - Stage values as written
  hard   - Faster enemy fire and bullets
  fixed  - Stage values, no wave time limits

Examples:
  shmup play orb-field
  shmup play warden --difficulty hard
  shmup play warden --config ./my-warden.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, runCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom stage config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	stageID := args[0]
	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q, run 'shmup list' to see available stages", stageID)
	}

	g, err := registry.Create(stageID, registry.Options{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
		Logger:     logging.FromContext(cmd.Context()),
	})
	if err != nil {
		return err
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = tickRate(cmd, g)
	if err := g.Reset(cfg); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The stage still plays without run history
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.Run(g, store, logging.FromContext(cmd.Context()), cfg)
}

// tickRate returns --fps when it was set, otherwise the stage's own rate.
func tickRate(cmd *cobra.Command, g registry.Game) int {
	if cmd.Flags().Changed("fps") {
		return flagFPS
	}
	if s, ok := g.(*game.Stage); ok && s.Config().TickRate > 0 {
		return s.Config().TickRate
	}
	return flagFPS
}

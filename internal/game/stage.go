package game

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/logging"
	"github.com/vovakirdan/tui-shmup/internal/registry"
	"github.com/vovakirdan/tui-shmup/internal/storage"
)

func init() {
	for _, id := range config.StageIDs() {
		id := id
		registry.Register(id, config.BuiltinTitle(id), func(opts registry.Options) (registry.Game, error) {
			return NewStage(id, opts)
		})
	}
}

// Stage adapts a World to the platform's registry.Game interface,
// adding pause and restart on top of the simulation.
type Stage struct {
	mu     sync.Mutex
	cfg    config.StageConfig
	logger *log.Logger
	world  *World
	paused bool
}

// NewStage loads a stage configuration, applies the difficulty preset
// and builds the first world.
func NewStage(id string, opts registry.Options) (*Stage, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	preset, err := config.ParseDifficulty(opts.Difficulty)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadStage(id, opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}
	config.ApplyStagePreset(&cfg, preset)

	s := &Stage{cfg: cfg, logger: logger}
	if err := s.Reset(core.RuntimeConfig{TickRate: cfg.TickRate}); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the stage identifier.
func (s *Stage) ID() string { return s.cfg.ID }

// Title returns the display name.
func (s *Stage) Title() string { return s.cfg.Title }

// Config returns the stage configuration in use.
func (s *Stage) Config() config.StageConfig { return s.cfg }

// Reset rebuilds the world from the stage configuration.
// A positive TickRate overrides the stage's frame rate.
func (s *Stage) Reset(rc core.RuntimeConfig) error {
	cfg := s.cfg
	if rc.TickRate > 0 {
		cfg.TickRate = rc.TickRate
	}
	w, err := Build(cfg, s.logger)
	if err != nil {
		return fmt.Errorf("game: reset %s: %w", s.cfg.ID, err)
	}

	s.mu.Lock()
	s.world = w
	s.paused = false
	s.mu.Unlock()
	return nil
}

// World returns the running world.
func (s *Stage) World() *World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world
}

// Step handles pause and advances the world by one frame.
func (s *Stage) Step(in core.InputFrame) core.StepResult {
	s.mu.Lock()
	if in.Has(core.ActionPause) && !s.world.Finished() {
		s.paused = !s.paused
	}
	paused, w := s.paused, s.world
	s.mu.Unlock()

	if !paused {
		w.Step(in)
	}
	return core.StepResult{State: s.State()}
}

// State returns score, completion and pause status.
func (s *Stage) State() core.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.GameState{
		Score:    s.world.Score(),
		GameOver: s.world.Finished(),
		Paused:   s.paused,
	}
}

// RunRecord summarizes the current world for the run history.
func (s *Stage) RunRecord() storage.Run {
	res := s.World().Result()
	return storage.Run{
		StageID:           s.cfg.ID,
		Score:             res.Score,
		Kills:             res.Kills,
		HitsTaken:         res.HitsTaken,
		EncountersCleared: res.EncountersCleared,
		Frames:            res.Frames,
	}
}

// Render draws the world and the pause overlay.
func (s *Stage) Render(dst *core.Screen) {
	s.mu.Lock()
	w, paused := s.world, s.paused
	s.mu.Unlock()

	w.Render(dst)
	mid := dst.Height() / 2
	switch {
	case w.Finished():
		const hint = "R restart  Q quit"
		boxW := len(hint) + 4
		dst.DrawBox(core.NewRect((dst.Width()-boxW)/2, mid-1, boxW, 4), core.ColorOverlay)
		dst.DrawTextCentered(mid, "STAGE COMPLETE")
		dst.DrawTextCentered(mid+1, hint)
	case paused:
		dst.DrawTextCentered(mid, "PAUSED")
	}
}

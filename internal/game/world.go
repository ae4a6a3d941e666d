// Package game wires the pool, the player and the encounter sequencer
// into a frame-driven world and exposes it to the platform as a stage.
package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/encounter"
	"github.com/vovakirdan/tui-shmup/internal/player"
)

// ErrMissingCollaborator is returned when a world is built without one of
// its required parts.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Clock is the time source a world owns and advances every frame.
// *core.FrameClock implements it.
type Clock interface {
	core.Clock
	Advance(dt float64)
}

// Deps are the collaborators a world runs on. All are required.
type Deps struct {
	Pool      *bullet.Pool
	Player    *player.Player
	Sequencer *encounter.Sequencer
	Clock     Clock
	Logger    *log.Logger
	Delta     float64 // Frame duration in seconds; 0 means 1/60
}

// World is one running stage. A single mutex serializes Step, Render and
// Snapshot, so a host may call them from different goroutines.
type World struct {
	mu sync.Mutex

	pool   *bullet.Pool
	player *player.Player
	seq    *encounter.Sequencer
	clock  Clock
	logger *log.Logger
	delta  float64

	tick     uint64
	finished bool
}

// NewWorld checks every collaborator before the first frame can run.
func NewWorld(d Deps) (*World, error) {
	switch {
	case d.Pool == nil:
		return nil, fmt.Errorf("game: %w: projectile pool", ErrMissingCollaborator)
	case d.Player == nil:
		return nil, fmt.Errorf("game: %w: player", ErrMissingCollaborator)
	case d.Sequencer == nil:
		return nil, fmt.Errorf("game: %w: encounter sequencer", ErrMissingCollaborator)
	case d.Sequencer.Len() == 0:
		return nil, fmt.Errorf("game: %w: encounter roster is empty", ErrMissingCollaborator)
	case d.Clock == nil:
		return nil, fmt.Errorf("game: %w: clock", ErrMissingCollaborator)
	case d.Logger == nil:
		return nil, fmt.Errorf("game: %w: logger", ErrMissingCollaborator)
	}
	if d.Delta <= 0 {
		d.Delta = core.RuntimeConfig{}.Delta()
	}

	w := &World{
		pool:   d.Pool,
		player: d.Player,
		seq:    d.Sequencer,
		clock:  d.Clock,
		logger: d.Logger,
		delta:  d.Delta,
	}
	w.seq.Start(w.clock.NowMs())
	return w, nil
}

// Step runs one frame: the clock advances, then the sequencer, the
// player and the pool tick in that order. Steps after the last encounter
// is consumed do nothing.
func (w *World) Step(in core.InputFrame) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.finished {
		return
	}

	w.clock.Advance(w.delta)
	now := w.clock.NowMs()
	w.tick++

	w.seq.Tick(encounter.Frame{
		Now:     now,
		Delta:   w.delta,
		Spawner: w.pool,
		Player:  w.player.Position(),
	})
	w.player.Tick(now, w.delta, in, w.pool)
	w.pool.Tick(w.delta, targets{w: w, now: now})

	if w.seq.Drained() {
		w.finished = true
		w.logger.Info("stage complete",
			"frames", w.tick,
			"score", w.seq.Score(),
			"kills", w.seq.Kills(),
			"hits_taken", w.player.HitsTaken(),
		)
	}
}

// Finished reports whether every encounter has been consumed.
func (w *World) Finished() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.finished
}

// Score returns points earned so far.
func (w *World) Score() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seq.Score()
}

// Result summarizes the run so far.
func (w *World) Result() Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Result{
		Score:             w.seq.Score(),
		Kills:             w.seq.Kills(),
		HitsTaken:         w.player.HitsTaken(),
		EncountersCleared: w.seq.Cleared(),
		Frames:            int(w.tick), //#nosec G115 -- frame count fits in int
		Finished:          w.finished,
	}
}

// Result is the outcome of a run.
type Result struct {
	Score             int
	Kills             int
	HitsTaken         int
	EncountersCleared int
	Frames            int
	Finished          bool
}

// targets resolves projectile hits against the live world for one frame.
type targets struct {
	w   *World
	now int64
}

func (t targets) PlayerPosition() core.Vec2 { return t.w.player.Position() }

func (t targets) HitPlayer() bool {
	if !t.w.player.Hit(t.now) {
		return false
	}
	t.w.logger.Debug("player hit", "at_ms", t.now, "hits_taken", t.w.player.HitsTaken())
	return true
}

func (t targets) HitEnemy(pos core.Vec2, radius float64) bool {
	return t.w.seq.HitEnemy(pos, radius)
}

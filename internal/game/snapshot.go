package game

import (
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
)

// Snapshot is the observable world state, used for determinism checks.
type Snapshot struct {
	Tick              uint64
	NowMs             int64
	Score             int
	Kills             int
	HitsTaken         int
	EncounterIndex    int
	EncountersCleared int
	Finished          bool
	Player            core.Vec2

	// Indexed by bullet.Kind
	Alive   []int
	Dropped []int

	// Live projectile positions in pool order, two floats each
	Projectiles []float64
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	kinds := bullet.Kinds()
	snap := Snapshot{
		Tick:              w.tick,
		NowMs:             w.clock.NowMs(),
		Score:             w.seq.Score(),
		Kills:             w.seq.Kills(),
		HitsTaken:         w.player.HitsTaken(),
		EncounterIndex:    w.seq.Index(),
		EncountersCleared: w.seq.Cleared(),
		Finished:          w.finished,
		Player:            w.player.Position(),
		Alive:             make([]int, len(kinds)),
		Dropped:           make([]int, len(kinds)),
	}
	for i, k := range kinds {
		snap.Alive[i] = w.pool.Alive(k)
		snap.Dropped[i] = w.pool.Dropped(k)
	}
	w.pool.ForEachAlive(func(_ bullet.Kind, pr bullet.Projectile) {
		snap.Projectiles = append(snap.Projectiles, pr.Pos.X, pr.Pos.Y)
	})
	return snap
}

// Hash returns an FNV-1a digest of the snapshot.
func (s *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "T:%d;N:%d;S:%d;K:%d;H:%d;E:%d;C:%d;F:%t;",
		s.Tick, s.NowMs, s.Score, s.Kills, s.HitsTaken, s.EncounterIndex, s.EncountersCleared, s.Finished)
	fmt.Fprintf(h, "P:%.4f,%.4f;", s.Player.X, s.Player.Y)
	for i := range s.Alive {
		fmt.Fprintf(h, "A%d:%d/%d;", i, s.Alive[i], s.Dropped[i])
	}
	for _, v := range s.Projectiles {
		fmt.Fprintf(h, "%.4f;", v)
	}
	return h.Sum64()
}

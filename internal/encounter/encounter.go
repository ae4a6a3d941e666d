// Package encounter sequences timed waves of enemies.
//
// An Encounter is one wave: a plain roster of orbs or a scripted boss
// fight. The Sequencer activates encounters one at a time, waits for the
// active one to end, holds for its end delay, then moves on. Once every
// encounter is consumed the sequencer is drained and further ticks are no-ops.
package encounter

import (
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/enemy"
)

// Unlimited is the duration budget of an encounter that only ends when
// its enemies are gone.
const Unlimited int64 = -1

// EnemyHitMargin is added to an enemy's radius when testing player bullets.
const EnemyHitMargin = 5.0

// Frame is the per-frame context handed to encounters.
// Collaborators are injected here instead of being stored on enemies.
type Frame struct {
	Now     int64         // Clock time in milliseconds
	Delta   float64       // Frame duration in seconds
	Spawner enemy.Spawner // Where volleys go
	Player  core.Vec2     // Player position, for aimed attacks
}

// Encounter is one wave in a stage.
type Encounter interface {
	// Name identifies the encounter in logs and snapshots.
	Name() string

	// Activate makes the encounter visible and ticking and records its start time.
	Activate(now int64)

	// Deactivate hides the encounter and stops it from ticking.
	Deactivate()

	// Active reports whether the encounter is visible and ticking.
	Active() bool

	// Tick advances every live enemy and updates the ended flag.
	Tick(f Frame)

	// Ended reports whether the encounter's completion rule has fired.
	Ended() bool

	// EndDelay is how long, in milliseconds, to wait after ending
	// before the next encounter is activated.
	EndDelay() int64

	// HitEnemy resolves a player bullet at pos. Returning true consumes it.
	HitEnemy(pos core.Vec2, radius float64) bool

	// Remaining returns how many enemies still count toward completion.
	Remaining() int

	// Kills returns how many enemies were destroyed.
	Kills() int

	// Score returns the points earned in this encounter.
	Score() int
}

// timer holds the duration bookkeeping shared by encounter variants.
type timer struct {
	duration  int64
	endDelay  int64
	startedAt int64
	active    bool
	ended     bool
}

func (t *timer) activate(now int64) {
	t.active = true
	t.startedAt = now
}

// expired reports whether a limited duration budget has run out.
func (t *timer) expired(now int64) bool {
	return t.duration != Unlimited && now-t.startedAt >= t.duration
}

package encounter

import (
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/enemy"
)

// PointsPerOrb is awarded for every orb destroyed.
const PointsPerOrb = 100

// Roster is an encounter made of a fixed list of orbs.
// It ends when every orb is killed or its duration budget runs out.
type Roster struct {
	timer
	name      string
	enemies   []*enemy.Orb
	remaining int
}

// NewRoster creates an inactive roster encounter.
// durationMs may be Unlimited.
func NewRoster(name string, enemies []*enemy.Orb, durationMs, endDelayMs int64) *Roster {
	return &Roster{
		timer:     timer{duration: durationMs, endDelay: endDelayMs},
		name:      name,
		enemies:   enemies,
		remaining: len(enemies),
	}
}

func (r *Roster) Name() string       { return r.name }
func (r *Roster) Activate(now int64) { r.activate(now) }
func (r *Roster) Deactivate()        { r.active = false }
func (r *Roster) Active() bool       { return r.active }
func (r *Roster) Ended() bool        { return r.ended }
func (r *Roster) EndDelay() int64    { return r.endDelay }
func (r *Roster) Remaining() int     { return r.remaining }

// Enemies returns the roster's orbs. Callers must not modify the slice.
func (r *Roster) Enemies() []*enemy.Orb { return r.enemies }

// Tick advances every live orb and recomputes the remaining count.
func (r *Roster) Tick(f Frame) {
	if !r.active {
		return
	}

	remaining := 0
	for _, e := range r.enemies {
		if e.IsKilled() {
			continue
		}
		remaining++
		e.Tick(f.Now, f.Delta, f.Spawner)
	}
	r.remaining = remaining

	if remaining == 0 || r.expired(f.Now) {
		r.ended = true
	}
}

// HitEnemy damages the first live orb touching the bullet.
func (r *Roster) HitEnemy(pos core.Vec2, radius float64) bool {
	if !r.active {
		return false
	}
	for _, e := range r.enemies {
		if e.IsKilled() {
			continue
		}
		if core.Hit(e.Position(), e.HitRadius()+EnemyHitMargin, pos, radius) && e.Hit() {
			return true
		}
	}
	return false
}

// Kills returns the number of orbs destroyed.
func (r *Roster) Kills() int {
	kills := 0
	for _, e := range r.enemies {
		if e.IsKilled() {
			kills++
		}
	}
	return kills
}

// Score returns PointsPerOrb for every orb destroyed.
func (r *Roster) Score() int {
	return r.Kills() * PointsPerOrb
}

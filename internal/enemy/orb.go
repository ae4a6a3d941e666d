// Package enemy implements per-enemy movement and attack state machines.
package enemy

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
)

// Orb tuning.
const (
	ApproachSpeed      = 80.0  // units per second while moving to the goal
	CaptureFactor      = 400.0 // goal capture threshold: distSq <= CaptureFactor * dt
	DefaultCooldownMs  = 500
	DefaultBulletSpeed = 50.0
	VolleySize         = 9
	VolleySpacingDeg   = 40.0
	OffsetStepDeg      = 5.0
)

// State is the lifecycle stage of an enemy.
type State int

const (
	StateApproaching State = iota // Moving toward the goal, not attacking
	StateActive                   // At the goal, attacking
	StateKilled                   // Health exhausted; terminal
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateApproaching:
		return "approaching"
	case StateActive:
		return "active"
	case StateKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Spawner accepts projectile spawn requests. *bullet.Pool implements it.
type Spawner interface {
	Spawn(k bullet.Kind, pos, vel core.Vec2) error
}

// Config describes one orb enemy.
type Config struct {
	Start       core.Vec2
	Goal        core.Vec2
	Health      int         // 0 means 1
	HitRadius   float64     // Added to the bullet radius and hit margin
	CooldownMs  int64       // 0 means DefaultCooldownMs
	BulletSpeed float64     // 0 means DefaultBulletSpeed
	Clockwise   bool        // Offset advances +5° per volley when set, -5° otherwise
	Bullet      bullet.Kind // Projectile kind of the ring volley
	Template    string      // Opaque visual handle
}

// Orb approaches its goal, then fires rotating ring volleys until killed.
type Orb struct {
	pos       core.Vec2
	goal      core.Vec2
	health    int
	hitRadius float64
	state     State
	visible   bool
	template  string

	kind        bullet.Kind
	cooldownMs  int64
	bulletSpeed float64
	clockwise   bool

	lastAttack  int64
	hasAttacked bool
	offset      float64 // degrees in [0, 360)
}

// NewOrb creates an orb in the approaching state at cfg.Start.
func NewOrb(cfg Config) (*Orb, error) {
	if !cfg.Bullet.Valid() {
		return nil, fmt.Errorf("enemy: %w: %s", bullet.ErrUnknownType, cfg.Bullet)
	}
	if cfg.Health < 0 {
		return nil, errors.New("enemy: health must be >= 0")
	}
	if cfg.Health == 0 {
		cfg.Health = 1
	}
	if cfg.CooldownMs <= 0 {
		cfg.CooldownMs = DefaultCooldownMs
	}
	if cfg.BulletSpeed == 0 {
		cfg.BulletSpeed = DefaultBulletSpeed
	}

	return &Orb{
		pos:         cfg.Start,
		goal:        cfg.Goal,
		health:      cfg.Health,
		hitRadius:   cfg.HitRadius,
		state:       StateApproaching,
		visible:     true,
		template:    cfg.Template,
		kind:        cfg.Bullet,
		cooldownMs:  cfg.CooldownMs,
		bulletSpeed: cfg.BulletSpeed,
		clockwise:   cfg.Clockwise,
	}, nil
}

// Tick advances the orb by one frame.
func (o *Orb) Tick(now int64, dt float64, sp Spawner) {
	switch o.state {
	case StateApproaching:
		var arrived bool
		o.pos, arrived = Approach(o.pos, o.goal, dt)
		if arrived {
			o.state = StateActive
		}
	case StateActive:
		o.attack(now, sp)
	}
}

// attack fires a ring volley once the cooldown has elapsed.
// The first volley fires as soon as the orb becomes active, and each later
// one fires at exactly one cooldown after the last (500 ms -> t=0, t=500).
func (o *Orb) attack(now int64, sp Spawner) {
	if o.hasAttacked && now-o.lastAttack < o.cooldownMs {
		return
	}

	Ring(sp, o.kind, o.pos, VolleySize, VolleySpacingDeg, o.offset, o.bulletSpeed)

	o.lastAttack = now
	o.hasAttacked = true
	if o.clockwise {
		o.offset = WrapDegrees(o.offset + OffsetStepDeg)
	} else {
		o.offset = WrapDegrees(o.offset - OffsetStepDeg)
	}
}

// Hit applies one point of damage. It returns false, changing nothing,
// once health is already 0.
func (o *Orb) Hit() bool {
	if o.health == 0 {
		return false
	}
	o.health--
	if o.health == 0 {
		o.state = StateKilled
		o.visible = false
	}
	return true
}

// IsEnabled reports whether the orb reached its goal and is attacking.
func (o *Orb) IsEnabled() bool { return o.state == StateActive }

// IsKilled reports whether the orb's health is exhausted.
func (o *Orb) IsKilled() bool { return o.state == StateKilled }

// GoalPosition returns where the orb moves before attacking.
func (o *Orb) GoalPosition() core.Vec2 { return o.goal }

// Position returns the current position.
func (o *Orb) Position() core.Vec2 { return o.pos }

// HitRadius returns the orb's own radius.
func (o *Orb) HitRadius() float64 { return o.hitRadius }

// Health returns remaining health.
func (o *Orb) Health() int { return o.health }

// State returns the lifecycle state.
func (o *Orb) State() State { return o.state }

// Visible reports whether the orb should be drawn.
func (o *Orb) Visible() bool { return o.visible }

// Template returns the orb's visual handle.
func (o *Orb) Template() string { return o.template }

// Offset returns the current volley angle offset in degrees.
func (o *Orb) Offset() float64 { return o.offset }

// Approach moves pos toward goal at ApproachSpeed for dt seconds.
// When the remaining squared distance is within CaptureFactor*dt the
// result snaps to goal and arrived is true. The threshold scales with the
// frame time; gameplay tuning depends on it.
func Approach(pos, goal core.Vec2, dt float64) (next core.Vec2, arrived bool) {
	bearing := pos.Bearing(goal)
	next = pos.Add(core.Polar(bearing, ApproachSpeed*dt))
	if next.DistSq(goal) <= CaptureFactor*dt {
		return goal, true
	}
	return next, false
}

// Ring spawns count projectiles from origin at angles i*spacing+offset
// (degrees) with the given speed. Exhausted pools drop individual
// projectiles; the number actually spawned is returned.
func Ring(sp Spawner, k bullet.Kind, origin core.Vec2, count int, spacingDeg, offsetDeg, speed float64) int {
	spawned := 0
	for i := 0; i < count; i++ {
		angle := (float64(i)*spacingDeg + offsetDeg) * math.Pi / 180
		if err := sp.Spawn(k, origin, core.Polar(angle, speed)); err == nil {
			spawned++
		}
	}
	return spawned
}

// WrapDegrees normalizes an angle into [0, 360).
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Package player implements the player ship: movement, spread fire and
// post-hit invulnerability.
package player

import (
	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/enemy"
)

// Player tuning
const (
	Speed             = 120.0 // units per second on each axis
	FireCooldownMs    = 90
	InvulnerableMs    = 1000
	BulletSpeed       = 300.0
	BlinkPeriodFrames = 4 // visible for half the period, hidden for the rest
)

// DefaultSpawn is where the player starts unless configured otherwise.
var DefaultSpawn = core.V(240, 230)

// muzzle is one barrel of the spread shot.
type muzzle struct {
	kind   bullet.Kind
	offset core.Vec2
	dx     float64
}

// spread is fired left to right on every shot.
var spread = [...]muzzle{
	{bullet.PlayerPrimary03, core.V(-12, -6), -20},
	{bullet.PlayerPrimary02, core.V(-10, -9), -10},
	{bullet.PlayerPrimary01, core.V(-4, -19), 0},
	{bullet.PlayerPrimary02, core.V(5, -9), 10},
	{bullet.PlayerPrimary03, core.V(11, -6), 20},
}

// Config describes the player ship.
type Config struct {
	Spawn    core.Vec2
	Template string
}

// Player is the controllable ship.
type Player struct {
	pos      core.Vec2
	spawn    core.Vec2
	template string
	visible  bool

	shot     bool
	lastShot int64

	hitOnce   bool
	lastHit   int64
	hitsTaken int
	blink     int // frames spent invulnerable
}

// New creates a player at its spawn point.
// A zero spawn uses DefaultSpawn.
func New(cfg Config) *Player {
	if cfg.Spawn == (core.Vec2{}) {
		cfg.Spawn = DefaultSpawn
	}
	p := &Player{spawn: core.ClampToArena(cfg.Spawn), template: cfg.Template}
	p.Reset()
	return p
}

// Reset puts the player back on its spawn point with no hits taken.
func (p *Player) Reset() {
	p.pos = p.spawn
	p.visible = true
	p.shot = false
	p.lastShot = 0
	p.hitOnce = false
	p.lastHit = 0
	p.hitsTaken = 0
	p.blink = 0
}

// Tick moves the player, fires when allowed and updates the blink.
func (p *Player) Tick(now int64, dt float64, in core.InputFrame, sp enemy.Spawner) {
	dir := in.Direction()
	p.pos = core.ClampToArena(p.pos.Add(dir.Scale(Speed * dt)))

	if in.Has(core.ActionFire) && (!p.shot || now-p.lastShot > FireCooldownMs) {
		p.fire(sp)
		p.shot = true
		p.lastShot = now
	}

	if p.Invulnerable(now) {
		p.blink++
		p.visible = p.blink%BlinkPeriodFrames < BlinkPeriodFrames/2
	} else {
		p.blink = 0
		p.visible = true
	}
}

// fire spawns the spread shot. Exhausted pools drop single bullets.
func (p *Player) fire(sp enemy.Spawner) {
	for _, m := range spread {
		_ = sp.Spawn(m.kind, p.pos.Add(m.offset), core.V(m.dx, -BulletSpeed))
	}
}

// Hit registers a hostile bullet. It returns false while invulnerable,
// in which case the bullet keeps flying.
func (p *Player) Hit(now int64) bool {
	if p.Invulnerable(now) {
		return false
	}
	p.hitOnce = true
	p.lastHit = now
	p.hitsTaken++
	p.blink = 0
	return true
}

// Invulnerable reports whether a recent hit still protects the player.
func (p *Player) Invulnerable(now int64) bool {
	return p.hitOnce && now-p.lastHit <= InvulnerableMs
}

// Position returns the ship position.
func (p *Player) Position() core.Vec2 { return p.pos }

// Visible reports whether the ship should be drawn this frame.
func (p *Player) Visible() bool { return p.visible }

// HitsTaken returns the number of accepted hits.
func (p *Player) HitsTaken() int { return p.hitsTaken }

// Template returns the ship visual handle.
func (p *Player) Template() string { return p.template }

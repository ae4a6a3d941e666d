package encounter

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/enemy"
)

// Boss defaults.
const (
	PointsPerBoss          = 1000
	DefaultBossEndDelayMs  = 1000
	DefaultRingCount       = 12
	DefaultRingCooldownMs  = 700
	DefaultFanCooldownMs   = 400
	DefaultFanSpreadDeg    = 15.0
	DefaultBossBulletSpeed = 60.0
)

// BossConfig describes the single body of a scripted encounter.
type BossConfig struct {
	Start          core.Vec2
	Goal           core.Vec2
	Health         int
	HitRadius      float64
	Bullet         bullet.Kind
	BulletSpeed    float64
	RingCount      int
	RingCooldownMs int64
	FanCooldownMs  int64
	FanSpreadDeg   float64
	Template       string
}

// Scripted is a boss fight. The boss approaches its goal while armored,
// then fires rotating rings; below half health it adds aimed fans.
// It ends when the boss dies or the duration budget runs out.
type Scripted struct {
	timer
	name string
	cfg  BossConfig

	pos     core.Vec2
	health  int
	state   enemy.State
	visible bool

	ringFired bool
	lastRing  int64
	fanFired  bool
	lastFan   int64
	offset    float64
}

// NewScripted creates an inactive boss encounter.
func NewScripted(name string, cfg BossConfig, durationMs, endDelayMs int64) (*Scripted, error) {
	if !cfg.Bullet.Valid() {
		return nil, fmt.Errorf("encounter: %w: %s", bullet.ErrUnknownType, cfg.Bullet)
	}
	if cfg.Health <= 0 {
		return nil, errors.New("encounter: boss health must be > 0")
	}
	if cfg.RingCount <= 0 {
		cfg.RingCount = DefaultRingCount
	}
	if cfg.RingCooldownMs <= 0 {
		cfg.RingCooldownMs = DefaultRingCooldownMs
	}
	if cfg.FanCooldownMs <= 0 {
		cfg.FanCooldownMs = DefaultFanCooldownMs
	}
	if cfg.FanSpreadDeg == 0 {
		cfg.FanSpreadDeg = DefaultFanSpreadDeg
	}
	if cfg.BulletSpeed == 0 {
		cfg.BulletSpeed = DefaultBossBulletSpeed
	}

	return &Scripted{
		timer:   timer{duration: durationMs, endDelay: endDelayMs},
		name:    name,
		cfg:     cfg,
		pos:     cfg.Start,
		health:  cfg.Health,
		state:   enemy.StateApproaching,
		visible: true,
	}, nil
}

func (s *Scripted) Name() string       { return s.name }
func (s *Scripted) Activate(now int64) { s.activate(now) }
func (s *Scripted) Deactivate()        { s.active = false }
func (s *Scripted) Active() bool       { return s.active }
func (s *Scripted) Ended() bool        { return s.ended }
func (s *Scripted) EndDelay() int64    { return s.endDelay }

// Position returns the boss position.
func (s *Scripted) Position() core.Vec2 { return s.pos }

// Health returns the boss's remaining health.
func (s *Scripted) Health() int { return s.health }

// State returns the boss lifecycle state.
func (s *Scripted) State() enemy.State { return s.state }

// Visible reports whether the boss should be drawn.
func (s *Scripted) Visible() bool { return s.visible }

// Template returns the boss visual handle.
func (s *Scripted) Template() string { return s.cfg.Template }

// Enraged reports whether the boss is at or below half health.
func (s *Scripted) Enraged() bool {
	return s.health*2 <= s.cfg.Health
}

// Remaining is 1 until the boss dies.
func (s *Scripted) Remaining() int {
	if s.state == enemy.StateKilled {
		return 0
	}
	return 1
}

// Kills is 1 once the boss is dead.
func (s *Scripted) Kills() int {
	return 1 - s.Remaining()
}

// Score returns PointsPerBoss once the boss is dead.
func (s *Scripted) Score() int {
	return s.Kills() * PointsPerBoss
}

// Tick moves or attacks with the boss and applies the completion rule.
func (s *Scripted) Tick(f Frame) {
	if !s.active {
		return
	}

	switch s.state {
	case enemy.StateApproaching:
		var arrived bool
		s.pos, arrived = enemy.Approach(s.pos, s.cfg.Goal, f.Delta)
		if arrived {
			s.state = enemy.StateActive
		}
	case enemy.StateActive:
		s.attack(f)
	}

	if s.state == enemy.StateKilled || s.expired(f.Now) {
		s.ended = true
	}
}

func (s *Scripted) attack(f Frame) {
	if !s.ringFired || f.Now-s.lastRing >= s.cfg.RingCooldownMs {
		spacing := 360.0 / float64(s.cfg.RingCount)
		enemy.Ring(f.Spawner, s.cfg.Bullet, s.pos, s.cfg.RingCount, spacing, s.offset, s.cfg.BulletSpeed)
		s.ringFired = true
		s.lastRing = f.Now
		s.offset = enemy.WrapDegrees(s.offset + spacing/2)
	}

	if !s.Enraged() {
		return
	}
	if !s.fanFired || f.Now-s.lastFan >= s.cfg.FanCooldownMs {
		aim := s.pos.Bearing(f.Player) * 180 / math.Pi
		enemy.Ring(f.Spawner, s.cfg.Bullet, s.pos, 3, s.cfg.FanSpreadDeg, aim-s.cfg.FanSpreadDeg, s.cfg.BulletSpeed*1.5)
		s.fanFired = true
		s.lastFan = f.Now
	}
}

// HitEnemy absorbs any bullet inside the boss hitbox. Damage only lands
// once the boss has reached its goal.
func (s *Scripted) HitEnemy(pos core.Vec2, radius float64) bool {
	if !s.active || s.state == enemy.StateKilled {
		return false
	}
	if !core.Hit(s.pos, s.cfg.HitRadius+EnemyHitMargin, pos, radius) {
		return false
	}
	if s.state == enemy.StateActive {
		s.health--
		if s.health == 0 {
			s.state = enemy.StateKilled
			s.visible = false
			s.ended = true
		}
	}
	return true
}

package enemy

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
)

type spawnCall struct {
	kind bullet.Kind
	pos  core.Vec2
	vel  core.Vec2
}

// recordingSpawner captures spawn requests and optionally refuses them.
type recordingSpawner struct {
	calls []spawnCall
	err   error
}

func (r *recordingSpawner) Spawn(k bullet.Kind, pos, vel core.Vec2) error {
	if r.err != nil {
		return r.err
	}
	r.calls = append(r.calls, spawnCall{kind: k, pos: pos, vel: vel})
	return nil
}

func newActiveOrb(t *testing.T, cfg Config) *Orb {
	t.Helper()
	cfg.Start = cfg.Goal
	o, err := NewOrb(cfg)
	if err != nil {
		t.Fatalf("NewOrb() failed: %v", err)
	}
	// Starting on the goal captures on the first tick
	o.Tick(0, 1.0/60.0, &recordingSpawner{})
	if o.State() != StateActive {
		t.Fatalf("orb should be active, got %s", o.State())
	}
	return o
}

func TestNewOrbDefaults(t *testing.T) {
	o, err := NewOrb(Config{Start: core.V(10, 10), Goal: core.V(100, 100), Bullet: bullet.OrbBullet})
	if err != nil {
		t.Fatalf("NewOrb() failed: %v", err)
	}

	if o.State() != StateApproaching {
		t.Errorf("initial state = %s, expected approaching", o.State())
	}
	if o.Health() != 1 {
		t.Errorf("default health = %d, expected 1", o.Health())
	}
	if o.IsEnabled() || o.IsKilled() {
		t.Error("new orb should be neither enabled nor killed")
	}
	if o.GoalPosition() != core.V(100, 100) {
		t.Errorf("GoalPosition() = %v", o.GoalPosition())
	}
	if !o.Visible() {
		t.Error("new orb should be visible")
	}
}

func TestNewOrbRejectsBadConfig(t *testing.T) {
	if _, err := NewOrb(Config{Bullet: bullet.Kind(77)}); !errors.Is(err, bullet.ErrUnknownType) {
		t.Errorf("invalid bullet kind error = %v, expected ErrUnknownType", err)
	}
	if _, err := NewOrb(Config{Bullet: bullet.OrbBullet, Health: -2}); err == nil {
		t.Error("negative health should be rejected")
	}
}

func TestApproachCapture(t *testing.T) {
	const dt = 1.0 / 60.0
	goal := core.V(240, 60)
	start := core.V(240, 560) // 500 units below the goal

	o, err := NewOrb(Config{Start: start, Goal: goal, Bullet: bullet.OrbBullet})
	if err != nil {
		t.Fatalf("NewOrb() failed: %v", err)
	}
	sp := &recordingSpawner{}

	ticks := 0
	for o.State() == StateApproaching && ticks < 1000 {
		before := o.Position()
		o.Tick(int64(ticks*16), dt, sp)
		ticks++

		// Replay the movement rule to decide whether this tick must capture
		next := before.Add(core.Polar(before.Bearing(goal), ApproachSpeed*dt))
		shouldCapture := next.DistSq(goal) <= CaptureFactor*dt

		if shouldCapture != (o.State() == StateActive) {
			t.Fatalf("tick %d: capture = %v, state = %s", ticks, shouldCapture, o.State())
		}
		if !shouldCapture && o.Position() != next {
			t.Fatalf("tick %d: position %v, expected %v", ticks, o.Position(), next)
		}
	}

	if o.State() != StateActive {
		t.Fatalf("orb never reached the goal after %d ticks", ticks)
	}
	if o.Position() != goal {
		t.Errorf("orb should snap exactly to goal, at %v", o.Position())
	}
	if len(sp.calls) != 0 {
		t.Errorf("no attack should fire while approaching or on the capture tick, got %d spawns", len(sp.calls))
	}

	// 500 units at 80/s is 375 frames; capture happens within ~2 frames of the goal
	if ticks < 370 || ticks > 376 {
		t.Errorf("capture took %d ticks, expected about 375", ticks)
	}
}

func TestVolleyPattern(t *testing.T) {
	o := newActiveOrb(t, Config{Goal: core.V(200, 80), Bullet: bullet.OrbBullet, Clockwise: true})
	sp := &recordingSpawner{}

	o.Tick(0, 1.0/60.0, sp)
	if len(sp.calls) != VolleySize {
		t.Fatalf("first volley spawned %d, expected %d", len(sp.calls), VolleySize)
	}

	for i, c := range sp.calls {
		angle := float64(i) * 40 * math.Pi / 180
		want := core.V(math.Cos(angle)*DefaultBulletSpeed, math.Sin(angle)*DefaultBulletSpeed)

		if c.kind != bullet.OrbBullet {
			t.Errorf("bullet %d kind = %s", i, c.kind)
		}
		if c.pos != core.V(200, 80) {
			t.Errorf("bullet %d spawned at %v, expected orb position", i, c.pos)
		}
		if math.Abs(c.vel.X-want.X) > 1e-9 || math.Abs(c.vel.Y-want.Y) > 1e-9 {
			t.Errorf("bullet %d velocity = %v, expected %v", i, c.vel, want)
		}
	}
	if o.Offset() != 5 {
		t.Errorf("offset after first volley = %f, expected 5", o.Offset())
	}

	// Cooldown not elapsed
	o.Tick(499, 1.0/60.0, sp)
	if len(sp.calls) != VolleySize {
		t.Fatalf("volley fired during cooldown: %d spawns", len(sp.calls))
	}

	o.Tick(500, 1.0/60.0, sp)
	if len(sp.calls) != 2*VolleySize {
		t.Fatalf("second volley missing: %d spawns", len(sp.calls))
	}
	second := sp.calls[VolleySize]
	angle := 5 * math.Pi / 180
	if math.Abs(second.vel.X-math.Cos(angle)*DefaultBulletSpeed) > 1e-9 {
		t.Errorf("second volley should start at 5°, velocity %v", second.vel)
	}
}

func TestOffsetWrapsCounterClockwise(t *testing.T) {
	o := newActiveOrb(t, Config{Goal: core.V(100, 50), Bullet: bullet.OrbBullet})
	sp := &recordingSpawner{}

	o.Tick(0, 1.0/60.0, sp)
	if o.Offset() != 355 {
		t.Errorf("offset after first counter-clockwise volley = %f, expected 355", o.Offset())
	}

	for i := 1; i <= 72; i++ {
		o.Tick(int64(i*DefaultCooldownMs), 1.0/60.0, sp)
	}
	if math.Abs(o.Offset()-355) > 1e-9 {
		t.Errorf("offset after full revolution = %f, expected 355", o.Offset())
	}
}

func TestVolleyDropsOnExhaustedPool(t *testing.T) {
	o := newActiveOrb(t, Config{Goal: core.V(100, 50), Bullet: bullet.OrbBullet})
	sp := &recordingSpawner{err: bullet.ErrPoolExhausted}

	o.Tick(0, 1.0/60.0, sp)

	// Volley is considered fired even when every bullet was dropped
	if o.Offset() != 355 {
		t.Errorf("offset = %f, expected attack to complete", o.Offset())
	}
}

func TestHitAndKill(t *testing.T) {
	o := newActiveOrb(t, Config{Goal: core.V(100, 50), Bullet: bullet.OrbBullet, Health: 2})

	if !o.Hit() {
		t.Fatal("first hit should be accepted")
	}
	if o.Health() != 1 || o.IsKilled() {
		t.Errorf("after one hit: health %d, killed %v", o.Health(), o.IsKilled())
	}

	if !o.Hit() {
		t.Fatal("second hit should be accepted")
	}
	if !o.IsKilled() || o.Visible() || o.IsEnabled() {
		t.Errorf("orb at 0 health should be killed and hidden, state %s", o.State())
	}

	if o.Hit() {
		t.Error("hit on a killed orb should return false")
	}
	if o.Health() != 0 {
		t.Errorf("health went negative: %d", o.Health())
	}

	sp := &recordingSpawner{}
	o.Tick(10_000, 1.0/60.0, sp)
	if len(sp.calls) != 0 {
		t.Error("killed orb must not attack")
	}
}

func TestHitWhileApproaching(t *testing.T) {
	o, _ := NewOrb(Config{Start: core.V(0, 0), Goal: core.V(300, 100), Bullet: bullet.OrbBullet})

	if !o.Hit() {
		t.Fatal("approaching orb should accept hits")
	}
	if !o.IsKilled() {
		t.Error("orb with 1 health should be killed")
	}

	before := o.Position()
	o.Tick(0, 1.0/60.0, &recordingSpawner{})
	if o.Position() != before {
		t.Error("killed orb must not move")
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{365, 5},
		{-5, 355},
		{720, 0},
		{-360, 0},
	}

	for _, tc := range tests {
		if got := WrapDegrees(tc.in); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("WrapDegrees(%f) = %f, expected %f", tc.in, got, tc.expected)
		}
	}
}

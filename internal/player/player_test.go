package player

import (
	"testing"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/core"
)

const dt = 1.0 / 60.0

type spawn struct {
	kind     bullet.Kind
	pos, vel core.Vec2
}

type recorder struct {
	spawns []spawn
}

func (r *recorder) Spawn(k bullet.Kind, pos, vel core.Vec2) error {
	r.spawns = append(r.spawns, spawn{k, pos, vel})
	return nil
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestNewDefaults(t *testing.T) {
	p := New(Config{})
	if p.Position() != DefaultSpawn {
		t.Errorf("Position() = %v, expected %v", p.Position(), DefaultSpawn)
	}
	if !p.Visible() || p.HitsTaken() != 0 {
		t.Error("new player should be visible with no hits")
	}
}

func TestMovementClamped(t *testing.T) {
	p := New(Config{Spawn: core.V(470, 10)})
	rec := &recorder{}

	p.Tick(0, 1, input(core.ActionRight, core.ActionUp), rec)
	if p.Position() != core.V(core.ArenaWidth, 0) {
		t.Errorf("Position() = %v, expected clamp to the top-right corner", p.Position())
	}

	p.Tick(0, 0.5, input(core.ActionLeft, core.ActionDown), rec)
	want := core.V(core.ArenaWidth-60, 60)
	if p.Position() != want {
		t.Errorf("Position() = %v, expected %v", p.Position(), want)
	}
}

func TestFireSpread(t *testing.T) {
	p := New(Config{Spawn: core.V(100, 200)})
	rec := &recorder{}

	p.Tick(0, 0, input(core.ActionFire), rec)
	if len(rec.spawns) != len(spread) {
		t.Fatalf("spawned %d bullets, expected %d", len(rec.spawns), len(spread))
	}

	wantKinds := []bullet.Kind{
		bullet.PlayerPrimary03, bullet.PlayerPrimary02, bullet.PlayerPrimary01,
		bullet.PlayerPrimary02, bullet.PlayerPrimary03,
	}
	for i, s := range rec.spawns {
		if s.kind != wantKinds[i] {
			t.Errorf("bullet %d kind = %s, expected %s", i, s.kind, wantKinds[i])
		}
		if s.vel.Y != -BulletSpeed {
			t.Errorf("bullet %d dy = %v, expected %v", i, s.vel.Y, -BulletSpeed)
		}
		if !s.kind.PlayerOwned() {
			t.Errorf("bullet %d kind %s should be player owned", i, s.kind)
		}
	}
	if rec.spawns[2].pos != core.V(96, 181) {
		t.Errorf("center bullet at %v, expected (96,181)", rec.spawns[2].pos)
	}
	if rec.spawns[0].vel.X != -20 || rec.spawns[4].vel.X != 20 {
		t.Error("outer bullets should fan out at dx -20 and 20")
	}
}

func TestFireCooldown(t *testing.T) {
	p := New(Config{})
	rec := &recorder{}
	fire := input(core.ActionFire)

	tests := []struct {
		now   int64
		shots int
	}{
		{0, 1},
		{50, 1},
		{90, 1},
		{91, 2},
		{150, 2},
		{182, 3},
	}
	for _, tt := range tests {
		p.Tick(tt.now, 0, fire, rec)
		if got := len(rec.spawns) / len(spread); got != tt.shots {
			t.Errorf("at t=%d: %d shots, expected %d", tt.now, got, tt.shots)
		}
	}

	p.Tick(1000, 0, input(), rec)
	if len(rec.spawns) != 3*len(spread) {
		t.Error("no fire input should not shoot")
	}
}

func TestHitInvulnerability(t *testing.T) {
	p := New(Config{})

	if !p.Hit(0) {
		t.Fatal("first hit should be accepted, even at t=0")
	}
	if p.Hit(500) || p.Hit(1000) {
		t.Error("hits within 1000ms should be rejected")
	}
	if !p.Hit(1001) {
		t.Error("hit after the window should be accepted")
	}
	if p.HitsTaken() != 2 {
		t.Errorf("HitsTaken() = %d, expected 2", p.HitsTaken())
	}
}

func TestBlink(t *testing.T) {
	p := New(Config{})
	rec := &recorder{}
	p.Hit(0)

	var pattern []bool
	for i := 1; i <= 8; i++ {
		p.Tick(int64(i*16), dt, input(), rec)
		pattern = append(pattern, p.Visible())
	}
	want := []bool{true, false, false, true, true, false, false, true}
	for i := range want {
		if pattern[i] != want[i] {
			t.Fatalf("blink pattern = %v, expected %v", pattern, want)
		}
	}

	p.Tick(1100, dt, input(), rec)
	if !p.Visible() {
		t.Error("player should be visible once invulnerability ends")
	}
}

func TestReset(t *testing.T) {
	p := New(Config{Spawn: core.V(50, 50)})
	p.Tick(0, 1, input(core.ActionRight), &recorder{})
	p.Hit(10)

	p.Reset()
	if p.Position() != core.V(50, 50) || p.HitsTaken() != 0 || p.Invulnerable(20) {
		t.Error("Reset should restore spawn state")
	}
}

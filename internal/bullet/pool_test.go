package bullet

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// fakeTargets records collision queries and answers with fixed results.
type fakeTargets struct {
	player      core.Vec2
	acceptEnemy bool
	acceptHit   bool
	enemyCalls  int
	playerCalls int
}

func (f *fakeTargets) PlayerPosition() core.Vec2 { return f.player }

func (f *fakeTargets) HitPlayer() bool {
	f.playerCalls++
	return f.acceptHit
}

func (f *fakeTargets) HitEnemy(pos core.Vec2, radius float64) bool {
	f.enemyCalls++
	return f.acceptEnemy
}

func newTestPool(t *testing.T, configs map[Kind]TypeConfig) *Pool {
	t.Helper()
	p, err := NewPool(configs, nil)
	if err != nil {
		t.Fatalf("NewPool() failed: %v", err)
	}
	return p
}

func checkInvariant(t *testing.T, p *Pool) {
	t.Helper()
	for _, k := range Kinds() {
		if p.Alive(k)+p.Dead(k) != p.Capacity(k) {
			t.Errorf("%s: alive %d + dead %d != capacity %d", k, p.Alive(k), p.Dead(k), p.Capacity(k))
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q) failed: %v", k.String(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, expected %v", k.String(), got, k)
		}
	}

	if _, err := ParseKind("laser"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("ParseKind(laser) error = %v, expected ErrUnknownType", err)
	}
}

func TestKindOwnership(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected bool
	}{
		{PlayerPrimary01, true},
		{PlayerPrimary02, true},
		{PlayerPrimary03, true},
		{OrbBullet, false},
		{BossBullet, false},
		{Kind(99), false},
	}

	for _, tc := range tests {
		if got := tc.kind.PlayerOwned(); got != tc.expected {
			t.Errorf("%s.PlayerOwned() = %v, expected %v", tc.kind, got, tc.expected)
		}
	}
}

func TestNewPoolRejectsBadConfig(t *testing.T) {
	if _, err := NewPool(map[Kind]TypeConfig{OrbBullet: {Capacity: -1}}, nil); err == nil {
		t.Error("negative capacity should be rejected")
	}
	if _, err := NewPool(map[Kind]TypeConfig{OrbBullet: {Radius: -1}}, nil); err == nil {
		t.Error("negative radius should be rejected")
	}
	if _, err := NewPool(map[Kind]TypeConfig{Kind(42): {}}, nil); !errors.Is(err, ErrUnknownType) {
		t.Errorf("invalid kind error = %v, expected ErrUnknownType", err)
	}
}

func TestSpawnExhaustion(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 2}})

	for i := 0; i < 2; i++ {
		if err := p.Spawn(OrbBullet, core.V(100, 100), core.V(0, 0)); err != nil {
			t.Fatalf("Spawn #%d failed: %v", i+1, err)
		}
	}

	err := p.Spawn(OrbBullet, core.V(100, 100), core.V(0, 0))
	if !errors.Is(err, ErrPoolExhausted) {
		t.Fatalf("third Spawn error = %v, expected ErrPoolExhausted", err)
	}

	if p.Alive(OrbBullet) != 2 || p.Dead(OrbBullet) != 0 {
		t.Errorf("expected 2 alive / 0 dead, got %d / %d", p.Alive(OrbBullet), p.Dead(OrbBullet))
	}
	if p.Dropped(OrbBullet) != 1 {
		t.Errorf("Dropped() = %d, expected 1", p.Dropped(OrbBullet))
	}
	checkInvariant(t, p)
}

func TestSpawnUnconfiguredKind(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 1}})

	if err := p.Spawn(BossBullet, core.V(1, 1), core.V(0, 0)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Spawn on unconfigured kind error = %v, expected ErrUnknownType", err)
	}
	if err := p.Spawn(Kind(-1), core.V(1, 1), core.V(0, 0)); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Spawn on invalid kind error = %v, expected ErrUnknownType", err)
	}
}

func TestSpawnSetsState(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 1, Template: "*"}})

	if err := p.Spawn(OrbBullet, core.V(10, 20), core.V(3, 4)); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	var seen []Projectile
	p.ForEachAlive(func(k Kind, pr Projectile) {
		if k != OrbBullet {
			t.Errorf("unexpected kind %s", k)
		}
		seen = append(seen, pr)
	})

	if len(seen) != 1 {
		t.Fatalf("expected 1 live projectile, got %d", len(seen))
	}
	if seen[0].Pos != core.V(10, 20) || seen[0].Vel != core.V(3, 4) || !seen[0].Visible {
		t.Errorf("unexpected projectile state %+v", seen[0])
	}
	if p.Template(OrbBullet) != "*" {
		t.Errorf("Template() = %q, expected *", p.Template(OrbBullet))
	}
}

func TestTickMovesProjectiles(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 1}})
	targets := &fakeTargets{player: core.V(400, 250)}

	p.Spawn(OrbBullet, core.V(100, 100), core.V(60, -30))
	p.Tick(0.5, targets)

	p.ForEachAlive(func(_ Kind, pr Projectile) {
		if pr.Pos != core.V(130, 85) {
			t.Errorf("position after tick = %v, expected (130, 85)", pr.Pos)
		}
	})
	checkInvariant(t, p)
}

func TestTickArenaExit(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{
		OrbBullet:       {Capacity: 4},
		PlayerPrimary01: {Capacity: 1},
	})
	targets := &fakeTargets{player: core.V(240, 135)}

	p.Spawn(OrbBullet, core.V(1, 100), core.V(-10, 0))   // leaves left
	p.Spawn(OrbBullet, core.V(100, 1), core.V(0, -10))   // leaves top
	p.Spawn(OrbBullet, core.V(479, 100), core.V(10, 0))  // leaves right
	p.Spawn(OrbBullet, core.V(100, 200), core.V(0, 10))  // stays
	p.Spawn(PlayerPrimary01, core.V(50, 1), core.V(0, -300))

	p.Tick(1.0/5.0, targets)

	if p.Alive(OrbBullet) != 1 {
		t.Errorf("expected 1 orb bullet alive, got %d", p.Alive(OrbBullet))
	}
	if p.Alive(PlayerPrimary01) != 0 {
		t.Errorf("expected player bullet to exit, got %d alive", p.Alive(PlayerPrimary01))
	}
	if targets.enemyCalls != 0 {
		t.Errorf("exited bullets must not be collision-tested, got %d enemy calls", targets.enemyCalls)
	}
	checkInvariant(t, p)

	// An exited bullet never comes back without a new Spawn
	for i := 0; i < 10; i++ {
		p.Tick(1.0/60.0, targets)
	}
	if p.Alive(PlayerPrimary01) != 0 {
		t.Error("retired projectile reappeared")
	}
	checkInvariant(t, p)
}

func TestTickPlayerBulletHitsEnemy(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{PlayerPrimary01: {Capacity: 3, Radius: 2}})
	targets := &fakeTargets{player: core.V(240, 250), acceptEnemy: true}

	for i := 0; i < 3; i++ {
		p.Spawn(PlayerPrimary01, core.V(100, 100), core.V(0, -1))
	}
	p.Tick(1.0/60.0, targets)

	if targets.enemyCalls != 3 {
		t.Errorf("expected 3 enemy queries, got %d", targets.enemyCalls)
	}
	if targets.playerCalls != 0 {
		t.Errorf("player bullets must not query the player, got %d", targets.playerCalls)
	}
	if p.Alive(PlayerPrimary01) != 0 {
		t.Errorf("accepted hits should retire bullets, %d still alive", p.Alive(PlayerPrimary01))
	}
	checkInvariant(t, p)
}

func TestTickHostileBulletVsPlayer(t *testing.T) {
	tests := []struct {
		name      string
		bulletPos core.Vec2
		accept    bool
		wantCalls int
		wantAlive int
	}{
		{"inside margin accepted", core.V(105, 100), true, 1, 0},
		{"inside margin rejected", core.V(105, 100), false, 1, 1},
		{"on margin edge", core.V(106, 100), true, 1, 0},
		{"outside margin", core.V(106.5, 100), true, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// radius 2 + margin 4 = 6
			p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 1, Radius: 2}})
			targets := &fakeTargets{player: core.V(100, 100), acceptHit: tc.accept}

			p.Spawn(OrbBullet, tc.bulletPos, core.V(0, 0))
			p.Tick(1.0/60.0, targets)

			if targets.playerCalls != tc.wantCalls {
				t.Errorf("HitPlayer calls = %d, expected %d", targets.playerCalls, tc.wantCalls)
			}
			if p.Alive(OrbBullet) != tc.wantAlive {
				t.Errorf("alive = %d, expected %d", p.Alive(OrbBullet), tc.wantAlive)
			}
			if targets.enemyCalls != 0 {
				t.Error("hostile bullets must not query enemies")
			}
			checkInvariant(t, p)
		})
	}
}

func TestTickCompactionKeepsSurvivors(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 6}})
	targets := &fakeTargets{player: core.V(470, 260)}

	// Indices 0, 2, 3 and 5 exit; 1 and 4 survive
	xs := []float64{-5, 10, -5, -5, 20, -5}
	for _, x := range xs {
		vel := core.V(0, 0)
		pos := core.V(x, 100)
		if x < 0 {
			pos = core.V(1, 100)
			vel = core.V(-600, 0)
		}
		p.Spawn(OrbBullet, pos, vel)
	}

	p.Tick(1.0/60.0, targets)

	if p.Alive(OrbBullet) != 2 {
		t.Fatalf("expected 2 survivors, got %d", p.Alive(OrbBullet))
	}
	survivors := map[float64]bool{}
	p.ForEachAlive(func(_ Kind, pr Projectile) {
		survivors[pr.Pos.X] = true
		if !pr.Visible {
			t.Error("survivor should stay visible")
		}
	})
	if !survivors[10] || !survivors[20] {
		t.Errorf("wrong survivors: %v", survivors)
	}
	checkInvariant(t, p)
}

func TestReset(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{OrbBullet: {Capacity: 3}})
	for i := 0; i < 4; i++ {
		p.Spawn(OrbBullet, core.V(10, 10), core.V(0, 0))
	}

	p.Reset()

	if p.Alive(OrbBullet) != 0 || p.Dead(OrbBullet) != 3 {
		t.Errorf("after Reset expected 0 alive / 3 dead, got %d / %d", p.Alive(OrbBullet), p.Dead(OrbBullet))
	}
	if p.Dropped(OrbBullet) != 0 {
		t.Errorf("Reset should clear drop counter, got %d", p.Dropped(OrbBullet))
	}
}

func TestZeroCapacityKind(t *testing.T) {
	p := newTestPool(t, map[Kind]TypeConfig{BossBullet: {Capacity: 0}})

	if err := p.Spawn(BossBullet, core.V(1, 1), core.V(0, 0)); !errors.Is(err, ErrPoolExhausted) {
		t.Errorf("zero capacity Spawn error = %v, expected ErrPoolExhausted", err)
	}
	checkInvariant(t, p)
}

package bullet

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/core"
)

// PlayerCaptureMargin is added to a hostile bullet's radius when it is
// tested against the player position.
const PlayerCaptureMargin = 4.0

// TypeConfig is the static configuration of one projectile kind.
type TypeConfig struct {
	Template string // Opaque visual handle, interpreted by the renderer only
	Capacity int    // Number of preallocated slots
	Radius   int    // Hit radius in world units
}

// Projectile is one pooled slot.
type Projectile struct {
	Pos     core.Vec2
	Vel     core.Vec2
	Visible bool
}

// Targets is what live projectiles collide with during a tick.
type Targets interface {
	// PlayerPosition returns the player's current position.
	PlayerPosition() core.Vec2

	// HitPlayer reports a hostile bullet touching the player.
	// Returning true consumes the bullet.
	HitPlayer() bool

	// HitEnemy reports a player bullet at pos with the given radius.
	// Returning true consumes the bullet.
	HitEnemy(pos core.Vec2, radius float64) bool
}

type entry struct {
	cfg     TypeConfig
	alive   []Projectile
	dead    []Projectile
	dropped int
}

// Pool stores the projectiles of every configured kind.
// A Pool is not safe for concurrent use; the frame driver serializes access.
type Pool struct {
	entries [kindCount]*entry
	removal []int
	logger  *log.Logger
}

// NewPool preallocates every configured kind.
// Kinds absent from configs stay unconfigured and reject Spawn with ErrUnknownType.
func NewPool(configs map[Kind]TypeConfig, logger *log.Logger) (*Pool, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Pool{logger: logger}

	maxCap := 0
	for k, cfg := range configs {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: %s", ErrUnknownType, k)
		}
		if cfg.Capacity < 0 {
			return nil, fmt.Errorf("bullet: %s: capacity must be >= 0, got %d", k, cfg.Capacity)
		}
		if cfg.Radius < 0 {
			return nil, fmt.Errorf("bullet: %s: radius must be >= 0, got %d", k, cfg.Radius)
		}

		e := &entry{
			cfg:   cfg,
			alive: make([]Projectile, 0, cfg.Capacity),
			dead:  make([]Projectile, cfg.Capacity),
		}
		p.entries[k] = e
		if cfg.Capacity > maxCap {
			maxCap = cfg.Capacity
		}
	}
	p.removal = make([]int, 0, maxCap)

	return p, nil
}

func (p *Pool) lookup(k Kind) (*entry, error) {
	if !k.Valid() || p.entries[k] == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, k)
	}
	return p.entries[k], nil
}

// Spawn moves one free slot of kind k to the alive list at pos with velocity vel.
// It returns ErrPoolExhausted when no slot is free.
func (p *Pool) Spawn(k Kind, pos, vel core.Vec2) error {
	e, err := p.lookup(k)
	if err != nil {
		return err
	}

	n := len(e.dead)
	if n == 0 {
		e.dropped++
		p.logger.Debug("projectile dropped", "kind", k, "capacity", e.cfg.Capacity)
		return fmt.Errorf("%w: %s", ErrPoolExhausted, k)
	}

	pr := e.dead[n-1]
	e.dead = e.dead[:n-1]
	pr.Pos = pos
	pr.Vel = vel
	pr.Visible = true
	e.alive = append(e.alive, pr)
	return nil
}

// Tick moves every live projectile by vel*dt, then retires the ones that
// left the arena or were consumed by a target.
func (p *Pool) Tick(dt float64, targets Targets) {
	playerPos := targets.PlayerPosition()

	for k, e := range p.entries {
		if e == nil {
			continue
		}
		kind := Kind(k)
		radius := float64(e.cfg.Radius)

		// Collect first, compact after, so scan indices stay valid
		p.removal = p.removal[:0]
		for i := range e.alive {
			pr := &e.alive[i]
			pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))

			switch {
			case core.OutOfArena(pr.Pos):
				p.removal = append(p.removal, i)
			case kind.PlayerOwned():
				if targets.HitEnemy(pr.Pos, radius) {
					p.removal = append(p.removal, i)
				}
			default:
				if core.Hit(playerPos, PlayerCaptureMargin, pr.Pos, radius) && targets.HitPlayer() {
					p.removal = append(p.removal, i)
				}
			}
		}

		// Descending order: each swap only touches indices above the next one
		for j := len(p.removal) - 1; j >= 0; j-- {
			p.retire(e, p.removal[j])
		}
	}
}

// retire swaps alive[i] with the last alive projectile and moves it to dead.
func (p *Pool) retire(e *entry, i int) {
	last := len(e.alive) - 1
	if i < 0 || i > last {
		p.logger.Error("projectile removal index out of range", "index", i, "alive", len(e.alive))
		return
	}
	pr := e.alive[i]
	pr.Visible = false
	e.alive[i] = e.alive[last]
	e.alive = e.alive[:last]
	e.dead = append(e.dead, pr)
}

// Reset retires every live projectile and clears drop counters.
func (p *Pool) Reset() {
	for _, e := range p.entries {
		if e == nil {
			continue
		}
		for i := len(e.alive) - 1; i >= 0; i-- {
			p.retire(e, i)
		}
		e.dropped = 0
	}
}

// Capacity returns the configured slot count of k, or 0 if unconfigured.
func (p *Pool) Capacity(k Kind) int {
	if e, err := p.lookup(k); err == nil {
		return e.cfg.Capacity
	}
	return 0
}

// Alive returns the number of live projectiles of k.
func (p *Pool) Alive(k Kind) int {
	if e, err := p.lookup(k); err == nil {
		return len(e.alive)
	}
	return 0
}

// Dead returns the number of free slots of k.
func (p *Pool) Dead(k Kind) int {
	if e, err := p.lookup(k); err == nil {
		return len(e.dead)
	}
	return 0
}

// Dropped returns how many spawns of k failed with ErrPoolExhausted.
func (p *Pool) Dropped(k Kind) int {
	if e, err := p.lookup(k); err == nil {
		return e.dropped
	}
	return 0
}

// Template returns the visual handle configured for k.
func (p *Pool) Template(k Kind) string {
	if e, err := p.lookup(k); err == nil {
		return e.cfg.Template
	}
	return ""
}

// ForEachAlive calls fn for every live projectile, kind by kind.
func (p *Pool) ForEachAlive(fn func(k Kind, pr Projectile)) {
	for k, e := range p.entries {
		if e == nil {
			continue
		}
		for _, pr := range e.alive {
			fn(Kind(k), pr)
		}
	}
}

package game

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
	"github.com/vovakirdan/tui-shmup/internal/config"
	"github.com/vovakirdan/tui-shmup/internal/core"
	"github.com/vovakirdan/tui-shmup/internal/encounter"
	"github.com/vovakirdan/tui-shmup/internal/enemy"
	"github.com/vovakirdan/tui-shmup/internal/logging"
	"github.com/vovakirdan/tui-shmup/internal/player"
)

func vec(p config.Point) core.Vec2 { return core.V(p.X, p.Y) }

// Build creates a fresh world from a stage configuration.
func Build(cfg config.StageConfig, logger *log.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	logger = logger.With("stage", cfg.ID)

	pool, err := buildPool(cfg, logger)
	if err != nil {
		return nil, err
	}

	encounters := make([]encounter.Encounter, 0, len(cfg.Encounters))
	for i, ec := range cfg.Encounters {
		e, err := buildEncounter(ec)
		if err != nil {
			return nil, fmt.Errorf("game: encounter %d (%s): %w", i, ec.Name, err)
		}
		encounters = append(encounters, e)
	}

	return NewWorld(Deps{
		Pool: pool,
		Player: player.New(player.Config{
			Spawn:    vec(cfg.Player.Spawn),
			Template: cfg.Player.Template,
		}),
		Sequencer: encounter.NewSequencer(encounters, logger),
		Clock:     core.NewFrameClock(0),
		Logger:    logger,
		Delta:     core.RuntimeConfig{TickRate: cfg.TickRate}.Delta(),
	})
}

func buildPool(cfg config.StageConfig, logger *log.Logger) (*bullet.Pool, error) {
	types := make(map[bullet.Kind]bullet.TypeConfig, len(cfg.Projectiles))
	for name, pc := range cfg.Projectiles {
		k, err := bullet.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		types[k] = bullet.TypeConfig{
			Template: pc.Template,
			Capacity: pc.Capacity,
			Radius:   pc.Radius,
		}
	}
	pool, err := bullet.NewPool(types, logger)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	return pool, nil
}

func buildEncounter(ec config.EncounterConfig) (encounter.Encounter, error) {
	switch ec.Kind {
	case config.EncounterRoster:
		orbs := make([]*enemy.Orb, 0, len(ec.Enemies))
		for _, en := range ec.Enemies {
			k, err := bullet.ParseKind(en.Bullet)
			if err != nil {
				return nil, err
			}
			o, err := enemy.NewOrb(enemy.Config{
				Start:       vec(en.Start),
				Goal:        vec(en.Goal),
				Health:      en.Health,
				HitRadius:   en.HitRadius,
				CooldownMs:  en.CooldownMs,
				BulletSpeed: en.BulletSpeed,
				Clockwise:   en.Clockwise,
				Bullet:      k,
				Template:    en.Template,
			})
			if err != nil {
				return nil, err
			}
			orbs = append(orbs, o)
		}
		return encounter.NewRoster(ec.Name, orbs, ec.DurationMs, ec.EndDelayMs), nil

	case config.EncounterScripted:
		b := ec.Boss
		k, err := bullet.ParseKind(b.Bullet)
		if err != nil {
			return nil, err
		}
		return encounter.NewScripted(ec.Name, encounter.BossConfig{
			Start:          vec(b.Start),
			Goal:           vec(b.Goal),
			Health:         b.Health,
			HitRadius:      b.HitRadius,
			Bullet:         k,
			BulletSpeed:    b.BulletSpeed,
			RingCount:      b.RingCount,
			RingCooldownMs: b.RingCooldownMs,
			FanCooldownMs:  b.FanCooldownMs,
			FanSpreadDeg:   b.FanSpreadDeg,
			Template:       b.Template,
		}, ec.DurationMs, ec.EndDelayMs)

	default:
		return nil, fmt.Errorf("unknown encounter kind %q", ec.Kind)
	}
}

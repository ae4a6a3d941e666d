package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-shmup/internal/bullet"
)

var (
	// ErrInvalidStage is returned when a stage document fails validation.
	ErrInvalidStage = errors.New("invalid stage")
	// ErrUnknownStage is returned when no file or built-in stage matches an id.
	ErrUnknownStage = errors.New("unknown stage")
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidStage, fmt.Sprintf(format, args...))
}

// Validate checks projectile kinds, pool sizes and encounter definitions.
// Unknown projectile names wrap bullet.ErrUnknownType.
func (c StageConfig) Validate() error {
	for name, p := range c.Projectiles {
		if _, err := bullet.ParseKind(name); err != nil {
			return fmt.Errorf("%w: projectiles: %w", ErrInvalidStage, err)
		}
		if p.Capacity < 0 {
			return invalid("projectile %s: capacity must be >= 0, got %d", name, p.Capacity)
		}
		if p.Radius < 0 {
			return invalid("projectile %s: radius must be >= 0, got %d", name, p.Radius)
		}
	}

	if len(c.Encounters) == 0 {
		return invalid("stage %s has no encounters", c.ID)
	}

	for i, e := range c.Encounters {
		if e.DurationMs < -1 {
			return invalid("encounter %d: duration_ms must be -1 or >= 0", i)
		}
		if e.EndDelayMs < 0 {
			return invalid("encounter %d: end_delay_ms must be >= 0", i)
		}

		switch e.Kind {
		case EncounterRoster:
			for j, en := range e.Enemies {
				if en.Health < 0 {
					return invalid("encounter %d enemy %d: health must be >= 0", i, j)
				}
				if en.CooldownMs < 0 {
					return invalid("encounter %d enemy %d: cooldown_ms must be >= 0", i, j)
				}
				if err := c.checkHostile(en.Bullet); err != nil {
					return fmt.Errorf("encounter %d enemy %d: %w", i, j, err)
				}
			}
		case EncounterScripted:
			if e.Boss == nil {
				return invalid("encounter %d: scripted encounter needs a boss block", i)
			}
			if e.Boss.Health <= 0 {
				return invalid("encounter %d: boss health must be > 0", i)
			}
			if err := c.checkHostile(e.Boss.Bullet); err != nil {
				return fmt.Errorf("encounter %d boss: %w", i, err)
			}
		default:
			return invalid("encounter %d: unknown kind %q", i, e.Kind)
		}
	}
	return nil
}

// checkHostile verifies that an enemy bullet name is a configured,
// non-player projectile kind.
func (c StageConfig) checkHostile(name string) error {
	k, err := bullet.ParseKind(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStage, err)
	}
	if k.PlayerOwned() {
		return invalid("bullet %s is player owned", name)
	}
	if _, ok := c.Projectiles[name]; !ok {
		return fmt.Errorf("%w: %w: %s has no pool", ErrInvalidStage, bullet.ErrUnknownType, name)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-shmup/internal/encounter"
	"github.com/vovakirdan/tui-shmup/internal/enemy"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // authored values, no duration budgets
)

// ErrUnknownDifficulty is returned by ParseDifficulty.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Scaling is what a preset does to enemy attacks.
type Scaling struct {
	Cooldown    float64 // Multiplier on attack cooldowns
	BulletSpeed float64 // Multiplier on enemy bullet speeds
}

// ScalingForPreset returns the attack scaling of a preset.
func ScalingForPreset(preset DifficultyPreset) Scaling {
	switch preset {
	case DifficultyEasy:
		return Scaling{Cooldown: 1.5, BulletSpeed: 0.8}
	case DifficultyHard:
		return Scaling{Cooldown: 0.7, BulletSpeed: 1.25}
	default:
		return Scaling{Cooldown: 1, BulletSpeed: 1}
	}
}

// ParseDifficulty maps a flag value to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: %w: %q", ErrUnknownDifficulty, s)
	}
}

// ApplyStagePreset modifies the stage based on a difficulty preset.
// Unset cooldowns and speeds are resolved to their defaults before scaling.
func ApplyStagePreset(cfg *StageConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		for i := range cfg.Encounters {
			cfg.Encounters[i].DurationMs = encounter.Unlimited
		}
		return
	}

	s := ScalingForPreset(preset)
	if s == (Scaling{Cooldown: 1, BulletSpeed: 1}) {
		return
	}

	for i := range cfg.Encounters {
		e := &cfg.Encounters[i]
		for j := range e.Enemies {
			en := &e.Enemies[j]
			en.CooldownMs = scaleMs(orDefault(en.CooldownMs, enemy.DefaultCooldownMs), s.Cooldown)
			en.BulletSpeed = orDefaultF(en.BulletSpeed, enemy.DefaultBulletSpeed) * s.BulletSpeed
		}
		if b := e.Boss; b != nil {
			b.RingCooldownMs = scaleMs(orDefault(b.RingCooldownMs, encounter.DefaultRingCooldownMs), s.Cooldown)
			b.FanCooldownMs = scaleMs(orDefault(b.FanCooldownMs, encounter.DefaultFanCooldownMs), s.Cooldown)
			b.BulletSpeed = orDefaultF(b.BulletSpeed, encounter.DefaultBossBulletSpeed) * s.BulletSpeed
		}
	}
}

func scaleMs(ms int64, factor float64) int64 {
	return int64(math.Round(float64(ms) * factor))
}

func orDefault(v, def int64) int64 {
	if v <= 0 {
		return def
	}
	return v
}

func orDefaultF(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

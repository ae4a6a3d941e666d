// Package config provides YAML-based stage configuration loading,
// validation and difficulty presets.
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-shmup/internal/encounter"
)

// Encounter kinds accepted in stage files.
const (
	EncounterRoster   = "roster"
	EncounterScripted = "scripted"
)

// StageConfig contains everything needed to build one stage.
type StageConfig struct {
	ID          string                      `yaml:"id"`
	Title       string                      `yaml:"title"`
	TickRate    int                         `yaml:"tick_rate"`
	Projectiles map[string]ProjectileConfig `yaml:"projectiles"`
	Player      PlayerConfig                `yaml:"player"`
	Encounters  []EncounterConfig           `yaml:"encounters"`
}

// ProjectileConfig defines one projectile kind's pool.
type ProjectileConfig struct {
	Template string `yaml:"template"`
	Capacity int    `yaml:"capacity"`
	Radius   int    `yaml:"radius"`
}

// Point is a position in world units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlayerConfig defines the player ship.
type PlayerConfig struct {
	Spawn    Point  `yaml:"spawn"`
	Template string `yaml:"template"`
}

// EncounterConfig defines one wave. Kind selects which of Enemies or Boss is used.
type EncounterConfig struct {
	Name       string        `yaml:"name"`
	Kind       string        `yaml:"kind"`        // "roster" or "scripted"
	DurationMs int64         `yaml:"duration_ms"` // -1 = unlimited, the default when omitted
	EndDelayMs int64         `yaml:"end_delay_ms"` // omitted: 0 for rosters, 1000 for bosses
	Enemies    []EnemyConfig `yaml:"enemies"`
	Boss       *BossConfig   `yaml:"boss"`
}

// UnmarshalYAML fills defaults for timing keys absent from the document.
// An explicit 0 is kept as written.
func (e *EncounterConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain EncounterConfig
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*e = EncounterConfig(p)

	if !hasKey(node, "duration_ms") {
		e.DurationMs = encounter.Unlimited
	}
	if !hasKey(node, "end_delay_ms") && e.Kind == EncounterScripted {
		e.EndDelayMs = encounter.DefaultBossEndDelayMs
	}
	return nil
}

// hasKey reports whether a mapping node contains key.
func hasKey(node *yaml.Node, key string) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return true
		}
	}
	return false
}

// EnemyConfig defines one orb.
type EnemyConfig struct {
	Start       Point   `yaml:"start"`
	Goal        Point   `yaml:"goal"`
	Health      int     `yaml:"health"`
	HitRadius   float64 `yaml:"hit_radius"`
	CooldownMs  int64   `yaml:"cooldown_ms"`
	BulletSpeed float64 `yaml:"bullet_speed"`
	Clockwise   bool    `yaml:"clockwise"`
	Bullet      string  `yaml:"bullet"`
	Template    string  `yaml:"template"`
}

// BossConfig defines the body of a scripted encounter.
type BossConfig struct {
	Start          Point   `yaml:"start"`
	Goal           Point   `yaml:"goal"`
	Health         int     `yaml:"health"`
	HitRadius      float64 `yaml:"hit_radius"`
	Bullet         string  `yaml:"bullet"`
	BulletSpeed    float64 `yaml:"bullet_speed"`
	RingCount      int     `yaml:"ring_count"`
	RingCooldownMs int64   `yaml:"ring_cooldown_ms"`
	FanCooldownMs  int64   `yaml:"fan_cooldown_ms"`
	FanSpreadDeg   float64 `yaml:"fan_spread_deg"`
	Template       string  `yaml:"template"`
}

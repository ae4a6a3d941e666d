// Package bullet implements fixed-capacity projectile pools.
// Projectiles are allocated once per kind and recycled between an alive
// list and a dead list; nothing is allocated or freed while a stage runs.
package bullet

import (
	"errors"
	"fmt"
)

var (
	// ErrPoolExhausted is returned by Spawn when a kind has no free slots.
	// Callers drop the requested projectile and carry on.
	ErrPoolExhausted = errors.New("bullet: pool exhausted")

	// ErrUnknownType is returned for kinds that were never registered or configured.
	ErrUnknownType = errors.New("bullet: unknown projectile type")
)

// Kind identifies a projectile type. Storage is indexed by Kind.
type Kind int

const (
	PlayerPrimary01 Kind = iota
	PlayerPrimary02
	PlayerPrimary03
	OrbBullet
	BossBullet

	kindCount
)

// kindInfo holds the static per-kind tags fixed at compile time.
var kindInfo = [kindCount]struct {
	name        string
	playerOwned bool
}{
	PlayerPrimary01: {"player_primary_01", true},
	PlayerPrimary02: {"player_primary_02", true},
	PlayerPrimary03: {"player_primary_03", true},
	OrbBullet:       {"orb_bullet", false},
	BossBullet:      {"boss_bullet", false},
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// PlayerOwned reports whether projectiles of this kind hit enemies
// (true) or the player (false).
func (k Kind) PlayerOwned() bool {
	return k.Valid() && kindInfo[k].playerOwned
}

// Kinds returns all registered kinds in index order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind looks up a kind by its configuration name.
func ParseKind(name string) (Kind, error) {
	for i, info := range kindInfo {
		if info.name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownType, name)
}

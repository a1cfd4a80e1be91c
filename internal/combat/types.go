// Package combat resolves damage and healing between actors.
package combat

import (
	"errors"

	"github.com/samdwyer/wavebreaker/internal/stats"
)

// DamageType classifies a damage event. Immunities are tracked per type.
type DamageType int

const (
	DamageContact DamageType = iota
	DamagePhysical
	DamageMagical
	DamageSpecial

	numDamageTypes
)

// String returns the damage type name.
func (t DamageType) String() string {
	switch t {
	case DamageContact:
		return "contact"
	case DamagePhysical:
		return "physical"
	case DamageMagical:
		return "magical"
	case DamageSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known damage types.
func (t DamageType) Valid() bool {
	return t >= DamageContact && t < numDamageTypes
}

// HealType classifies a heal event.
type HealType int

const (
	HealPotion HealType = iota
	HealStatus
	HealSpecial

	numHealTypes
)

// String returns the heal type name.
func (t HealType) String() string {
	switch t {
	case HealPotion:
		return "potion"
	case HealStatus:
		return "status"
	case HealSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the known heal types.
func (t HealType) Valid() bool {
	return t >= HealPotion && t < numHealTypes
}

var (
	// ErrInvalidType is returned for damage or heal types outside the known set.
	ErrInvalidType = errors.New("combat: invalid event type")
	// ErrImmune is returned when the target is immune to the damage type.
	ErrImmune = errors.New("combat: target is immune")
	// ErrNoTarget is returned when the event has no target.
	ErrNoTarget = errors.New("combat: missing target")
	// ErrDead is returned when the target already has zero health.
	ErrDead = errors.New("combat: target is dead")
)

// Combatant is the interface for any actor that can take part in combat.
// Both the player and enemies implement it.
type Combatant interface {
	Name() string
	Stats() *stats.Sheet
	Immunity() *Immunity

	// OnDamaged runs after every accepted damage event, lethal ones included.
	OnDamaged(ev *DamageEvent)
	// OnDeath runs when a damage event brings health to zero.
	OnDeath(ev *DamageEvent)
	// OnHealed runs after every accepted heal event.
	OnHealed(ev *HealEvent)
}

// Alive reports whether c has health remaining.
func Alive(c Combatant) bool {
	return c != nil && c.Stats().Combat.Health > 0
}

// DamageEvent is a single damage application. Requested is filled in by the
// caller; Amount and Crit are filled in by the resolver.
type DamageEvent struct {
	Source    Combatant // may be nil for environmental damage
	Target    Combatant
	Type      DamageType
	Requested float64
	Amount    float64 // whole number after resolution
	Crit      bool
	Lethal    bool
}

// HealEvent is a single heal application.
type HealEvent struct {
	Source    Combatant // may be nil
	Target    Combatant
	Type      HealType
	Requested float64
	Amount    float64 // rounded requested amount
	Applied   float64 // health actually gained after clamping
}

// Immunity tracks what damage a combatant currently ignores.
type Immunity struct {
	// Timers counts down, in ticks, per damage type.
	Timers [numDamageTypes]float64
	// Locked marks a type as ignored until explicitly cleared.
	Locked [numDamageTypes]bool
	// All ignores every damage type.
	All bool
}

// Grant makes the holder immune to t for at least ticks.
func (im *Immunity) Grant(t DamageType, ticks float64) {
	if !t.Valid() {
		return
	}
	if ticks > im.Timers[t] {
		im.Timers[t] = ticks
	}
}

// Lock sets or clears the permanent immunity flag for t.
func (im *Immunity) Lock(t DamageType, on bool) {
	if !t.Valid() {
		return
	}
	im.Locked[t] = on
}

// Decay advances all timers by dt ticks.
func (im *Immunity) Decay(dt float64) {
	for i := range im.Timers {
		if im.Timers[i] > 0 {
			im.Timers[i] -= dt
			if im.Timers[i] < 0 {
				im.Timers[i] = 0
			}
		}
	}
}

// Blocks reports whether damage of type t is currently ignored.
func (im *Immunity) Blocks(t DamageType) bool {
	if im.All {
		return true
	}
	if !t.Valid() {
		return false
	}
	return im.Locked[t] || im.Timers[t] > 0
}

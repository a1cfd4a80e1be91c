// Package signal is the typed event bus that connects combat and abilities
// to the talents listening for them.
package signal

import (
	"github.com/samdwyer/wavebreaker/internal/combat"
)

// Kind names a signal.
type Kind int

const (
	PlayerAttack  Kind = iota // a player hit landed; Damage payload
	PlayerDamaged             // the player took damage; Damage payload
	PlayerHealed              // the player was healed; Heal payload
	EnemyKilled               // an enemy died to any source; Damage payload
	LevelUp                   // Level payload
	Slash                     // Strike payload, before resolution
	DashStrike                // Strike payload, before resolution
	Dash                      // Motion payload
	Bolt                      // Strike payload, before resolution
	Ignite                    // Area payload
	Warcry                    // None payload

	numKinds
)

// String returns the wire name of the signal, e.g. "on_player_attack".
func (k Kind) String() string {
	switch k {
	case PlayerAttack:
		return "on_player_attack"
	case PlayerDamaged:
		return "on_player_damaged"
	case PlayerHealed:
		return "on_player_healed"
	case EnemyKilled:
		return "on_enemy_killed"
	case LevelUp:
		return "on_level_up"
	case Slash:
		return "on_slash"
	case DashStrike:
		return "on_dash_strike"
	case Dash:
		return "on_dash"
	case Bolt:
		return "on_bolt"
	case Ignite:
		return "on_ignite"
	case Warcry:
		return "on_warcry"
	default:
		return "on_unknown"
	}
}

// Valid reports whether k is a known signal.
func (k Kind) Valid() bool {
	return k >= PlayerAttack && k < numKinds
}

// Payload is the closed set of values a signal can carry.
type Payload interface {
	payload()
}

// Damage carries a resolved damage event.
type Damage struct {
	Event *combat.DamageEvent
}

// Heal carries a resolved heal event.
type Heal struct {
	Event *combat.HealEvent
}

// Strike is an attack that has not been resolved yet. Listeners may change
// Damage before the emitting ability resolves it.
type Strike struct {
	AbilityID string
	Attacker  combat.Combatant
	Target    combat.Combatant // nil for strikes that hit whatever they meet
	Type      combat.DamageType
	Damage    float64
	Distance  float64
}

// Level carries the level just reached.
type Level struct {
	Level int
}

// Motion carries a movement ability's direction (-1 left, 1 right).
type Motion struct {
	Direction float64
}

// Area carries an area ability's radius and how many actors it caught.
type Area struct {
	Radius float64
	Hits   int
}

// None is the empty payload.
type None struct{}

func (Damage) payload()  {}
func (Heal) payload()    {}
func (*Strike) payload() {}
func (Level) payload()   {}
func (Motion) payload()  {}
func (Area) payload()    {}
func (None) payload()    {}

// Event is one emitted signal.
type Event struct {
	Kind    Kind
	Payload Payload
}

package ability

import (
	"math"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/stats"
	"github.com/samdwyer/wavebreaker/internal/status"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// BurnRate is the ticks between burn damage ticks.
const BurnRate = 30.0

// =============================================================================
// Bolt
// =============================================================================

// Bolt hits the nearest opponent in front of the owner instantly.
type Bolt struct {
	base
}

// NewBolt creates a bolt bound to the cast key.
func NewBolt(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	return &Bolt{base: newBase(def, owner, input.KeyCast)}
}

// Call fires at the nearest target ahead within range.
func (a *Bolt) Call(s entity.Scene, _ input.Key) bool {
	if !a.begin(s.Context(), eventTrigger) {
		return false
	}

	st := &signal.Strike{
		AbilityID: a.ID(),
		Attacker:  a.owner,
		Type:      combat.DamageMagical,
		Damage:    a.damage(a.def.Power),
	}

	body := a.owner.Base().Body
	best := math.Inf(1)
	for _, t := range opponents(s, a.owner) {
		dx := t.Base().Body.Pos.X - body.Pos.X
		if dx*body.Facing < 0 {
			continue
		}
		d := world.Dist(body.Rect().Center(), t.Base().Bounds().Center())
		if d <= a.def.Range && d < best {
			best = d
			st.Target = t
			st.Distance = d
		}
	}

	a.strike(s, signal.Bolt, st)
	return true
}

// =============================================================================
// Ignite
// =============================================================================

// Ignite sets every opponent within Range on fire. The burn deals Power
// times the owner's damage over Duration ticks.
type Ignite struct {
	base
}

// NewIgnite creates an ignite bound to the second cast key.
func NewIgnite(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	return &Ignite{base: newBase(def, owner, input.KeyCast2)}
}

// Call burns everything nearby. Targets already burning have their burn
// refreshed instead of stacked.
func (a *Ignite) Call(s entity.Scene, _ input.Key) bool {
	if !a.begin(s.Context(), eventTrigger) {
		return false
	}

	center := a.owner.Base().Bounds().Center()
	hits := 0
	for _, t := range opponents(s, a.owner) {
		if world.Dist(center, t.Base().Bounds().Center()) > a.def.Range {
			continue
		}
		Burn(t, a.owner, a.ID(), a.damage(a.def.Power), a.def.Duration)
		hits++
	}

	a.emit(s, signal.Ignite, signal.Area{Radius: a.def.Range, Hits: hits})
	return true
}

// Burn applies a magical damage-over-time effect to target, or refreshes
// the one it already carries under the same signature.
func Burn(target, source entity.Owner, signature string, total, duration float64) {
	effects := target.Base().Effects
	if effects.Refresh(signature, duration) {
		return
	}
	effects.Add(status.NewDOT(signature, source, combat.DamageMagical, total, duration, BurnRate))
}

// =============================================================================
// Warcry
// =============================================================================

// Warcry raises the owner's damage multiplier by Power for Duration ticks.
type Warcry struct {
	base
}

// NewWarcry creates a warcry bound to the shout key.
func NewWarcry(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	return &Warcry{base: newBase(def, owner, input.KeyShout)}
}

// Call applies or refreshes the buff.
func (a *Warcry) Call(s entity.Scene, _ input.Key) bool {
	if !a.begin(s.Context(), eventTrigger) {
		return false
	}

	effects := a.owner.Base().Effects
	if !effects.Refresh(a.ID(), a.def.Duration) {
		effects.Add(status.NewBuff(a.ID(), stats.DamageMultiplier, a.def.Power, a.def.Duration))
	}

	a.emit(s, signal.Warcry, signal.None{})
	return true
}

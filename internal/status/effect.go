// Package status implements timed buffs, debuffs and damage-over-time
// effects attached to a combatant.
package status

import (
	"math"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/stats"
)

// Forever is the duration of effects that never expire on their own.
// Counting it down leaves it unchanged.
var Forever = math.Inf(1)

// Kind separates beneficial effects from harmful ones.
type Kind int

const (
	Buff Kind = iota
	Debuff
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Buff:
		return "buff"
	case Debuff:
		return "debuff"
	default:
		return "unknown"
	}
}

// Effect is one status effect instance owned by a single combatant.
//
// A stat effect adds Delta to Stat once when it is added to a List and
// takes back whatever that actually changed once when it expires or is
// cancelled, so clamped or rounded stats return to where they started. A DOT effect leaves
// stats alone and periodically resolves damage instead.
type Effect struct {
	Signature string
	Kind      Kind
	Stat      stats.Stat
	Delta     float64
	Duration  float64 // remaining ticks, or Forever
	DOT       *DOT

	applied  bool
	reversed bool
	realised float64 // change the delta actually made to Stat
}

// DOT describes periodic damage dealt by an effect.
type DOT struct {
	Source  combat.Combatant // the actor credited with the damage
	Type    combat.DamageType
	PerTick float64 // damage requested on every internal tick
	Rate    float64 // ticks between damage ticks

	countdown float64
}

// NewBuff creates a beneficial stat effect.
func NewBuff(signature string, stat stats.Stat, delta, duration float64) *Effect {
	return &Effect{
		Signature: signature,
		Kind:      Buff,
		Stat:      stat,
		Delta:     delta,
		Duration:  duration,
	}
}

// NewDebuff creates a harmful stat effect. Delta is applied as given, so a
// slow is expressed with a negative delta.
func NewDebuff(signature string, stat stats.Stat, delta, duration float64) *Effect {
	return &Effect{
		Signature: signature,
		Kind:      Debuff,
		Stat:      stat,
		Delta:     delta,
		Duration:  duration,
	}
}

// NewDOT creates a damage-over-time debuff that deals roughly total damage
// over duration ticks, in hits every rate ticks.
func NewDOT(signature string, source combat.Combatant, typ combat.DamageType, total, duration, rate float64) *Effect {
	if rate <= 0 {
		rate = 1
	}
	perTick := total
	if duration > 0 && !math.IsInf(duration, 1) {
		perTick = total * (rate / duration)
	}
	return &Effect{
		Signature: signature,
		Kind:      Debuff,
		Duration:  duration,
		DOT: &DOT{
			Source:    source,
			Type:      typ,
			PerTick:   perTick,
			Rate:      rate,
			countdown: rate,
		},
	}
}

// IsDOT reports whether the effect deals periodic damage.
func (e *Effect) IsDOT() bool {
	return e.DOT != nil
}

// Expired reports whether the effect has run out or been cancelled.
func (e *Effect) Expired() bool {
	return e.reversed || e.Duration < 0
}

func (e *Effect) apply(owner combat.Combatant) {
	if e.applied || e.IsDOT() {
		return
	}
	sheet := owner.Stats()
	before := sheet.Get(e.Stat)
	sheet.Set(e.Stat, e.Delta, true)
	e.realised = sheet.Get(e.Stat) - before
	e.applied = true
}

func (e *Effect) reverse(owner combat.Combatant) {
	if e.reversed {
		return
	}
	e.reversed = true
	if e.applied && e.realised != 0 {
		owner.Stats().Set(e.Stat, -e.realised, true)
	}
}

package talent

import (
	"github.com/samdwyer/wavebreaker/internal/ability"
	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/stats"
	"github.com/samdwyer/wavebreaker/internal/status"
)

// =============================================================================
// Combo
// =============================================================================

// Combo builds a stack per landed hit and scales slashes by Step per stack.
// Stacks drop to zero after Window idle ticks.
type Combo struct {
	Step      float64
	MaxStacks int
	Window    float64

	stacks int
	idle   float64
}

// ID returns "combo".
func (t *Combo) ID() string { return "combo" }

// Signals lists landed hits, which build stacks, and slashes, which spend them.
func (t *Combo) Signals() []signal.Kind {
	return []signal.Kind{signal.PlayerAttack, signal.Slash}
}

// Stacks returns the current combo count.
func (t *Combo) Stacks() int { return t.stacks }

// Handle adds a stack per hit and scales a slash that has a target.
func (t *Combo) Handle(_ entity.Scene, ev signal.Event) {
	switch ev.Kind {
	case signal.PlayerAttack:
		t.stacks = min(t.stacks+1, t.MaxStacks)
		t.idle = 0
	case signal.Slash:
		if st, ok := ev.Payload.(*signal.Strike); ok && st.Target != nil {
			st.Damage *= 1 + t.Step*float64(t.stacks)
		}
	}
}

// Update drops the stacks once Window ticks pass without a hit.
func (t *Combo) Update(_ entity.Scene, dt float64) {
	if t.stacks == 0 {
		return
	}
	t.idle += dt
	if t.idle >= t.Window {
		t.stacks = 0
		t.idle = 0
	}
}

// =============================================================================
// Sharpshooter
// =============================================================================

// Sharpshooter adds PerUnit damage per unit of distance to bolts that
// travel at least MinDistance.
type Sharpshooter struct {
	MinDistance float64
	PerUnit     float64
}

// ID returns "sharpshooter".
func (t *Sharpshooter) ID() string { return "sharpshooter" }

// Signals lists bolts.
func (t *Sharpshooter) Signals() []signal.Kind { return []signal.Kind{signal.Bolt} }

// Update does nothing; the bonus is computed per bolt.
func (t *Sharpshooter) Update(entity.Scene, float64) {}

// Accepts filters out misses and close shots before Handle runs.
func (t *Sharpshooter) Accepts(_ entity.Scene, ev signal.Event) bool {
	st, ok := ev.Payload.(*signal.Strike)
	return ok && st.Target != nil && st.Distance >= t.MinDistance
}

// Handle scales the bolt by the distance it travelled.
func (t *Sharpshooter) Handle(_ entity.Scene, ev signal.Event) {
	st := ev.Payload.(*signal.Strike)
	st.Damage *= 1 + t.PerUnit*st.Distance
}

// =============================================================================
// Kindling
// =============================================================================

// Kindling sets hit enemies on fire for Fraction of the hit's damage, at
// most once per Cooldown ticks.
type Kindling struct {
	Fraction float64
	Duration float64
	Cooldown float64

	cd cooldown
}

// ID returns "kindling". It also names the burn it applies.
func (t *Kindling) ID() string { return "kindling" }

// Signals lists landed hits.
func (t *Kindling) Signals() []signal.Kind { return []signal.Kind{signal.PlayerAttack} }

// Accepts skips killing blows, empty hits and hits during the cooldown.
func (t *Kindling) Accepts(_ entity.Scene, ev signal.Event) bool {
	d, ok := damageOf(ev)
	return ok && t.cd.ready() && !d.Event.Lethal && d.Event.Amount > 0
}

// Handle burns the target and starts the cooldown.
func (t *Kindling) Handle(s entity.Scene, ev signal.Event) {
	d, _ := damageOf(ev)
	target, ok := d.Event.Target.(entity.Owner)
	if !ok {
		return
	}
	ability.Burn(target, s.Player(), t.ID(), d.Event.Amount*t.Fraction, t.Duration)
	t.cd.start(t.Cooldown)
}

// Update counts the cooldown down.
func (t *Kindling) Update(_ entity.Scene, dt float64) { t.cd.decay(dt) }

// =============================================================================
// Momentum
// =============================================================================

// Momentum raises the damage multiplier by Bonus for Duration ticks after
// every dash.
type Momentum struct {
	Bonus    float64
	Duration float64
}

// ID returns "momentum". It also names the buff it grants.
func (t *Momentum) ID() string { return "momentum" }

// Signals lists dashes.
func (t *Momentum) Signals() []signal.Kind { return []signal.Kind{signal.Dash} }

// Update does nothing; the buff expires with the player's effects.
func (t *Momentum) Update(entity.Scene, float64) {}

// Handle grants the buff, or restarts it if it is already running.
func (t *Momentum) Handle(s entity.Scene, _ signal.Event) {
	effects := s.Player().Effects
	if effects.Refresh(t.ID(), t.Duration) {
		return
	}
	effects.Add(status.NewBuff(t.ID(), stats.DamageMultiplier, t.Bonus, t.Duration))
}

// =============================================================================
// Thorns
// =============================================================================

// Thorns reflects Fraction of every hit back at its source.
type Thorns struct {
	Fraction float64
}

// ID returns "thorns".
func (t *Thorns) ID() string { return "thorns" }

// Signals lists hits the player takes.
func (t *Thorns) Signals() []signal.Kind { return []signal.Kind{signal.PlayerDamaged} }

// Update does nothing.
func (t *Thorns) Update(entity.Scene, float64) {}

// Accepts hits that did damage and came from someone other than the player.
func (t *Thorns) Accepts(s entity.Scene, ev signal.Event) bool {
	d, ok := damageOf(ev)
	if !ok || d.Event.Source == nil || d.Event.Amount <= 0 {
		return false
	}
	return d.Event.Source != combat.Combatant(s.Player())
}

// Handle deals special damage back to the attacker.
func (t *Thorns) Handle(s entity.Scene, ev signal.Event) {
	d, _ := damageOf(ev)
	s.Resolver().ResolveDamage(s.Context(), combat.DamageEvent{
		Source:    s.Player(),
		Target:    d.Event.Source,
		Type:      combat.DamageSpecial,
		Requested: d.Event.Amount * t.Fraction,
	})
}

package status

import (
	"context"
	"math"

	"github.com/samdwyer/wavebreaker/internal/combat"
)

// List is the set of effects owned by one combatant.
type List struct {
	owner   combat.Combatant
	effects []*Effect
}

// NewList creates an empty effect list for owner.
func NewList(owner combat.Combatant) *List {
	return &List{owner: owner}
}

// Add attaches e and applies its stat delta immediately.
func (l *List) Add(e *Effect) {
	if e == nil {
		return
	}
	if e.Duration < 0 || math.IsNaN(e.Duration) {
		e.Duration = 0
	}
	e.apply(l.owner)
	l.effects = append(l.effects, e)
}

// Tick advances every effect by dt ticks. DOT effects resolve their damage
// ticks through r. Expired effects are reversed and removed; they are
// returned so callers can react to them.
func (l *List) Tick(ctx context.Context, r *combat.Resolver, dt float64) []*Effect {
	var expired []*Effect

	// Damage callbacks may add effects to this list while it is ticking.
	snapshot := append([]*Effect(nil), l.effects...)
	for _, e := range snapshot {
		if e.IsDOT() && !e.reversed {
			l.tickDOT(ctx, r, e.DOT, dt)
		}
		e.Duration -= dt
		if e.Expired() && !e.reversed {
			e.reverse(l.owner)
			expired = append(expired, e)
		}
	}

	kept := l.effects[:0]
	for _, e := range l.effects {
		if !e.Expired() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(l.effects); i++ {
		l.effects[i] = nil
	}
	l.effects = kept
	return expired
}

func (l *List) tickDOT(ctx context.Context, r *combat.Resolver, d *DOT, dt float64) {
	if r == nil {
		return
	}
	if d.Rate <= 0 {
		d.Rate = 1
	}
	d.countdown -= dt
	for d.countdown <= 0 {
		d.countdown += d.Rate
		r.ResolveDamage(ctx, combat.DamageEvent{
			Source:    d.Source,
			Target:    l.owner,
			Type:      d.Type,
			Requested: d.PerTick,
		})
	}
}

// Cancel reverses and removes every effect with the given signature.
// It returns how many were removed.
func (l *List) Cancel(signature string) int {
	removed := 0
	kept := l.effects[:0]
	for _, e := range l.effects {
		if e.Signature == signature {
			e.reverse(l.owner)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(l.effects); i++ {
		l.effects[i] = nil
	}
	l.effects = kept
	return removed
}

// Find returns every active effect with the given signature. Stacked
// effects share a signature, so the result may hold more than one.
func (l *List) Find(signature string) []*Effect {
	var found []*Effect
	for _, e := range l.effects {
		if e.Signature == signature {
			found = append(found, e)
		}
	}
	return found
}

// Has reports whether any effect with the given signature is active.
func (l *List) Has(signature string) bool {
	for _, e := range l.effects {
		if e.Signature == signature {
			return true
		}
	}
	return false
}

// Refresh extends the longest running effect with the given signature to
// at least duration ticks. It reports false when no such effect exists.
func (l *List) Refresh(signature string, duration float64) bool {
	found := l.Find(signature)
	if len(found) == 0 {
		return false
	}
	for _, e := range found {
		if e.Duration < duration {
			e.Duration = duration
		}
	}
	return true
}

// All returns the active effects. The slice must not be modified.
func (l *List) All() []*Effect {
	return l.effects
}

// Len returns the number of active effects.
func (l *List) Len() int {
	return len(l.effects)
}

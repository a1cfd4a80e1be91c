package combat

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
)

// DefaultVariance is the fraction by which damage may deviate from the
// requested amount in either direction.
const DefaultVariance = 0.1

// Resolver computes and applies damage and heal events.
type Resolver struct {
	rng      *rand.Rand
	variance float64
}

// NewResolver creates a resolver drawing randomness from rng.
// A negative variance falls back to DefaultVariance.
func NewResolver(rng *rand.Rand, variance float64) *Resolver {
	if variance < 0 {
		variance = DefaultVariance
	}
	return &Resolver{
		rng:      rng,
		variance: variance,
	}
}

// Variance returns the configured variance fraction.
func (r *Resolver) Variance() float64 {
	return r.variance
}

// ResolveDamage validates ev, rolls variance and crit, and applies the
// result to the target. It returns the resolved event, or an error when the
// event was rejected. Rejections never consume randomness.
func (r *Resolver) ResolveDamage(ctx context.Context, ev DamageEvent) (*DamageEvent, error) {
	if err := r.checkDamage(&ev); err != nil {
		slog.DebugContext(ctx, "damage rejected",
			"target", nameOf(ev.Target),
			"type", ev.Type.String(),
			"reason", err.Error(),
		)
		return nil, err
	}

	// Variance: uniform in [requested*(1-V), requested*(1+V)]
	amount := math.Max(ev.Requested, 0)
	amount *= 1 - r.variance + 2*r.variance*r.rng.Float64()

	// Single crit roll
	if ev.Source != nil {
		src := ev.Source.Stats().Combat
		if src.CritChance > 0 && r.rng.Float64() <= src.CritChance {
			amount *= src.CritMultiplier
			ev.Crit = true
		}
	}

	// Round once, after everything else
	ev.Amount = math.Round(amount)

	sheet := ev.Target.Stats()
	if ev.Amount >= sheet.Combat.Health {
		sheet.Combat.Health = 0
		ev.Lethal = true
		ev.Target.OnDeath(&ev)
	} else {
		sheet.Combat.Health -= ev.Amount
	}
	sheet.ClampHealth()

	ev.Target.OnDamaged(&ev)
	return &ev, nil
}

// ResolveHeal validates ev, rounds the amount and applies it to the target,
// clamped to max health. Heals never crit and have no variance.
func (r *Resolver) ResolveHeal(ctx context.Context, ev HealEvent) (*HealEvent, error) {
	if err := checkHeal(&ev); err != nil {
		slog.DebugContext(ctx, "heal rejected",
			"target", nameOf(ev.Target),
			"type", ev.Type.String(),
			"reason", err.Error(),
		)
		return nil, err
	}

	ev.Amount = math.Round(math.Max(ev.Requested, 0))

	sheet := ev.Target.Stats()
	before := sheet.Combat.Health
	sheet.Combat.Health += ev.Amount
	sheet.ClampHealth()
	ev.Applied = sheet.Combat.Health - before

	ev.Target.OnHealed(&ev)
	return &ev, nil
}

func (r *Resolver) checkDamage(ev *DamageEvent) error {
	if ev.Target == nil {
		return ErrNoTarget
	}
	if !ev.Type.Valid() {
		return ErrInvalidType
	}
	if ev.Target.Immunity().Blocks(ev.Type) {
		return ErrImmune
	}
	if !Alive(ev.Target) {
		return ErrDead
	}
	return nil
}

func checkHeal(ev *HealEvent) error {
	if ev.Target == nil {
		return ErrNoTarget
	}
	if !ev.Type.Valid() {
		return ErrInvalidType
	}
	if !Alive(ev.Target) {
		return ErrDead
	}
	return nil
}

func nameOf(c Combatant) string {
	if c == nil {
		return "<nil>"
	}
	return c.Name()
}

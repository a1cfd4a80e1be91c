package talent

import (
	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/signal"
)

// Lifesteal heals the player for Fraction of every hit they land.
type Lifesteal struct {
	Fraction float64
}

// ID returns "lifesteal".
func (t *Lifesteal) ID() string { return "lifesteal" }

// Signals lists landed hits.
func (t *Lifesteal) Signals() []signal.Kind { return []signal.Kind{signal.PlayerAttack} }

// Update does nothing.
func (t *Lifesteal) Update(entity.Scene, float64) {}

// Handle heals the player for part of a hit that did damage.
func (t *Lifesteal) Handle(s entity.Scene, ev signal.Event) {
	d, ok := damageOf(ev)
	if !ok || d.Event.Amount <= 0 {
		return
	}
	p := s.Player()
	s.Resolver().ResolveHeal(s.Context(), combat.HealEvent{
		Source:    p,
		Target:    p,
		Type:      combat.HealSpecial,
		Requested: d.Event.Amount * t.Fraction * p.Sheet.Combat.HealingMultiplier,
	})
}

// SecondWind heals Fraction of max health when a hit leaves the player
// below Threshold of max health. It then rests for Cooldown ticks.
type SecondWind struct {
	Threshold float64
	Fraction  float64
	Cooldown  float64

	cd cooldown
}

// ID returns "second_wind".
func (t *SecondWind) ID() string { return "second_wind" }

// Signals lists hits the player takes.
func (t *SecondWind) Signals() []signal.Kind { return []signal.Kind{signal.PlayerDamaged} }

// Accepts hits that leave a living player under Threshold while the cooldown is ready.
func (t *SecondWind) Accepts(s entity.Scene, _ signal.Event) bool {
	c := s.Player().Sheet.Combat
	return t.cd.ready() && c.Health > 0 && c.Health < c.MaxHealth*t.Threshold
}

// Handle heals the player and starts the cooldown if the heal went through.
func (t *SecondWind) Handle(s entity.Scene, _ signal.Event) {
	p := s.Player()
	c := p.Sheet.Combat
	_, err := s.Resolver().ResolveHeal(s.Context(), combat.HealEvent{
		Source:    p,
		Target:    p,
		Type:      combat.HealSpecial,
		Requested: c.MaxHealth * t.Fraction * c.HealingMultiplier,
	})
	if err == nil {
		t.cd.start(t.Cooldown)
	}
}

// Update counts the cooldown down.
func (t *SecondWind) Update(_ entity.Scene, dt float64) { t.cd.decay(dt) }

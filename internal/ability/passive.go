package ability

import (
	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
)

// Regeneration heals Power percent of max health every Cooldown ticks.
type Regeneration struct {
	base
}

// NewRegeneration creates the passive heal.
func NewRegeneration(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	a := &Regeneration{base: newBase(def, owner)}
	a.passive = true
	return a
}

// Call is never used; passives only update.
func (a *Regeneration) Call(entity.Scene, input.Key) bool { return false }

// Update heals whenever the cooldown comes up and health is missing.
func (a *Regeneration) Update(s entity.Scene, dt float64) {
	a.settle(s.Context())

	c := a.owner.Stats().Combat
	if c.Health <= 0 || c.Health >= c.MaxHealth {
		return
	}
	if !a.begin(s.Context(), eventTrigger) {
		return
	}
	s.Resolver().ResolveHeal(s.Context(), combat.HealEvent{
		Source:    a.owner,
		Target:    a.owner,
		Type:      combat.HealStatus,
		Requested: c.MaxHealth * a.def.Power / 100 * c.HealingMultiplier,
	})
}

// Contact hurts the player whenever the owning enemy touches them.
type Contact struct {
	base
}

// NewContact creates the passive contact attack.
func NewContact(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	a := &Contact{base: newBase(def, owner)}
	a.passive = true
	return a
}

// Call is never used; passives only update.
func (a *Contact) Call(entity.Scene, input.Key) bool { return false }

// Update checks for overlap with an opponent and deals contact damage. The
// cooldown only starts when the hit lands.
func (a *Contact) Update(s entity.Scene, dt float64) {
	ctx := s.Context()
	a.settle(ctx)
	if !a.cd.Ready() || !a.machine.Is(StateIdle) {
		return
	}

	box := a.owner.Base().Bounds()
	for _, t := range opponents(s, a.owner) {
		if !box.Intersects(t.Base().Bounds()) {
			continue
		}
		_, err := s.Resolver().ResolveDamage(s.Context(), combat.DamageEvent{
			Source:    a.owner,
			Target:    t,
			Type:      combat.DamageContact,
			Requested: a.damage(a.def.Power),
		})
		if err == nil {
			a.begin(ctx, eventTrigger)
			return
		}
	}
}

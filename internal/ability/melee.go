package ability

import (
	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// strike runs one attack against target: talents see the mutable strike
// first, then the damage is resolved and a hit is reported back.
func (b *base) strike(s entity.Scene, kind signal.Kind, st *signal.Strike) (*combat.DamageEvent, bool) {
	b.emit(s, kind, st)
	if st.Target == nil {
		return nil, false
	}

	ev, err := s.Resolver().ResolveDamage(s.Context(), combat.DamageEvent{
		Source:    b.owner,
		Target:    st.Target,
		Type:      st.Type,
		Requested: st.Damage,
	})
	if err != nil {
		return nil, false
	}

	if _, isPlayer := b.owner.(*entity.Player); isPlayer {
		b.emit(s, signal.PlayerAttack, signal.Damage{Event: ev})
	}
	if ev.Crit {
		s.Hitstop(CritHitstop)
	}
	return ev, true
}

// =============================================================================
// Slash
// =============================================================================

// Slash is a melee swing in front of the owner.
type Slash struct {
	base
}

// NewSlash creates a slash bound to the attack key.
func NewSlash(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	return &Slash{base: newBase(def, owner, input.KeyAttack)}
}

// Hitbox returns the area the swing covers.
func (a *Slash) Hitbox() world.Rect {
	body := a.owner.Base().Body
	reach := a.def.Range
	x := body.Pos.X
	if body.Facing < 0 {
		x -= reach
	}
	return world.Rect{X: x, Y: body.Pos.Y - body.Height - 1, Width: reach, Height: body.Height + 1}
}

// Call swings at everything in the hitbox.
func (a *Slash) Call(s entity.Scene, _ input.Key) bool {
	if !a.begin(s.Context(), eventTrigger) {
		return false
	}

	hitbox := a.Hitbox()
	swung := false
	for _, t := range opponents(s, a.owner) {
		if !hitbox.Intersects(t.Base().Bounds()) {
			continue
		}
		swung = true
		a.strike(s, signal.Slash, &signal.Strike{
			AbilityID: a.ID(),
			Attacker:  a.owner,
			Target:    t,
			Type:      combat.DamagePhysical,
			Damage:    a.damage(a.def.Power),
		})
	}
	if !swung {
		// A whiff still tells talents the ability fired.
		a.emit(s, signal.Slash, &signal.Strike{AbilityID: a.ID(), Attacker: a.owner, Type: combat.DamagePhysical})
	}
	return true
}

// =============================================================================
// Dash strike
// =============================================================================

// DashStrike flies forward for up to Range units and strikes the first
// opponent it touches. It controls its owner while flying.
type DashStrike struct {
	base

	dir       float64
	travelled float64
	target    entity.Owner
}

// NewDashStrike creates a dash strike bound to the special key.
func NewDashStrike(def gamedata.AbilityDef, owner entity.Owner) entity.Ability {
	return &DashStrike{base: newBase(def, owner, input.KeySpecial)}
}

// Call launches the owner forward.
func (a *DashStrike) Call(s entity.Scene, _ input.Key) bool {
	if !a.begin(s.Context(), eventActivate) {
		return false
	}
	a.dir = a.owner.Base().Body.Facing
	a.travelled = 0
	a.target = nil
	return true
}

// Update advances the flight by one tick.
func (a *DashStrike) Update(s entity.Scene, dt float64) {
	ctx := s.Context()
	switch a.machine.State() {
	case StateActive:
		body := &a.owner.Base().Body
		before := body.Pos.X
		body.Glide(s.Arena(), a.dir*a.def.Speed, dt)
		a.travelled += a.def.Speed * dt

		for _, t := range opponents(s, a.owner) {
			if body.Rect().Intersects(t.Base().Bounds()) {
				a.target = t
				a.machine.Fire(ctx, eventHit)
				return
			}
		}

		// Out of range, or pinned against a wall: nothing to hit.
		if a.travelled >= a.def.Range || body.Pos.X == before {
			a.emit(s, signal.DashStrike, &signal.Strike{AbilityID: a.ID(), Attacker: a.owner, Type: combat.DamagePhysical, Distance: a.travelled})
			a.finish(ctx)
		}

	case StateResolving:
		a.strike(s, signal.DashStrike, &signal.Strike{
			AbilityID: a.ID(),
			Attacker:  a.owner,
			Target:    a.target,
			Type:      combat.DamagePhysical,
			Damage:    a.damage(a.def.Power),
			Distance:  a.travelled,
		})
		a.target = nil
		a.finish(ctx)

	default:
		a.settle(ctx)
	}
}

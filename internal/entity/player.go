package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/leveling"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/stats"
	"github.com/samdwyer/wavebreaker/internal/status"
	"github.com/samdwyer/wavebreaker/internal/world"
)

const (
	// HurtImmunity is how long the player ignores contact damage after
	// being hit by it.
	HurtImmunity = 40.0
	// HurtKnockback is the push applied by any hit on the player.
	HurtKnockback = 1.5
)

// ErrNoSlot is returned when every ability slot is taken.
var ErrNoSlot = errors.New("no free ability slot")

// Player is the character controlled by input.
type Player struct {
	Actor
	Level   *leveling.State
	Talents []Talent
	Slots   int

	taps *input.DoubleTap
	dead bool
}

// NewPlayer creates a player from its definition, standing at pos.
func NewPlayer(def gamedata.PlayerDef, curve leveling.Curve, pos world.Vec2) *Player {
	sheet := stats.Sheet{
		Combat: stats.Combat{
			MaxHealth:         def.HP,
			Health:            def.HP,
			BaseDamage:        def.BaseDamage,
			CritChance:        def.CritChance,
			CritMultiplier:    def.CritMultiplier,
			DamageMultiplier:  1,
			HealingMultiplier: 1,
		},
		Movement: stats.Movement{
			MaxSpeed:     def.MaxSpeed,
			Acceleration: def.Acceleration,
			Friction:     def.Friction,
			Jumps:        def.Jumps,
			JumpPower:    def.JumpPower,
		},
	}

	p := &Player{
		Actor: newActor("Player", TagPlayer, sheet, def.Width, def.Height, pos),
		Level: leveling.New(curve),
		Slots: def.Slots,
		taps:  input.NewDoubleTap(),
	}
	p.Signals = &signal.Bus[Scene]{}
	p.Effects = status.NewList(p)
	return p
}

// Dead reports whether the player has died.
func (p *Player) Dead() bool { return p.dead }

// =============================================================================
// Abilities and talents
// =============================================================================

// ActiveCount returns how many slot-consuming abilities are owned.
func (p *Player) ActiveCount() int {
	n := 0
	for _, ab := range p.Abilities {
		if !ab.Passive() {
			n++
		}
	}
	return n
}

// FreeSlot reports whether one more active ability fits.
func (p *Player) FreeSlot() bool {
	return p.ActiveCount() < p.Slots
}

// AddAbility attaches an ability. Active abilities need a free slot.
func (p *Player) AddAbility(ab Ability) error {
	if !ab.Passive() && !p.FreeSlot() {
		return fmt.Errorf("add %s: %w", ab.ID(), ErrNoSlot)
	}
	p.Abilities = append(p.Abilities, ab)
	return nil
}

// RemoveAbility detaches the ability with the given ID.
func (p *Player) RemoveAbility(id string) bool {
	for i, ab := range p.Abilities {
		if ab.ID() == id {
			p.Abilities = append(p.Abilities[:i:i], p.Abilities[i+1:]...)
			return true
		}
	}
	return false
}

// AddTalent attaches a talent and subscribes it to the player's signals.
func (p *Player) AddTalent(t Talent) {
	p.Talents = append(p.Talents, t)
	p.Signals.Subscribe(t)
}

// HasTalent reports whether a talent with the given ID is owned.
func (p *Player) HasTalent(id string) bool {
	for _, t := range p.Talents {
		if t.ID() == id {
			return true
		}
	}
	return false
}

// GainExperience registers experience and emits a level-up signal for every
// level gained. It returns the number of levels gained.
func (p *Player) GainExperience(s Scene, amount float64) int {
	gained := p.Level.Register(amount)
	for i := gained - 1; i >= 0; i-- {
		p.Emit(s, signal.Event{Kind: signal.LevelUp, Payload: signal.Level{Level: p.Level.Level - i}})
	}
	return gained
}

// =============================================================================
// Frame update
// =============================================================================

// Update runs the player's phases for one tick in order: cooldowns and
// immunity, status effects, abilities, talents, movement.
func (p *Player) Update(s Scene, frame input.Frame, dt float64) {
	if p.dead {
		return
	}

	p.decay(dt)

	p.tickEffects(s, dt)
	p.Flush(s)

	taps := p.taps.Observe(frame)
	if !p.Controlled() {
		p.trigger(s, append(append([]input.Key(nil), frame.Down...), taps...))
	}
	p.updateAbilities(s, dt)
	p.Flush(s)

	for _, t := range p.Talents {
		t.Update(s, dt)
	}

	if p.Controlled() {
		return
	}
	for _, k := range frame.Down {
		if k == input.KeyJump {
			p.Body.Jump(p.Sheet.Movement)
		}
	}
	p.Body.Step(s.Arena(), p.Sheet.Movement, frame.Axis(), dt)
}

// =============================================================================
// Combatant callbacks
// =============================================================================

// OnDamaged queues the damage signal and applies knockback.
func (p *Player) OnDamaged(ev *combat.DamageEvent) {
	if ev.Type == combat.DamageContact {
		p.Immune.Grant(combat.DamageContact, HurtImmunity)
	}
	if src, ok := ev.Source.(Owner); ok && !ev.Lethal {
		p.Knockback(src.Base().Body.Pos, HurtKnockback)
	}
	p.Enqueue(signal.Event{Kind: signal.PlayerDamaged, Payload: signal.Damage{Event: ev}})
}

// OnDeath marks the player dead. The run ends on the next frame.
func (p *Player) OnDeath(*combat.DamageEvent) {
	p.dead = true
}

// OnHealed queues the heal signal.
func (p *Player) OnHealed(ev *combat.HealEvent) {
	p.Enqueue(signal.Event{Kind: signal.PlayerHealed, Payload: signal.Heal{Event: ev}})
}

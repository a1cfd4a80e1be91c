package entity

import (
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/stats"
	"github.com/samdwyer/wavebreaker/internal/status"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// Actor is the state shared by the player and enemies. It is embedded, and
// the embedding type supplies the combat callbacks.
type Actor struct {
	ID        uuid.UUID
	Sheet     stats.Sheet
	Immune    combat.Immunity
	Effects   *status.List
	Body      Body
	Abilities []Ability

	// Signals is nil for actors without talents.
	Signals *signal.Bus[Scene]

	name string
	tag  string
}

func newActor(name, tag string, sheet stats.Sheet, width, height float64, pos world.Vec2) Actor {
	return Actor{
		ID:    uuid.New(),
		Sheet: sheet,
		Body: Body{
			Pos:       pos,
			Width:     width,
			Height:    height,
			Facing:    1,
			JumpsLeft: sheet.Movement.Jumps,
		},
		name: name,
		tag:  tag,
	}
}

// Name returns the actor's display name.
func (a *Actor) Name() string { return a.name }

// Stats returns the actor's live stat sheet.
func (a *Actor) Stats() *stats.Sheet { return &a.Sheet }

// Immunity returns the actor's immunity state.
func (a *Actor) Immunity() *combat.Immunity { return &a.Immune }

// Base returns the actor itself.
func (a *Actor) Base() *Actor { return a }

// SpriteID returns the actor's stable ID.
func (a *Actor) SpriteID() uuid.UUID { return a.ID }

// Tag returns the sprite tag.
func (a *Actor) Tag() string { return a.tag }

// Bounds returns the hitbox.
func (a *Actor) Bounds() world.Rect { return a.Body.Rect() }

// Ability returns the owned ability with the given ID, or nil.
func (a *Actor) Ability(id string) Ability {
	for _, ab := range a.Abilities {
		if ab.ID() == id {
			return ab
		}
	}
	return nil
}

// HasAbility reports whether an ability with the given ID is owned.
func (a *Actor) HasAbility(id string) bool {
	return a.Ability(id) != nil
}

// Controlled reports whether any owned ability is driving movement.
func (a *Actor) Controlled() bool {
	return slices.ContainsFunc(a.Abilities, Ability.Controlling)
}

// Emit delivers ev to the actor's talents right away.
func (a *Actor) Emit(s Scene, ev signal.Event) int {
	if a.Signals == nil {
		return 0
	}
	return a.Signals.Emit(s, ev)
}

// Enqueue holds ev until the next Flush. Combat callbacks use it so talents
// only run once resolution has finished.
func (a *Actor) Enqueue(ev signal.Event) {
	if a.Signals == nil {
		return
	}
	a.Signals.Enqueue(ev)
}

// Flush delivers every enqueued signal.
func (a *Actor) Flush(s Scene) {
	if a.Signals == nil {
		return
	}
	a.Signals.Flush(s)
}

// Knockback pushes the actor away from a point, scaled down by knockback
// resistance.
func (a *Actor) Knockback(from world.Vec2, force float64) {
	resist := min(max(a.Sheet.Combat.KnockbackResistance, 0), 1)
	push := force * (1 - resist)
	if push == 0 {
		return
	}
	if a.Body.Pos.X < from.X {
		push = -push
	}
	a.Body.Impulse(push)
	if a.Body.OnGround {
		a.Body.Vel.Y = -math.Abs(push) * 0.3
		a.Body.OnGround = false
	}
}

// decay is the first frame phase: immunity timers and cooldowns.
func (a *Actor) decay(dt float64) {
	a.Immune.Decay(dt)
	for _, ab := range a.Abilities {
		ab.DecayCooldown(dt)
	}
}

// tickEffects is the second frame phase.
func (a *Actor) tickEffects(s Scene, dt float64) {
	if a.Effects != nil {
		a.Effects.Tick(s.Context(), s.Resolver(), dt)
	}
}

// trigger calls every active ability bound to one of keys.
func (a *Actor) trigger(s Scene, keys []input.Key) {
	for _, key := range keys {
		for _, ab := range slices.Clone(a.Abilities) {
			if ab.Passive() || !ab.Bound(key) {
				continue
			}
			ab.Call(s, key)
		}
	}
}

// updateAbilities is the third frame phase.
func (a *Actor) updateAbilities(s Scene, dt float64) {
	for _, ab := range slices.Clone(a.Abilities) {
		ab.Update(s, dt)
	}
}

// Package entity provides the actors of a run: the player, enemies and the
// experience orbs they drop, plus the interfaces abilities and talents
// implement to attach to them.
package entity

import (
	"context"
	"math/rand"

	"github.com/google/uuid"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// Sprite tags used by the scene's sprite sink.
const (
	TagPlayer = "player"
	TagEnemy  = "enemy"
	TagOrb    = "orb"
)

// Scene is what actors, abilities and talents can see of the running
// simulation.
type Scene interface {
	Context() context.Context
	Player() *Player
	Enemies() []*Enemy
	Arena() *world.Arena
	Resolver() *combat.Resolver
	Rand() *rand.Rand
	// After runs fn once ticks of scaled time have passed.
	After(ticks float64, fn func())
	// Hitstop slows the whole simulation for a few raw frames.
	Hitstop(frames int)
}

// Sprite is anything the scene hands to the renderer.
type Sprite interface {
	SpriteID() uuid.UUID
	Tag() string
	Bounds() world.Rect
}

// Owner is an actor that can own abilities.
type Owner interface {
	combat.Combatant
	Base() *Actor
}

// Ability is one ability instance attached to an actor.
type Ability interface {
	ID() string
	// Passive abilities are never called, only updated.
	Passive() bool
	// Bound reports whether key triggers the ability.
	Bound(key input.Key) bool
	// Call triggers the ability. It returns false and does nothing while
	// the ability is cooling down.
	Call(s Scene, key input.Key) bool
	DecayCooldown(dt float64)
	Update(s Scene, dt float64)
	// Controlling is true while the ability drives its owner's movement.
	Controlling() bool
}

// Talent is a reactive modifier owned by the player.
type Talent interface {
	signal.Subscriber[Scene]
	ID() string
	Update(s Scene, dt float64)
}

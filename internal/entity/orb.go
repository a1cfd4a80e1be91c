package entity

import (
	"github.com/google/uuid"

	"github.com/samdwyer/wavebreaker/internal/world"
)

const (
	// OrbMagnet is the distance at which orbs start drifting to the player.
	OrbMagnet = 14.0
	// OrbPickup is the distance at which an orb is collected.
	OrbPickup = 1.5
	// OrbSpeed is the drift speed per tick at full pull.
	OrbSpeed = 1.2
	orbSize  = 1.0
)

// Orb is one experience particle. Each orb carries its own fractional
// share of an enemy's experience.
type Orb struct {
	ID    uuid.UUID
	Pos   world.Vec2
	Value float64

	collected bool
}

// NewOrb creates an orb at pos.
func NewOrb(pos world.Vec2, value float64) *Orb {
	return &Orb{ID: uuid.New(), Pos: pos, Value: value}
}

// SpriteID returns the orb's ID.
func (o *Orb) SpriteID() uuid.UUID { return o.ID }

// Tag returns the sprite tag.
func (o *Orb) Tag() string { return TagOrb }

// Bounds returns the orb's box.
func (o *Orb) Bounds() world.Rect { return world.RectAt(o.Pos, orbSize, orbSize) }

// Collected reports whether the orb has been picked up.
func (o *Orb) Collected() bool { return o.collected }

// Drift moves the orb toward target and reports whether it was collected
// this tick. A collected orb never reports collection again.
func (o *Orb) Drift(target world.Vec2, dt float64) bool {
	if o.collected {
		return false
	}

	d := world.Dist(o.Pos, target)
	if d <= OrbPickup {
		o.collected = true
		return true
	}
	if d > OrbMagnet {
		return false
	}

	// Pull grows as the orb gets closer.
	pull := OrbSpeed * (1 + (OrbMagnet-d)/OrbMagnet) * dt
	if pull >= d {
		o.Pos = target
		o.collected = true
		return true
	}
	o.Pos = o.Pos.Add(target.Sub(o.Pos).Scale(pull / d))
	return false
}

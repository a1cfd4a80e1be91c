package entity

import (
	"math"

	"github.com/samdwyer/wavebreaker/internal/stats"
	"github.com/samdwyer/wavebreaker/internal/world"
)

const (
	// Gravity is the downward acceleration per tick.
	Gravity = 0.35
	// MaxFall caps falling speed.
	MaxFall = 6.0
)

// Body is an actor's position and velocity. Pos is the bottom centre.
type Body struct {
	Pos       world.Vec2
	Vel       world.Vec2
	Width     float64
	Height    float64
	Facing    float64 // -1 left, 1 right
	OnGround  bool
	JumpsLeft int
}

// Rect returns the hitbox.
func (b *Body) Rect() world.Rect {
	return world.RectAt(b.Pos, b.Width, b.Height)
}

// Jump starts a jump if any jumps are left.
func (b *Body) Jump(m stats.Movement) bool {
	if b.JumpsLeft <= 0 {
		return false
	}
	b.JumpsLeft--
	b.Vel.Y = -m.JumpPower
	b.OnGround = false
	return true
}

// Impulse adds an instant horizontal push, e.g. a dash or knockback.
func (b *Body) Impulse(vx float64) {
	b.Vel.X += vx
}

// Step integrates one tick of movement. axis is the horizontal input in
// [-1, 1].
func (b *Body) Step(arena *world.Arena, m stats.Movement, axis, dt float64) {
	b.steer(m, axis, dt)
	b.fall(dt)

	prev := b.Rect()
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if b.Vel.Y >= 0 {
		if y, ok := arena.Landing(prev, b.Rect()); ok {
			b.Pos.Y = y
			b.Vel.Y = 0
			b.OnGround = true
			b.JumpsLeft = m.Jumps
		} else {
			b.OnGround = false
		}
	}

	left := b.Pos.X - b.Width/2
	if clamped := arena.ClampX(left, b.Width); clamped != left {
		b.Pos.X = clamped + b.Width/2
		b.Vel.X = 0
	}
	if b.Pos.Y > arena.FloorY() {
		b.Pos.Y = arena.FloorY()
		b.Vel.Y = 0
		b.OnGround = true
		b.JumpsLeft = m.Jumps
	}
}

// Glide moves the body horizontally without gravity or friction. Abilities
// that take over movement use it.
func (b *Body) Glide(arena *world.Arena, vx, dt float64) {
	b.Vel = world.Vec2{X: vx}
	b.Pos.X = arena.ClampX(b.Pos.X+vx*dt-b.Width/2, b.Width) + b.Width/2
}

func (b *Body) steer(m stats.Movement, axis, dt float64) {
	if axis != 0 {
		b.Facing = math.Copysign(1, axis)
	}

	speed := math.Abs(b.Vel.X)
	switch {
	case speed > m.MaxSpeed:
		// Faster than running after an impulse: bleed off speed.
		b.Vel.X -= math.Copysign(min(m.Friction*dt, speed-m.MaxSpeed), b.Vel.X)
	case axis != 0:
		b.Vel.X += axis * m.Acceleration * dt
		if math.Abs(b.Vel.X) > m.MaxSpeed {
			b.Vel.X = math.Copysign(m.MaxSpeed, b.Vel.X)
		}
	default:
		b.Vel.X -= math.Copysign(min(m.Friction*dt, speed), b.Vel.X)
	}
}

func (b *Body) fall(dt float64) {
	b.Vel.Y += Gravity * dt
	if b.Vel.Y > MaxFall {
		b.Vel.Y = MaxFall
	}
}

package entity

import (
	"math"
	"slices"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/stats"
	"github.com/samdwyer/wavebreaker/internal/status"
	"github.com/samdwyer/wavebreaker/internal/world"
)

const (
	// EnemyKnockback is the push an enemy takes from any hit.
	EnemyKnockback = 1.2
	// EngageRange is how close the player must be before an enemy uses
	// its active abilities.
	EngageRange = 8.0
)

// Enemy represents a hostile creature in the arena.
type Enemy struct {
	Actor
	Def   *gamedata.EnemyDef
	Level int

	dead   bool
	killer *combat.DamageEvent
}

// NewEnemy creates an enemy from a data-driven definition. Health and
// damage grow by growth per level above 1.
func NewEnemy(def *gamedata.EnemyDef, level int, growth float64, pos world.Vec2) *Enemy {
	level = max(level, 1)
	scale := 1 + growth*float64(level-1)

	sheet := stats.Sheet{
		Combat: stats.Combat{
			MaxHealth:           math.Round(def.HP * scale),
			Health:              math.Round(def.HP * scale),
			BaseDamage:          def.Damage * scale,
			CritMultiplier:      1,
			DamageMultiplier:    1,
			HealingMultiplier:   1,
			KnockbackResistance: def.Knockback,
		},
		Movement: stats.Movement{
			MaxSpeed:     def.Speed,
			Acceleration: def.Speed / 4,
			Friction:     def.Speed / 4,
			Jumps:        1,
			JumpPower:    2,
		},
	}

	e := &Enemy{
		Actor: newActor(def.Name, TagEnemy, sheet, def.Width, def.Height, pos),
		Def:   def,
		Level: level,
	}
	e.Effects = status.NewList(e)
	return e
}

// Dead reports whether the enemy has died and is waiting to be removed.
func (e *Enemy) Dead() bool { return e.dead }

// Killer returns the event that killed the enemy, or nil.
func (e *Enemy) Killer() *combat.DamageEvent { return e.killer }

// Update runs the enemy's phases for one tick. Enemies walk toward the
// player and hop when the player stands above them.
func (e *Enemy) Update(s Scene, dt float64) {
	if e.dead {
		return
	}

	e.decay(dt)
	e.tickEffects(s, dt)
	if e.dead {
		return
	}
	p := s.Player()
	if p != nil && !p.Dead() && world.Dist(e.Body.Pos, p.Body.Pos) <= EngageRange {
		for _, ab := range slices.Clone(e.Abilities) {
			if !ab.Passive() {
				ab.Call(s, input.KeyNone)
			}
		}
	}
	e.updateAbilities(s, dt)

	if e.Controlled() {
		return
	}

	axis := 0.0
	if p != nil && !p.Dead() {
		dx := p.Body.Pos.X - e.Body.Pos.X
		if math.Abs(dx) > e.Body.Width/2 {
			axis = math.Copysign(1, dx)
		}
		if e.Body.OnGround && p.Body.OnGround && p.Body.Pos.Y < e.Body.Pos.Y-e.Body.Height {
			e.Body.Jump(e.Sheet.Movement)
		}
	}
	e.Body.Step(s.Arena(), e.Sheet.Movement, axis, dt)
}

// OnDamaged applies knockback away from the source.
func (e *Enemy) OnDamaged(ev *combat.DamageEvent) {
	if ev.Lethal {
		return
	}
	if src, ok := ev.Source.(Owner); ok && ev.Type != combat.DamageSpecial {
		e.Knockback(src.Base().Body.Pos, EnemyKnockback)
	}
}

// OnDeath records the killing blow. The scene removes the enemy during
// its cull phase.
func (e *Enemy) OnDeath(ev *combat.DamageEvent) {
	if e.dead {
		return
	}
	e.dead = true
	e.killer = ev
}

// OnHealed is a no-op.
func (e *Enemy) OnHealed(*combat.HealEvent) {}

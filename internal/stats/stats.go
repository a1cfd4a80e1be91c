// Package stats holds the named combat and movement attributes of an actor.
//
// Most code reads and writes the struct fields directly. The Stat enum and
// the Get/Set indirection exist for the callers that address a stat by
// value at runtime: status effects and talents.
package stats

import "math"

// Stat identifies a single numeric attribute on a Sheet.
type Stat int

const (
	MaxHealth Stat = iota
	Health
	BaseDamage
	CritChance
	CritMultiplier
	DamageMultiplier
	HealingMultiplier
	KnockbackResistance
	MaxSpeed
	Acceleration
	Friction
	Jumps
	JumpPower
)

// String returns the stat's snake_case name.
func (s Stat) String() string {
	switch s {
	case MaxHealth:
		return "max_health"
	case Health:
		return "health"
	case BaseDamage:
		return "base_damage"
	case CritChance:
		return "crit_chance"
	case CritMultiplier:
		return "crit_multiplier"
	case DamageMultiplier:
		return "damage_multiplier"
	case HealingMultiplier:
		return "healing_multiplier"
	case KnockbackResistance:
		return "knockback_resistance"
	case MaxSpeed:
		return "max_speed"
	case Acceleration:
		return "acceleration"
	case Friction:
		return "friction"
	case Jumps:
		return "jumps"
	case JumpPower:
		return "jump_power"
	default:
		return "unknown"
	}
}

// Combat holds the attributes read by damage and heal resolution.
type Combat struct {
	MaxHealth           float64
	Health              float64
	BaseDamage          float64
	CritChance          float64 // 0..1
	CritMultiplier      float64
	DamageMultiplier    float64
	HealingMultiplier   float64
	KnockbackResistance float64 // 0..1, 1 ignores knockback entirely
}

// Movement holds the attributes read by the movement integrator.
type Movement struct {
	MaxSpeed     float64
	Acceleration float64
	Friction     float64
	Jumps        int
	JumpPower    float64
}

// Sheet is the full stat block owned by one actor.
type Sheet struct {
	Combat   Combat
	Movement Movement
}

// Get returns the current value of the given stat.
func (s *Sheet) Get(st Stat) float64 {
	if p := s.field(st); p != nil {
		return *p
	}
	if st == Jumps {
		return float64(s.Movement.Jumps)
	}
	return 0
}

// Set writes a stat. When additive is true, value is added to the current
// value instead of replacing it. Health is clamped into [0, MaxHealth]
// after every write.
func (s *Sheet) Set(st Stat, value float64, additive bool) {
	if st == Jumps {
		if additive {
			value += float64(s.Movement.Jumps)
		}
		s.Movement.Jumps = int(math.Round(value))
		return
	}
	p := s.field(st)
	if p == nil {
		return
	}
	if additive {
		*p += value
	} else {
		*p = value
	}
	s.ClampHealth()
}

// ClampHealth forces Health back into [0, MaxHealth].
func (s *Sheet) ClampHealth() {
	if s.Combat.MaxHealth < 0 {
		s.Combat.MaxHealth = 0
	}
	switch {
	case s.Combat.Health < 0:
		s.Combat.Health = 0
	case s.Combat.Health > s.Combat.MaxHealth:
		s.Combat.Health = s.Combat.MaxHealth
	}
}

func (s *Sheet) field(st Stat) *float64 {
	switch st {
	case MaxHealth:
		return &s.Combat.MaxHealth
	case Health:
		return &s.Combat.Health
	case BaseDamage:
		return &s.Combat.BaseDamage
	case CritChance:
		return &s.Combat.CritChance
	case CritMultiplier:
		return &s.Combat.CritMultiplier
	case DamageMultiplier:
		return &s.Combat.DamageMultiplier
	case HealingMultiplier:
		return &s.Combat.HealingMultiplier
	case KnockbackResistance:
		return &s.Combat.KnockbackResistance
	case MaxSpeed:
		return &s.Movement.MaxSpeed
	case Acceleration:
		return &s.Movement.Acceleration
	case Friction:
		return &s.Movement.Friction
	case JumpPower:
		return &s.Movement.JumpPower
	default:
		return nil
	}
}

// Package leveling tracks player experience against the level curve and
// sizes the experience dropped by enemies.
package leveling

import "math"

// epsilon absorbs float error when experience lands exactly on the cap.
const epsilon = 1e-9

// Curve is base + level^exponent.
type Curve struct {
	Base     float64 `json:"base"`
	Exponent float64 `json:"exponent"`
}

// At evaluates the curve for level.
func (c Curve) At(level int) float64 {
	return c.Base + math.Pow(float64(level), c.Exponent)
}

// State is the player's level progress.
type State struct {
	Level      int
	Experience float64
	Cap        float64

	curve Curve
}

// New starts at level 1 with no experience.
func New(curve Curve) *State {
	s := &State{Level: 1, curve: curve}
	s.Cap = s.capFor(1)
	return s
}

// Curve returns the curve the state levels along.
func (s *State) Curve() Curve {
	return s.curve
}

// Register adds experience, levelling up as many times as the amount
// covers and carrying the overflow into the new level. It returns the
// number of levels gained. Amounts that are not positive and finite are
// ignored.
func (s *State) Register(amount float64) int {
	if !(amount > 0) || math.IsInf(amount, 1) {
		return 0
	}
	s.Experience += amount

	gained := 0
	for s.Experience+epsilon*math.Max(1, s.Cap) >= s.Cap {
		s.Experience -= s.Cap
		if s.Experience < epsilon {
			s.Experience = 0
		}
		s.Level++
		s.Cap = s.capFor(s.Level)
		gained++
	}
	return gained
}

// Remaining returns the experience still needed for the next level.
func (s *State) Remaining() float64 {
	return math.Max(s.Cap-s.Experience, 0)
}

// Progress returns how far into the current level the player is, 0..1.
func (s *State) Progress() float64 {
	if s.Cap <= 0 {
		return 0
	}
	return math.Min(s.Experience/s.Cap, 1)
}

func (s *State) capFor(level int) float64 {
	c := s.curve.At(level)
	if c < 1 {
		c = 1
	}
	return c
}

// Drop sizes the experience an enemy gives on death.
type Drop struct {
	Curve Curve
}

// Total returns base_enemy_xp + level^enemy_curve, scaled by multiplier.
func (d Drop) Total(level int, multiplier float64) float64 {
	return d.Curve.At(level) * multiplier
}

// Split divides total evenly across n orbs. n below 1 is treated as 1.
func Split(total float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	shares := make([]float64, n)
	share := total / float64(n)
	for i := range shares {
		shares[i] = share
	}
	return shares
}

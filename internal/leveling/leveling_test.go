package leveling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var testCurve = Curve{Base: 10, Exponent: 1.5}

func TestCurveAt(t *testing.T) {
	c := Curve{Base: 5, Exponent: 2}
	assert.Equal(t, 6.0, c.At(1))
	assert.Equal(t, 14.0, c.At(3))
}

func TestNewState(t *testing.T) {
	s := New(testCurve)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0.0, s.Experience)
	assert.Equal(t, testCurve.At(1), s.Cap)
}

func TestExactGrantLevelsOnce(t *testing.T) {
	s := New(testCurve)
	s.Register(3.7)

	gained := s.Register(s.Cap - s.Experience)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 0.0, s.Experience)
	assert.Equal(t, testCurve.At(2), s.Cap)
}

func TestOverflowCarries(t *testing.T) {
	s := New(testCurve)
	cap1 := s.Cap

	gained := s.Register(cap1 + 4)
	assert.Equal(t, 1, gained)
	assert.InDelta(t, 4.0, s.Experience, 1e-9)
}

func TestMultiLevelGrant(t *testing.T) {
	s := New(testCurve)
	amount := testCurve.At(1) + testCurve.At(2) + 1

	gained := s.Register(amount)
	assert.Equal(t, 2, gained)
	assert.Equal(t, 3, s.Level)
	assert.InDelta(t, 1.0, s.Experience, 1e-9)
}

func TestNonPositiveGrantIgnored(t *testing.T) {
	s := New(testCurve)
	assert.Equal(t, 0, s.Register(0))
	assert.Equal(t, 0, s.Register(-5))
	assert.Equal(t, 0.0, s.Experience)
}

func TestNonFiniteGrantIgnored(t *testing.T) {
	s := New(testCurve)
	require.Equal(t, 2, s.Register(s.Cap+testCurve.At(2)))
	before := *s

	for _, amount := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		assert.Equal(t, 0, s.Register(amount), "%v", amount)
	}
	assert.Equal(t, before, *s, "state is untouched")
	assert.Equal(t, 1, s.Register(s.Remaining()), "still levels normally")
}

func TestDegenerateCurveTerminates(t *testing.T) {
	s := New(Curve{Base: -100, Exponent: 0})
	require.Equal(t, 1.0, s.Cap)
	assert.Equal(t, 5, s.Register(5))
}

func TestDropAndSplit(t *testing.T) {
	d := Drop{Curve: Curve{Base: 2, Exponent: 1}}
	assert.Equal(t, 10.0, d.Total(3, 2))

	shares := Split(9, 3)
	assert.Equal(t, []float64{3, 3, 3}, shares)
	assert.Len(t, Split(4, 0), 1)
}

func TestLevelingConservesExperienceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		curve := Curve{
			Base:     rapid.Float64Range(1, 50).Draw(t, "base"),
			Exponent: rapid.Float64Range(0.5, 2.5).Draw(t, "exp"),
		}
		s := New(curve)
		total := 0.0
		grants := rapid.SliceOfN(rapid.Float64Range(0.1, 400), 1, 30).Draw(t, "grants")
		for _, g := range grants {
			s.Register(g)
			total += g
		}

		// Replaying the caps consumed must account for every point granted
		spent := 0.0
		for lvl := 1; lvl < s.Level; lvl++ {
			spent += curve.At(lvl)
		}
		if diff := total - spent - s.Experience; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("experience not conserved: granted %v, spent %v, held %v", total, spent, s.Experience)
		}
		if s.Experience >= s.Cap {
			t.Fatalf("experience %v left at or above cap %v", s.Experience, s.Cap)
		}
	})
}

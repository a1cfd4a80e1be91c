package wave

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/samdwyer/wavebreaker/internal/gamedata"
)

type spawnCall struct {
	def   *gamedata.EnemyDef
	level int
	x     float64
}

// fakeHost records spawns and runs delayed calls on demand.
type fakeHost struct {
	playerX   float64
	spawns    []spawnCall
	delayed   []func()
	delays    []float64
	cleared   []State
	immediate bool
}

func (h *fakeHost) PlayerX() float64 { return h.playerX }

func (h *fakeHost) Spawn(_ context.Context, def *gamedata.EnemyDef, level int, x float64) {
	h.spawns = append(h.spawns, spawnCall{def: def, level: level, x: x})
}

func (h *fakeHost) After(ticks float64, fn func()) {
	h.delays = append(h.delays, ticks)
	if h.immediate {
		fn()
		return
	}
	h.delayed = append(h.delayed, fn)
}

func (h *fakeHost) Cleared(_ context.Context, st State) {
	h.cleared = append(h.cleared, st)
}

func testTuning() gamedata.WaveTuning {
	return gamedata.WaveTuning{
		WavesPerArea:       9,
		FloorEvery:         3,
		CountExponent:      1.26,
		CountOffset:        4,
		ConcurrentFraction: 0.4,
		SpawnPeriod:        10,
		NextWaveDelay:      120,
		EnemyLevelScale:    0.5,
		MiniBossFloors:     []int{2},
		BossFloors:         []int{3},
	}
}

func newTestScheduler(h *fakeHost, tuning gamedata.WaveTuning) *Scheduler {
	return NewScheduler(tuning, gamedata.MustLoadEnemyRegistry(), h, rand.New(rand.NewSource(5)), Bounds{Min: 0, Max: 160}, 48)
}

func TestCount(t *testing.T) {
	s := newTestScheduler(&fakeHost{}, testTuning())

	tests := []struct {
		wave, area, want int
	}{
		{1, 1, 5},
		{2, 1, 6},
		{3, 2, 16},
		{9, 1, 20},
	}
	for _, tt := range tests {
		if got := s.Count(tt.wave, tt.area); got != tt.want {
			t.Errorf("Count(%d, %d) = %d, want %d", tt.wave, tt.area, got, tt.want)
		}
	}
}

func TestEnemyLevel(t *testing.T) {
	s := newTestScheduler(&fakeHost{}, testTuning())
	for level, want := range map[int]int{1: 1, 2: 1, 3: 2, 4: 2, 9: 5} {
		assert.Equal(t, want, s.EnemyLevel(level), "level %d", level)
	}
}

func TestStartSizesFirstWave(t *testing.T) {
	h := &fakeHost{}
	s := newTestScheduler(h, testTuning())
	s.Start(context.Background(), 1)

	st := s.State()
	assert.True(t, s.Running())
	assert.Equal(t, 5, st.Population.TotalCap)
	assert.Equal(t, 2, st.Population.ConcurrentCap)
	assert.Equal(t, 10.0, st.Timer.Period)
	require.NotNil(t, st.Roster)
}

func TestSpawnsAlternateAndClamp(t *testing.T) {
	h := &fakeHost{playerX: 30}
	s := newTestScheduler(h, testTuning())
	ctx := context.Background()
	s.Start(ctx, 1)

	for i := 0; i < 20; i++ {
		s.Update(ctx, 1)
	}
	require.Len(t, h.spawns, 2, "concurrent cap holds at two")
	assert.Equal(t, 78.0, h.spawns[0].x)
	assert.Equal(t, 0.0, h.spawns[1].x, "left spawn clamped to the arena")
	for _, sp := range h.spawns {
		assert.False(t, sp.def.IsBoss())
		assert.Equal(t, 1, sp.level)
	}
}

func TestCapsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := &fakeHost{playerX: 80}
		s := newTestScheduler(h, testTuning())
		ctx := context.Background()
		s.state = State{Area: 1, Wave: 1, Level: 1, Roster: s.registry.Roster(0), Timer: Timer{Period: 10}}
		s.open(5, 2)

		steps := rapid.IntRange(200, 600).Draw(t, "steps")
		for i := 0; i < steps && s.Running(); i++ {
			dt := rapid.Float64Range(0, 3).Draw(t, "dt")
			s.Update(ctx, dt)

			pop := s.State().Population
			if pop.Alive > 2 {
				t.Fatalf("alive %d above concurrent cap", pop.Alive)
			}
			if pop.Spawned > 5 {
				t.Fatalf("spawned %d above total cap", pop.Spawned)
			}
			if pop.Alive > 0 && rapid.Bool().Draw(t, "kill") {
				s.Killed()
			}
		}

		if s.Running() {
			// Finish the wave off.
			for s.Running() {
				for s.State().Population.Alive > 0 {
					s.Killed()
				}
				s.Update(ctx, 10)
			}
		}

		require.Len(t, h.cleared, 1)
		cleared := h.cleared[0].Population
		if cleared.Spawned != 5 || cleared.Alive != 0 {
			t.Fatalf("wave completed with %+v", cleared)
		}
		if len(h.spawns) != 5 {
			t.Fatalf("spawned %d enemies, want 5", len(h.spawns))
		}
	})
}

func TestCompletionSchedulesNextWave(t *testing.T) {
	h := &fakeHost{}
	s := newTestScheduler(h, testTuning())
	ctx := context.Background()
	s.Start(ctx, 1)

	finish := func() {
		for s.Running() {
			for s.State().Population.Alive > 0 {
				s.Killed()
			}
			s.Update(ctx, 10)
		}
	}
	finish()

	assert.False(t, s.Running())
	require.Len(t, h.delayed, 1)
	assert.Equal(t, 120.0, h.delays[0])
	assert.Equal(t, 2, s.State().Wave)
	assert.Equal(t, 2, s.State().Level)

	h.delayed[0]()
	assert.True(t, s.Running())
	assert.Equal(t, 6, s.State().Population.TotalCap)
}

func TestFloorsAndBosses(t *testing.T) {
	h := &fakeHost{immediate: true}
	tuning := testTuning()
	tuning.CountExponent = 0
	tuning.CountOffset = 0 // one enemy per wave in area 1
	s := newTestScheduler(h, tuning)
	ctx := context.Background()
	s.Start(ctx, 1)

	for len(h.cleared) < 12 {
		for s.State().Population.Alive > 0 {
			s.Killed()
		}
		s.Update(ctx, 10)
	}

	var ranks []gamedata.Rank
	var floors []int
	for _, st := range h.cleared {
		ranks = append(ranks, st.Boss)
		floors = append(floors, st.Floor)
	}

	n, mini, boss := gamedata.RankNormal, gamedata.RankMiniBoss, gamedata.RankBoss
	assert.Equal(t, []gamedata.Rank{n, n, n, n, n, n, mini, boss, n, n, n, n}, ranks)
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1, 2, 3, 4, 4, 4, 5}, floors)

	assert.Equal(t, 9, h.cleared[10].Wave)
	last := h.cleared[len(h.cleared)-1]
	assert.Equal(t, 2, last.Area, "area advances after the last wave")
	assert.Equal(t, 1, last.Wave)

	var bossSpawns int
	for _, sp := range h.spawns {
		if sp.def.IsBoss() {
			bossSpawns++
		}
	}
	assert.Equal(t, 2, bossSpawns)
}

// Package wave paces enemy spawning. Waves make up areas; every few waves
// the floor counter advances, and some floors summon a boss.
package wave

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/telemetry"
)

// Host is the part of the scene the scheduler drives.
type Host interface {
	// PlayerX is the player's horizontal position.
	PlayerX() float64
	// Spawn creates an enemy at x.
	Spawn(ctx context.Context, def *gamedata.EnemyDef, level int, x float64)
	// After runs fn once ticks of scaled time have passed.
	After(ticks float64, fn func())
	// Cleared is told about every completed wave.
	Cleared(ctx context.Context, st State)
}

// Population is [alive, spawned, concurrent cap, total cap].
type Population struct {
	Alive         int
	Spawned       int
	ConcurrentCap int
	TotalCap      int
}

// Timer is the spawn-rate timer.
type Timer struct {
	Elapsed float64
	Period  float64
}

// State describes the wave in progress.
type State struct {
	Area  int
	Wave  int
	Floor int
	Level int
	// Boss is set for boss waves.
	Boss gamedata.Rank

	Population Population
	Timer      Timer
	Roster     *gamedata.Roster
}

// Bounds is the horizontal range enemies may spawn in.
type Bounds struct {
	Min, Max float64
}

// Scheduler runs waves for one run.
type Scheduler struct {
	// Offset is how far from the player enemies appear.
	Offset float64

	tuning   gamedata.WaveTuning
	registry *gamedata.EnemyRegistry
	host     Host
	rng      *rand.Rand
	bounds   Bounds

	state      State
	running    bool
	side       float64
	areaFloor  int // floor index when the current area began
	completion int
}

// NewScheduler creates a scheduler. Call Start to begin the first wave.
func NewScheduler(tuning gamedata.WaveTuning, registry *gamedata.EnemyRegistry, host Host, rng *rand.Rand, bounds Bounds, offset float64) *Scheduler {
	if tuning.FloorEvery <= 0 {
		tuning.FloorEvery = 3
	}
	if tuning.WavesPerArea <= 0 {
		tuning.WavesPerArea = 1
	}
	return &Scheduler{
		Offset:   offset,
		tuning:   tuning,
		registry: registry,
		host:     host,
		rng:      rng,
		bounds:   bounds,
		side:     1,
	}
}

// State returns a copy of the current wave state.
func (s *Scheduler) State() State { return s.state }

// Running reports whether a wave is in progress. Between waves it is false
// until the delayed start fires.
func (s *Scheduler) Running() bool { return s.running }

// Completed returns how many waves have been cleared.
func (s *Scheduler) Completed() int { return s.completion }

// Start begins the first wave of area at enemy-scaling level 1.
func (s *Scheduler) Start(ctx context.Context, area int) {
	s.state = State{Area: max(area, 1), Wave: 1, Level: 1}
	s.areaFloor = 0
	s.begin(ctx, gamedata.RankNormal)
}

// Count returns the number of enemies in a normal wave.
func (s *Scheduler) Count(wave, area int) int {
	return int(math.Round((math.Pow(float64(wave), s.tuning.CountExponent) + s.tuning.CountOffset) * float64(area)))
}

// EnemyLevel returns the level enemies spawn at for a scaling level.
func (s *Scheduler) EnemyLevel(level int) int {
	return max(int(math.Ceil(float64(level)*s.tuning.EnemyLevelScale)), 1)
}

// Killed reports that one spawned enemy has been removed.
func (s *Scheduler) Killed() {
	if s.state.Population.Alive > 0 {
		s.state.Population.Alive--
	}
}

// Update runs one tick of the scheduler.
func (s *Scheduler) Update(ctx context.Context, dt float64) {
	if !s.running {
		return
	}

	pop := &s.state.Population
	switch {
	case pop.Spawned >= pop.TotalCap:
		if pop.Alive <= 0 {
			s.complete(ctx)
		}
	case pop.Alive >= pop.ConcurrentCap:
		// Wait for the player to thin the crowd.
	default:
		s.state.Timer.Elapsed += dt
		if s.state.Timer.Elapsed >= s.state.Timer.Period {
			s.state.Timer.Elapsed = 0
			s.spawn(ctx)
		}
	}
}

func (s *Scheduler) begin(ctx context.Context, boss gamedata.Rank) {
	st := &s.state
	st.Boss = boss
	st.Timer = Timer{Period: s.tuning.SpawnPeriod}

	if boss != gamedata.RankNormal {
		st.Roster = nil
		s.open(1, 1)
	} else {
		progress := 0.0
		if s.tuning.WavesPerArea > 1 {
			progress = float64(st.Wave-1) / float64(s.tuning.WavesPerArea-1)
		}
		st.Roster = s.registry.Roster(progress)
		total := s.Count(st.Wave, st.Area)
		s.open(total, int(math.Round(float64(total)*s.tuning.ConcurrentFraction)))
	}

	_, span := telemetry.Tracer("wave").Start(ctx, "wave.start")
	span.SetAttributes(
		attribute.Int("wave.area", st.Area),
		attribute.Int("wave.index", st.Wave),
		attribute.Int("wave.floor", st.Floor),
		attribute.Int("wave.total", st.Population.TotalCap),
		attribute.String("wave.boss", string(boss)),
	)
	span.End()

	slog.DebugContext(ctx, "wave started",
		"area", st.Area, "wave", st.Wave, "floor", st.Floor,
		"total", st.Population.TotalCap, "concurrent", st.Population.ConcurrentCap, "boss", string(boss))
}

// open resets the population for a new wave.
func (s *Scheduler) open(total, concurrent int) {
	s.state.Population = Population{
		TotalCap:      max(total, 0),
		ConcurrentCap: max(concurrent, 1),
	}
	s.running = true
}

func (s *Scheduler) spawn(ctx context.Context) {
	st := &s.state

	var def *gamedata.EnemyDef
	if st.Boss != gamedata.RankNormal {
		boss, err := s.registry.Boss(st.Boss)
		if err != nil {
			slog.WarnContext(ctx, "boss wave has no boss", "err", err)
		}
		def = boss
	} else if st.Roster != nil {
		def = st.Roster.Pick(s.rng)
	}
	if def == nil {
		// Nothing can spawn: close the wave with what is already out.
		st.Population.TotalCap = st.Population.Spawned
		return
	}

	x := s.host.PlayerX() + s.side*s.Offset
	s.side = -s.side
	x = min(max(x, s.bounds.Min), s.bounds.Max)

	s.host.Spawn(ctx, def, s.EnemyLevel(st.Level), x)
	st.Population.Alive++
	st.Population.Spawned++
}

func (s *Scheduler) complete(ctx context.Context) {
	cleared := s.state
	s.running = false
	s.completion++

	_, span := telemetry.Tracer("wave").Start(ctx, "wave.complete")
	span.SetAttributes(
		attribute.Int("wave.area", cleared.Area),
		attribute.Int("wave.index", cleared.Wave),
		attribute.Int("wave.floor", cleared.Floor),
		attribute.Int("wave.spawned", cleared.Population.Spawned),
		attribute.String("wave.boss", string(cleared.Boss)),
	)
	span.End()

	s.host.Cleared(ctx, cleared)

	st := &s.state
	st.Level++

	floorBefore := st.Floor
	if cleared.Boss != gamedata.RankNormal {
		st.Floor++
	} else {
		if cleared.Wave%s.tuning.FloorEvery == 0 {
			st.Floor++
		}
		st.Wave++
		if st.Wave > s.tuning.WavesPerArea {
			st.Area++
			st.Wave = 1
			s.areaFloor = st.Floor
		}
	}

	next := gamedata.RankNormal
	if st.Floor != floorBefore {
		next = s.bossFor(st.Floor - s.areaFloor)
	}

	s.state.Population = Population{}
	s.state.Timer = Timer{}
	s.state.Roster = nil

	s.host.After(s.tuning.NextWaveDelay, func() {
		s.begin(ctx, next)
	})
}

// bossFor returns the boss rank summoned on reaching floor, counted from the
// start of the area.
func (s *Scheduler) bossFor(floor int) gamedata.Rank {
	switch {
	case slices.Contains(s.tuning.BossFloors, floor):
		return gamedata.RankBoss
	case slices.Contains(s.tuning.MiniBossFloors, floor):
		return gamedata.RankMiniBoss
	default:
		return gamedata.RankNormal
	}
}

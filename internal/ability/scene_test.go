package ability

import (
	"context"
	"math/rand"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/leveling"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// testScene is a Scene with a flat arena and no variance or crits.
type testScene struct {
	player   *entity.Player
	enemies  []*entity.Enemy
	arena    *world.Arena
	resolver *combat.Resolver
	rng      *rand.Rand
	hitstops int
}

func newTestScene() *testScene {
	rng := rand.New(rand.NewSource(7))
	s := &testScene{
		arena:    world.NewArena(100, 30, rng),
		resolver: combat.NewResolver(rng, 0),
		rng:      rng,
	}
	def := gamedata.PlayerDef{
		HP: 100, BaseDamage: 10, CritMultiplier: 2,
		MaxSpeed: 1, Acceleration: 0.5, Friction: 0.25,
		Jumps: 2, JumpPower: 2, Width: 2, Height: 3, Slots: 4,
	}
	s.player = entity.NewPlayer(def, leveling.Curve{Base: 10, Exponent: 1.5}, world.Vec2{X: 50, Y: s.arena.FloorY()})
	return s
}

func (s *testScene) Context() context.Context   { return context.Background() }
func (s *testScene) Player() *entity.Player     { return s.player }
func (s *testScene) Enemies() []*entity.Enemy   { return s.enemies }
func (s *testScene) Arena() *world.Arena        { return s.arena }
func (s *testScene) Resolver() *combat.Resolver { return s.resolver }
func (s *testScene) Rand() *rand.Rand           { return s.rng }
func (s *testScene) After(float64, func())      {}
func (s *testScene) Hitstop(frames int)         { s.hitstops += frames }

func (s *testScene) spawn(x, hp float64) *entity.Enemy {
	def := &gamedata.EnemyDef{ID: "dummy", Name: "Dummy", HP: hp, Damage: 8, Speed: 0, Width: 2, Height: 2, Knockback: 1}
	e := entity.NewEnemy(def, 1, 0, world.Vec2{X: x, Y: s.arena.FloorY()})
	s.enemies = append(s.enemies, e)
	return e
}

// listener records every signal it is subscribed to and can rewrite
// strikes before they resolve.
type listener struct {
	kinds  []signal.Kind
	seen   []signal.Event
	mutate func(*signal.Strike)
}

func (l *listener) ID() string                   { return "listener" }
func (l *listener) Signals() []signal.Kind       { return l.kinds }
func (l *listener) Update(entity.Scene, float64) {}
func (l *listener) Handle(_ entity.Scene, ev signal.Event) {
	l.seen = append(l.seen, ev)
	if st, ok := ev.Payload.(*signal.Strike); ok && l.mutate != nil {
		l.mutate(st)
	}
}

func (l *listener) kindsSeen() []signal.Kind {
	out := make([]signal.Kind, len(l.seen))
	for i, ev := range l.seen {
		out[i] = ev.Kind
	}
	return out
}

func mustCard(id string) gamedata.AbilityDef {
	def := gamedata.MustLoadCardRegistry().Ability(id)
	if def == nil {
		panic("missing card " + id)
	}
	return *def
}

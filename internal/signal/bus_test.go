package signal

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	kinds []Kind
	seen  []Kind
}

func (r *recorder) Signals() []Kind           { return r.kinds }
func (r *recorder) Handle(ctx *int, ev Event) { r.seen = append(r.seen, ev.Kind); *ctx++ }

type guarded struct {
	recorder
	minDistance float64
}

func (g *guarded) Accepts(_ *int, ev Event) bool {
	s, ok := ev.Payload.(*Strike)
	return ok && s.Distance >= g.minDistance
}

// bouncer re-emits its own signal to prove the depth bound holds.
type bouncer struct {
	bus   *Bus[*int]
	calls int
}

func (b *bouncer) Signals() []Kind { return []Kind{Warcry} }
func (b *bouncer) Handle(ctx *int, ev Event) {
	b.calls++
	b.bus.Emit(ctx, ev)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "on_player_attack", PlayerAttack.String())
	assert.Equal(t, "on_dash_strike", DashStrike.String())
	assert.Equal(t, "on_unknown", Kind(77).String())
	assert.False(t, Kind(-1).Valid())
}

func TestEmitOnlyReachesSubscribers(t *testing.T) {
	var bus Bus[*int]
	a := &recorder{kinds: []Kind{PlayerAttack}}
	b := &recorder{kinds: []Kind{PlayerAttack, PlayerDamaged}}
	bus.Subscribe(a)
	bus.Subscribe(b)

	n := 0
	assert.Equal(t, 2, bus.Emit(&n, Event{Kind: PlayerAttack, Payload: Damage{}}))
	assert.Equal(t, 1, bus.Emit(&n, Event{Kind: PlayerDamaged, Payload: Damage{}}))
	assert.Equal(t, 0, bus.Emit(&n, Event{Kind: Bolt, Payload: &Strike{}}))

	assert.Equal(t, []Kind{PlayerAttack}, a.seen)
	assert.Equal(t, []Kind{PlayerAttack, PlayerDamaged}, b.seen)
	assert.Equal(t, 3, n)
	assert.Equal(t, 2, bus.Subscribers(PlayerAttack))
}

func TestGuardFiltersBeforeHandle(t *testing.T) {
	var bus Bus[*int]
	g := &guarded{recorder: recorder{kinds: []Kind{Bolt}}, minDistance: 5}
	bus.Subscribe(g)

	n := 0
	assert.Equal(t, 0, bus.Emit(&n, Event{Kind: Bolt, Payload: &Strike{Distance: 2}}))
	assert.Equal(t, 1, bus.Emit(&n, Event{Kind: Bolt, Payload: &Strike{Distance: 9}}))
	assert.Len(t, g.seen, 1)
}

func TestStrikeMutationIsShared(t *testing.T) {
	var bus Bus[*int]
	bus.Subscribe(&doubler{})

	strike := &Strike{Damage: 10}
	n := 0
	bus.Emit(&n, Event{Kind: Slash, Payload: strike})
	assert.Equal(t, 20.0, strike.Damage)
}

type doubler struct{}

func (doubler) Signals() []Kind { return []Kind{Slash} }
func (doubler) Handle(_ *int, ev Event) {
	ev.Payload.(*Strike).Damage *= 2
}

func TestRecursionIsBounded(t *testing.T) {
	var bus Bus[*int]
	b := &bouncer{bus: &bus}
	bus.Subscribe(b)

	n := 0
	bus.Emit(&n, Event{Kind: Warcry, Payload: None{}})
	assert.Equal(t, MaxDepth, b.calls)
}

func TestFlushDrainsInOrder(t *testing.T) {
	var bus Bus[*int]
	r := &recorder{kinds: []Kind{PlayerDamaged, EnemyKilled}}
	bus.Subscribe(r)

	bus.Enqueue(Event{Kind: PlayerDamaged, Payload: Damage{}})
	bus.Enqueue(Event{Kind: EnemyKilled, Payload: Damage{}})
	assert.Equal(t, 2, bus.Pending())
	assert.Empty(t, r.seen, "enqueue must not deliver")

	n := 0
	bus.Flush(&n)
	assert.Equal(t, []Kind{PlayerDamaged, EnemyKilled}, r.seen)
	assert.Equal(t, 0, bus.Pending())
}

type runKey struct{}

// runScene carries a context the way a game scene does.
type runScene struct{ ctx context.Context }

func (s *runScene) Context() context.Context { return s.ctx }

type echo struct{ bus *Bus[*runScene] }

func (e *echo) Signals() []Kind              { return []Kind{Warcry} }
func (e *echo) Handle(s *runScene, ev Event) { e.bus.Emit(s, ev) }

// runLog records the run value of every log call's context.
type runLog struct{ runs []any }

func (h *runLog) Enabled(context.Context, slog.Level) bool { return true }
func (h *runLog) Handle(ctx context.Context, _ slog.Record) error {
	h.runs = append(h.runs, ctx.Value(runKey{}))
	return nil
}
func (h *runLog) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *runLog) WithGroup(string) slog.Handler      { return h }

func TestDropWarningUsesSceneContext(t *testing.T) {
	h := &runLog{}
	old := slog.Default()
	slog.SetDefault(slog.New(h))
	t.Cleanup(func() { slog.SetDefault(old) })

	var bus Bus[*runScene]
	bus.Subscribe(&echo{bus: &bus})
	scene := &runScene{ctx: context.WithValue(context.Background(), runKey{}, "run-3")}
	bus.Emit(scene, Event{Kind: Warcry, Payload: None{}})

	if assert.NotEmpty(t, h.runs) {
		assert.Equal(t, "run-3", h.runs[0])
	}
	assert.Equal(t, context.Background(), logContext(new(int)), "plain contexts fall back")
}

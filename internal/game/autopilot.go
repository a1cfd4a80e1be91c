package game

import (
	"context"
	"math"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/telemetry"
)

// InputSource produces the input for each frame.
type InputSource interface {
	Next(g *Game) input.Frame
}

// Simulate runs up to frames frames of dt 1, stopping early if the player
// dies. It returns the run summary.
func (g *Game) Simulate(ctx context.Context, src InputSource, frames int) RunStats {
	ctx, span := telemetry.Tracer("game").Start(ctx, "run.simulate")
	defer span.End()

	for i := 0; i < frames && g.state != StateGameOver; i++ {
		g.Update(ctx, src.Next(g), 1)
	}

	st := g.scheduler.State()
	span.SetAttributes(
		attribute.Int("run.frames", g.stats.Frames),
		attribute.Int("run.kills", g.stats.Kills),
		attribute.Int("run.level", g.player.Level.Level),
		attribute.Int("run.area", st.Area),
		attribute.Int("run.wave", st.Wave),
		attribute.String("run.state", g.state.String()),
	)
	return g.stats
}

// Autopilot plays the player well enough to exercise every system: it
// walks at the nearest enemy, uses whatever is bound, and dashes away when
// hurt.
type Autopilot struct {
	tick   int
	health float64
	held   map[input.Key]bool
	script []map[input.Key]bool
}

// NewAutopilot creates an autopilot.
func NewAutopilot() *Autopilot {
	return &Autopilot{held: map[input.Key]bool{}}
}

// Next decides this frame's keys.
func (a *Autopilot) Next(g *Game) input.Frame {
	a.tick++
	p := g.Player()

	var want map[input.Key]bool
	if len(a.script) > 0 {
		want, a.script = a.script[0], a.script[1:]
	} else {
		want = a.decide(g, p)
	}

	health := p.Stats().Combat.Health
	if health < a.health && len(a.script) == 0 {
		a.dodge(g, p)
	}
	a.health = health

	var down []input.Key
	for k, on := range want {
		if on && !a.held[k] {
			down = append(down, k)
		}
	}
	// Down must not depend on map order.
	slices.Sort(down)
	a.held = want
	return input.Frame{Pressed: want, Down: down}
}

func (a *Autopilot) decide(g *Game, p *entity.Player) map[input.Key]bool {
	want := map[input.Key]bool{}
	target := nearest(g, p)
	if target == nil {
		return want
	}

	dx := target.Body.Pos.X - p.Body.Pos.X
	dist := math.Abs(dx)
	if dist > 4 {
		if dx < 0 {
			want[input.KeyLeft] = true
		} else {
			want[input.KeyRight] = true
		}
	}
	if target.Body.Pos.Y < p.Body.Pos.Y-p.Body.Height && p.Body.OnGround {
		want[input.KeyJump] = true
	}

	// Action keys are tapped on alternate frames so each press registers.
	if a.tick%2 == 0 {
		switch {
		case dist <= 6:
			want[input.KeyAttack] = true
			want[input.KeyCast2] = true
		case dist <= 28:
			want[input.KeySpecial] = true
			want[input.KeyCast] = true
		default:
			want[input.KeyCast] = true
		}
		if len(g.Enemies()) >= 3 {
			want[input.KeyShout] = true
		}
	}
	return want
}

// dodge queues a double tap away from the nearest enemy.
func (a *Autopilot) dodge(g *Game, p *entity.Player) {
	target := nearest(g, p)
	if target == nil {
		return
	}
	away := input.KeyLeft
	if target.Body.Pos.X < p.Body.Pos.X {
		away = input.KeyRight
	}
	a.script = []map[input.Key]bool{
		{},
		{away: true},
		{},
		{away: true},
	}
}

func nearest(g *Game, p *entity.Player) *entity.Enemy {
	var best *entity.Enemy
	bestDist := math.Inf(1)
	for _, e := range g.Enemies() {
		if e.Dead() {
			continue
		}
		d := math.Abs(e.Body.Pos.X - p.Body.Pos.X)
		if d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wavebreaker/internal/combat"
	"github.com/samdwyer/wavebreaker/internal/draft"
	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/gamedata"
	"github.com/samdwyer/wavebreaker/internal/input"
	"github.com/samdwyer/wavebreaker/internal/leveling"
	"github.com/samdwyer/wavebreaker/internal/signal"
	"github.com/samdwyer/wavebreaker/internal/telemetry"
	"github.com/samdwyer/wavebreaker/internal/wave"
	"github.com/samdwyer/wavebreaker/internal/world"
)

// Options wires the game to its front end. Zero values get headless
// defaults.
type Options struct {
	// Chooser answers drafts. Nil picks cards at random.
	Chooser draft.Chooser
	// Sprites is told about actors appearing and going away.
	Sprites SpriteSink
}

// RunStats summarises a run.
type RunStats struct {
	Frames       int
	Kills        int
	WavesCleared int
	BossesKilled int
	Orbs         int
	LevelUps     int
	Drafts       int
	Queued       int // requests parked behind an open draft
	Starved      int
}

// Game is the scene: it owns every actor and drives them one frame at a
// time.
type Game struct {
	cfg     Config
	tuning  gamedata.Tuning
	enemies *gamedata.EnemyRegistry
	cards   *draft.Registry

	rng       *rand.Rand
	resolver  *combat.Resolver
	arena     *world.Arena
	player    *entity.Player
	foes      []*entity.Enemy
	orbs      []*entity.Orb
	scheduler *wave.Scheduler
	drafter   *draft.Drafter
	sprites   SpriteSink

	seed    int64
	ctx     context.Context
	timers  timers
	hitstop int
	floor   int
	state   State
	stats   RunStats
}

// New creates a game from the embedded content and starts the first wave.
func New(ctx context.Context, cfg Config, opts Options) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	tuning, err := gamedata.LoadTuning()
	if err != nil {
		return nil, fmt.Errorf("load tuning: %w", err)
	}
	enemies, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("load enemies: %w", err)
	}
	cards, err := gamedata.LoadCardRegistry()
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	return NewWith(ctx, cfg, opts, tuning, enemies, cards)
}

// NewWith creates a game from explicit content.
func NewWith(ctx context.Context, cfg Config, opts Options, tuning gamedata.Tuning, enemies *gamedata.EnemyRegistry, cards *gamedata.CardRegistry) (*Game, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &Game{
		cfg:      cfg,
		tuning:   tuning,
		enemies:  enemies,
		cards:    draft.NewRegistry(cards),
		rng:      rng,
		resolver: combat.NewResolver(rng, cfg.Variance),
		sprites:  opts.Sprites,
		seed:     seed,
		ctx:      ctx,
	}
	if g.sprites == nil {
		g.sprites = NewSpriteSet()
	}

	g.arena = g.newArena(ctx)

	def := tuning.Player
	if cfg.AbilitySlots > 0 {
		def.Slots = cfg.AbilitySlots
	}
	g.player = entity.NewPlayer(def, tuning.Level, world.Vec2{X: g.arena.Width / 2, Y: g.arena.FloorY()})
	for _, id := range def.Abilities {
		ab, err := g.cards.Ability(id, g.player)
		if err != nil {
			return nil, fmt.Errorf("starting ability %s: %w", id, err)
		}
		if err := g.player.AddAbility(ab); err != nil {
			return nil, fmt.Errorf("starting ability %s: %w", id, err)
		}
	}
	g.sprites.AddSprites(g.player)

	chooser := opts.Chooser
	if chooser == nil {
		chooser = &draft.AutoChooser{Rng: rng}
	}
	g.drafter = draft.NewDrafter(g.cards, chooser, g, rng)
	g.drafter.Size = cfg.DraftSize

	bounds := wave.Bounds{Min: 1, Max: g.arena.Width - 1}
	g.scheduler = wave.NewScheduler(tuning.Waves, enemies, g, rng, bounds, world.ScreenWidth)
	g.scheduler.Start(ctx, cfg.StartArea)

	slog.DebugContext(ctx, "run started", "seed", seed, "area", cfg.StartArea)
	return g, nil
}

func (g *Game) newArena(ctx context.Context) *world.Arena {
	a := world.NewArena(world.DefaultWidth, world.DefaultHeight, g.rng)
	a.Generate(ctx)
	return a
}

// =============================================================================
// entity.Scene
// =============================================================================

// Context returns the context of the frame being simulated.
func (g *Game) Context() context.Context { return g.ctx }

// Player returns the player.
func (g *Game) Player() *entity.Player { return g.player }

// Enemies returns the enemies currently in the scene.
func (g *Game) Enemies() []*entity.Enemy { return g.foes }

// Arena returns the current floor's geometry.
func (g *Game) Arena() *world.Arena { return g.arena }

// Resolver returns the combat resolver.
func (g *Game) Resolver() *combat.Resolver { return g.resolver }

// Rand returns the run's random source.
func (g *Game) Rand() *rand.Rand { return g.rng }

// After schedules fn on the delay timers.
func (g *Game) After(ticks float64, fn func()) { g.timers.add(ticks, fn) }

// Hitstop slows the simulation for frames raw frames. Overlapping requests
// keep the longer one.
func (g *Game) Hitstop(frames int) { g.hitstop = max(g.hitstop, frames) }

// =============================================================================
// wave.Host
// =============================================================================

// PlayerX returns the player's horizontal position.
func (g *Game) PlayerX() float64 { return g.player.Body.Pos.X }

// Spawn creates an enemy with its abilities at x on the floor.
func (g *Game) Spawn(ctx context.Context, def *gamedata.EnemyDef, level int, x float64) {
	e := entity.NewEnemy(def, level, g.tuning.EnemyGrowth, world.Vec2{X: x, Y: g.arena.FloorY()})
	for _, id := range def.Abilities {
		ab, err := g.cards.Ability(id, e)
		if err != nil {
			slog.WarnContext(ctx, "enemy ability skipped", "enemy", def.ID, "ability", id, "err", err)
			continue
		}
		e.Abilities = append(e.Abilities, ab)
	}
	g.foes = append(g.foes, e)
	g.sprites.AddSprites(e)
}

// Cleared is called for every completed wave. Boss waves pay out an
// ability draft.
func (g *Game) Cleared(ctx context.Context, st wave.State) {
	g.stats.WavesCleared++
	slog.DebugContext(ctx, "wave cleared", "area", st.Area, "wave", st.Wave, "boss", string(st.Boss))
	if st.Boss == gamedata.RankNormal {
		return
	}
	g.stats.BossesKilled++
	g.requestDraft(ctx, draft.KindAbility)
}

// =============================================================================
// Frame loop
// =============================================================================

// Seed returns the seed the run was created with.
func (g *Game) Seed() int64 { return g.seed }

// State returns the run state.
func (g *Game) State() State { return g.state }

// Stats returns the run summary so far.
func (g *Game) Stats() RunStats { return g.stats }

// Wave returns the scheduler's current wave.
func (g *Game) Wave() wave.State { return g.scheduler.State() }

// Orbs returns the uncollected experience orbs.
func (g *Game) Orbs() []*entity.Orb { return g.orbs }

// Drafter returns the card drafter.
func (g *Game) Drafter() *draft.Drafter { return g.drafter }

// Update advances the simulation by one frame of dt ticks. Nothing moves
// while a draft is open or after the player has died.
func (g *Game) Update(ctx context.Context, frame input.Frame, dt float64) {
	if g.state == StateGameOver {
		return
	}
	if g.drafter.Selecting() {
		g.state = StateDrafting
		return
	}
	g.state = StatePlaying
	g.ctx = ctx
	g.stats.Frames++

	dt = min(max(dt, 0), g.cfg.MaxDT)
	if g.hitstop > 0 {
		g.hitstop--
		dt *= g.cfg.HitstopScale
	}

	g.timers.advance(dt)

	g.player.Update(g, frame, dt)
	for _, e := range slices.Clone(g.foes) {
		e.Update(g, dt)
	}
	// Enemy hits queue their signals on the player.
	g.player.Flush(g)

	g.cull(ctx)
	g.collect(ctx, dt)

	g.scheduler.Update(ctx, dt)
	if f := g.scheduler.State().Floor; f != g.floor {
		g.floor = f
		g.arena = g.newArena(ctx)
	}

	if g.player.Dead() {
		g.state = StateGameOver
		slog.InfoContext(ctx, "player died",
			"frames", g.stats.Frames, "kills", g.stats.Kills, "level", g.player.Level.Level)
	} else if g.drafter.Selecting() {
		g.state = StateDrafting
	}
}

// cull removes dead enemies, pays out their experience and tells the
// player's talents about the kill.
func (g *Game) cull(ctx context.Context) {
	drop := leveling.Drop{Curve: g.tuning.EnemyXP}

	alive := g.foes[:0]
	var dead []*entity.Enemy
	for _, e := range g.foes {
		if e.Dead() {
			dead = append(dead, e)
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(g.foes); i++ {
		g.foes[i] = nil
	}
	g.foes = alive

	for _, e := range dead {
		g.scheduler.Killed()
		g.stats.Kills++

		total := drop.Total(e.Level, e.Def.XPMultiplier)
		shares := leveling.Split(total, e.Def.XPOrbs)
		for i, v := range shares {
			pos := e.Body.Pos
			pos.X += float64(i) - float64(len(shares)-1)/2
			orb := entity.NewOrb(pos, v)
			g.orbs = append(g.orbs, orb)
			g.sprites.AddSprites(orb)
		}

		g.player.Emit(g, signal.Event{Kind: signal.EnemyKilled, Payload: signal.Damage{Event: e.Killer()}})
		g.sprites.DelSprites(e)
		slog.DebugContext(ctx, "enemy removed", "enemy", e.Def.ID, "level", e.Level, "xp", total)
	}
}

// collect drifts orbs toward the player and registers the ones that
// arrive.
func (g *Game) collect(ctx context.Context, dt float64) {
	target := g.player.Bounds().Center()
	kept := g.orbs[:0]
	for _, o := range g.orbs {
		if !o.Drift(target, dt) {
			kept = append(kept, o)
			continue
		}
		g.stats.Orbs++
		g.sprites.DelSprites(o)
		if gained := g.player.GainExperience(g, o.Value); gained > 0 {
			g.levelUp(ctx, gained)
		}
	}
	for i := len(kept); i < len(g.orbs); i++ {
		g.orbs[i] = nil
	}
	g.orbs = kept
}

func (g *Game) levelUp(ctx context.Context, gained int) {
	ctx, span := telemetry.Tracer("game").Start(ctx, "level.up")
	span.SetAttributes(
		attribute.Int("level.gained", gained),
		attribute.Int("level.current", g.player.Level.Level),
	)
	defer span.End()

	g.stats.LevelUps += gained
	for range gained {
		g.requestDraft(ctx, draft.KindTalent)
	}
}

func (g *Game) requestDraft(ctx context.Context, kind draft.Kind) {
	queued := g.drafter.Selecting()
	err := g.drafter.Request(ctx, g.player, kind)
	switch {
	case err == nil && queued:
		g.stats.Queued++
	case errors.Is(err, draft.ErrStarved):
		g.stats.Starved++
		slog.DebugContext(ctx, "draft starved", "kind", kind.String())
	case err != nil:
		slog.WarnContext(ctx, "draft failed", "kind", kind.String(), "err", err)
	default:
		g.stats.Drafts++
	}
}

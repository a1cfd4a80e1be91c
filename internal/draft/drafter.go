package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/wavebreaker/internal/entity"
	"github.com/samdwyer/wavebreaker/internal/telemetry"
)

// DefaultSize is how many cards a draft offers.
const DefaultSize = 3

// PendingDelay is how many ticks pass between closing one draft and
// opening the next queued one.
const PendingDelay = 30.0

var (
	// ErrStarved is returned when fewer cards are left than a draft offers.
	ErrStarved = errors.New("not enough cards left to offer")
	// ErrNoSlot is returned when an ability is picked with every slot taken.
	ErrNoSlot = entity.ErrNoSlot
	// ErrNoDraft is returned by pick callbacks once their draft has closed.
	ErrNoDraft = errors.New("no draft open")
	// ErrNotOffered is returned when the picked card was not in the offer.
	ErrNotOffered = errors.New("card was not offered")
)

// Chooser is the boundary to whoever picks cards, a UI or a bot. It may
// call the callbacks right away or on a later frame.
type Chooser interface {
	// Choose presents cards. pick attaches one of them.
	Choose(ctx context.Context, cards []Card, pick func(Card) error)
	// Discard asks which owned ability to give up for incoming. drop with
	// an empty ID keeps the current abilities and throws incoming away.
	Discard(ctx context.Context, owned []string, incoming Card, drop func(id string) error)
}

// Timers schedules deferred calls, usually the scene's delay timers.
type Timers interface {
	After(ticks float64, fn func())
}

// Drafter runs one draft at a time for the player. Requests that arrive
// while a draft is open are counted as overflow and served after the
// open draft closes. A draft needs a full hand: when fewer than Size
// cards are eligible the request starves and is kept as overflow too.
type Drafter struct {
	Size int

	reg     *Registry
	chooser Chooser
	timers  Timers
	rng     *rand.Rand

	selecting bool
	overflow  [numKinds]int
}

// NewDrafter creates a drafter offering DefaultSize cards.
func NewDrafter(reg *Registry, chooser Chooser, timers Timers, rng *rand.Rand) *Drafter {
	return &Drafter{
		Size:    DefaultSize,
		reg:     reg,
		chooser: chooser,
		timers:  timers,
		rng:     rng,
	}
}

// Selecting reports whether a draft is open.
func (d *Drafter) Selecting() bool { return d.selecting }

// Overflow returns how many requests are waiting.
func (d *Drafter) Overflow() int {
	n := 0
	for _, c := range d.overflow {
		n += c
	}
	return n
}

// Request opens a draft of kind for p, or queues it when one is open.
func (d *Drafter) Request(ctx context.Context, p *entity.Player, kind Kind) error {
	if d.selecting {
		d.overflow[kind]++
		slog.DebugContext(ctx, "draft queued", "kind", kind.String(), "overflow", d.Overflow())
		return nil
	}

	pool := d.reg.Pool(kind, p)
	if len(pool) < d.size() {
		d.overflow[kind]++
		slog.DebugContext(ctx, "draft starved", "kind", kind.String(), "pool", len(pool), "size", d.size())
		return fmt.Errorf("%s draft with %d of %d cards: %w", kind, len(pool), d.size(), ErrStarved)
	}

	offer := d.sample(pool)

	ctx, span := telemetry.Tracer("draft").Start(ctx, "draft.offer")
	span.SetAttributes(
		attribute.String("draft.kind", kind.String()),
		attribute.Int("draft.size", len(offer)),
		attribute.Int("draft.pool", len(pool)),
	)
	span.End()

	d.selecting = true
	open := true
	d.chooser.Choose(ctx, offer, func(c Card) error {
		if !open {
			return ErrNoDraft
		}
		if !slices.Contains(offer, c) {
			return fmt.Errorf("pick %s: %w", c.ID, ErrNotOffered)
		}
		open = false
		return d.pick(ctx, p, c)
	})
	return nil
}

func (d *Drafter) size() int {
	if d.Size <= 0 {
		return DefaultSize
	}
	return d.Size
}

func (d *Drafter) sample(pool []Card) []Card {
	size := d.size()
	if len(pool) == size {
		return pool
	}
	offer := make([]Card, 0, size)
	for _, i := range d.rng.Perm(len(pool))[:size] {
		offer = append(offer, pool[i])
	}
	return offer
}

func (d *Drafter) pick(ctx context.Context, p *entity.Player, c Card) error {
	ctx, span := telemetry.Tracer("draft").Start(ctx, "draft.pick")
	span.SetAttributes(
		attribute.String("draft.kind", c.Kind.String()),
		attribute.String("draft.card", c.ID),
	)
	defer span.End()

	switch c.Kind {
	case KindTalent:
		t, err := d.reg.Talent(c.ID)
		if err != nil {
			d.close(ctx, p)
			return err
		}
		p.AddTalent(t)

	case KindAbility:
		ab, err := d.reg.Ability(c.ID, p)
		if err != nil {
			d.close(ctx, p)
			return err
		}
		err = p.AddAbility(ab)
		if errors.Is(err, ErrNoSlot) {
			d.discard(ctx, p, c, ab)
			return nil
		}
		if err != nil {
			d.close(ctx, p)
			return err
		}
	}

	slog.DebugContext(ctx, "card picked", "kind", c.Kind.String(), "card", c.ID)
	d.close(ctx, p)
	return nil
}

// discard swaps an owned active ability for incoming. The draft stays open
// until the chooser answers.
func (d *Drafter) discard(ctx context.Context, p *entity.Player, c Card, incoming entity.Ability) {
	var owned []string
	for _, ab := range p.Abilities {
		if !ab.Passive() {
			owned = append(owned, ab.ID())
		}
	}

	done := false
	d.chooser.Discard(ctx, owned, c, func(id string) error {
		if done {
			return ErrNoDraft
		}
		if id != "" {
			if !slices.Contains(owned, id) {
				return fmt.Errorf("discard %s: %w", id, ErrNotOffered)
			}
			p.RemoveAbility(id)
			if err := p.AddAbility(incoming); err != nil {
				return err
			}
		}
		done = true
		d.close(ctx, p)
		return nil
	})
}

// close ends the open draft and schedules the next queued request.
func (d *Drafter) close(ctx context.Context, p *entity.Player) {
	d.selecting = false
	for k := range d.overflow {
		if d.overflow[k] == 0 {
			continue
		}
		d.overflow[k]--
		kind := Kind(k)
		d.timers.After(PendingDelay, func() {
			if err := d.Request(ctx, p, kind); err != nil {
				slog.DebugContext(ctx, "queued draft not served", "kind", kind.String(), "err", err)
			}
		})
		return
	}
}

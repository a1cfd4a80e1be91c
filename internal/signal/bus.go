package signal

import (
	"context"
	"log/slog"
)

// MaxDepth bounds how deeply listeners may re-enter Emit.
const MaxDepth = 8

// Subscriber reacts to the signals it lists. C is the context handed to
// every call, typically the scene.
type Subscriber[C any] interface {
	Signals() []Kind
	Handle(ctx C, ev Event)
}

// Guard is implemented by subscribers that only want some events of a kind.
// Accepts is checked before Handle runs.
type Guard[C any] interface {
	Accepts(ctx C, ev Event) bool
}

// logContext returns the context carried by c, if it carries one.
func logContext(c any) context.Context {
	if cc, ok := c.(interface{ Context() context.Context }); ok {
		if ctx := cc.Context(); ctx != nil {
			return ctx
		}
	}
	return context.Background()
}

// Bus fans signals out to subscribers, grouped by kind.
type Bus[C any] struct {
	subs    [numKinds][]Subscriber[C]
	pending []Event
	depth   int
}

// Subscribe registers s for every kind it lists.
func (b *Bus[C]) Subscribe(s Subscriber[C]) {
	for _, k := range s.Signals() {
		if !k.Valid() {
			continue
		}
		b.subs[k] = append(b.subs[k], s)
	}
}

// Subscribers returns how many subscribers listen for k.
func (b *Bus[C]) Subscribers(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(b.subs[k])
}

// Emit delivers ev synchronously, in subscription order, and returns how
// many subscribers handled it.
func (b *Bus[C]) Emit(ctx C, ev Event) int {
	if !ev.Kind.Valid() {
		return 0
	}
	if b.depth >= MaxDepth {
		slog.WarnContext(logContext(ctx), "signal chain too deep, dropping", "signal", ev.Kind.String())
		return 0
	}
	b.depth++
	defer func() { b.depth-- }()

	handled := 0
	for _, s := range b.subs[ev.Kind] {
		if g, ok := s.(Guard[C]); ok && !g.Accepts(ctx, ev) {
			continue
		}
		s.Handle(ctx, ev)
		handled++
	}
	return handled
}

// Enqueue defers ev until the next Flush.
func (b *Bus[C]) Enqueue(ev Event) {
	b.pending = append(b.pending, ev)
}

// Pending returns how many events are waiting for Flush.
func (b *Bus[C]) Pending() int {
	return len(b.pending)
}

// Flush emits every queued event in order, including events queued by the
// handlers themselves.
func (b *Bus[C]) Flush(ctx C) {
	for i := 0; len(b.pending) > 0; i++ {
		if i > 64*MaxDepth {
			slog.WarnContext(logContext(ctx), "signal queue did not settle, dropping", "pending", len(b.pending))
			b.pending = b.pending[:0]
			return
		}
		ev := b.pending[0]
		b.pending = b.pending[1:]
		b.Emit(ctx, ev)
	}
}

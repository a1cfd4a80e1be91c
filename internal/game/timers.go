package game

// delayTimer is one deferred call.
type delayTimer struct {
	remaining float64
	fn        func()
}

// timers holds deferred calls and fires them in scheduling order.
type timers struct {
	pending []delayTimer
}

func (t *timers) add(ticks float64, fn func()) {
	if fn == nil {
		return
	}
	t.pending = append(t.pending, delayTimer{remaining: ticks, fn: fn})
}

// advance counts every timer down by dt and fires the expired ones.
// Calls scheduled while firing wait for the next advance.
func (t *timers) advance(dt float64) int {
	var due []func()
	kept := t.pending[:0]
	for _, d := range t.pending {
		d.remaining -= dt
		if d.remaining <= 0 {
			due = append(due, d.fn)
			continue
		}
		kept = append(kept, d)
	}
	for i := len(kept); i < len(t.pending); i++ {
		t.pending[i] = delayTimer{}
	}
	t.pending = kept

	for _, fn := range due {
		fn()
	}
	return len(due)
}

func (t *timers) len() int { return len(t.pending) }

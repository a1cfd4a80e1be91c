package input

// DoubleTapWindow is how many ticks may separate the two presses of a
// double tap.
const DoubleTapWindow = 7

// DoubleTap watches left/right key-downs and turns two presses of the same
// direction within the window into a dash token.
type DoubleTap struct {
	Window int

	tick     int
	lastDown map[Key]int
}

// NewDoubleTap creates a detector with the default window.
func NewDoubleTap() *DoubleTap {
	return &DoubleTap{
		Window:   DoubleTapWindow,
		lastDown: make(map[Key]int),
	}
}

// Observe consumes one frame and returns the dash tokens it produced.
// It must be called exactly once per tick.
func (d *DoubleTap) Observe(f Frame) []Key {
	d.tick++
	var tokens []Key
	for _, k := range f.Down {
		token, ok := dashFor(k)
		if !ok {
			continue
		}
		last, seen := d.lastDown[k]
		if seen && d.tick-last <= d.Window {
			tokens = append(tokens, token)
			delete(d.lastDown, k)
			continue
		}
		d.lastDown[k] = d.tick
	}
	return tokens
}

// Reset forgets every pending first tap.
func (d *DoubleTap) Reset() {
	clear(d.lastDown)
}

func dashFor(k Key) (Key, bool) {
	switch k {
	case KeyLeft:
		return KeyDashLeft, true
	case KeyRight:
		return KeyDashRight, true
	default:
		return KeyNone, false
	}
}

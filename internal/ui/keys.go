package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/wavebreaker/internal/input"
)

// HoldFrames is how long a key counts as held after its last press event.
// Terminals report presses and auto-repeat but never releases.
const HoldFrames = 8

// Keys turns terminal key events into per-tick input frames.
type Keys struct {
	// Hold overrides HoldFrames when positive.
	Hold int

	tick  int
	until map[input.Key]int
	down  []input.Key
}

// NewKeys creates an empty key state.
func NewKeys() *Keys {
	return &Keys{until: make(map[input.Key]int)}
}

// Press records a key event. It reports whether the key is bound.
func (k *Keys) Press(ev *tcell.EventKey) bool {
	key, ok := input.FromTCell(ev)
	if !ok {
		return false
	}
	hold := HoldFrames
	if k.Hold > 0 {
		hold = k.Hold
	}
	// Auto-repeat of a held key is not a new press.
	if k.until[key] <= k.tick {
		k.down = append(k.down, key)
	}
	k.until[key] = k.tick + hold
	return true
}

// Frame returns the input for the next tick and advances the clock.
func (k *Keys) Frame() input.Frame {
	pressed := make(map[input.Key]bool, len(k.until))
	for key, until := range k.until {
		if until > k.tick {
			pressed[key] = true
		} else {
			delete(k.until, key)
		}
	}
	f := input.Frame{Pressed: pressed, Down: k.down}
	k.down = nil
	k.tick++
	return f
}

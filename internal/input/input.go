// Package input turns raw key state into the tokens abilities are bound to.
// It never polls devices: a front end fills in a Frame every tick.
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Key is a logical control, independent of the physical binding.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyJump
	KeyDown
	KeyAttack
	KeySpecial
	KeyCast
	KeyCast2
	KeyShout

	// Directional dash tokens produced by the double-tap detector.
	KeyDashLeft
	KeyDashRight
)

// String returns the key name.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyJump:
		return "jump"
	case KeyDown:
		return "down"
	case KeyAttack:
		return "attack"
	case KeySpecial:
		return "special"
	case KeyCast:
		return "cast"
	case KeyCast2:
		return "cast2"
	case KeyShout:
		return "shout"
	case KeyDashLeft:
		return "dash_left"
	case KeyDashRight:
		return "dash_right"
	default:
		return "none"
	}
}

// Frame is the input for one simulation tick.
type Frame struct {
	// Pressed holds every key currently held.
	Pressed map[Key]bool
	// Down lists the keys that went down this tick, in order.
	Down []Key
}

// Held reports whether k is held this tick.
func (f Frame) Held(k Key) bool {
	return f.Pressed[k]
}

// Axis returns -1, 0 or 1 for the horizontal direction held.
func (f Frame) Axis() float64 {
	axis := 0.0
	if f.Held(KeyLeft) {
		axis--
	}
	if f.Held(KeyRight) {
		axis++
	}
	return axis
}

// FromTCell maps a terminal key event onto a logical key.
func FromTCell(ev *tcell.EventKey) (Key, bool) {
	if ev == nil {
		return KeyNone, false
	}
	return mapKey(ev.Key(), ev.Rune())
}

func mapKey(k tcell.Key, r rune) (Key, bool) {
	switch k {
	case tcell.KeyLeft:
		return KeyLeft, true
	case tcell.KeyRight:
		return KeyRight, true
	case tcell.KeyUp:
		return KeyJump, true
	case tcell.KeyDown:
		return KeyDown, true
	case tcell.KeyRune:
		switch r {
		case 'a', 'A':
			return KeyLeft, true
		case 'd', 'D':
			return KeyRight, true
		case 'w', 'W', ' ':
			return KeyJump, true
		case 's', 'S':
			return KeyDown, true
		case 'j', 'J':
			return KeyAttack, true
		case 'k', 'K':
			return KeySpecial, true
		case 'l', 'L':
			return KeyCast, true
		case 'u', 'U':
			return KeyCast2, true
		case 'i', 'I':
			return KeyShout, true
		}
	}
	return KeyNone, false
}

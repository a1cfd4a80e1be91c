package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{KeyLeft, "left"},
		{KeyAttack, "attack"},
		{KeyDashRight, "dash_right"},
		{Key(99), "none"},
	}

	for _, tt := range tests {
		if got := tt.key.String(); got != tt.expected {
			t.Errorf("Key(%d).String() = %q, want %q", tt.key, got, tt.expected)
		}
	}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		key    tcell.Key
		r      rune
		want   Key
		wantOK bool
	}{
		{tcell.KeyLeft, 0, KeyLeft, true},
		{tcell.KeyUp, 0, KeyJump, true},
		{tcell.KeyRune, 'j', KeyAttack, true},
		{tcell.KeyRune, 'K', KeySpecial, true},
		{tcell.KeyRune, ' ', KeyJump, true},
		{tcell.KeyRune, 'z', KeyNone, false},
		{tcell.KeyEnter, 0, KeyNone, false},
	}

	for _, tt := range tests {
		got, ok := mapKey(tt.key, tt.r)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("mapKey(%v, %q) = (%v, %v), want (%v, %v)", tt.key, tt.r, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFromTCellNil(t *testing.T) {
	if _, ok := FromTCell(nil); ok {
		t.Error("FromTCell(nil) should report false")
	}
}

func TestFrameAxis(t *testing.T) {
	f := Frame{Pressed: map[Key]bool{KeyLeft: true}}
	if f.Axis() != -1 {
		t.Errorf("Axis() = %v, want -1", f.Axis())
	}
	f.Pressed[KeyRight] = true
	if f.Axis() != 0 {
		t.Errorf("Axis() with both held = %v, want 0", f.Axis())
	}
}

func down(keys ...Key) Frame {
	return Frame{Down: keys}
}

func TestDoubleTapWithinWindow(t *testing.T) {
	d := NewDoubleTap()

	if got := d.Observe(down(KeyRight)); len(got) != 0 {
		t.Fatalf("first tap produced %v", got)
	}
	for i := 0; i < 5; i++ {
		d.Observe(down())
	}
	got := d.Observe(down(KeyRight))
	if len(got) != 1 || got[0] != KeyDashRight {
		t.Fatalf("second tap produced %v, want [dash_right]", got)
	}

	// The pair was consumed; a third tap starts over
	if got := d.Observe(down(KeyRight)); len(got) != 0 {
		t.Errorf("third tap produced %v", got)
	}
}

func TestDoubleTapOutsideWindow(t *testing.T) {
	d := NewDoubleTap()
	d.Observe(down(KeyLeft))
	for i := 0; i < DoubleTapWindow; i++ {
		d.Observe(down())
	}
	if got := d.Observe(down(KeyLeft)); len(got) != 0 {
		t.Errorf("late tap produced %v", got)
	}
}

func TestDoubleTapExactWindowEdge(t *testing.T) {
	d := NewDoubleTap()
	d.Observe(down(KeyLeft))
	for i := 0; i < DoubleTapWindow-1; i++ {
		d.Observe(down())
	}
	got := d.Observe(down(KeyLeft))
	if len(got) != 1 || got[0] != KeyDashLeft {
		t.Errorf("tap %d ticks later produced %v, want [dash_left]", DoubleTapWindow, got)
	}
}

func TestDoubleTapIgnoresOtherKeys(t *testing.T) {
	d := NewDoubleTap()
	d.Observe(down(KeyAttack))
	if got := d.Observe(down(KeyAttack)); len(got) != 0 {
		t.Errorf("attack double tap produced %v", got)
	}
	d.Observe(down(KeyLeft))
	d.Reset()
	if got := d.Observe(down(KeyLeft)); len(got) != 0 {
		t.Errorf("tap after reset produced %v", got)
	}
}

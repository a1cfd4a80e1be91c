package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimersFireInSchedulingOrder(t *testing.T) {
	var tm timers
	var got []string
	tm.add(2, func() { got = append(got, "late") })
	tm.add(1, func() { got = append(got, "a") })
	tm.add(1, func() { got = append(got, "b") })
	tm.add(1, nil)

	assert.Equal(t, 2, tm.advance(1.5))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, tm.len())

	assert.Equal(t, 1, tm.advance(1))
	assert.Equal(t, []string{"a", "b", "late"}, got)
	assert.Zero(t, tm.len())
}

func TestTimersScheduledWhileFiringWait(t *testing.T) {
	var tm timers
	fired := 0
	tm.add(0, func() {
		fired++
		tm.add(0, func() { fired++ })
	})

	tm.advance(1)
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, tm.len())

	tm.advance(1)
	assert.Equal(t, 2, fired)
}

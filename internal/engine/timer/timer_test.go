package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEveryFiresOnInterval(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock)

	var calls []time.Time
	s.Every(10*time.Millisecond, func(now time.Time) { calls = append(calls, now) })

	assert.Equal(t, 0, s.Poll(), "nothing is due before the first interval")

	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, s.Poll())

	// Polling again without time passing does not refire.
	assert.Equal(t, 0, s.Poll())

	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, 0, s.Poll())
	clock.Advance(5 * time.Millisecond)
	assert.Equal(t, 1, s.Poll())

	require.Len(t, calls, 2)
	assert.Equal(t, epoch.Add(20*time.Millisecond), calls[1])
}

func TestMissedPeriodsCoalesce(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock)

	count := 0
	s.Every(10*time.Millisecond, func(time.Time) { count++ })

	clock.Advance(95 * time.Millisecond)
	s.Poll()
	assert.Equal(t, 1, count)

	// Next deadline realigns to 100ms, not 20ms.
	clock.Advance(4 * time.Millisecond)
	s.Poll()
	assert.Equal(t, 1, count)
	clock.Advance(1 * time.Millisecond)
	s.Poll()
	assert.Equal(t, 2, count)
}

func TestCancelIsIdempotent(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock)

	count := 0
	h := s.Every(time.Millisecond, func(time.Time) { count++ })
	require.True(t, s.Active(h))

	assert.True(t, s.Cancel(h))
	assert.False(t, s.Cancel(h))
	assert.False(t, s.Active(h))
	assert.Equal(t, 0, s.Pending())

	clock.Advance(time.Second)
	s.Poll()
	assert.Equal(t, 0, count, "cancelled callback must never run")
}

func TestCancelFromInsideCallback(t *testing.T) {
	clock := NewManualClock(epoch)
	s := NewScheduler(clock)

	var second Handle
	secondRan := false
	s.Every(time.Millisecond, func(time.Time) { s.Cancel(second) })
	second = s.Every(time.Millisecond, func(time.Time) { secondRan = true })

	clock.Advance(time.Millisecond)
	assert.Equal(t, 1, s.Poll())
	assert.False(t, secondRan)
}

func TestEveryRejectsZeroInterval(t *testing.T) {
	s := NewScheduler(NewManualClock(epoch))
	assert.Panics(t, func() { s.Every(0, func(time.Time) {}) })
}

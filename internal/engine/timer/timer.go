// Package timer schedules recurring callbacks against a wall clock.
//
// Callbacks never run on their own goroutine: the owner calls Poll from
// the render thread, and every due callback runs synchronously inside it.
// Cadence follows the clock, not the rate at which Poll is called.
package timer

import (
	"sort"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock driven explicitly, for tests and offline tools.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.now }

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) { c.now = t }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle   Handle
	interval time.Duration
	next     time.Time
	fn       func(now time.Time)
}

// Scheduler runs recurring callbacks when polled.
type Scheduler struct {
	clock   Clock
	entries map[Handle]*entry
	nextID  Handle
}

// NewScheduler creates a scheduler reading the given clock.
func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{
		clock:   clock,
		entries: make(map[Handle]*entry),
	}
}

// Clock returns the scheduler's clock.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Every registers fn to run once per interval, starting one interval from now.
// Non-positive intervals panic.
func (s *Scheduler) Every(interval time.Duration, fn func(now time.Time)) Handle {
	if interval <= 0 {
		panic("timer: non-positive interval")
	}
	s.nextID++
	e := &entry{
		handle:   s.nextID,
		interval: interval,
		next:     s.clock.Now().Add(interval),
		fn:       fn,
	}
	s.entries[e.handle] = e
	return e.handle
}

// Cancel stops a callback. It reports whether the handle was active;
// cancelling twice is a no-op.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.entries[h]; !ok {
		return false
	}
	delete(s.entries, h)
	return true
}

// Active reports whether h is still scheduled.
func (s *Scheduler) Active(h Handle) bool {
	_, ok := s.entries[h]
	return ok
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.entries)
}

// Poll runs every callback whose deadline has passed, in registration
// order. A callback that fell several intervals behind runs once; its
// next deadline is realigned to the first future period.
func (s *Scheduler) Poll() int {
	now := s.clock.Now()

	due := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		if !now.Before(e.next) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].handle < due[j].handle })

	fired := 0
	for _, e := range due {
		// An earlier callback in this poll may have cancelled it.
		if _, ok := s.entries[e.handle]; !ok {
			continue
		}
		missed := now.Sub(e.next) / e.interval
		e.next = e.next.Add((missed + 1) * e.interval)
		e.fn(now)
		fired++
	}
	return fired
}

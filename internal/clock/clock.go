// Package clock abstracts the time source used to measure trial
// elapsed time, so adapter tests can run against a manual-advance
// clock instead of the wall clock.
package clock

import (
	"sync"
	"time"
)

// Clock is a minimal time source. The wall implementation carries
// Go's monotonic reading, so Sub between two Now values is safe for
// timing measurements.
type Clock interface {
	Now() time.Time
}

// Wall is the real time source used for measurements.
type Wall struct{}

// Now implements Clock.
func (Wall) Now() time.Time { return time.Now() }

// Simulated is a deterministic, manual-advance clock.
// It starts at startTime and only moves when Advance is called.
type Simulated struct {
	mu      sync.Mutex
	current time.Time
}

// NewSimulated creates a new simulated clock starting at the given time.
func NewSimulated(startTime time.Time) *Simulated {
	return &Simulated{current: startTime}
}

// Now implements Clock.
func (c *Simulated) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Advance moves the clock forward by the provided duration.
// Negative durations are ignored.
func (c *Simulated) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

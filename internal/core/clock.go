package core

import "time"

// FrameClock measures wall-clock time between frames.
// The first tick after creation or Reset yields zero.
type FrameClock struct {
	last    time.Time
	started bool
}

// Tick returns the seconds elapsed since the previous tick.
// The result is not capped: a long stall produces one large delta.
func (c *FrameClock) Tick(now time.Time) float64 {
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset makes the next tick start a new measurement.
func (c *FrameClock) Reset() {
	c.started = false
	c.last = time.Time{}
}

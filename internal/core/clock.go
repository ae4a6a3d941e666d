package core

import "math"

// Clock is a monotonic millisecond counter that never resets during a session.
type Clock interface {
	NowMs() int64
}

// FrameClock is a Clock driven by the simulation itself.
// Each Advance adds the frame delta, so the same inputs always produce
// the same timestamps.
type FrameClock struct {
	elapsed float64 // seconds since start
}

// NewFrameClock creates a clock starting at the given millisecond value.
func NewFrameClock(startMs int64) *FrameClock {
	return &FrameClock{elapsed: float64(startMs) / 1000}
}

// Advance moves the clock forward by dt seconds. Negative deltas are ignored.
func (c *FrameClock) Advance(dt float64) {
	if dt > 0 {
		c.elapsed += dt
	}
}

// Set jumps the clock to ms if it is not earlier than the current time.
func (c *FrameClock) Set(ms int64) {
	t := float64(ms) / 1000
	if t > c.elapsed {
		c.elapsed = t
	}
}

// NowMs returns elapsed milliseconds, rounded to the nearest integer so
// accumulated float error never pushes a frame boundary backwards.
func (c *FrameClock) NowMs() int64 {
	return int64(math.Round(c.elapsed * 1000))
}

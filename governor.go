package mapcast

import (
	"sync"
	"time"
)

// Intervals commonly used between two frames sent to the same display.
const (
	Delay0  time.Duration = 0
	Delay20               = 20 * time.Millisecond
	Delay50               = 50 * time.Millisecond
)

// Governor enforces a minimum interval between accepted frames. Frames that
// arrive too soon are simply refused.
type Governor struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewGovernor returns a Governor accepting at most one frame per interval.
func NewGovernor(interval time.Duration) *Governor {
	return &Governor{
		interval: interval,
		now:      time.Now,
	}
}

// Interval returns the minimum interval between accepted frames.
func (g *Governor) Interval() time.Duration {
	return g.interval
}

// Allow reports whether a frame arriving now should be accepted, recording
// the time if it is.
func (g *Governor) Allow() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if !g.last.IsZero() && now.Sub(g.last).Milliseconds() < g.interval.Milliseconds() {
		return false
	}
	g.last = now
	return true
}

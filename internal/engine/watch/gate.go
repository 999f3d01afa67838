package watch

import "time"

// Gate is a leading-edge debounce: an event is accepted only when more
// than the window has passed since the last accepted one. Rejected events
// are dropped, not queued, so a burst inside the window acts once. The
// gate is armed at start, which absorbs the event storm a launching
// toolchain tends to cause.
//
// Gate is used from the single session goroutine and needs no locking.
type Gate struct {
	window time.Duration
	last   time.Time
}

// NewGate creates a gate whose first window is measured from start.
func NewGate(window time.Duration, start time.Time) *Gate {
	return &Gate{window: window, last: start}
}

// Accept reports whether an event arriving at now should act, and marks
// the window when it does. Exactly at the window boundary is still inside
// it.
func (g *Gate) Accept(now time.Time) bool {
	if now.Sub(g.last) <= g.window {
		return false
	}
	g.last = now
	return true
}

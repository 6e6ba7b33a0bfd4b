// Package clock provides the elapsed-time source read once per frame.
package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic elapsed-time source measured in seconds.
type Clock interface {
	// Start resets the time origin to now. Elapsed returns 0 until Start is called.
	Start()

	// Elapsed returns the seconds since Start. Successive calls never decrease.
	//
	// Returns:
	//   - float64: elapsed seconds
	Elapsed() float64
}

type monotonicClock struct {
	mu      sync.Mutex
	start   time.Time
	started bool
	last    float64
	now     func() time.Time
}

var _ Clock = &monotonicClock{}

// NewClock creates a Clock backed by the runtime's monotonic clock reading.
//
// Returns:
//   - Clock: a clock that reports 0 until started
func NewClock() Clock {
	return &monotonicClock{now: time.Now}
}

func (c *monotonicClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.started = true
	c.last = 0
}

func (c *monotonicClock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return 0
	}
	if e := c.now().Sub(c.start).Seconds(); e > c.last {
		c.last = e
	}
	return c.last
}

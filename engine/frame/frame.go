// Package frame holds the pacing contract between the frame scheduler and
// whatever hosts it: a window, a terminal or a plain ticker.
package frame

import (
	"context"
	"errors"
	"time"
)

// ErrHostClosed is returned by a Source when its host (window, terminal)
// has been closed and no further frames will be delivered.
var ErrHostClosed = errors.New("frame: host closed")

// Source blocks until the next frame is due.
//
// A Source is the scheduler's only way to yield to its host between ticks.
// Hosts that also deliver input (windows, terminals) dispatch it inside
// NextFrame, so input and animation never run concurrently.
type Source interface {
	// NextFrame waits for the next frame.
	//
	// Parameters:
	//   - ctx: cancelling it aborts the wait
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, ErrHostClosed when the host is gone
	NextFrame(ctx context.Context) error
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) error

// NextFrame calls f(ctx).
func (f SourceFunc) NextFrame(ctx context.Context) error {
	return f(ctx)
}

// Immediate is a Source that never waits. Useful for headless runs and tests.
type Immediate struct{}

// NextFrame returns at once unless ctx is already done.
func (Immediate) NextFrame(ctx context.Context) error {
	return ctx.Err()
}

// Ticker paces frames at a fixed rate. Frames that fall behind are dropped
// rather than queued.
type Ticker struct {
	ticker *time.Ticker
}

var _ Source = &Ticker{}

// NewTicker creates a Ticker firing hz times per second. Non-positive rates
// fall back to 60 Hz.
func NewTicker(hz float64) *Ticker {
	if hz <= 0 {
		hz = 60
	}
	return &Ticker{ticker: time.NewTicker(time.Duration(float64(time.Second) / hz))}
}

// NextFrame waits for the next tick or ctx cancellation.
func (t *Ticker) NextFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

// Stop releases the underlying ticker.
func (t *Ticker) Stop() {
	t.ticker.Stop()
}

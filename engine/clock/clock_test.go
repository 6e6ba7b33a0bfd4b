package clock

import (
	"testing"
	"time"
)

func TestClockReportsZeroBeforeStart(t *testing.T) {
	c := NewClock()
	if got := c.Elapsed(); got != 0 {
		t.Errorf("Elapsed before Start = %v, want 0", got)
	}
}

func TestClockIsMonotonic(t *testing.T) {
	c := NewClock()
	c.Start()

	t1 := c.Elapsed()
	time.Sleep(10 * time.Millisecond)
	t2 := c.Elapsed()

	if t2 < t1 {
		t.Fatalf("Elapsed decreased: %v then %v", t1, t2)
	}
	if t2-t1 < 0.01 {
		t.Errorf("Expected at least 10ms between reads, got %vs", t2-t1)
	}
}

func TestClockNeverGoesBackwards(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	readings := []time.Time{base, base.Add(2 * time.Second), base.Add(time.Second)}
	i := 0
	c := &monotonicClock{now: func() time.Time {
		r := readings[i]
		if i < len(readings)-1 {
			i++
		}
		return r
	}}

	c.Start()
	if got := c.Elapsed(); got != 2 {
		t.Fatalf("first Elapsed = %v, want 2", got)
	}
	if got := c.Elapsed(); got != 2 {
		t.Errorf("Elapsed after a backwards reading = %v, want 2", got)
	}
}

func TestManualClock(t *testing.T) {
	m := NewManualClock()
	if m.Elapsed() != 0 {
		t.Fatalf("initial Elapsed = %v, want 0", m.Elapsed())
	}

	m.Set(1.5)
	m.Advance(0.5)
	if got := m.Elapsed(); got != 2 {
		t.Errorf("Elapsed after Set+Advance = %v, want 2", got)
	}

	m.Set(1)
	m.Advance(-3)
	if got := m.Elapsed(); got != 2 {
		t.Errorf("Elapsed after backwards moves = %v, want 2", got)
	}

	m.Start()
	if got := m.Elapsed(); got != 0 {
		t.Errorf("Elapsed after Start = %v, want 0", got)
	}
}

func TestFixedStepClock(t *testing.T) {
	f := NewFixedStepClock(0.5)
	want := []float64{0, 0.5, 1, 1.5}
	for i, w := range want {
		if got := f.Elapsed(); got != w {
			t.Errorf("read %d = %v, want %v", i, got, w)
		}
	}
	f.Start()
	if got := f.Elapsed(); got != 0 {
		t.Errorf("Elapsed after Start = %v, want 0", got)
	}
}

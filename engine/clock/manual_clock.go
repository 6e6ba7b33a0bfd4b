package clock

import "sync"

// ManualClock is a Clock whose time only moves when told to.
type ManualClock struct {
	mu      sync.Mutex
	elapsed float64
}

var _ Clock = &ManualClock{}

// NewManualClock creates a ManualClock at 0 seconds.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// Start rewinds the clock to 0.
func (m *ManualClock) Start() {
	m.mu.Lock()
	m.elapsed = 0
	m.mu.Unlock()
}

func (m *ManualClock) Elapsed() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.elapsed
}

// Set moves the clock to t. Values earlier than the current time are ignored.
func (m *ManualClock) Set(t float64) {
	m.mu.Lock()
	if t > m.elapsed {
		m.elapsed = t
	}
	m.mu.Unlock()
}

// Advance moves the clock forward by dt seconds. Negative steps are ignored.
func (m *ManualClock) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	m.mu.Lock()
	m.elapsed += dt
	m.mu.Unlock()
}

// FixedStepClock advances by a constant step on every read after the first.
type FixedStepClock struct {
	mu    sync.Mutex
	step  float64
	reads uint64
}

var _ Clock = &FixedStepClock{}

// NewFixedStepClock creates a clock that reports 0, step, 2*step, ... on
// successive Elapsed calls. Non-positive steps freeze the clock at 0.
func NewFixedStepClock(step float64) *FixedStepClock {
	return &FixedStepClock{step: max(step, 0)}
}

func (f *FixedStepClock) Start() {
	f.mu.Lock()
	f.reads = 0
	f.mu.Unlock()
}

func (f *FixedStepClock) Elapsed() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := float64(f.reads) * f.step
	f.reads++
	return t
}

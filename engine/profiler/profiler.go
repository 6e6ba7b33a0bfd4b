// Package profiler reports frame rate and memory figures for the frame loop.
package profiler

import (
	"log"
	"runtime"
	"time"
)

// Report is one interval's worth of measurements.
type Report struct {
	Frames      int
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// Profiler counts ticks and emits a Report once per interval. The first
// Tick only takes the baseline, so setup before the loop is not measured.
type Profiler struct {
	started  bool
	frames   int
	since    time.Time
	interval time.Duration

	now  func() time.Time
	logf func(format string, args ...any)

	mem            runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Report
}

// NewProfiler creates a Profiler reporting every second through the standard logger.
//
// Parameters:
//   - options: functional options overriding the interval, time source or log sink
//
// Returns:
//   - *Profiler: the profiler, idle until its first Tick
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		interval: time.Second,
		now:      time.Now,
		logf:     log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Tick records one frame. When the interval has elapsed it samples the
// runtime, logs a line and starts a new interval. The first call starts the
// clock and the allocation baseline instead.
//
// Returns:
//   - bool: true if a report was produced by this tick
func (p *Profiler) Tick() bool {
	now := p.now()
	if !p.started {
		p.started = true
		p.since = now
		runtime.ReadMemStats(&p.mem)
		p.lastGCCount = p.mem.NumGC
		p.lastTotalAlloc = p.mem.TotalAlloc
		return false
	}

	p.frames++
	elapsed := now.Sub(p.since)
	if elapsed < p.interval {
		return false
	}

	runtime.ReadMemStats(&p.mem)
	r := Report{
		Frames:  p.frames,
		FPS:     float64(p.frames) / elapsed.Seconds(),
		HeapMB:  float64(p.mem.Alloc) / 1024 / 1024,
		SysMB:   float64(p.mem.Sys) / 1024 / 1024,
		GCCount: p.mem.NumGC,
	}
	if p.mem.TotalAlloc >= p.lastTotalAlloc {
		r.AllocRateMB = float64(p.mem.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()
	}
	r.LastPauseUs, r.MaxPauseUs = pauses(&p.mem, p.lastGCCount)

	p.logf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		r.FPS, r.HeapMB, r.AllocRateMB, r.GCCount, r.LastPauseUs, r.MaxPauseUs, r.SysMB)

	p.frames = 0
	p.since = now
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.mem.TotalAlloc
	p.last = r
	return true
}

// Last returns the most recent report, or the zero Report before the first one.
func (p *Profiler) Last() Report {
	return p.last
}

// pauses returns the latest GC pause and the longest pause since the GC
// count `from`, both in microseconds. PauseNs is a ring of the last 256 pauses.
func pauses(m *runtime.MemStats, from uint32) (last, longest uint64) {
	n := m.NumGC
	if n == 0 {
		return 0, 0
	}
	last = m.PauseNs[(n-1)%256] / 1000
	if n-from > 256 {
		from = n - 256
	}
	for i := from; i < n; i++ {
		longest = max(longest, m.PauseNs[i%256]/1000)
	}
	return last, longest
}

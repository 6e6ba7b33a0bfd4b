package profiler

import "time"

// ProfilerOption is a functional option for NewProfiler.
type ProfilerOption func(p *Profiler)

// WithInterval sets how often a report is produced. Non-positive values are ignored.
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTimeSource replaces time.Now.
func WithTimeSource(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogf replaces log.Printf as the report sink.
func WithLogf(logf func(format string, args ...any)) ProfilerOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}

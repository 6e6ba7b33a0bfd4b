package engine

import (
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/clock"
	"github.com/Carmen-Shannon/haunted-house/engine/frame"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables the once-per-second profiler log line.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithClock replaces the default monotonic clock.
//
// Parameters:
//   - c: the clock read once per tick
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithController overrides the controller advanced each tick. By default it
// is the scene camera's controller.
func WithController(ctrl camera.CameraController) EngineBuilderOption {
	return func(e *engine) {
		e.ctrl = ctrl
	}
}

// WithFrameSource sets what Run waits on between ticks. Without one, Run
// paces itself with a 60 Hz ticker.
//
// Parameters:
//   - src: the frame source, typically the window or terminal hosting the scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameSource(src frame.Source) EngineBuilderOption {
	return func(e *engine) {
		e.source = src
	}
}

// WithContinue sets the predicate Run consults before each tick. It receives
// the number of completed frames; returning false stops the loop.
func WithContinue(proceed func(frame uint64) bool) EngineBuilderOption {
	return func(e *engine) {
		e.proceed = proceed
	}
}

// WithMaxFrames stops Run after n frames. Zero means no limit.
func WithMaxFrames(n uint64) EngineBuilderOption {
	return func(e *engine) {
		e.maxFrames = n
	}
}

// WithVerbose logs a line per frame and per resize.
func WithVerbose(verbose bool) EngineBuilderOption {
	return func(e *engine) {
		e.verbose = verbose
	}
}

// WithWindow attaches the viewport hosting the scene. Its resize callback is
// pointed at Engine.Resize and its current size is applied immediately.
//
// Parameters:
//   - v: a window or terminal
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(v Viewport) EngineBuilderOption {
	return func(e *engine) {
		e.viewport = v
	}
}

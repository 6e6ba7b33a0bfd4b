package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/clock"
	"github.com/Carmen-Shannon/haunted-house/engine/frame"
	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// defaultFrameRate paces Run when no frame source is configured.
const defaultFrameRate = 60

// State is the scheduler's lifecycle state.
type State int

const (
	// StateIdle is the state between construction and the first tick.
	StateIdle State = iota
	// StateRunning is entered on the first tick and never left.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Viewport is a host surface whose size drives the camera aspect and the
// render target. Both the glfw window and the terminal satisfy it.
type Viewport interface {
	Width() int
	Height() int
	SetResizeCallback(callback func(width, height int))
}

// Engine drives one scene through the per-frame sequence: read the clock,
// animate bound entities, advance the camera, render, then wait for the next
// frame. Everything runs on the calling goroutine.
type Engine interface {
	// State returns Idle before the first tick and Running afterwards.
	State() State

	// Frame returns the number of completed ticks.
	Frame() uint64

	// Scene returns the scene being animated.
	Scene() scene.Scene

	// Camera returns the camera frames are rendered from.
	Camera() camera.Camera

	// Renderer returns the renderer frames are presented through.
	Renderer() renderer.Renderer

	// Tick runs one frame. The first call starts the clock.
	//
	// Returns:
	//   - error: the renderer's error, wrapped
	Tick() error

	// Run ticks until the continue predicate or frame limit stops it, the
	// frame source reports its host closed, ctx ends, or a tick fails.
	//
	// Parameters:
	//   - ctx: cancelling it stops the loop between frames
	//
	// Returns:
	//   - error: nil on a normal stop, ctx.Err() on cancellation, otherwise the wrapped failure
	Run(ctx context.Context) error

	// Resize applies a new viewport size to the renderer and the camera aspect.
	// Non-positive sizes (a minimised window) are ignored.
	//
	// Parameters:
	//   - width: viewport width
	//   - height: viewport height
	Resize(width, height int)
}

type engine struct {
	mu *sync.Mutex

	state State
	frame uint64

	scene    scene.Scene
	camera   camera.Camera
	ctrl     camera.CameraController
	renderer renderer.Renderer
	clock    clock.Clock
	source   frame.Source

	proceed   func(frame uint64) bool
	maxFrames uint64

	profiler         *profiler.Profiler
	profilingEnabled bool
	verbose          bool

	viewport Viewport
}

var _ Engine = &engine{}

// NewEngine creates an Idle engine for the scene, rendering through r from
// the scene's camera.
//
// Parameters:
//   - s: the scene to animate; its camera must be set
//   - r: the renderer frames are presented through
//   - options: functional options for the clock, frame source, controller and loop limits
//
// Returns:
//   - Engine: the idle engine
func NewEngine(s scene.Scene, r renderer.Renderer, options ...EngineBuilderOption) Engine {
	if s == nil {
		panic("engine: nil scene")
	}
	if r == nil {
		panic("engine: nil renderer")
	}
	cam := s.Camera()
	if cam == nil {
		panic("engine: scene has no camera")
	}

	e := &engine{
		mu:       &sync.Mutex{},
		state:    StateIdle,
		scene:    s,
		camera:   cam,
		ctrl:     cam.Controller(),
		renderer: r,
		clock:    clock.NewClock(),
		profiler: profiler.NewProfiler(),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.viewport != nil {
		e.viewport.SetResizeCallback(e.Resize)
		e.Resize(e.viewport.Width(), e.viewport.Height())
	}
	return e
}

func (e *engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *engine) Frame() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Tick() error {
	e.mu.Lock()
	if e.state == StateIdle {
		e.clock.Start()
		e.state = StateRunning
		log.Printf("[Engine] running scene %q", e.scene.Name())
	}
	n := e.frame
	e.mu.Unlock()

	t := e.clock.Elapsed()
	e.scene.Animate(t)
	if e.ctrl != nil {
		e.ctrl.Advance()
	}
	e.camera.Update()

	if err := e.renderer.RenderFrame(e.scene, e.camera); err != nil {
		return fmt.Errorf("render frame %d: %w", n, err)
	}
	if e.verbose {
		log.Printf("[Engine] frame %d at t=%.3fs", n, t)
	}

	e.mu.Lock()
	e.frame++
	e.mu.Unlock()

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

func (e *engine) Run(ctx context.Context) error {
	src := e.source
	if src == nil {
		tk := frame.NewTicker(defaultFrameRate)
		defer tk.Stop()
		src = tk
	}

	for {
		n := e.Frame()
		if e.maxFrames > 0 && n >= e.maxFrames {
			log.Printf("[Engine] frame limit %d reached", e.maxFrames)
			return nil
		}
		if e.proceed != nil && !e.proceed(n) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.Tick(); err != nil {
			return err
		}

		if err := src.NextFrame(ctx); err != nil {
			switch {
			case errors.Is(err, frame.ErrHostClosed):
				log.Printf("[Engine] host closed after %d frames", e.Frame())
				return nil
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				return fmt.Errorf("wait for frame %d: %w", e.Frame(), err)
			}
		}
	}
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.renderer.Resize(width, height)
	e.camera.SetAspect(float32(width) / float32(height))
	if e.verbose {
		log.Printf("[Engine] viewport %dx%d", width, height)
	}
}

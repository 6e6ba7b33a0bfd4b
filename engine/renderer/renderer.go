package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrReleased is returned by RenderFrame after Release.
var ErrReleased = errors.New("renderer: released")

// renderer is the WebGPU implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend  RendererBackend
	released bool
	width    int
	height   int
}

// Renderer draws a scene as seen from a camera, one frame per call.
//
// Backends share BuildDrawList, so every backend agrees on what is visible,
// how it is lit and how far it is fogged. They differ only in how drawables
// reach the output.
type Renderer interface {
	// RenderFrame draws one frame of the scene's current state.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw it from
	//
	// Returns:
	//   - error: an error if the frame could not be produced or presented
	RenderFrame(s scene.Scene, cam camera.Camera) error

	// Resize configures the output for a new viewport size.
	// Sizes with a non-positive dimension are ignored, as happens while a window is minimised.
	//
	// Parameters:
	//   - width: the new width in pixels or cells
	//   - height: the new height in pixels or cells
	Resize(width, height int)

	// Release frees the backend's resources. The renderer is unusable afterwards.
	Release()
}

var _ Renderer = &renderer{}

// SurfaceSource is the part of a window the GPU renderer presents to.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// NewRenderer creates the WebGPU renderer for the given window.
// The surface descriptor is platform-specific and obtained from Window.SurfaceDescriptor().
//
// Parameters:
//   - w: the window (or any SurfaceSource) the renderer presents to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
//   - error: an error if no adapter, device or surface could be set up
func NewRenderer(w SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	if w == nil {
		panic("renderer: nil window")
	}

	settings := newSurfaceSettings(options...)
	r := &renderer{
		mu:     &sync.Mutex{},
		width:  w.Width(),
		height: w.Height(),
	}

	backend, err := newWGPURendererBackend(w.SurfaceDescriptor(), settings.software, settings.msaa)
	if err != nil {
		return nil, err
	}
	r.backend = backend
	r.backend.SetPresentMode(settings.presentMode)

	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.backend.Release()
		return nil, err
	}
	log.Printf("[Renderer] WebGPU surface %dx%d, msaa %dx", r.width, r.height, settings.msaa)
	return r, nil
}

func (r *renderer) RenderFrame(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return ErrReleased
	}

	list := BuildDrawList(s, cam)

	r.backend.WriteCamera(NewCameraUniform(cam))
	if err := r.backend.BeginFrame(s.ClearColor()); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := r.backend.DrawBillboards(billboardInstances(list)); err != nil {
		// The pass is open, so it still has to be ended before reporting.
		_ = r.backend.EndFrame()
		r.backend.Present()
		return fmt.Errorf("draw billboards: %w", err)
	}
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released || width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		log.Printf("[Renderer] resize to %dx%d failed: %v", width, height, err)
	}
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true
	r.backend.Release()
}

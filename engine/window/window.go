// Package window hosts the diorama in a native glfw window: it supplies the
// WebGPU surface, delivers input and resize events, and paces frames by
// polling the platform event queue.
package window

import (
	"context"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/haunted-house/engine/frame"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNotInitialized is returned by Close when the platform window is gone.
var ErrNotInitialized = errors.New("window: not initialized")

// MouseButton identifies a mouse button in press and release callbacks.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Input is the event side of a window. Callbacks run on the goroutine that
// calls NextFrame.
type Input interface {
	// SetUpdateCallback sets the function called once per frame after events are polled.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common key codes)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and cursor position
	SetMouseDownCallback(callback func(button MouseButton, x, y int32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and cursor position
	SetMouseUpCallback(callback func(button MouseButton, x, y int32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))
}

// Window is a native window hosting the WebGPU surface. It is also the
// frame source for the scheduler: NextFrame polls pending events, so input
// and resize callbacks fire between ticks on the loop goroutine.
type Window interface {
	Input
	frame.Source

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until the window is asked to close.
	IsRunning() bool

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialised
	Close() error

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and event callbacks.
type engineWindow struct {
	title string

	// Size limits applied while the user drags the window border.
	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height track the framebuffer, not the window, on high-DPI displays.
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button MouseButton, x, y int32)
	onMouseUp   func(button MouseButton, x, y int32)
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Haunted House",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y int32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y int32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

// NextFrame polls the platform queue, dispatching input and resize callbacks,
// then runs the update callback. It does not sleep: with a VSync present
// mode the renderer's Present already blocks until the next refresh.
func (w *engineWindow) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !platformProcessMessages(w) {
		return frame.ErrHostClosed
	}
	if w.onUpdate != nil {
		w.onUpdate()
	}
	return nil
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

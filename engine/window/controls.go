package window

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
)

// Controls routes window input to an orbit camera controller:
//   - left or middle drag rotates
//   - scroll and +/- zoom
//   - arrow keys step the orbit
//   - held W/A/S/D pan, applied once per frame
type Controls struct {
	mu   *sync.Mutex
	ctrl camera.CameraController

	held     map[uint32]bool
	dragging bool
	lastX    int32
	lastY    int32
}

// BindControls installs input callbacks on in that drive ctrl. It replaces
// any key, mouse, scroll or update callbacks already set on in.
//
// Parameters:
//   - in: the window input to listen on
//   - ctrl: the controller receiving the input
//
// Returns:
//   - *Controls: the binding, mostly useful for inspecting held keys
func BindControls(in Input, ctrl camera.CameraController) *Controls {
	if in == nil || ctrl == nil {
		panic("window: BindControls requires input and a controller")
	}
	c := &Controls{
		mu:   &sync.Mutex{},
		ctrl: ctrl,
		held: make(map[uint32]bool),
	}
	in.SetKeyDownCallback(c.keyDown)
	in.SetKeyUpCallback(c.keyUp)
	in.SetMouseDownCallback(c.mouseDown)
	in.SetMouseUpCallback(c.mouseUp)
	in.SetMouseMoveCallback(c.mouseMove)
	in.SetScrollCallback(ctrl.Zoom)
	in.SetUpdateCallback(c.Update)
	return c
}

// Held reports whether a pan key is currently down.
func (c *Controls) Held(keyCode uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held[keyCode]
}

// Update applies the held pan keys. The window calls it once per frame.
func (c *Controls) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held[common.KeyW] {
		c.ctrl.PanUp(1)
	}
	if c.held[common.KeyS] {
		c.ctrl.PanUp(-1)
	}
	if c.held[common.KeyA] {
		c.ctrl.PanRight(-1)
	}
	if c.held[common.KeyD] {
		c.ctrl.PanRight(1)
	}
}

func (c *Controls) keyDown(keyCode uint32) {
	switch keyCode {
	case common.KeyLeft:
		c.ctrl.OrbitLeft()
	case common.KeyRight:
		c.ctrl.OrbitRight()
	case common.KeyUp:
		c.ctrl.OrbitUp()
	case common.KeyDown:
		c.ctrl.OrbitDown()
	case common.KeyEqual:
		c.ctrl.Zoom(1)
	case common.KeyMinus:
		c.ctrl.Zoom(-1)
	case common.KeyW, common.KeyA, common.KeyS, common.KeyD:
		c.mu.Lock()
		c.held[keyCode] = true
		c.mu.Unlock()
	}
}

func (c *Controls) keyUp(keyCode uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.held, keyCode)
}

func (c *Controls) mouseDown(button MouseButton, x, y int32) {
	if button != MouseButtonLeft && button != MouseButtonMiddle {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.lastX, c.lastY = x, y
}

func (c *Controls) mouseUp(button MouseButton, _, _ int32) {
	if button != MouseButtonLeft && button != MouseButtonMiddle {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

func (c *Controls) mouseMove(x, y int32) {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		return
	}
	dx, dy := float32(x-c.lastX), float32(y-c.lastY)
	c.lastX, c.lastY = x, y
	c.mu.Unlock()
	c.ctrl.Rotate(dx, dy)
}

package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var mouseButtons = map[glfw.MouseButton]MouseButton{
	glfw.MouseButtonLeft:   MouseButtonLeft,
	glfw.MouseButtonRight:  MouseButtonRight,
	glfw.MouseButtonMiddle: MouseButtonMiddle,
}

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow opens the glfw window and forwards its callbacks to w.
// glfw must be driven from the thread that initialised it, so the calling
// goroutine is locked to its OS thread.
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("create glfw window: %w", err)
	}

	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Esc and Q close the window; other keys are forwarded.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if (key == glfw.KeyEscape || key == glfw.KeyQ) && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := mouseButtons[button]
		if !ok {
			return
		}
		xpos, ypos := win.GetCursorPos()
		switch action {
		case glfw.Press:
			if w.onMouseDown != nil {
				w.onMouseDown(b, int32(xpos), int32(ypos))
			}
		case glfw.Release:
			if w.onMouseUp != nil {
				w.onMouseUp(b, int32(xpos), int32(ypos))
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(xpos), int32(ypos))
		}
	})

	// The surface is configured in pixels, which differ from screen units on high-DPI displays.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		// Minimised windows report 0x0; keep the last usable size.
		if width <= 0 || height <= 0 {
			return
		}
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// platformGetSurfaceDescriptor builds the surface descriptor through the
// wgpuglfw bridge, which picks the right native handle per platform.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the window and terminates glfw. A second call
// reports ErrNotInitialized.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return ErrNotInitialized
	}
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages drains pending events without blocking and
// reports whether the window should stay open.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}

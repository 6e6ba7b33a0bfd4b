package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87 // W key (ASCII)
	KeyA     = 65 // A key (ASCII)
	KeyS     = 83 // S key (ASCII)
	KeyD     = 68 // D key (ASCII)
	KeyQ     = 81 // Q key (ASCII)
	KeyR     = 82 // R key (ASCII)
	KeyMinus = 45 // - key (ASCII)
	KeyEqual = 61 // = / + key (ASCII)

	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

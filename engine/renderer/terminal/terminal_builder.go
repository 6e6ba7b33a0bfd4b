package terminal

import "github.com/Carmen-Shannon/haunted-house/engine/camera"

// TerminalBuilderOption is a functional option applied by NewTerminal.
type TerminalBuilderOption func(t *terminalImpl)

// WithFrameRate sets how many frames per second NextFrame paces to.
// Non-positive rates are ignored. The default is 30.
func WithFrameRate(hz float64) TerminalBuilderOption {
	return func(t *terminalImpl) {
		if hz > 0 {
			t.frameHz = hz
		}
	}
}

// WithController routes keyboard input to the given controller.
func WithController(ctrl camera.CameraController) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.ctrl = ctrl
	}
}

// WithControls enables or disables camera keys. Quit keys always work.
func WithControls(enabled bool) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.controls = enabled
	}
}

// WithVerbose logs terminal events.
func WithVerbose(verbose bool) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.verbose = verbose
	}
}

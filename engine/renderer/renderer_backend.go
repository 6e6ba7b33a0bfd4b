package renderer

import (
	"fmt"
	"strings"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values (8, 16) are adapter-dependent and may not be available.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4

	// MSAA8x enables 8× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA8x MSAASampleCount = 8

	// MSAA16x enables 16× multisample anti-aliasing. Adapter-dependent; not all hardware supports this.
	MSAA16x MSAASampleCount = 16
)

// RendererBackend is the GPU backend behind the windowed Renderer.
type RendererBackend interface {
	wgpuRendererBackend
}

// ParsePresentMode maps a config name ("vsync" or "uncapped") to a PresentMode.
func ParsePresentMode(name string) (PresentMode, error) {
	switch strings.ToLower(name) {
	case "vsync", "":
		return PresentModeVSync, nil
	case "uncapped":
		return PresentModeUncapped, nil
	default:
		return PresentModeVSync, fmt.Errorf("unknown present mode %q", name)
	}
}

// Valid reports whether the sample count is one of the defined MSAA levels.
func (c MSAASampleCount) Valid() bool {
	switch c {
	case MSAAOff, MSAA4x, MSAA8x, MSAA16x:
		return true
	default:
		return false
	}
}

package renderer

import "log"

// RendererBuilderOption adjusts the surface settings NewRenderer requests.
type RendererBuilderOption func(*surfaceSettings)

// surfaceSettings are fixed before the adapter is requested.
type surfaceSettings struct {
	presentMode PresentMode
	msaa        MSAASampleCount
	software    bool
}

// newSurfaceSettings applies options over vsync, 4x MSAA and a hardware adapter.
func newSurfaceSettings(options ...RendererBuilderOption) surfaceSettings {
	s := surfaceSettings{presentMode: PresentModeVSync, msaa: MSAA4x}
	for _, opt := range options {
		opt(&s)
	}
	return s
}

// WithPresentMode picks between vsync and uncapped presentation.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(s *surfaceSettings) {
		s.presentMode = mode
	}
}

// WithMSAA sets the sample count of the colour target. Counts other than
// 1, 4, 8 or 16 are logged and leave the current setting in place.
//
// Parameters:
//   - count: the sample count, MSAAOff to disable multisampling
//
// Returns:
//   - RendererBuilderOption: the option
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(s *surfaceSettings) {
		if !count.Valid() {
			log.Printf("[Renderer] ignoring msaa %d, keeping %dx", count, s.msaa)
			return
		}
		s.msaa = count
	}
}

// WithSoftwareAdapter requests the fallback adapter, for machines that only
// have a CPU Vulkan driver such as lavapipe or SwiftShader.
func WithSoftwareAdapter(software bool) RendererBuilderOption {
	return func(s *surfaceSettings) {
		s.software = software
	}
}

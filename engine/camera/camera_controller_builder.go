package camera

// CameraControllerOption configures a CameraController during NewCameraController.
type CameraControllerOption func(*cameraControllerImpl)

// Speeds scale each kind of camera input. Zero or negative fields keep the
// controller's defaults.
type Speeds struct {
	// Orbit is radians per keyboard orbit step.
	Orbit float32
	// Zoom is distance per zoom step.
	Zoom float32
	// Pan is the multiplier on planar pan input.
	Pan float32
	// Mouse is radians per pixel of drag.
	Mouse float32
}

// WithTarget sets the point the camera orbits and looks at.
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithEyePosition places the camera at a world-space point. The spherical
// offset is derived from the target once all options are applied, so the
// order relative to WithTarget does not matter.
func WithEyePosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.initialEye = &[3]float32{x, y, z}
	}
}

// WithDamping sets the fraction of buffered input applied per Advance.
// Values outside (0, 1] disable damping.
func WithDamping(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if factor <= 0 || factor > 1 {
			factor = 0
		}
		cc.dampingFactor = factor
	}
}

// WithDistanceLimits bounds how close and how far the eye may be from the
// target. The eye given to WithEyePosition is pulled inside the limits.
//
// Parameters:
//   - nearest: smallest eye distance, > 0
//   - farthest: largest eye distance, >= nearest
//
// Returns:
//   - CameraControllerOption: the option, a no-op for an empty or inverted range
func WithDistanceLimits(nearest, farthest float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if !(nearest > 0) || !(farthest >= nearest) {
			return
		}
		cc.minRadius, cc.maxRadius = nearest, farthest
	}
}

// WithElevationLimits bounds the eye's angle above the target's horizontal
// plane, in radians. Keeping the top below π/2 stops the view from flipping.
//
// Parameters:
//   - lowest: smallest elevation
//   - highest: largest elevation, >= lowest
//
// Returns:
//   - CameraControllerOption: the option, a no-op for an inverted range
func WithElevationLimits(lowest, highest float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if !(highest >= lowest) {
			return
		}
		cc.minElevation, cc.maxElevation = lowest, highest
	}
}

// WithSpeeds overrides the input speeds given as positive fields of s.
func WithSpeeds(s Speeds) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		for _, f := range []struct {
			dst *float32
			v   float32
		}{
			{&cc.orbitSpeed, s.Orbit},
			{&cc.zoomSpeed, s.Zoom},
			{&cc.panSpeed, s.Pan},
			{&cc.mouseSensitivity, s.Mouse},
		} {
			if f.v > 0 {
				*f.dst = f.v
			}
		}
	}
}

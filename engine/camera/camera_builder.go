package camera

import "math"

// CameraBuilderOption configures a Camera during NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPerspective sets the projection frustum. The field of view is given in
// degrees, the unit used by configuration files. A frustum with a non-positive
// angle, a non-positive near plane or a far plane not beyond the near one is
// ignored and the defaults stay.
//
// Parameters:
//   - fovDegrees: vertical field of view in degrees, below 180
//   - near: near clip distance
//   - far: far clip distance
//
// Returns:
//   - CameraBuilderOption: the option
func WithPerspective(fovDegrees, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if !(fovDegrees > 0 && fovDegrees < 180) || !(near > 0) || !(far > near) {
			return
		}
		c.fov = fovDegrees * math.Pi / 180
		c.near, c.far = near, far
	}
}

// WithAspect sets the initial width / height ratio, with the same rules as SetAspect.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if aspect > 0 && !math.IsInf(float64(aspect), 0) {
			c.aspect = aspect
		}
	}
}

// WithController attaches the controller the camera reads its eye and target from.
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

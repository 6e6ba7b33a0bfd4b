package camera

// CameraController orbits a camera around a target point.
//
// Input methods never move the camera directly: they buffer deltas that the
// next Advance applies. With damping enabled each Advance applies only a
// fraction of the buffer and decays the rest, giving the camera inertia.
// Input may arrive from a different goroutine than the one calling Advance.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Target returns the orbit pivot / look-at point.
	//
	// Returns:
	//   - x, y, z: target components
	Target() (x, y, z float32)

	// SetTarget moves the pivot, keeping the spherical offset.
	//
	// Parameters:
	//   - x, y, z: target components
	SetTarget(x, y, z float32)

	// SetPosition places the camera at a world-space point, deriving the
	// spherical offset from the current target. Bounds are applied.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Zoom buffers a change of orbit radius; positive values move closer.
	//
	// Parameters:
	//   - delta: zoom steps, scaled by ZoomSpeed
	Zoom(delta float32)

	// Advance applies buffered input once. Call it exactly once per frame.
	Advance()

	// Settled reports whether no buffered input remains.
	//
	// Returns:
	//   - bool: true when the camera will not move on the next Advance
	Settled() bool

	// Damping returns whether damping is enabled and its factor.
	//
	// Returns:
	//   - bool: true if enabled
	//   - float32: fraction of buffered input applied per Advance
	Damping() (bool, float32)

	// SetDamping enables damping with the given factor in (0, 1].
	// A factor outside that range disables damping.
	//
	// Parameters:
	//   - factor: fraction of buffered input applied per Advance
	SetDamping(factor float32)
}

type orbitCameraController interface {
	// OrbitLeft buffers one keyboard step of azimuth to the left.
	OrbitLeft()

	// OrbitRight buffers one keyboard step of azimuth to the right.
	OrbitRight()

	// OrbitUp buffers one keyboard step of elevation upwards.
	OrbitUp()

	// OrbitDown buffers one keyboard step of elevation downwards.
	OrbitDown()

	// Rotate buffers a rotation from a pointer drag measured in pixels.
	//
	// Parameters:
	//   - dx, dy: pointer movement, scaled by MouseSensitivity
	Rotate(dx, dy float32)

	// Radius returns the current distance from the target.
	Radius() float32

	// MinRadius returns the smallest allowed radius.
	MinRadius() float32

	// MaxRadius returns the largest allowed radius.
	MaxRadius() float32

	// Azimuth returns the horizontal angle around Y, 0 on the +Z axis.
	Azimuth() float32

	// Elevation returns the vertical angle above the horizontal plane.
	Elevation() float32

	// MinElevation returns the lowest allowed elevation.
	MinElevation() float32

	// MaxElevation returns the highest allowed elevation.
	MaxElevation() float32

	// OrbitSpeed returns the radians buffered per keyboard step.
	OrbitSpeed() float32

	// MouseSensitivity returns the radians buffered per dragged pixel.
	MouseSensitivity() float32

	// ZoomSpeed returns the radius change buffered per zoom step.
	ZoomSpeed() float32
}

type planarCameraController interface {
	// PanRight buffers a sideways translation of camera and target.
	//
	// Parameters:
	//   - delta: distance along the camera's right axis, scaled by PanSpeed
	PanRight(delta float32)

	// PanUp buffers a vertical translation of camera and target.
	//
	// Parameters:
	//   - delta: distance along the camera's up axis, scaled by PanSpeed
	PanUp(delta float32)

	// PanSpeed returns the pan scale factor.
	PanSpeed() float32
}

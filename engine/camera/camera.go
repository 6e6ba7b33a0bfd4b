package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	eye                  [3]float32
	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Position returns the eye position used for the last matrix update.
	//
	// Returns:
	//   - [3]float32: the eye position
	Position() [3]float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32

	// Basis returns the world-space right and up axes of the view, used to
	// orient camera-facing billboards.
	//
	// Returns:
	//   - right: the view's +X axis in world space
	//   - up: the view's +Y axis in world space
	Basis() (right, up [3]float32)

	// Frustum returns the view frustum of the current view-projection matrix.
	//
	// Returns:
	//   - common.Frustum: normalized frustum planes
	Frustum() common.Frustum

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Call it once per frame after the controller has advanced.
	// If no controller is attached, this method does nothing.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	// Non-positive values, such as those from a minimized window, are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings
// (75° field of view, near 0.1, far 100).
// The world Y axis is always up. Without a WithController option the matrices
// stay at identity.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                   &sync.Mutex{},
		fov:                  75.0 * (math.Pi / 180.0),
		aspect:               1.0,
		near:                 0.1,
		far:                  100.0,
		viewMatrix:           [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		projectionMatrix:     [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
		viewProjectionMatrix: [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1},
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eye
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Basis() (right, up [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// rows 0 and 1 of the rotation part of the view matrix
	right = [3]float32{c.viewMatrix[0], c.viewMatrix[4], c.viewMatrix[8]}
	up = [3]float32{c.viewMatrix[1], c.viewMatrix[5], c.viewMatrix[9]}
	return
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustumFromMatrix(c.viewProjectionMatrix[:])
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || math.IsNaN(float64(aspect)) || math.IsInf(float64(aspect), 0) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// It reads position and target from the attached controller. This is a no-op when the controller is nil.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	px, py, pz := c.controller.Position()
	tx, ty, tz := c.controller.Target()
	c.eye = [3]float32{px, py, pz}

	common.LookAt(c.viewMatrix[:],
		px, py, pz,
		tx, ty, tz,
		0, 1, 0, // world up
	)

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

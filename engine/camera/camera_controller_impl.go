package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
)

// settleEpsilon is the magnitude below which a decayed input buffer is dropped.
const settleEpsilon = 1e-5

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed       float32
	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32

	dampingFactor float32 // 0 disables damping

	// buffered input, consumed by Advance
	pendingAzimuth   float32
	pendingElevation float32
	pendingRadius    float32
	pendingPan       [2]float32 // right, up

	initialEye *[3]float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller with defaults suited to a
// small diorama: 0.05 damping, radius bounded to [2, 40].
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu: &sync.Mutex{},

		radius:    10.0,
		elevation: float32(math.Pi / 6),

		minRadius:    2.0,
		maxRadius:    40.0,
		minElevation: 0.05,
		maxElevation: float32(math.Pi/2 - 0.1),

		orbitSpeed:       0.05,
		mouseSensitivity: 0.005,
		zoomSpeed:        0.5,
		panSpeed:         0.1,

		dampingFactor: 0.05,
	}

	for _, option := range options {
		option(cc)
	}

	if cc.initialEye != nil {
		cc.lookFrom(*cc.initialEye)
		cc.initialEye = nil
	}
	cc.clampLocked()
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// lookFrom derives spherical coordinates for an eye position.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) lookFrom(eye [3]float32) {
	dx := float64(eye[0] - cc.target[0])
	dy := float64(eye[1] - cc.target[1])
	dz := float64(eye[2] - cc.target[2])
	r := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if r < 1e-8 {
		return
	}
	cc.radius = float32(r)
	cc.elevation = float32(math.Asin(dy / r))
	cc.azimuth = float32(math.Atan2(dx, dz))
}

// clampLocked keeps radius and elevation inside their bounds.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) clampLocked() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

// localAxes returns the camera's right and up vectors consistent with LookAt.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (right, up [3]float32) {
	bx := cc.position[0] - cc.target[0]
	by := cc.position[1] - cc.target[1]
	bz := cc.position[2] - cc.target[2]
	bLen := float32(math.Sqrt(float64(bx*bx + by*by + bz*bz)))
	if bLen < 1e-8 {
		return
	}
	bx /= bLen
	by /= bLen
	bz /= bLen

	// right = normalize(cross(worldUp, backward)) = (bz, 0, -bx)
	rLen := float32(math.Sqrt(float64(bz*bz + bx*bx)))
	if rLen < 1e-8 {
		return
	}
	right = [3]float32{bz / rLen, 0, -bx / rLen}

	// up = cross(backward, right)
	up = [3]float32{
		by*right[2] - bz*right[1],
		bz*right[0] - bx*right[2],
		bx*right[1] - by*right[0],
	}
	return
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.lookFrom([3]float32{x, y, z})
	cc.clampLocked()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingRadius -= delta * cc.zoomSpeed
}

func (cc *cameraControllerImpl) Advance() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	f := cc.dampingFactor
	if f <= 0 || f > 1 {
		f = 1
	}

	cc.azimuth += cc.pendingAzimuth * f
	cc.elevation += cc.pendingElevation * f
	cc.radius += cc.pendingRadius * f
	cc.clampLocked()

	if cc.pendingPan != ([2]float32{}) {
		right, up := cc.localAxes()
		dr := cc.pendingPan[0] * cc.panSpeed * f
		du := cc.pendingPan[1] * cc.panSpeed * f
		for i := range cc.target {
			cc.target[i] += right[i]*dr + up[i]*du
		}
	}

	decay := 1 - f
	cc.pendingAzimuth = settle(cc.pendingAzimuth * decay)
	cc.pendingElevation = settle(cc.pendingElevation * decay)
	cc.pendingRadius = settle(cc.pendingRadius * decay)
	cc.pendingPan[0] = settle(cc.pendingPan[0] * decay)
	cc.pendingPan[1] = settle(cc.pendingPan[1] * decay)

	cc.updatePosition()
}

func settle(v float32) float32 {
	if v > -settleEpsilon && v < settleEpsilon {
		return 0
	}
	return v
}

func (cc *cameraControllerImpl) Settled() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pendingAzimuth == 0 && cc.pendingElevation == 0 && cc.pendingRadius == 0 &&
		cc.pendingPan == [2]float32{}
}

func (cc *cameraControllerImpl) Damping() (bool, float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	enabled := cc.dampingFactor > 0 && cc.dampingFactor < 1
	return enabled, cc.dampingFactor
}

func (cc *cameraControllerImpl) SetDamping(factor float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if factor <= 0 || factor > 1 {
		factor = 0
	}
	cc.dampingFactor = factor
}

func (cc *cameraControllerImpl) OrbitLeft() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth -= cc.orbitSpeed
}

func (cc *cameraControllerImpl) OrbitRight() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth += cc.orbitSpeed
}

func (cc *cameraControllerImpl) OrbitUp() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingElevation += cc.orbitSpeed
}

func (cc *cameraControllerImpl) OrbitDown() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingElevation -= cc.orbitSpeed
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth -= dx * cc.mouseSensitivity
	cc.pendingElevation += dy * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) MinRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minRadius
}

func (cc *cameraControllerImpl) MaxRadius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxRadius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) OrbitSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitSpeed
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingPan[0] += delta
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingPan[1] += delta
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}

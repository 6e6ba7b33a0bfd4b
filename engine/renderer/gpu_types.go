package renderer

import (
	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
)

// CameraUniform is the GPU layout of the billboard camera block.
// The basis vectors carry a zero w so the struct matches WGSL vec4 alignment.
type CameraUniform struct {
	ViewProj [16]float32
	Right    [4]float32
	Up       [4]float32
}

// NewCameraUniform captures the camera's current view-projection and basis.
func NewCameraUniform(cam camera.Camera) CameraUniform {
	right, up := cam.Basis()
	return CameraUniform{
		ViewProj: cam.ViewProjectionMatrix(),
		Right:    [4]float32{right[0], right[1], right[2], 0},
		Up:       [4]float32{up[0], up[1], up[2], 0},
	}
}

// Marshal returns the uniform as raw bytes for a queue write.
func (u *CameraUniform) Marshal() []byte {
	return common.StructToBytes(u)
}

// billboardInstance is one per-instance vertex record.
//
//	offset 0  center  vec3<f32>
//	offset 12 mode    f32 (0 faces the camera, 1 lies on the ground)
//	offset 16 extents vec2<f32>
//	offset 24 padding
//	offset 32 color   vec4<f32>
type billboardInstance struct {
	Center  [3]float32
	Mode    float32
	Extents [2]float32
	_       [2]float32
	Color   [4]float32
}

// billboardInstanceSize is the stride of billboardInstance in bytes.
const billboardInstanceSize = 48

// billboardInstances converts a draw list into instance records.
func billboardInstances(list []Drawable) []billboardInstance {
	out := make([]billboardInstance, len(list))
	for i, d := range list {
		var mode float32
		if d.Ground() {
			mode = 1
		}
		out[i] = billboardInstance{
			Center:  d.Position,
			Mode:    mode,
			Extents: d.HalfExtents,
			Color:   [4]float32{d.Color[0], d.Color[1], d.Color[2], 1},
		}
	}
	return out
}

// quadCorners is the shared unit quad, one corner per vertex in [-1, 1].
var quadCorners = []float32{
	-1, -1,
	1, -1,
	1, 1,
	-1, 1,
}

var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

package common

import (
	"math"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   [3]float32
	Distance float32
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// frustumRows lists, per plane, the signed clip row and the weight of row 3.
var frustumRows = [6]struct {
	row     int
	sign, w float32
}{
	FrustumLeft:   {0, 1, 1},
	FrustumRight:  {0, -1, 1},
	FrustumBottom: {1, 1, 1},
	FrustumTop:    {1, -1, 1},
	FrustumNear:   {2, 1, 0},
	FrustumFar:    {2, -1, 1},
}

// ExtractFrustumFromMatrix extracts frustum planes from a view-projection matrix
// using the Gribb/Hartmann method. The near plane uses row 2 alone because
// WebGPU clip depth spans [0, w].
//
// Parameters:
//   - viewProj: 16 float32 values representing the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj []float32) Frustum {
	var f Frustum

	// element (row r, col c) lives at viewProj[c*4+r]
	for i, fr := range frustumRows {
		p := &f.Planes[i]
		for c := 0; c < 3; c++ {
			p.Normal[c] = fr.sign*viewProj[c*4+fr.row] + fr.w*viewProj[c*4+3]
		}
		p.Distance = fr.sign*viewProj[12+fr.row] + fr.w*viewProj[15]
		f.normalizePlane(i)
	}

	return f
}

// IntersectsSphere reports whether a sphere overlaps the frustum volume.
//
// Parameters:
//   - center: sphere centre in world space
//   - radius: sphere radius
//
// Returns:
//   - bool: false only when the sphere is fully outside one of the planes
func (f Frustum) IntersectsSphere(center [3]float32, radius float32) bool {
	for _, p := range f.Planes {
		d := p.Normal[0]*center[0] + p.Normal[1]*center[1] + p.Normal[2]*center[2] + p.Distance
		if d < -radius {
			return false
		}
	}
	return true
}

// normalizePlane normalizes a frustum plane so that the normal has unit length.
func (f *Frustum) normalizePlane(index int) {
	p := &f.Planes[index]
	length := float32(math.Sqrt(float64(
		p.Normal[0]*p.Normal[0] +
			p.Normal[1]*p.Normal[1] +
			p.Normal[2]*p.Normal[2],
	)))

	if length > 0 {
		invLen := 1.0 / length
		p.Normal[0] *= invLen
		p.Normal[1] *= invLen
		p.Normal[2] *= invLen
		p.Distance *= invLen
	}
}

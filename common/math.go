package common

import (
	"math"
	"unsafe"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// SliceToBytes returns a byte view over a slice for GPU buffer uploads.
// The returned slice shares memory with the input.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (OpenGL/WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix mapping depth into the
// WebGPU clip range [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// BuildModelMatrix constructs a 4x4 model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll). All matrices are column-major.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - posX, posY, posZ: translation in world space
//   - rotX, rotY, rotZ: rotation angles in radians around each axis
//   - scaleX, scaleY, scaleZ: scale factors along each axis
func BuildModelMatrix(out []float32, posX, posY, posZ, rotX, rotY, rotZ, scaleX, scaleY, scaleZ float32) {
	cx := float32(math.Cos(float64(rotX)))
	sx := float32(math.Sin(float64(rotX)))
	cy := float32(math.Cos(float64(rotY)))
	sy := float32(math.Sin(float64(rotY)))
	cz := float32(math.Cos(float64(rotZ)))
	sz := float32(math.Sin(float64(rotZ)))

	// R = Ry * Rx * Rz, column-major
	out[0] = (cy*cz + sy*sx*sz) * scaleX
	out[1] = (cx * sz) * scaleX
	out[2] = (-sy*cz + cy*sx*sz) * scaleX
	out[3] = 0

	out[4] = (cy*-sz + sy*sx*cz) * scaleY
	out[5] = (cx * cz) * scaleY
	out[6] = (sy*sz + cy*sx*cz) * scaleY
	out[7] = 0

	out[8] = (sy * cx) * scaleZ
	out[9] = (-sx) * scaleZ
	out[10] = (cy * cx) * scaleZ
	out[11] = 0

	out[12] = posX
	out[13] = posY
	out[14] = posZ
	out[15] = 1
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eyeX, eyeY, eyeZ: camera position in world space
//   - centerX, centerY, centerZ: target point the camera looks at
//   - upX, upY, upZ: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eyeX, eyeY, eyeZ, centerX, centerY, centerZ, upX, upY, upZ float32) {
	z0 := eyeX - centerX
	z1 := eyeY - centerY
	z2 := eyeZ - centerZ
	val := float64(z0*z0 + z1*z1 + z2*z2)
	if val == 0 {
		val = 1
	}
	invLen := 1.0 / float32(math.Sqrt(val))
	z0 *= invLen
	z1 *= invLen
	z2 *= invLen

	x0 := upY*z2 - upZ*z1
	x1 := upZ*z0 - upX*z2
	x2 := upX*z1 - upY*z0
	val = float64(x0*x0 + x1*x1 + x2*x2)
	if val == 0 {
		val = 1
	}
	invLen = 1.0 / float32(math.Sqrt(val))
	x0 *= invLen
	x1 *= invLen
	x2 *= invLen

	y0 := z1*x2 - z2*x1
	y1 := z2*x0 - z0*x2
	y2 := z0*x1 - z1*x0

	out[0], out[4], out[8], out[12] = x0, x1, x2, -(x0*eyeX + x1*eyeY + x2*eyeZ)
	out[1], out[5], out[9], out[13] = y0, y1, y2, -(y0*eyeX + y1*eyeY + y2*eyeZ)
	out[2], out[6], out[10], out[14] = z0, z1, z2, -(z0*eyeX + z1*eyeY + z2*eyeZ)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TransformPoint multiplies the point (x, y, z, 1) by a column-major 4x4 matrix.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - x, y, z: the point to transform
//
// Returns:
//   - [4]float32: the transformed homogeneous coordinate
func TransformPoint(m []float32, x, y, z float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12],
		m[1]*x + m[5]*y + m[9]*z + m[13],
		m[2]*x + m[6]*y + m[10]*z + m[14],
		m[3]*x + m[7]*y + m[11]*z + m[15],
	}
}

// Distance3 returns the euclidean distance between two points.
func Distance3(a, b [3]float32) float32 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
}

// Lerp3 linearly interpolates between a and b by f.
func Lerp3(a, b [3]float32, f float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*f,
		a[1] + (b[1]-a[1])*f,
		a[2] + (b[2]-a[2])*f,
	}
}

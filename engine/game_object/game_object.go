package game_object

import (
	"math"
	"slices"
	"sync/atomic"

	"github.com/Carmen-Shannon/haunted-house/engine/light"
)

// Kind describes the geometry a renderer should draw for an object.
type Kind int

const (
	// KindBox is an axis-aligned box of Size before rotation.
	KindBox Kind = iota
	// KindCone is a cone with base radius Size[0] and height Size[1].
	KindCone
	// KindSphere is a sphere of radius Size[0].
	KindSphere
	// KindPlane is a flat ground quad spanning Size[0] x Size[2].
	KindPlane
	// KindPoints is a cloud of local-space points, see Points.
	KindPoints
	// KindMarker is a point-sized object that only carries a light.
	KindMarker
)

// String returns a lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindCone:
		return "cone"
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindPoints:
		return "points"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

type gameObject struct {
	id            uint64
	name          string
	group         string
	kind          Kind
	size          [3]float32
	color         [3]float32
	texture       string
	enabled       atomic.Bool
	attachedLight light.Light
	points        [][3]float32

	position [3]float32
	rotation [3]float32
	scale    [3]float32
}

// GameObject is a scene entity: a transform plus the geometry and material
// descriptors a renderer needs to draw it.
//
// Transforms are written by scene composition before the loop starts and, for
// animated objects, only by the scene's per-frame update afterwards.
type GameObject interface {
	// ID returns the object's unique identifier, 0 until added to a scene.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's descriptive name.
	Name() string

	// Group returns the composition group this object belongs to (e.g. "house").
	Group() string

	// Kind returns the geometry kind.
	Kind() Kind

	// Size returns the geometry dimensions; see Kind for their meaning.
	Size() [3]float32

	// Color returns the material base colour.
	Color() [3]float32

	// Texture returns the name of the texture tinting this object, or "".
	Texture() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the world-space position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the Euler rotation in radians (applied Y, X, Z).
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// Scale returns the per-axis scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// TransformData returns position, scale and rotation in one call.
	//
	// Returns:
	//   - pos: position as [3]float32 (x, y, z)
	//   - scale: scale as [3]float32 (x, y, z)
	//   - rot: rotation as [3]float32 (rx, ry, rz)
	TransformData() (pos, scale, rot [3]float32)

	// Points returns the local-space points of a KindPoints object.
	// The returned slice must not be modified.
	Points() [][3]float32

	// BoundingRadius returns the radius of a sphere around the object's origin
	// enclosing its scaled geometry.
	BoundingRadius() float32

	// Light returns the light attached to this object, or nil.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetColor replaces the material base colour.
	SetColor(rgb [3]float32)

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale components
	SetScale(sx, sy, sz float32)

	// SetLight attaches a light that follows this object.
	//
	// Parameters:
	//   - l: the light, or nil to detach
	SetLight(l light.Light)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject with unit scale, white colour and
// rendering enabled, then applies the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		kind:  KindBox,
		size:  [3]float32{1, 1, 1},
		color: [3]float32{1, 1, 1},
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Group() string {
	return g.group
}

func (g *gameObject) Kind() Kind {
	return g.kind
}

func (g *gameObject) Size() [3]float32 {
	return g.size
}

func (g *gameObject) Color() [3]float32 {
	return g.color
}

func (g *gameObject) Texture() string {
	return g.texture
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() (x, y, z float32) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) TransformData() (pos, scale, rot [3]float32) {
	return g.position, g.scale, g.rotation
}

func (g *gameObject) Points() [][3]float32 {
	return g.points
}

func (g *gameObject) BoundingRadius() float32 {
	var r float32
	switch g.kind {
	case KindSphere:
		r = g.size[0]
	case KindCone:
		r = float32(math.Hypot(float64(g.size[0]), float64(g.size[1])/2))
	case KindPoints:
		for _, p := range g.points {
			r = max(r, float32(math.Sqrt(float64(p[0]*p[0]+p[1]*p[1]+p[2]*p[2]))))
		}
	case KindMarker:
		r = 0
	default:
		r = float32(math.Sqrt(float64(g.size[0]*g.size[0]+g.size[1]*g.size[1]+g.size[2]*g.size[2]))) / 2
	}
	return r * max(abs32(g.scale[0]), abs32(g.scale[1]), abs32(g.scale[2]))
}

func (g *gameObject) Light() light.Light {
	return g.attachedLight
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetColor(rgb [3]float32) {
	g.color = rgb
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) SetLight(l light.Light) {
	g.attachedLight = l
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clonePoints(pts [][3]float32) [][3]float32 {
	return slices.Clone(pts)
}

package game_object

import (
	"github.com/Carmen-Shannon/haunted-house/engine/light"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the descriptive name of the GameObject.
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithGroup tags the GameObject with a composition group.
func WithGroup(group string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.group = group
	}
}

// WithEnabled sets whether the GameObject is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithGeometry sets the geometry kind and its dimensions.
//
// Parameters:
//   - kind: the geometry kind
//   - size: dimensions interpreted per kind
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the geometry
func WithGeometry(kind Kind, size [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.kind = kind
		obj.size = size
	}
}

// WithPoints makes the GameObject a point cloud with the given local-space points.
// The slice is copied.
func WithPoints(points [][3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.kind = KindPoints
		obj.points = clonePoints(points)
	}
}

// WithColor sets the material base colour.
func WithColor(rgb [3]float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.color = rgb
	}
}

// WithTexture names the texture that tints this object.
func WithTexture(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.texture = name
	}
}

// WithPosition sets the initial world-space position of the GameObject.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithScale sets the initial scale of the GameObject.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithRotation sets the initial Euler rotation of the GameObject in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithLight attaches a light to the GameObject. The scene registers the light
// when the object is added and keeps it at the object's position every frame.
//
// Parameters:
//   - l: the light to attach
//
// Returns:
//   - GameObjectBuilderOption: functional option to attach the light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.attachedLight = l
	}
}

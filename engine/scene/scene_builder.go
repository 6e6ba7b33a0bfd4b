package scene

import (
	"github.com/Carmen-Shannon/haunted-house/engine/game_object"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs. Nil objects are skipped.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			if obj != nil {
				s.addLocked(obj)
			}
		}
	}
}

// WithLights adds free-standing lights to the scene.
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}

// WithFog sets the scene's fog.
//
// Parameters:
//   - f: fog colour and linear range
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFog(f Fog) SceneBuilderOption {
	return func(s *scene) {
		s.fog = f
	}
}

// WithClearColor sets the background colour.
func WithClearColor(c [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = c
	}
}

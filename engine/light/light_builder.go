package light

import "math"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - x: the x position component
//   - y: the y position component
//   - z: the z position component
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing.
//
// Parameters:
//   - x: the x direction component
//   - y: the y direction component
//   - z: the z direction component
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = normalize3(x, y, z)
	}
}

// WithDirectionFrom aims a directional light from a position towards the origin,
// the way a moon placed at (x, y, z) shines on the scene centre.
func WithDirectionFrom(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
		l.direction = normalize3(-x, -y, -z)
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - rgb: the color components in [0, 1]
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(rgb [3]float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = rgb
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the distance at which a point light fades to zero.
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = max(lightRange, 0)
	}
}

// WithDecay sets the falloff exponent of a point light.
func WithDecay(decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.decay = decay
	}
}

// WithEnabled sets the initial enabled state.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows sets the shadow flag.
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// normalize3 returns a unit-length copy of the vector, or zero for a zero vector.
func normalize3(x, y, z float32) [3]float32 {
	length := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	inv := 1.0 / length
	return [3]float32{x * inv, y * inv, z * inv}
}

package light

import "math"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface uniformly regardless of position.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the moon. No distance attenuation.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and fades out
	// towards its range.
	LightTypePoint
)

// String returns a lowercase name for the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     [3]float32
	direction    [3]float32
	color        [3]float32
	intensity    float32
	lightRange   float32
	decay        float32
	enabled      bool
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// Point lights attached to a moving entity are repositioned by the scene every
// frame; the renderer only reads lights.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient and directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction the light travels.
	//
	// Returns:
	//   - [3]float32: direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light in [0, 1].
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// Range returns the distance at which a point light reaches zero.
	// A range of 0 means the light never fades out.
	//
	// Returns:
	//   - float32: the range
	Range() float32

	// Decay returns the exponent applied to the range falloff.
	//
	// Returns:
	//   - float32: the decay exponent
	Decay() float32

	// Enabled returns whether the light contributes to rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// CastsShadows reports the shadow flag carried in scene configuration.
	// The renderers in this engine do not draw shadows.
	//
	// Returns:
	//   - bool: true if flagged as shadow casting
	CastsShadows() bool

	// Illuminate returns the light's RGB contribution at a world-space point.
	//
	// Parameters:
	//   - p: the lit point
	//
	// Returns:
	//   - [3]float32: the contribution, zero when disabled or out of range
	Illuminate(p [3]float32) [3]float32

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType:  lightType,
		direction:  [3]float32{0, -1, 0},
		color:      [3]float32{1, 1, 1},
		intensity:  1.0,
		lightRange: 0,
		decay:      2,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) Illuminate(p [3]float32) [3]float32 {
	if !l.enabled {
		return [3]float32{}
	}

	k := l.intensity
	if l.lightType == LightTypePoint {
		k *= l.falloff(p)
	}
	return [3]float32{l.color[0] * k, l.color[1] * k, l.color[2] * k}
}

// falloff is (1 - d/range)^decay inside the range and 0 outside it.
func (l *lightImpl) falloff(p [3]float32) float32 {
	if l.lightRange <= 0 {
		return 1
	}
	dx, dy, dz := p[0]-l.position[0], p[1]-l.position[1], p[2]-l.position[2]
	d := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if d >= l.lightRange {
		return 0
	}
	return float32(math.Pow(float64(1-d/l.lightRange), float64(l.decay)))
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

package placement

const (
	// DefaultElevation sinks graves slightly into the ground.
	DefaultElevation = 0.3
	// DefaultMaxTilt bounds the random Y and Z rotations, in radians.
	DefaultMaxTilt = 0.2
)

type options struct {
	elevation float64
	maxTilt   float64
}

// Option configures Generate.
type Option func(*options)

// WithElevation sets the fixed Y of every generated transform.
//
// Parameters:
//   - y: the elevation in world units
//
// Returns:
//   - Option: a function that applies the elevation
func WithElevation(y float64) Option {
	return func(o *options) {
		o.elevation = y
	}
}

// WithMaxTilt sets the symmetric range of the random tilts. Negative values are
// treated as their magnitude.
//
// Parameters:
//   - radians: the tilt bound
//
// Returns:
//   - Option: a function that applies the bound
func WithMaxTilt(radians float64) Option {
	return func(o *options) {
		if radians < 0 {
			radians = -radians
		}
		o.maxTilt = radians
	}
}

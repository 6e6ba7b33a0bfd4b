// Package placement generates randomized transforms for static scene elements.
package placement

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrNegativeCount is returned when a negative number of transforms is requested.
	ErrNegativeCount = errors.New("placement count must not be negative")
	// ErrInvalidRadius is returned when a radius or extent is not a positive finite
	// number, or when the outer edge it produces does not fit in a float32.
	ErrInvalidRadius = errors.New("placement radius must be positive and finite")
	// ErrNilSource is returned when no random source is supplied.
	ErrNilSource = errors.New("placement requires a random source")
)

// GraveTransform is the placement of one graveyard entity.
// Only the Y and Z rotation components are populated.
type GraveTransform struct {
	Position [3]float32
	Rotation [3]float32
}

// Generate places count transforms in the annulus
// innerRadius <= sqrt(x²+z²) <= innerRadius+radiusSpread around the origin.
//
// Each transform draws an angle in [0, 2π) and a radius in
// [innerRadius, innerRadius+radiusSpread), sits at a fixed elevation, and is
// tilted about Y and Z by independent draws in [-maxTilt, maxTilt]. Transforms may
// overlap; no minimum spacing is enforced.
//
// Positions are drawn in float64 and stored as float32, so the annulus bounds
// hold to float32 precision: a stored distance may stray from the exact range
// by about one part in 2^23 of the outer radius.
//
// Parameters:
//   - rng: the random source; a fixed seed reproduces the exact output
//   - count: number of transforms, 0 yields an empty slice
//   - innerRadius: inner edge of the annulus (> 0)
//   - radiusSpread: width of the annulus (> 0)
//   - opts: elevation and tilt overrides
//
// Returns:
//   - []GraveTransform: exactly count transforms
//   - error: ErrNilSource, ErrNegativeCount or ErrInvalidRadius for bad input
func Generate(rng *rand.Rand, count int, innerRadius, radiusSpread float64, opts ...Option) ([]GraveTransform, error) {
	if rng == nil {
		return nil, ErrNilSource
	}
	if count < 0 {
		return nil, fmt.Errorf("count %d: %w", count, ErrNegativeCount)
	}
	if !positiveFinite(innerRadius) || !positiveFinite(radiusSpread) || !representable(innerRadius+radiusSpread) {
		return nil, fmt.Errorf("inner %v, spread %v: %w", innerRadius, radiusSpread, ErrInvalidRadius)
	}

	o := options{elevation: DefaultElevation, maxTilt: DefaultMaxTilt}
	for _, opt := range opts {
		opt(&o)
	}

	out := make([]GraveTransform, count)
	for i := range out {
		angle := rng.Float64() * 2 * math.Pi
		radius := innerRadius + rng.Float64()*radiusSpread

		out[i] = GraveTransform{
			Position: [3]float32{
				float32(math.Sin(angle) * radius),
				float32(o.elevation),
				float32(math.Cos(angle) * radius),
			},
			Rotation: [3]float32{
				0,
				float32((rng.Float64()*2 - 1) * o.maxTilt),
				float32((rng.Float64()*2 - 1) * o.maxTilt),
			},
		}
	}
	return out, nil
}

// Scatter places count points uniformly in the cube [-extent/2, extent/2)³.
//
// Parameters:
//   - rng: the random source
//   - count: number of points, 0 yields an empty slice
//   - extent: edge length of the cube (> 0)
//
// Returns:
//   - [][3]float32: the points
//   - error: ErrNilSource, ErrNegativeCount or ErrInvalidRadius for bad input
func Scatter(rng *rand.Rand, count int, extent float64) ([][3]float32, error) {
	if rng == nil {
		return nil, ErrNilSource
	}
	if count < 0 {
		return nil, fmt.Errorf("count %d: %w", count, ErrNegativeCount)
	}
	if !positiveFinite(extent) || !representable(extent/2) {
		return nil, fmt.Errorf("extent %v: %w", extent, ErrInvalidRadius)
	}

	out := make([][3]float32, count)
	for i := range out {
		for axis := range out[i] {
			out[i][axis] = float32((rng.Float64() - 0.5) * extent)
		}
	}
	return out, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// representable reports whether v fits in a float32 without becoming infinite.
func representable(v float64) bool {
	return positiveFinite(v) && v <= math.MaxFloat32
}

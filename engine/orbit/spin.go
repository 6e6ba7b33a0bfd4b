package orbit

import (
	"fmt"
	"math"
)

// Spin rotates a body at a constant rate about each axis, in rad/s.
type Spin struct {
	Rate [3]float64
}

// Rotation returns the Euler rotation of a spinning body at time t.
func Rotation(t float64, s Spin) [3]float64 {
	return [3]float64{s.Rate[0] * t, s.Rate[1] * t, s.Rate[2] * t}
}

// Validate rejects non-finite rates.
func (s Spin) Validate() error {
	for i, r := range s.Rate {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("spin rate[%d] = %v: %w", i, r, ErrNonFinite)
		}
	}
	return nil
}

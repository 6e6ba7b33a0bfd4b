package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor converts "#rrggbb" (or "rrggbb") into [0, 1] RGB components.
//
// Parameters:
//   - s: the hex colour string
//
// Returns:
//   - [3]float32: the red, green and blue components
//   - error: if the string is not six hex digits
func ParseHexColor(s string) ([3]float32, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return [3]float32{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return [3]float32{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return [3]float32{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// ColorToRGB8 clamps a [0, 1] colour and scales it to 8-bit channels.
func ColorToRGB8(c [3]float32) (r, g, b int32) {
	ch := func(v float32) int32 {
		return int32(Clamp(v, 0, 1)*255 + 0.5)
	}
	return ch(c[0]), ch(c[1]), ch(c[2])
}

package renderer

import (
	"cmp"
	"slices"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/game_object"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// Drawable is one lit, fogged, world-space primitive ready for a backend.
type Drawable struct {
	// ID is the source object's scene ID. Particles share their cloud's ID.
	ID uint64
	// Kind is the source object's geometry kind.
	Kind game_object.Kind
	// Position is the world-space centre.
	Position [3]float32
	// HalfExtents is the half width and half height of the billboard, or the
	// half X and Z extents for a ground plane.
	HalfExtents [2]float32
	// Color is the final linear RGB after lighting and fog.
	Color [3]float32
	// Distance is the distance from the camera eye.
	Distance float32
}

// Ground reports whether the drawable is laid flat on the XZ plane rather
// than facing the camera.
func (d Drawable) Ground() bool {
	return d.Kind == game_object.KindPlane
}

// BuildDrawList converts every enabled, visible object in the scene into
// drawables ordered from farthest to nearest.
//
// Lighting is evaluated per drawable centre as the object colour multiplied by
// the sum of every scene light's contribution, clamped to [0, 1]. Fog then
// blends towards the fog colour by the linear fog factor at the eye distance.
// Markers are never drawn. Points objects expand into one drawable per point.
//
// Parameters:
//   - s: the scene to draw
//   - cam: the camera to draw it from
//
// Returns:
//   - []Drawable: the draw list, far to near
func BuildDrawList(s scene.Scene, cam camera.Camera) []Drawable {
	eye := cam.Position()
	frustum := cam.Frustum()
	fog := s.Fog()
	lights := s.Lights()

	shade := func(base, at [3]float32, dist float32) [3]float32 {
		var sum [3]float32
		for _, l := range lights {
			c := l.Illuminate(at)
			sum[0] += c[0]
			sum[1] += c[1]
			sum[2] += c[2]
		}
		lit := [3]float32{
			common.Clamp(base[0]*sum[0], 0, 1),
			common.Clamp(base[1]*sum[1], 0, 1),
			common.Clamp(base[2]*sum[2], 0, 1),
		}
		return common.Lerp3(lit, fog.Color, fog.Factor(dist))
	}

	var out []Drawable
	for _, obj := range s.Objects() {
		if !obj.Enabled() {
			continue
		}

		switch obj.Kind() {
		case game_object.KindMarker:
			continue

		case game_object.KindPoints:
			pos, scale, rot := obj.TransformData()
			var model [16]float32
			common.BuildModelMatrix(model[:], pos[0], pos[1], pos[2], rot[0], rot[1], rot[2], scale[0], scale[1], scale[2])
			half := obj.Size()[0] / 2
			for _, p := range obj.Points() {
				w := common.TransformPoint(model[:], p[0], p[1], p[2])
				at := [3]float32{w[0], w[1], w[2]}
				if !frustum.IntersectsSphere(at, half) {
					continue
				}
				dist := common.Distance3(eye, at)
				out = append(out, Drawable{
					ID:          obj.ID(),
					Kind:        game_object.KindPoints,
					Position:    at,
					HalfExtents: [2]float32{half, half},
					Color:       shade(obj.Color(), at, dist),
					Distance:    dist,
				})
			}

		default:
			pos, _, _ := obj.TransformData()
			if !frustum.IntersectsSphere(pos, obj.BoundingRadius()) {
				continue
			}
			dist := common.Distance3(eye, pos)
			out = append(out, Drawable{
				ID:          obj.ID(),
				Kind:        obj.Kind(),
				Position:    pos,
				HalfExtents: halfExtents(obj),
				Color:       shade(obj.Color(), pos, dist),
				Distance:    dist,
			})
		}
	}

	slices.SortStableFunc(out, func(a, b Drawable) int {
		return cmp.Compare(b.Distance, a.Distance)
	})
	return out
}

// halfExtents projects an object's scaled size onto a billboard.
func halfExtents(obj game_object.GameObject) [2]float32 {
	size := obj.Size()
	sx, sy, sz := obj.Scale()

	switch obj.Kind() {
	case game_object.KindCone:
		return [2]float32{size[0] * max(sx, sz), size[1] * sy / 2}
	case game_object.KindSphere:
		r := size[0] * max(sx, sy, sz)
		return [2]float32{r, r}
	case game_object.KindPlane:
		return [2]float32{size[0] * sx / 2, size[2] * sz / 2}
	default:
		return [2]float32{max(size[0]*sx, size[2]*sz) / 2, size[1] * sy / 2}
	}
}

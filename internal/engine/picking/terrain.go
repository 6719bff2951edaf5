package picking

import (
	"github.com/cicciocappa/worldeditor/internal/engine/heightfield"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Ray-march parameters. Precision near the surface crossing is bounded by the
// step size; the hit is snapped onto the terrain rather than refined further.
const (
	marchStep   = 0.5
	marchMaxDst = 200.0
)

// Picker intersects rays with a height field. Origin is the world position of
// the field's (0, 0) corner; the picker owns the translation between the
// caller's world frame and the field's [0, Size] frame, so callers never
// offset coordinates themselves.
type Picker struct {
	Origin math.Vec3
}

// Pick marches along the ray in fixed steps and returns the first point at or
// below the terrain surface, with the result's height snapped exactly onto
// the surface. If the ray never crosses the terrain inside the field within
// the marching budget, falls back to the ground plane at the field's base
// height; a parallel or backwards ray misses entirely.
func (p Picker) Pick(ray Ray, f *heightfield.Field) (math.Vec3, bool) {
	for t := float32(marchStep); t <= marchMaxDst; t += marchStep {
		point := ray.At(t)

		localX := point.X - p.Origin.X
		localZ := point.Z - p.Origin.Z
		if localX < 0 || localX > f.Size || localZ < 0 || localZ > f.Size {
			continue
		}

		height := f.InterpolatedHeightAt(localX, localZ) + p.Origin.Y
		if point.Y <= height {
			return math.Vec3{X: point.X, Y: height, Z: point.Z}, true
		}
	}

	return ray.IntersectPlaneY(p.Origin.Y)
}

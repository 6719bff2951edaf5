package heightfield

import (
	gomath "math"
)

// ApplyBrush raises (or lowers, if lower is true) the terrain inside a
// circular brush centered at the given world position. Each grid cell within
// the brush radius receives strength scaled by a linear falloff: full at the
// center, zero at the rim. Cells outside the radius are untouched.
//
// All inputs clamp silently; a zero or negative radius visits no cells.
func (f *Field) ApplyBrush(worldX, worldZ, radius, strength float32, lower bool) {
	if radius <= 0 {
		return
	}

	scale := float32(f.Resolution-1) / f.Size
	centerX := worldX * scale
	centerZ := worldZ * scale
	gridRadius := radius * scale

	minX := int(gomath.Floor(float64(centerX - gridRadius)))
	maxX := int(gomath.Ceil(float64(centerX + gridRadius)))
	minZ := int(gomath.Floor(float64(centerZ - gridRadius)))
	maxZ := int(gomath.Ceil(float64(centerZ + gridRadius)))

	if minX < 0 {
		minX = 0
	}
	if minZ < 0 {
		minZ = 0
	}
	if maxX > f.Resolution-1 {
		maxX = f.Resolution - 1
	}
	if maxZ > f.Resolution-1 {
		maxZ = f.Resolution - 1
	}

	sign := float32(1)
	if lower {
		sign = -1
	}

	visited := false
	for gz := minZ; gz <= maxZ; gz++ {
		for gx := minX; gx <= maxX; gx++ {
			dx := float32(gx) - centerX
			dz := float32(gz) - centerZ
			dist := float32(gomath.Sqrt(float64(dx*dx + dz*dz)))
			if dist > gridRadius {
				continue
			}
			falloff := 1 - dist/gridRadius
			f.samples[gz*f.Resolution+gx] += strength * falloff * sign
			visited = true
		}
	}

	if visited {
		f.dirty = true
	}
}

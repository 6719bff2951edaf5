package shadow

import (
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Light-space constants. The chunk is small enough that one fixed ortho box
// with a light placed at a fixed multiple of the chunk size covers it fully.
const (
	lightDistanceFactor = 1.5  // light position = center + dir * size * factor
	orthoHalfFactor     = 0.75 // half extent of the ortho box, in chunk sizes
	lightNear           = 0.1
	lightFarFactor      = 4.0
)

// LightSpaceMatrix computes the view-projection matrix as seen from the
// directional light. lightDir points towards the light; chunkSize is the
// world-space edge length of the chunk, whose corner sits at the origin.
//
// A light pointing straight down degenerates the Y-up look-at basis; the up
// vector switches to Z in that case, so elevation 90 is safe.
func LightSpaceMatrix(lightDir math.Vec3, chunkSize float32) math.Mat4 {
	dir := lightDir.Normalize()
	if dir.IsZero() {
		dir = math.Vec3{Y: 1}
	}

	center := math.Vec3{X: chunkSize / 2, Y: 0, Z: chunkSize / 2}
	lightPos := center.Add(dir.Scale(chunkSize * lightDistanceFactor))

	up := math.Vec3{Y: 1}
	if dir.Y > 0.99 || dir.Y < -0.99 {
		up = math.Vec3{Z: 1}
	}

	view := math.LookAt(lightPos, center, up)

	half := chunkSize * orthoHalfFactor
	proj := math.Ortho(-half, half, -half, half, lightNear, chunkSize*lightFarFactor)

	return proj.Mul(view)
}

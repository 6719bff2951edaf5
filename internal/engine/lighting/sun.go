// Package lighting provides directional light utilities.
package lighting

import (
	gomath "math"

	"github.com/cicciocappa/worldeditor/pkg/math"
)

// SunDirection converts azimuth/elevation angles in degrees to a normalized
// direction vector pointing towards the sun. Azimuth is measured around the
// vertical axis (0-360, 0 along +Z), elevation above the horizon (0-90).
func SunDirection(azimuth, elevation float32) math.Vec3 {
	azRad := float64(azimuth) * gomath.Pi / 180.0
	elRad := float64(elevation) * gomath.Pi / 180.0

	return math.Vec3{
		X: float32(gomath.Cos(elRad) * gomath.Sin(azRad)),
		Y: float32(gomath.Sin(elRad)),
		Z: float32(gomath.Cos(elRad) * gomath.Cos(azRad)),
	}
}

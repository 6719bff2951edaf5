// Package camera provides the editor's orbit camera.
package camera

import (
	gomath "math"

	"github.com/cicciocappa/worldeditor/pkg/math"
)

// OrbitCamera orbits around a center point on the terrain.
type OrbitCamera struct {
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	// Projection
	FovY float32 // radians
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera with editor defaults.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        80.0,
		RotationX:       0.7,
		RotationY:       gomath.Pi / 4,
		MinDistance:     4.0,
		MaxDistance:     400.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FovY:            gomath.Pi / 4,
		Near:            0.1,
		Far:             1000.0,
	}
}

// FitToChunk centers the camera over a square chunk of the given side length
// and backs off far enough to see all of it.
func (c *OrbitCamera) FitToChunk(size float32) {
	c.Center = math.Vec3{X: size / 2, Y: 0, Z: size / 2}
	c.Distance = size * 1.25
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	c.RotationX = 0.7
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{Y: 1}
	return math.LookAt(c.Position(), c.Center, up)
}

// ProjectionMatrix returns the perspective projection for the given aspect ratio.
func (c *OrbitCamera) ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	c.RotationX = math.Clamp(c.RotationX, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = math.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandlePan moves the center point across the ground plane relative to the
// current yaw. Speed scales with distance for consistent feel.
func (c *OrbitCamera) HandlePan(forward, right float32) {
	speed := c.Distance * 0.01

	dirX := float32(gomath.Sin(float64(c.RotationY)))
	dirZ := float32(gomath.Cos(float64(c.RotationY)))

	c.Center.X += (-dirX*forward + dirZ*right) * speed
	c.Center.Z += (-dirZ*forward - dirX*right) * speed
}

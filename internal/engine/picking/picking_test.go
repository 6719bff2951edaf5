package picking

import (
	"testing"

	"github.com/cicciocappa/worldeditor/internal/engine/heightfield"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

func TestPickStraightDownFlatField(t *testing.T) {
	f, _ := heightfield.New(64, 65)

	ray := Ray{
		Origin:    math.Vec3{X: 32, Y: 10, Z: 32},
		Direction: math.Vec3{Y: -1},
	}

	hit, ok := Picker{}.Pick(ray, f)
	if !ok {
		t.Fatal("expected a hit on a flat field")
	}
	want := math.Vec3{X: 32, Y: 0, Z: 32}
	if hit.Distance(want) > 1e-4 {
		t.Errorf("hit = %v, want %v", hit, want)
	}
}

func TestPickHorizontalRayOutsideMisses(t *testing.T) {
	f, _ := heightfield.New(64, 65)

	// Parallel to the ground plane, outside the grid, above the surface.
	ray := Ray{
		Origin:    math.Vec3{X: -50, Y: 5, Z: -50},
		Direction: math.Vec3{X: -1},
	}

	if _, ok := (Picker{}).Pick(ray, f); ok {
		t.Error("expected miss for a horizontal ray outside the grid")
	}
}

func TestPickHitsRaisedTerrain(t *testing.T) {
	f, _ := heightfield.New(64, 65)
	f.ApplyBrush(32, 32, 8, 5, false) // hill of height 5 at the center

	// Shallow ray aimed at the hillside from outside.
	ray := Ray{
		Origin:    math.Vec3{X: 0, Y: 4, Z: 32},
		Direction: math.Vec3{X: 1, Y: -0.02, Z: 0}.Normalize(),
	}

	hit, ok := Picker{}.Pick(ray, f)
	if !ok {
		t.Fatal("expected a hit on the hill")
	}

	// The reported point sits exactly on the surface.
	surface := f.InterpolatedHeightAt(hit.X, hit.Z)
	if absf(hit.Y-surface) > 1e-4 {
		t.Errorf("hit height %v, surface height %v", hit.Y, surface)
	}
	// The hill rises toward the center, so the hit lands before it.
	if hit.X <= 0 || hit.X >= 32 {
		t.Errorf("hit.X = %v, want inside (0, 32)", hit.X)
	}
}

func TestPickFallbackPlane(t *testing.T) {
	f, _ := heightfield.New(64, 65)

	// Pointing down but far outside the grid: the fallback plane catches it.
	ray := Ray{
		Origin:    math.Vec3{X: 300, Y: 10, Z: 300},
		Direction: math.Vec3{Y: -1},
	}

	hit, ok := Picker{}.Pick(ray, f)
	if !ok {
		t.Fatal("expected fallback plane hit")
	}
	if hit.Y != 0 {
		t.Errorf("fallback hit.Y = %v, want 0", hit.Y)
	}
	if hit.X != 300 || hit.Z != 300 {
		t.Errorf("fallback hit = %v, want (300, 0, 300)", hit)
	}
}

func TestPickBehindOriginMisses(t *testing.T) {
	f, _ := heightfield.New(64, 65)

	// Pointing up from above the terrain: plane intersection is behind.
	ray := Ray{
		Origin:    math.Vec3{X: 200, Y: 10, Z: 200},
		Direction: math.Vec3{Y: 1},
	}

	if _, ok := (Picker{}).Pick(ray, f); ok {
		t.Error("expected miss for upward ray above the plane")
	}
}

func TestPickWithOffsetOrigin(t *testing.T) {
	f, _ := heightfield.New(64, 65)
	f.ApplyBrush(32, 32, 8, 5, false)

	// Chunk centered at the world origin: corner at (-32, 0, -32).
	p := Picker{Origin: math.Vec3{X: -32, Z: -32}}

	ray := Ray{
		Origin:    math.Vec3{X: 0, Y: 50, Z: 0},
		Direction: math.Vec3{Y: -1},
	}

	hit, ok := p.Pick(ray, f)
	if !ok {
		t.Fatal("expected hit through the chunk center")
	}

	// World (0,0) maps to field (32,32), the top of the hill. The picker
	// converts the result back to the caller's frame.
	if absf(hit.X) > 1e-4 || absf(hit.Z) > 1e-4 {
		t.Errorf("hit = %v, want X=Z=0 in world frame", hit)
	}
	wantY := f.InterpolatedHeightAt(32, 32)
	if absf(hit.Y-wantY) > 1e-4 {
		t.Errorf("hit.Y = %v, want %v", hit.Y, wantY)
	}
}

func TestScreenToRayCenterLooksForward(t *testing.T) {
	view := math.LookAt(math.Vec3{Y: 10, Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(0.785398, 16.0/9.0, 0.1, 1000)
	inv := proj.Mul(view).Inverse()

	ray := ScreenToRay(640, 360, 1280, 720, inv)

	// The center ray points from the eye toward the look-at target.
	want := math.Vec3{}.Sub(math.Vec3{Y: 10, Z: 10}).Normalize()
	if ray.Direction.Distance(want) > 1e-3 {
		t.Errorf("center ray direction = %v, want %v", ray.Direction, want)
	}
}

func TestIntersectPlaneYParallel(t *testing.T) {
	ray := Ray{Origin: math.Vec3{Y: 5}, Direction: math.Vec3{X: 1}}
	if _, ok := ray.IntersectPlaneY(0); ok {
		t.Error("parallel ray must miss the plane")
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

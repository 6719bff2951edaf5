package math

import (
	gomath "math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	got := x.Cross(y)
	want := Vec3{Z: 1}
	if got != want {
		t.Errorf("Cross() = %v, want %v", got, want)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	n := Vec3{}.Normalize()
	if !n.IsZero() {
		t.Errorf("Normalize of zero vector = %v, want zero", n)
	}
	if gomath.IsNaN(float64(n.X)) {
		t.Error("Normalize of zero vector produced NaN")
	}
}

func TestVec3NormalizeUnitLength(t *testing.T) {
	n := Vec3{X: 3, Y: 4, Z: 12}.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Normalize().Length() = %v, want ~1", l)
	}
}

func TestMat4MulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	got := Identity().Mul(m)
	if got != m {
		t.Errorf("Identity.Mul(m) = %v, want %v", got, m)
	}
}

func TestMat4TranslatePoint(t *testing.T) {
	m := Translate(10, 0, -5)
	p := m.TransformPoint(Vec3{X: 1, Y: 2, Z: 3})
	want := Vec3{X: 11, Y: 2, Z: -2}
	if p != want {
		t.Errorf("TransformPoint = %v, want %v", p, want)
	}
}

func TestMat4RotateY(t *testing.T) {
	m := RotateY(gomath.Pi / 2)
	p := m.TransformPoint(Vec3{X: 1})
	// Rotating +X by 90 degrees around Y lands on -Z.
	if absf(p.X) > 1e-5 || absf(p.Z+1) > 1e-5 {
		t.Errorf("RotateY(pi/2) on +X = %v, want (0,0,-1)", p)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(4, -2, 7).Mul(RotateY(0.3))
	round := m.Mul(m.Inverse())
	id := Identity()
	for i := range round {
		if absf(round[i]-id[i]) > 1e-4 {
			t.Fatalf("m * m^-1 element %d = %v, want %v", i, round[i], id[i])
		}
	}
}

func TestMat4InverseSingular(t *testing.T) {
	var zero Mat4
	if zero.Inverse() != Identity() {
		t.Error("Inverse of singular matrix should be identity")
	}
}

func TestOrthoMapsCorners(t *testing.T) {
	m := Ortho(-10, 10, -10, 10, 0.1, 100)
	p := m.TransformPoint(Vec3{X: 10, Y: 10, Z: -100})
	if absf(p.X-1) > 1e-4 || absf(p.Y-1) > 1e-4 || absf(p.Z-1) > 1e-3 {
		t.Errorf("Ortho corner maps to %v, want (1,1,1)", p)
	}
}

func TestLookAtDegenerate(t *testing.T) {
	// Straight-down view with Y up: forward parallel to up.
	m := LookAt(Vec3{Y: 10}, Vec3{}, Vec3{Y: 1})
	for i, v := range m {
		if gomath.IsNaN(float64(v)) || gomath.IsInf(float64(v), 0) {
			t.Fatalf("LookAt degenerate basis produced non-finite element %d: %v", i, v)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 {
		t.Error("Clamp above hi")
	}
	if Clamp(-5, 0, 1) != 0 {
		t.Error("Clamp below lo")
	}
	if Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp inside range")
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

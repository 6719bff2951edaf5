package heightfield

import (
	gomath "math"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0, 65); err == nil {
		t.Error("expected error for zero size")
	}
	if _, err := New(-10, 65); err == nil {
		t.Error("expected error for negative size")
	}
	if _, err := New(64, 1); err == nil {
		t.Error("expected error for resolution < 2")
	}

	f, err := New(64, 65)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(f.Samples()) != 65*65 {
		t.Errorf("samples length = %d, want %d", len(f.Samples()), 65*65)
	}
	for i, h := range f.Samples() {
		if h != 0 {
			t.Fatalf("sample %d = %v, want 0 (flat start)", i, h)
		}
	}
	if f.Dirty() {
		t.Error("new field should not be dirty")
	}
}

func TestHeightAtOutOfRange(t *testing.T) {
	f, _ := New(64, 65)
	f.ApplyBrush(32, 32, 5, 1, false)

	cases := [][2]int{{-1, 0}, {0, -1}, {65, 0}, {0, 65}, {100, 100}}
	for _, c := range cases {
		if h := f.HeightAt(c[0], c[1]); h != 0 {
			t.Errorf("HeightAt(%d, %d) = %v, want 0", c[0], c[1], h)
		}
	}
}

func TestInterpolatedHeightAtGridPoints(t *testing.T) {
	f, _ := New(64, 65)
	f.GenerateNoise(DefaultNoiseOptions())

	// At exact grid points interpolation must reduce to a lookup.
	spacing := f.Size / float32(f.Resolution-1)
	for _, g := range [][2]int{{0, 0}, {10, 20}, {32, 32}, {64, 64}, {5, 63}} {
		want := f.HeightAt(g[0], g[1])
		got := f.InterpolatedHeightAt(float32(g[0])*spacing, float32(g[1])*spacing)
		if absf(got-want) > 1e-4 {
			t.Errorf("InterpolatedHeightAt grid point %v = %v, want %v", g, got, want)
		}
	}
}

func TestInterpolatedHeightAtMidCell(t *testing.T) {
	f, _ := New(2, 3) // spacing 1
	samples := []float32{
		0, 4, 0,
		2, 6, 0,
		0, 0, 0,
	}
	if err := f.SetSamples(samples); err != nil {
		t.Fatalf("SetSamples failed: %v", err)
	}

	// Center of the first cell: average of its four corners.
	got := f.InterpolatedHeightAt(0.5, 0.5)
	want := float32(0+4+2+6) / 4
	if absf(got-want) > 1e-5 {
		t.Errorf("mid-cell interpolation = %v, want %v", got, want)
	}
}

func TestInterpolatedHeightAtClampsOutside(t *testing.T) {
	f, _ := New(64, 65)
	f.ApplyBrush(32, 32, 10, 2, false)

	// Way outside positions clamp to the border cells and stay finite.
	for _, p := range [][2]float32{{-100, 32}, {200, 32}, {32, -50}, {32, 500}} {
		h := f.InterpolatedHeightAt(p[0], p[1])
		if gomath.IsNaN(float64(h)) || gomath.IsInf(float64(h), 0) {
			t.Errorf("InterpolatedHeightAt(%v) not finite: %v", p, h)
		}
	}
}

func TestApplyBrushRaise(t *testing.T) {
	f, _ := New(64, 65) // spacing 1: world coords == grid coords
	f.ApplyBrush(32, 32, 5, 1, false)

	if !f.Dirty() {
		t.Error("brush must set dirty flag")
	}

	// Center cell gains exactly strength * 1.0.
	if h := f.HeightAt(32, 32); absf(h-1) > 1e-5 {
		t.Errorf("center height = %v, want 1", h)
	}

	// A cell at exactly grid distance 5 gains ~0 (falloff 0 at the rim).
	if h := f.HeightAt(37, 32); absf(h) > 1e-5 {
		t.Errorf("rim height = %v, want ~0", h)
	}

	// A cell at grid distance 10 is untouched.
	if h := f.HeightAt(42, 32); h != 0 {
		t.Errorf("far cell height = %v, want 0", h)
	}
}

func TestApplyBrushAffectsOnlyRadius(t *testing.T) {
	f, _ := New(64, 65)
	f.ApplyBrush(32, 32, 5, 1, false)

	for gz := 0; gz < 65; gz++ {
		for gx := 0; gx < 65; gx++ {
			dx := float32(gx) - 32
			dz := float32(gz) - 32
			dist := float32(gomath.Sqrt(float64(dx*dx + dz*dz)))
			h := f.HeightAt(gx, gz)
			if dist > 5 && h != 0 {
				t.Fatalf("cell (%d,%d) at distance %v changed to %v", gx, gz, dist, h)
			}
			if dist <= 5 && h < 0 {
				t.Fatalf("raise brush lowered cell (%d,%d) to %v", gx, gz, h)
			}
		}
	}
}

func TestApplyBrushLower(t *testing.T) {
	f, _ := New(64, 65)
	f.ApplyBrush(32, 32, 5, 1, true)

	for gz := 27; gz <= 37; gz++ {
		for gx := 27; gx <= 37; gx++ {
			if h := f.HeightAt(gx, gz); h > 0 {
				t.Fatalf("lower brush raised cell (%d,%d) to %v", gx, gz, h)
			}
		}
	}
	if h := f.HeightAt(32, 32); absf(h+1) > 1e-5 {
		t.Errorf("center height = %v, want -1", h)
	}
}

func TestApplyBrushZeroRadius(t *testing.T) {
	f, _ := New(64, 65)
	f.ApplyBrush(32, 32, 0, 1, false)
	f.ApplyBrush(32, 32, -3, 1, false)

	if f.Dirty() {
		t.Error("zero/negative radius must not set dirty")
	}
	for i, h := range f.Samples() {
		if h != 0 {
			t.Fatalf("sample %d changed with zero radius brush: %v", i, h)
		}
	}
}

func TestApplyBrushOffGridClamps(t *testing.T) {
	f, _ := New(64, 65)
	// Brush center outside the chunk: only the overlapping corner changes.
	f.ApplyBrush(-2, -2, 5, 1, false)

	if !f.Dirty() {
		t.Error("overlapping brush should set dirty")
	}
	if h := f.HeightAt(0, 0); h <= 0 {
		t.Errorf("corner height = %v, want > 0", h)
	}
	if h := f.HeightAt(10, 10); h != 0 {
		t.Errorf("distant cell = %v, want 0", h)
	}
}

func TestDirtyLifecycle(t *testing.T) {
	f, _ := New(64, 65)
	f.ApplyBrush(32, 32, 5, 1, false)
	if !f.Dirty() {
		t.Fatal("expected dirty after brush")
	}
	f.ClearDirty()
	if f.Dirty() {
		t.Fatal("expected clean after ClearDirty")
	}
	f.ApplyBrush(10, 10, 3, 0.5, true)
	if !f.Dirty() {
		t.Fatal("expected dirty after second brush")
	}
}

func TestSetSamplesValidation(t *testing.T) {
	f, _ := New(64, 65)
	if err := f.SetSamples(make([]float32, 10)); err == nil {
		t.Error("expected error for wrong sample count")
	}

	bad := make([]float32, 65*65)
	bad[42] = float32(gomath.NaN())
	if err := f.SetSamples(bad); err == nil {
		t.Error("expected error for NaN sample")
	}

	good := make([]float32, 65*65)
	good[0] = 3
	if err := f.SetSamples(good); err != nil {
		t.Errorf("SetSamples failed: %v", err)
	}
	if f.HeightAt(0, 0) != 3 {
		t.Error("SetSamples did not copy values")
	}
	if !f.Dirty() {
		t.Error("SetSamples must mark the field dirty")
	}
}

func TestGenerateNoiseDeterministic(t *testing.T) {
	opts := DefaultNoiseOptions()
	opts.Seed = 1234

	a, _ := New(64, 33)
	b, _ := New(64, 33)
	a.GenerateNoise(opts)
	b.GenerateNoise(opts)

	for i := range a.Samples() {
		if a.Samples()[i] != b.Samples()[i] {
			t.Fatalf("sample %d differs between identical seeds", i)
		}
	}
	if !a.Dirty() {
		t.Error("GenerateNoise must mark the field dirty")
	}

	var nonZero bool
	for _, h := range a.Samples() {
		if gomath.IsNaN(float64(h)) || gomath.IsInf(float64(h), 0) {
			t.Fatal("noise produced non-finite sample")
		}
		if absf(h) > absf(opts.Amplitude)+1e-3 {
			t.Fatalf("noise sample %v exceeds amplitude %v", h, opts.Amplitude)
		}
		if h != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("noise generated an all-zero field")
	}
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

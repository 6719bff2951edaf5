// Package heightfield owns the terrain height samples and the brush
// mutation algorithm for a single square chunk.
package heightfield

import (
	"fmt"
	gomath "math"

	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Field is a square grid of height samples covering a chunk of edge length
// Size in world units. Samples are stored row-major: samples[row*Resolution+col]
// is the height at grid cell (col, row). The field starts flat at height 0.
type Field struct {
	Size       float32 // world-space edge length, > 0
	Resolution int     // samples per edge, >= 2

	samples []float32
	dirty   bool
}

// New creates a flat field at height zero.
func New(size float32, resolution int) (*Field, error) {
	if size <= 0 {
		return nil, fmt.Errorf("heightfield: size must be positive, got %v", size)
	}
	if resolution < 2 {
		return nil, fmt.Errorf("heightfield: resolution must be >= 2, got %d", resolution)
	}
	return &Field{
		Size:       size,
		Resolution: resolution,
		samples:    make([]float32, resolution*resolution),
	}, nil
}

// FromSamples creates a field from an existing row-major sample slice,
// e.g. loaded from a world file. The slice is copied.
func FromSamples(size float32, resolution int, samples []float32) (*Field, error) {
	f, err := New(size, resolution)
	if err != nil {
		return nil, err
	}
	if err := f.SetSamples(samples); err != nil {
		return nil, err
	}
	return f, nil
}

// SetSamples replaces all height samples and marks the field dirty.
func (f *Field) SetSamples(samples []float32) error {
	if len(samples) != f.Resolution*f.Resolution {
		return fmt.Errorf("heightfield: expected %d samples, got %d",
			f.Resolution*f.Resolution, len(samples))
	}
	for i, h := range samples {
		if gomath.IsNaN(float64(h)) || gomath.IsInf(float64(h), 0) {
			return fmt.Errorf("heightfield: sample %d is not finite", i)
		}
	}
	copy(f.samples, samples)
	f.dirty = true
	return nil
}

// Samples returns the underlying row-major sample slice. Callers must treat
// it as read-only; mutations go through ApplyBrush or SetSamples.
func (f *Field) Samples() []float32 {
	return f.samples
}

// Dirty reports whether samples changed since the last ClearDirty.
func (f *Field) Dirty() bool {
	return f.dirty
}

// ClearDirty resets the dirty flag. Called by the frame orchestrator after
// the mesh has been rebuilt; nothing else clears it.
func (f *Field) ClearDirty() {
	f.dirty = false
}

// HeightAt returns the height at integer grid coordinates, or 0 outside the
// grid. The terrain is flat beyond its bounds; out-of-range lookups are
// expected, not errors.
func (f *Field) HeightAt(gx, gz int) float32 {
	if gx < 0 || gz < 0 || gx >= f.Resolution || gz >= f.Resolution {
		return 0
	}
	return f.samples[gz*f.Resolution+gx]
}

// InterpolatedHeightAt returns the bilinearly interpolated height at an
// arbitrary world position in the field's own [0, Size] frame. Positions
// outside the field clamp to the border cells.
func (f *Field) InterpolatedHeightAt(worldX, worldZ float32) float32 {
	scale := float32(f.Resolution-1) / f.Size
	fx := worldX * scale
	fz := worldZ * scale

	cellX := int(gomath.Floor(float64(fx)))
	cellZ := int(gomath.Floor(float64(fz)))
	if cellX < 0 {
		cellX = 0
	}
	if cellZ < 0 {
		cellZ = 0
	}
	if cellX > f.Resolution-2 {
		cellX = f.Resolution - 2
	}
	if cellZ > f.Resolution-2 {
		cellZ = f.Resolution - 2
	}

	tx := math.Clamp(fx-float32(cellX), 0, 1)
	tz := math.Clamp(fz-float32(cellZ), 0, 1)

	h00 := f.HeightAt(cellX, cellZ)
	h10 := f.HeightAt(cellX+1, cellZ)
	h01 := f.HeightAt(cellX, cellZ+1)
	h11 := f.HeightAt(cellX+1, cellZ+1)

	south := math.Lerp(h00, h10, tx)
	north := math.Lerp(h01, h11, tx)
	return math.Lerp(south, north, tz)
}

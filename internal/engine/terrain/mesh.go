// Package terrain builds a flat-shaded triangle mesh from a height field.
package terrain

import (
	gomath "math"

	"github.com/cicciocappa/worldeditor/internal/engine/heightfield"
)

// Vertex is one mesh vertex. Field order matches the GPU attribute layout.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Mesh is the triangulated terrain surface. It is replaced wholesale on every
// rebuild, never patched in place.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Rebuild generates the full terrain mesh from the field: one vertex per
// height sample and two triangles per grid quad.
//
// Normals are per-face: each triangle computes its face normal and writes it
// into all three of its vertex slots, so a vertex shared by several triangles
// keeps whichever face normal was written last. That overwrite is what gives
// the faceted look; do not replace it with averaging.
func Rebuild(f *heightfield.Field) *Mesh {
	res := f.Resolution
	spacing := f.Size / float32(res-1)

	mesh := &Mesh{
		Vertices: make([]Vertex, res*res),
		Indices:  make([]uint32, 0, (res-1)*(res-1)*6),
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}

	for gz := 0; gz < res; gz++ {
		for gx := 0; gx < res; gx++ {
			p := [3]float32{
				float32(gx) * spacing,
				f.HeightAt(gx, gz),
				float32(gz) * spacing,
			}
			mesh.Vertices[gz*res+gx].Position = p
			growBounds(&mesh.Bounds, p)
		}
	}

	for gz := 0; gz < res-1; gz++ {
		for gx := 0; gx < res-1; gx++ {
			i0 := uint32(gz*res + gx)
			i1 := i0 + 1
			i2 := i0 + uint32(res)
			i3 := i2 + 1

			// CCW winding viewed from above.
			mesh.addTriangle(i0, i2, i1)
			mesh.addTriangle(i1, i2, i3)
		}
	}

	return mesh
}

// addTriangle appends the triangle and stamps its face normal onto all three
// vertices, overwriting any normal an earlier triangle stored there.
func (m *Mesh) addTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)

	pa := m.Vertices[a].Position
	pb := m.Vertices[b].Position
	pc := m.Vertices[c].Position

	e1 := [3]float32{pb[0] - pa[0], pb[1] - pa[1], pb[2] - pa[2]}
	e2 := [3]float32{pc[0] - pa[0], pc[1] - pa[1], pc[2] - pa[2]}
	n := normalize(cross(e1, e2))

	m.Vertices[a].Normal = n
	m.Vertices[b].Normal = n
	m.Vertices[c].Normal = n
}

func growBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// normalize returns a unit vector, or the zero vector for degenerate input.
// A collapsed triangle must not leak NaN into the lighting.
func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-6 {
		return [3]float32{}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

package props

import (
	gomath "math"
)

// Vertex is one prop mesh vertex. Field order matches the GPU layout.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [3]float32
}

// Mesh is a non-indexed triangle list. Prop meshes are tiny; they are built
// once at startup and drawn with DrawArrays.
type Mesh struct {
	Vertices []Vertex
}

// BuildMesh returns the low-poly mesh for a kind, modeled in a unit-ish local
// frame with the base at y=0. Unknown kinds get the block mesh.
func BuildMesh(kind Kind) *Mesh {
	switch kind {
	case KindTree:
		return buildTree()
	case KindRock:
		return buildRock()
	default:
		return buildBlock()
	}
}

func buildTree() *Mesh {
	m := &Mesh{}

	// Trunk: thin box from y=0 to y=1.
	trunk := [3]float32{0.45, 0.3, 0.15}
	m.addBox(-0.12, 0, -0.12, 0.12, 1.0, 0.12, trunk)

	// Canopy: square pyramid from y=1 to y=2.4.
	leaf := [3]float32{0.2, 0.55, 0.25}
	base := [4][3]float32{
		{-0.6, 1.0, -0.6},
		{0.6, 1.0, -0.6},
		{0.6, 1.0, 0.6},
		{-0.6, 1.0, 0.6},
	}
	apex := [3]float32{0, 2.4, 0}
	for i := 0; i < 4; i++ {
		m.addTriangle(base[i], apex, base[(i+1)%4], leaf)
	}
	// Underside of the canopy.
	m.addTriangle(base[0], base[1], base[2], leaf)
	m.addTriangle(base[0], base[2], base[3], leaf)

	return m
}

func buildRock() *Mesh {
	m := &Mesh{}

	// A squashed box with nudged corners reads as a boulder under flat shading.
	gray := [3]float32{0.5, 0.5, 0.52}
	corners := [8][3]float32{
		{-0.6, 0, -0.5},
		{0.5, 0, -0.6},
		{0.6, 0, 0.45},
		{-0.5, 0, 0.55},
		{-0.4, 0.55, -0.3},
		{0.35, 0.5, -0.4},
		{0.4, 0.6, 0.3},
		{-0.35, 0.45, 0.35},
	}
	m.addHull(corners, gray)

	return m
}

func buildBlock() *Mesh {
	m := &Mesh{}
	tan := [3]float32{0.72, 0.6, 0.45}
	m.addBox(-0.5, 0, -0.5, 0.5, 1.0, 0.5, tan)
	return m
}

// addTriangle appends one triangle with its face normal.
func (m *Mesh) addTriangle(a, b, c, color [3]float32) {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	l := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if l > 1e-6 {
		n[0] /= l
		n[1] /= l
		n[2] /= l
	}

	m.Vertices = append(m.Vertices,
		Vertex{Position: a, Normal: n, Color: color},
		Vertex{Position: b, Normal: n, Color: color},
		Vertex{Position: c, Normal: n, Color: color},
	)
}

func (m *Mesh) addQuad(a, b, c, d, color [3]float32) {
	m.addTriangle(a, b, c, color)
	m.addTriangle(a, c, d, color)
}

// addBox appends an axis-aligned box with outward faces.
func (m *Mesh) addBox(minX, minY, minZ, maxX, maxY, maxZ float32, color [3]float32) {
	// Corner layout: bottom 0-3 CCW from above, top 4-7.
	p := [8][3]float32{
		{minX, minY, minZ},
		{maxX, minY, minZ},
		{maxX, minY, maxZ},
		{minX, minY, maxZ},
		{minX, maxY, minZ},
		{maxX, maxY, minZ},
		{maxX, maxY, maxZ},
		{minX, maxY, maxZ},
	}

	m.addHull(p, color)
}

// addHull appends a box-topology hull over 8 arbitrary corners, same corner
// layout as addBox, with outward-facing winding.
func (m *Mesh) addHull(p [8][3]float32, color [3]float32) {
	m.addQuad(p[4], p[7], p[6], p[5], color) // top
	m.addQuad(p[0], p[1], p[2], p[3], color) // bottom
	m.addQuad(p[1], p[0], p[4], p[5], color) // -Z
	m.addQuad(p[3], p[2], p[6], p[7], color) // +Z
	m.addQuad(p[2], p[1], p[5], p[6], color) // +X
	m.addQuad(p[0], p[3], p[7], p[4], color) // -X
}

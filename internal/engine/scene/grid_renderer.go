package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cicciocappa/worldeditor/internal/engine/heightfield"
	"github.com/cicciocappa/worldeditor/internal/engine/scene/shaders"
	"github.com/cicciocappa/worldeditor/internal/engine/shader"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// gridLift keeps the overlay from z-fighting with the terrain.
const gridLift = 0.04

// GridRenderer draws cell boundary lines draped over the terrain.
type GridRenderer struct {
	program     uint32
	locViewProj int32
	locColor    int32

	vao         uint32
	vbo         uint32
	vertexCount int32

	Color [4]float32
}

// NewGridRenderer compiles the grid shader.
func NewGridRenderer() (*GridRenderer, error) {
	gr := &GridRenderer{
		Color: [4]float32{0, 0, 0, 0.25},
	}

	program, err := shader.CompileProgram(shaders.GridVertexShader, shaders.GridFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("grid shader: %w", err)
	}
	gr.program = program
	gr.locViewProj = shader.GetUniform(program, "uViewProj")
	gr.locColor = shader.GetUniform(program, "uColor")

	return gr, nil
}

// Upload rebuilds the line segments from the current heights so the grid
// follows terrain edits.
func (gr *GridRenderer) Upload(f *heightfield.Field) {
	res := f.Resolution
	spacing := f.Size / float32(res-1)

	at := func(gx, gz int) [3]float32 {
		return [3]float32{
			float32(gx) * spacing,
			f.HeightAt(gx, gz) + gridLift,
			float32(gz) * spacing,
		}
	}

	// One segment per cell edge, along both axes.
	verts := make([][3]float32, 0, 4*res*(res-1))
	for gz := 0; gz < res; gz++ {
		for gx := 0; gx < res-1; gx++ {
			verts = append(verts, at(gx, gz), at(gx+1, gz))
		}
	}
	for gx := 0; gx < res; gx++ {
		for gz := 0; gz < res-1; gz++ {
			verts = append(verts, at(gx, gz), at(gx, gz+1))
		}
	}
	gr.vertexCount = int32(len(verts))

	if gr.vao == 0 {
		gl.GenVertexArrays(1, &gr.vao)
		gl.BindVertexArray(gr.vao)

		gl.GenBuffers(1, &gr.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, gr.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*3*4, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)

		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)

		gl.BindVertexArray(0)
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, gr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*3*4, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
}

// Render draws the grid overlay.
func (gr *GridRenderer) Render(viewProj math.Mat4) {
	if gr.vao == 0 {
		return
	}

	gl.UseProgram(gr.program)
	gl.UniformMatrix4fv(gr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform4f(gr.locColor, gr.Color[0], gr.Color[1], gr.Color[2], gr.Color[3])

	gl.BindVertexArray(gr.vao)
	gl.DrawArrays(gl.LINES, 0, gr.vertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (gr *GridRenderer) Destroy() {
	if gr.vao != 0 {
		gl.DeleteVertexArrays(1, &gr.vao)
		gr.vao = 0
	}
	if gr.vbo != 0 {
		gl.DeleteBuffers(1, &gr.vbo)
		gr.vbo = 0
	}
	if gr.program != 0 {
		gl.DeleteProgram(gr.program)
		gr.program = 0
	}
}

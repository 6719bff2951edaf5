// Package scene renders the editable chunk: terrain, placed objects, grid
// overlay, and the two-pass shadow pipeline.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cicciocappa/worldeditor/internal/engine/scene/shaders"
	"github.com/cicciocappa/worldeditor/internal/engine/shader"
	"github.com/cicciocappa/worldeditor/internal/engine/shadow"
	"github.com/cicciocappa/worldeditor/internal/engine/terrain"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Cursor is the brush highlight drawn on the terrain under the mouse.
type Cursor struct {
	Enabled bool
	Pos     math.Vec3
	Radius  float32
}

// TerrainRenderer draws the chunk height-field mesh.
type TerrainRenderer struct {
	program uint32

	locViewProj       int32
	locLightViewProj  int32
	locLightDir       int32
	locAmbient        int32
	locDiffuse        int32
	locBaseColor      int32
	locShadowsEnabled int32
	locShadowMap      int32
	locShadowTexel    int32
	locCursorEnabled  int32
	locCursorPos      int32
	locCursorRadius   int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	// Bounds of the last uploaded mesh, for camera fitting.
	Bounds terrain.Bounds
}

// NewTerrainRenderer compiles the terrain shader and resolves its uniforms.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	tr := &TerrainRenderer{}

	program, err := shader.CompileProgram(shaders.TerrainVertexShader, shaders.TerrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = shader.GetUniform(program, "uViewProj")
	tr.locLightViewProj = shader.GetUniform(program, "uLightViewProj")
	tr.locLightDir = shader.GetUniform(program, "uLightDir")
	tr.locAmbient = shader.GetUniform(program, "uAmbient")
	tr.locDiffuse = shader.GetUniform(program, "uDiffuse")
	tr.locBaseColor = shader.GetUniform(program, "uBaseColor")
	tr.locShadowsEnabled = shader.GetUniform(program, "uShadowsEnabled")
	tr.locShadowMap = shader.GetUniform(program, "uShadowMap")
	tr.locShadowTexel = shader.GetUniform(program, "uShadowTexel")
	tr.locCursorEnabled = shader.GetUniform(program, "uCursorEnabled")
	tr.locCursorPos = shader.GetUniform(program, "uCursorPos")
	tr.locCursorRadius = shader.GetUniform(program, "uCursorRadius")

	return tr, nil
}

// Upload pushes a rebuilt mesh to the GPU. The topology is fixed per
// resolution, so edits re-upload vertices and reuse the index buffer.
func (tr *TerrainRenderer) Upload(mesh *terrain.Mesh) {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return
	}
	tr.Bounds = mesh.Bounds

	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))

	if tr.vao == 0 {
		gl.GenVertexArrays(1, &tr.vao)
		gl.BindVertexArray(tr.vao)

		gl.GenBuffers(1, &tr.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.DYNAMIC_DRAW)

		// Position (location 0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
		gl.EnableVertexAttribArray(0)

		// Normal (location 1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
		gl.EnableVertexAttribArray(1)

		gl.GenBuffers(1, &tr.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

		gl.BindVertexArray(0)
		tr.indexCount = int32(len(mesh.Indices))
		return
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.DYNAMIC_DRAW)
	tr.indexCount = int32(len(mesh.Indices))
}

// Render draws the terrain in the main pass.
func (tr *TerrainRenderer) Render(viewProj math.Mat4, light Lighting,
	shadowsEnabled bool, lightViewProj math.Mat4, shadowMap *shadow.Map, cursor Cursor) {

	if tr.vao == 0 {
		return
	}

	gl.UseProgram(tr.program)

	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(tr.locLightDir, light.Dir.X, light.Dir.Y, light.Dir.Z)
	gl.Uniform3f(tr.locAmbient, light.Ambient[0], light.Ambient[1], light.Ambient[2])
	gl.Uniform3f(tr.locDiffuse, light.Diffuse[0], light.Diffuse[1], light.Diffuse[2])
	gl.Uniform3f(tr.locBaseColor, light.TerrainColor[0], light.TerrainColor[1], light.TerrainColor[2])

	if shadowsEnabled && shadowMap != nil {
		gl.Uniform1i(tr.locShadowsEnabled, 1)
		gl.UniformMatrix4fv(tr.locLightViewProj, 1, false, &lightViewProj[0])
		gl.Uniform1f(tr.locShadowTexel, 1.0/float32(shadowMap.Resolution))
		shadowMap.BindTexture(2)
		gl.Uniform1i(tr.locShadowMap, 2)
	} else {
		gl.Uniform1i(tr.locShadowsEnabled, 0)
	}

	if cursor.Enabled {
		gl.Uniform1i(tr.locCursorEnabled, 1)
		gl.Uniform3f(tr.locCursorPos, cursor.Pos.X, cursor.Pos.Y, cursor.Pos.Z)
		gl.Uniform1f(tr.locCursorRadius, cursor.Radius)
	} else {
		gl.Uniform1i(tr.locCursorEnabled, 0)
	}

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// RenderShadow draws the terrain into the depth map. The caller has already
// bound the depth program and set its uniforms.
func (tr *TerrainRenderer) RenderShadow() {
	if tr.vao == 0 {
		return
	}
	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (tr *TerrainRenderer) Destroy() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	if tr.program != 0 {
		gl.DeleteProgram(tr.program)
		tr.program = 0
	}
}

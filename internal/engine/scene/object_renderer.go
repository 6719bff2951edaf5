package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cicciocappa/worldeditor/internal/engine/props"
	"github.com/cicciocappa/worldeditor/internal/engine/scene/shaders"
	"github.com/cicciocappa/worldeditor/internal/engine/shader"
	"github.com/cicciocappa/worldeditor/internal/engine/shadow"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// objectMesh is one prop kind uploaded to the GPU.
type objectMesh struct {
	vao         uint32
	vbo         uint32
	vertexCount int32
}

// ObjectRenderer draws placed objects and the placement preview.
type ObjectRenderer struct {
	program uint32

	locViewProj       int32
	locModel          int32
	locLightViewProj  int32
	locLightDir       int32
	locAmbient        int32
	locDiffuse        int32
	locShadowsEnabled int32
	locShadowMap      int32
	locShadowTexel    int32
	locTint           int32

	meshes map[props.Kind]objectMesh
}

// NewObjectRenderer compiles the object shader and uploads the prop catalog.
func NewObjectRenderer() (*ObjectRenderer, error) {
	or := &ObjectRenderer{
		meshes: make(map[props.Kind]objectMesh),
	}

	program, err := shader.CompileProgram(shaders.ObjectVertexShader, shaders.ObjectFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("object shader: %w", err)
	}
	or.program = program

	or.locViewProj = shader.GetUniform(program, "uViewProj")
	or.locModel = shader.GetUniform(program, "uModel")
	or.locLightViewProj = shader.GetUniform(program, "uLightViewProj")
	or.locLightDir = shader.GetUniform(program, "uLightDir")
	or.locAmbient = shader.GetUniform(program, "uAmbient")
	or.locDiffuse = shader.GetUniform(program, "uDiffuse")
	or.locShadowsEnabled = shader.GetUniform(program, "uShadowsEnabled")
	or.locShadowMap = shader.GetUniform(program, "uShadowMap")
	or.locShadowTexel = shader.GetUniform(program, "uShadowTexel")
	or.locTint = shader.GetUniform(program, "uTint")

	for _, kind := range props.Kinds {
		or.meshes[kind] = uploadObjectMesh(props.BuildMesh(kind))
	}

	return or, nil
}

func uploadObjectMesh(mesh *props.Mesh) objectMesh {
	var om objectMesh
	om.vertexCount = int32(len(mesh.Vertices))

	gl.GenVertexArrays(1, &om.vao)
	gl.BindVertexArray(om.vao)

	gl.GenBuffers(1, &om.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, om.vbo)
	vertexSize := int(unsafe.Sizeof(props.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*vertexSize, unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	// Color (location 2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return om
}

// Render draws all placed objects, then the preview ghost if present.
func (or *ObjectRenderer) Render(viewProj math.Mat4, light Lighting,
	shadowsEnabled bool, lightViewProj math.Mat4, shadowMap *shadow.Map,
	objects []props.PlacedObject, preview *props.PlacedObject) {

	if len(objects) == 0 && preview == nil {
		return
	}

	gl.UseProgram(or.program)

	gl.UniformMatrix4fv(or.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(or.locLightDir, light.Dir.X, light.Dir.Y, light.Dir.Z)
	gl.Uniform3f(or.locAmbient, light.Ambient[0], light.Ambient[1], light.Ambient[2])
	gl.Uniform3f(or.locDiffuse, light.Diffuse[0], light.Diffuse[1], light.Diffuse[2])

	if shadowsEnabled && shadowMap != nil {
		gl.Uniform1i(or.locShadowsEnabled, 1)
		gl.UniformMatrix4fv(or.locLightViewProj, 1, false, &lightViewProj[0])
		gl.Uniform1f(or.locShadowTexel, 1.0/float32(shadowMap.Resolution))
		shadowMap.BindTexture(2)
		gl.Uniform1i(or.locShadowMap, 2)
	} else {
		gl.Uniform1i(or.locShadowsEnabled, 0)
	}

	gl.Uniform4f(or.locTint, 0, 0, 0, 1)
	for i := range objects {
		or.drawObject(&objects[i])
	}

	if preview != nil {
		// Ghost: translucent, tinted toward white so it reads as unplaced.
		gl.Uniform4f(or.locTint, 1, 1, 1, 0.45)
		gl.DepthMask(false)
		or.drawObject(preview)
		gl.DepthMask(true)
	}

	gl.BindVertexArray(0)
}

func (or *ObjectRenderer) drawObject(o *props.PlacedObject) {
	om, ok := or.meshes[o.Kind]
	if !ok {
		return
	}
	model := o.ModelMatrix()
	gl.UniformMatrix4fv(or.locModel, 1, false, &model[0])
	gl.BindVertexArray(om.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, om.vertexCount)
}

// RenderShadow draws placed objects into the depth map using the caller's
// depth program. The preview casts no shadow.
func (or *ObjectRenderer) RenderShadow(locModel int32, objects []props.PlacedObject) {
	for i := range objects {
		om, ok := or.meshes[objects[i].Kind]
		if !ok {
			continue
		}
		model := objects[i].ModelMatrix()
		gl.UniformMatrix4fv(locModel, 1, false, &model[0])
		gl.BindVertexArray(om.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, om.vertexCount)
	}
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (or *ObjectRenderer) Destroy() {
	for kind, om := range or.meshes {
		if om.vao != 0 {
			gl.DeleteVertexArrays(1, &om.vao)
		}
		if om.vbo != 0 {
			gl.DeleteBuffers(1, &om.vbo)
		}
		delete(or.meshes, kind)
	}
	if or.program != 0 {
		gl.DeleteProgram(or.program)
		or.program = 0
	}
}

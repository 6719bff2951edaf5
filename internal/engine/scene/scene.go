package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/cicciocappa/worldeditor/internal/engine/camera"
	"github.com/cicciocappa/worldeditor/internal/engine/heightfield"
	"github.com/cicciocappa/worldeditor/internal/engine/props"
	"github.com/cicciocappa/worldeditor/internal/engine/scene/shaders"
	"github.com/cicciocappa/worldeditor/internal/engine/shader"
	"github.com/cicciocappa/worldeditor/internal/engine/shadow"
	"github.com/cicciocappa/worldeditor/internal/engine/terrain"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Lighting bundles the directional-light parameters shared by all renderers.
type Lighting struct {
	Dir          math.Vec3 // towards the light, unit length
	Ambient      [3]float32
	Diffuse      [3]float32
	TerrainColor [3]float32
}

// Config contains scene configuration options.
type Config struct {
	Width            int32
	Height           int32
	ShadowResolution int32
	ShadowsEnabled   bool
	ShowGrid         bool
}

// Scene owns the renderers and the two render passes. Each frame it polls
// the height field's dirty flag and re-uploads the mesh before drawing.
type Scene struct {
	config Config

	terrainRenderer *TerrainRenderer
	objectRenderer  *ObjectRenderer
	gridRenderer    *GridRenderer

	shadowMap             *shadow.Map
	depthProgram          uint32
	locDepthLightViewProj int32
	locDepthModel         int32

	Light          Lighting
	ShadowsEnabled bool
	ShowGrid       bool
	Cursor         Cursor

	lightViewProj math.Mat4
	chunkSize     float32
}

// New creates the scene. A shadow map that fails to allocate is a fatal
// setup error, not a degraded mode.
func New(cfg Config, chunkSize float32) (*Scene, error) {
	s := &Scene{
		config: cfg,
		Light: Lighting{
			Dir:          math.Vec3{X: 0.5, Y: 0.8, Z: 0.3}.Normalize(),
			Ambient:      [3]float32{0.35, 0.35, 0.38},
			Diffuse:      [3]float32{0.9, 0.87, 0.8},
			TerrainColor: [3]float32{0.42, 0.55, 0.32},
		},
		ShadowsEnabled: cfg.ShadowsEnabled,
		ShowGrid:       cfg.ShowGrid,
		chunkSize:      chunkSize,
	}

	if cfg.ShadowsEnabled {
		var err error
		s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
		if err != nil {
			return nil, fmt.Errorf("creating shadow map: %w", err)
		}
	}

	if err := s.createDepthProgram(); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating depth program: %w", err)
	}

	var err error
	s.terrainRenderer, err = NewTerrainRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.objectRenderer, err = NewObjectRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating object renderer: %w", err)
	}

	s.gridRenderer, err = NewGridRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating grid renderer: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.45, 0.62, 0.82, 1.0)

	return s, nil
}

func (s *Scene) createDepthProgram() error {
	program, err := shader.CompileProgram(shaders.DepthVertexShader, shaders.DepthFragmentShader)
	if err != nil {
		return err
	}
	s.depthProgram = program
	s.locDepthLightViewProj = shader.GetUniform(program, "uLightViewProj")
	s.locDepthModel = shader.GetUniform(program, "uModel")
	return nil
}

// SetSunDirection updates the directional light. dir points towards the sun.
func (s *Scene) SetSunDirection(dir math.Vec3) {
	s.Light.Dir = dir.Normalize()
	if s.Light.Dir.IsZero() {
		s.Light.Dir = math.Vec3{Y: 1}
	}
}

// Resize updates the output dimensions.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
}

// ViewProj returns the combined camera matrix for the current output size.
func (s *Scene) ViewProj(cam *camera.OrbitCamera) math.Mat4 {
	aspect := float32(s.config.Width) / float32(s.config.Height)
	return cam.ProjectionMatrix(aspect).Mul(cam.ViewMatrix())
}

// Render draws one frame. If the field changed since the last frame the mesh
// and grid are rebuilt once, regardless of how many edits landed.
func (s *Scene) Render(cam *camera.OrbitCamera, f *heightfield.Field,
	objects []props.PlacedObject, preview *props.PlacedObject) {

	if f.Dirty() {
		mesh := terrain.Rebuild(f)
		s.terrainRenderer.Upload(mesh)
		s.gridRenderer.Upload(f)
		f.ClearDirty()
	}

	viewProj := s.ViewProj(cam)

	shadowsOn := s.ShadowsEnabled && s.shadowMap != nil
	if shadowsOn {
		s.lightViewProj = shadow.LightSpaceMatrix(s.Light.Dir, s.chunkSize)
		s.renderDepthPass(objects)
	}

	gl.Viewport(0, 0, s.config.Width, s.config.Height)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	s.terrainRenderer.Render(viewProj, s.Light, shadowsOn, s.lightViewProj, s.shadowMap, s.Cursor)
	s.objectRenderer.Render(viewProj, s.Light, shadowsOn, s.lightViewProj, s.shadowMap, objects, preview)

	if s.ShowGrid {
		s.gridRenderer.Render(viewProj)
	}
}

func (s *Scene) renderDepthPass(objects []props.PlacedObject) {
	s.shadowMap.Bind()

	gl.UseProgram(s.depthProgram)
	gl.UniformMatrix4fv(s.locDepthLightViewProj, 1, false, &s.lightViewProj[0])

	identity := math.Identity()
	gl.UniformMatrix4fv(s.locDepthModel, 1, false, &identity[0])
	s.terrainRenderer.RenderShadow()

	s.objectRenderer.RenderShadow(s.locDepthModel, objects)

	s.shadowMap.Unbind()
}

// TerrainBounds returns the bounds of the last uploaded mesh.
func (s *Scene) TerrainBounds() terrain.Bounds {
	return s.terrainRenderer.Bounds
}

// Destroy releases all GPU resources.
func (s *Scene) Destroy() {
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
		s.terrainRenderer = nil
	}
	if s.objectRenderer != nil {
		s.objectRenderer.Destroy()
		s.objectRenderer = nil
	}
	if s.gridRenderer != nil {
		s.gridRenderer.Destroy()
		s.gridRenderer = nil
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
		s.shadowMap = nil
	}
	if s.depthProgram != 0 {
		gl.DeleteProgram(s.depthProgram)
		s.depthProgram = 0
	}
}

// Package editor implements the interactive terrain editor: tool state,
// the frame loop, and world save/load.
package editor

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/cicciocappa/worldeditor/internal/config"
	"github.com/cicciocappa/worldeditor/internal/engine/camera"
	"github.com/cicciocappa/worldeditor/internal/engine/heightfield"
	"github.com/cicciocappa/worldeditor/internal/engine/input"
	"github.com/cicciocappa/worldeditor/internal/engine/lighting"
	"github.com/cicciocappa/worldeditor/internal/engine/picking"
	"github.com/cicciocappa/worldeditor/internal/engine/props"
	"github.com/cicciocappa/worldeditor/internal/engine/scene"
	"github.com/cicciocappa/worldeditor/internal/engine/window"
	"github.com/cicciocappa/worldeditor/internal/logger"
	"github.com/cicciocappa/worldeditor/pkg/formats"
	"github.com/cicciocappa/worldeditor/pkg/math"
)

// Tool selects what the left mouse button does.
type Tool int

// Editing tools.
const (
	ToolRaise Tool = iota
	ToolLower
	ToolPlace
)

func (t Tool) String() string {
	switch t {
	case ToolRaise:
		return "raise"
	case ToolLower:
		return "lower"
	case ToolPlace:
		return "place"
	default:
		return "unknown"
	}
}

// Editor owns the window, the scene, and all editing state.
type Editor struct {
	cfg     *config.Config
	running bool

	window *window.Window
	input  *input.Input
	cam    *camera.OrbitCamera
	scene  *scene.Scene

	field   *heightfield.Field
	picker  picking.Picker
	objects []props.PlacedObject

	tool          Tool
	placeKind     int // index into props.Kinds
	previewAngle  float32
	brushRadius   float32
	brushStrength float32

	width, height  int
	mouseX, mouseY int
	sculpting      bool
	orbiting       bool

	worldFile string
}

// New creates the editor. Any renderer setup failure is fatal.
func New(cfg *config.Config) (*Editor, error) {
	e := &Editor{
		cfg:           cfg,
		brushRadius:   cfg.Editor.BrushRadius,
		brushStrength: cfg.Editor.BrushStrength,
		width:         cfg.Graphics.Width,
		height:        cfg.Graphics.Height,
		worldFile:     cfg.World.File,
	}
	if e.worldFile == "" {
		e.worldFile = "world.weck"
	}

	var err error
	e.window, err = window.New(window.Config{
		Title:      "World Editor",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gl.Init(); err != nil {
		e.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if err := e.loadOrCreateWorld(); err != nil {
		e.window.Close()
		return nil, err
	}

	e.scene, err = scene.New(scene.Config{
		Width:            int32(e.width),
		Height:           int32(e.height),
		ShadowResolution: int32(cfg.Graphics.ShadowResolution),
		ShadowsEnabled:   cfg.Graphics.ShadowsEnabled,
		ShowGrid:         cfg.Editor.ShowGrid,
	}, e.field.Size)
	if err != nil {
		e.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}
	e.scene.SetSunDirection(lighting.SunDirection(cfg.Sun.Azimuth, cfg.Sun.Elevation))

	e.input = input.New()
	e.cam = camera.NewOrbitCamera()
	e.cam.FitToChunk(e.field.Size)

	logger.Info("editor initialized",
		zap.Float32("chunk_size", e.field.Size),
		zap.Int("resolution", e.field.Resolution),
		zap.Int("objects", len(e.objects)),
	)
	return e, nil
}

// loadOrCreateWorld loads the configured world file if it exists, otherwise
// starts with a flat chunk.
func (e *Editor) loadOrCreateWorld() error {
	if _, err := os.Stat(e.worldFile); err == nil {
		if err := e.loadWorld(); err != nil {
			return err
		}
		return nil
	}

	f, err := heightfield.New(e.cfg.World.Size, e.cfg.World.Resolution)
	if err != nil {
		return fmt.Errorf("creating height field: %w", err)
	}
	e.field = f
	return nil
}

func (e *Editor) loadWorld() error {
	chunk, err := formats.LoadChunkFile(e.worldFile)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}

	f, err := heightfield.FromSamples(chunk.Size, chunk.Resolution, chunk.Samples)
	if err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	e.field = f

	e.objects = e.objects[:0]
	for _, rec := range chunk.Objects {
		kind, err := props.ParseKind(rec.Kind)
		if err != nil {
			logger.Warn("skipping object", zap.Error(err))
			continue
		}
		e.objects = append(e.objects, props.PlacedObject{
			Kind:      kind,
			Position:  math.Vec3{X: rec.X, Y: rec.Y, Z: rec.Z},
			RotationY: rec.RotationY,
			Scale:     rec.Scale,
		})
	}

	logger.Info("world loaded",
		zap.String("file", e.worldFile),
		zap.Int("objects", len(e.objects)),
	)
	return nil
}

func (e *Editor) saveWorld() {
	chunk := &formats.ChunkFile{
		Version:    formats.ChunkVersion,
		Size:       e.field.Size,
		Resolution: e.field.Resolution,
		Samples:    e.field.Samples(),
		Objects:    make([]formats.ObjectRecord, 0, len(e.objects)),
	}
	for _, o := range e.objects {
		chunk.Objects = append(chunk.Objects, formats.ObjectRecord{
			Kind:      string(o.Kind),
			X:         o.Position.X,
			Y:         o.Position.Y,
			Z:         o.Position.Z,
			RotationY: o.RotationY,
			Scale:     o.Scale,
		})
	}

	if err := formats.SaveChunkFile(e.worldFile, chunk); err != nil {
		logger.Error("saving world", zap.Error(err))
		return
	}
	logger.Info("world saved",
		zap.String("file", e.worldFile),
		zap.Int("objects", len(e.objects)),
	)
}

// Run drives the frame loop until quit.
func (e *Editor) Run() error {
	e.running = true

	lastTime := time.Now()
	logger.Info("starting editor loop")

	for e.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if e.input.Update() {
			break
		}
		for _, event := range e.input.Events() {
			e.handleEvent(event)
		}
		if !e.running {
			break
		}

		e.handleHeldKeys(dt)
		cursor, preview := e.updatePointer(dt)

		e.scene.Cursor = cursor
		e.scene.Render(e.cam, e.field, e.objects, preview)
		e.window.SwapBuffers()
	}

	return nil
}

func (e *Editor) handleEvent(event input.Event) {
	switch event.Type {
	case input.EventQuit:
		e.running = false

	case input.EventWindowResize:
		e.width = event.Width
		e.height = event.Height
		e.scene.Resize(int32(event.Width), int32(event.Height))

	case input.EventKeyDown:
		e.handleKey(event.Key)

	case input.EventMouseWheel:
		e.cam.HandleZoom(event.WheelY)

	case input.EventMouseMove:
		e.mouseX = event.MouseX
		e.mouseY = event.MouseY
		if e.orbiting {
			e.cam.HandleDrag(float32(event.RelX), float32(event.RelY))
		}

	case input.EventMouseDown:
		switch event.Button {
		case sdl.BUTTON_LEFT:
			if e.tool == ToolPlace {
				e.placeObject()
			} else {
				e.sculpting = true
			}
		case sdl.BUTTON_RIGHT:
			e.orbiting = true
		}

	case input.EventMouseUp:
		switch event.Button {
		case sdl.BUTTON_LEFT:
			e.sculpting = false
		case sdl.BUTTON_RIGHT:
			e.orbiting = false
		}
	}
}

func (e *Editor) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		e.running = false

	case sdl.SCANCODE_1:
		e.setTool(ToolRaise)
	case sdl.SCANCODE_2:
		e.setTool(ToolLower)
	case sdl.SCANCODE_3:
		e.setTool(ToolPlace)

	case sdl.SCANCODE_TAB:
		e.placeKind = (e.placeKind + 1) % len(props.Kinds)
		logger.Info("object kind", zap.String("kind", string(props.Kinds[e.placeKind])))

	case sdl.SCANCODE_R:
		e.previewAngle += 0.3926991 // pi/8

	case sdl.SCANCODE_G:
		e.scene.ShowGrid = !e.scene.ShowGrid

	case sdl.SCANCODE_N:
		e.field.GenerateNoise(heightfield.DefaultNoiseOptions())
		logger.Info("terrain regenerated")

	case sdl.SCANCODE_F:
		if err := e.field.SetSamples(make([]float32, e.field.Resolution*e.field.Resolution)); err != nil {
			logger.Error("flattening terrain", zap.Error(err))
			return
		}
		logger.Info("terrain flattened")

	case sdl.SCANCODE_LEFTBRACKET:
		e.brushRadius = math.Clamp(e.brushRadius-0.5, 0.5, e.field.Size/2)
	case sdl.SCANCODE_RIGHTBRACKET:
		e.brushRadius = math.Clamp(e.brushRadius+0.5, 0.5, e.field.Size/2)

	case sdl.SCANCODE_F5:
		e.saveWorld()
	case sdl.SCANCODE_F9:
		if err := e.loadWorld(); err != nil {
			logger.Error("reloading world", zap.Error(err))
		}
	}
}

func (e *Editor) setTool(t Tool) {
	e.tool = t
	logger.Info("tool selected", zap.String("tool", t.String()))
}

// handleHeldKeys applies continuous camera panning.
func (e *Editor) handleHeldKeys(dt float32) {
	keys := sdl.GetKeyboardState()
	// Scale to roughly the classic 60 fps feel.
	step := dt * 60

	var forward, right float32
	if keys[sdl.SCANCODE_W] == 1 {
		forward += step
	}
	if keys[sdl.SCANCODE_S] == 1 {
		forward -= step
	}
	if keys[sdl.SCANCODE_D] == 1 {
		right += step
	}
	if keys[sdl.SCANCODE_A] == 1 {
		right -= step
	}
	if forward != 0 || right != 0 {
		e.cam.HandlePan(forward, right)
	}
}

// updatePointer picks the terrain under the mouse, applies the brush while
// sculpting, and builds the placement preview.
func (e *Editor) updatePointer(dt float32) (scene.Cursor, *props.PlacedObject) {
	ray := picking.ScreenToRay(
		float32(e.mouseX), float32(e.mouseY),
		float32(e.width), float32(e.height),
		e.scene.ViewProj(e.cam).Inverse(),
	)
	point, ok := e.picker.Pick(ray, e.field)
	if !ok {
		return scene.Cursor{}, nil
	}

	if e.sculpting && (e.tool == ToolRaise || e.tool == ToolLower) {
		// Strength is units per second while the button is held.
		e.field.ApplyBrush(point.X, point.Z, e.brushRadius, e.brushStrength*dt*60, e.tool == ToolLower)
	}

	cursor := scene.Cursor{Enabled: e.tool != ToolPlace, Pos: point, Radius: e.brushRadius}

	var preview *props.PlacedObject
	if e.tool == ToolPlace {
		preview = &props.PlacedObject{
			Kind:      props.Kinds[e.placeKind],
			Position:  e.snapToSurface(point),
			RotationY: e.previewAngle,
			Scale:     1,
		}
	}
	return cursor, preview
}

// snapToSurface drops a point onto the interpolated terrain height.
func (e *Editor) snapToSurface(p math.Vec3) math.Vec3 {
	return math.Vec3{
		X: p.X,
		Y: e.field.InterpolatedHeightAt(p.X, p.Z),
		Z: p.Z,
	}
}

func (e *Editor) placeObject() {
	ray := picking.ScreenToRay(
		float32(e.mouseX), float32(e.mouseY),
		float32(e.width), float32(e.height),
		e.scene.ViewProj(e.cam).Inverse(),
	)
	point, ok := e.picker.Pick(ray, e.field)
	if !ok {
		return
	}

	obj := props.PlacedObject{
		Kind:      props.Kinds[e.placeKind],
		Position:  e.snapToSurface(point),
		RotationY: e.previewAngle,
		Scale:     1,
	}
	e.objects = append(e.objects, obj)
	logger.Info("object placed",
		zap.String("kind", string(obj.Kind)),
		zap.Float32("x", obj.Position.X),
		zap.Float32("z", obj.Position.Z),
	)
}

// Close releases the scene and window.
func (e *Editor) Close() {
	logger.Info("closing editor")
	if e.scene != nil {
		e.scene.Destroy()
	}
	if e.window != nil {
		e.window.Close()
	}
}

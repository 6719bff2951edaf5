// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string

// TerrainVertexShader is the vertex shader for terrain rendering.
//
//go:embed terrain.vert
var TerrainVertexShader string

// TerrainFragmentShader is the fragment shader for terrain rendering.
//
//go:embed terrain.frag
var TerrainFragmentShader string

// ObjectVertexShader is the vertex shader for placed-object rendering.
//
//go:embed object.vert
var ObjectVertexShader string

// ObjectFragmentShader is the fragment shader for placed-object rendering.
//
//go:embed object.frag
var ObjectFragmentShader string

// GridVertexShader is the vertex shader for the grid overlay.
//
//go:embed grid.vert
var GridVertexShader string

// GridFragmentShader is the fragment shader for the grid overlay.
//
//go:embed grid.frag
var GridFragmentShader string

// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GrassVertexShader bends blade vertices with the wind. Both the fill and
// the outline programs link against it.
//
//go:embed grass.vert
var GrassVertexShader string

// GrassFragmentShader shades the fill mesh.
//
//go:embed grass.frag
var GrassFragmentShader string

// OutlineFragmentShader paints the outline mesh a solid color.
//
//go:embed outline.frag
var OutlineFragmentShader string

// GroundVertexShader is the vertex shader for the ground plane.
//
//go:embed ground.vert
var GroundVertexShader string

// GroundFragmentShader is the fragment shader for the ground plane.
//
//go:embed ground.frag
var GroundFragmentShader string

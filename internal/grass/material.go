package grass

import (
	"github.com/Faultbox/meadow/internal/engine/uniform"
	"github.com/Faultbox/meadow/pkg/math"
)

// Vertex stage uniforms, shared by the fill and outline programs.
const (
	UniformViewProj        uniform.Mat4  = "uViewProj"
	UniformTime            uniform.Float = "uTime"
	UniformWindStrength    uniform.Float = "uWindStrength"
	UniformWindDirection   uniform.Vec2  = "uWindDirection"
	UniformLeanAmplitude   uniform.Float = "uLeanAmplitude"
	UniformNoiseFrequency  uniform.Float = "uNoiseFrequency"
	UniformStrengthScale   uniform.Float = "uStrengthScale"
	UniformDirectionFactor uniform.Float = "uDirectionFactor"
	UniformOutlineScale    uniform.Float = "uOutlineScale"
	UniformBladeCenter     uniform.Float = "uBladeCenter"
)

// Fill fragment uniforms.
const (
	UniformShadingModel uniform.Int   = "uShadingModel"
	UniformBaseColor    uniform.Vec3  = "uBaseColor"
	UniformTipColor     uniform.Vec3  = "uTipColor"
	UniformFlatColor    uniform.Vec3  = "uFlatColor"
	UniformNormal       uniform.Vec3  = "uNormal"
	UniformLightDir     uniform.Vec3  = "uLightDir"
	UniformMinLambert   uniform.Float = "uMinLambert"
	UniformAmbient      uniform.Float = "uAmbient"
)

// Outline fragment uniforms.
const (
	UniformOutlineColor uniform.Vec3 = "uOutlineColor"
)

// VertexUniforms is the binding table of grass.vert.
var VertexUniforms = uniform.Table{
	UniformViewProj,
	UniformTime,
	UniformWindStrength,
	UniformWindDirection,
	UniformLeanAmplitude,
	UniformNoiseFrequency,
	UniformStrengthScale,
	UniformDirectionFactor,
	UniformOutlineScale,
	UniformBladeCenter,
}

// FillUniforms is the binding table of grass.frag.
var FillUniforms = uniform.Table{
	UniformShadingModel,
	UniformBaseColor,
	UniformTipColor,
	UniformFlatColor,
	UniformNormal,
	UniformLightDir,
	UniformMinLambert,
	UniformAmbient,
}

// OutlineUniforms is the binding table of outline.frag.
var OutlineUniforms = uniform.Table{
	UniformOutlineColor,
}

// MaterialKind distinguishes the two grass passes.
type MaterialKind int

const (
	// MaterialFill is the shaded blade surface.
	MaterialFill MaterialKind = iota
	// MaterialOutline is the enlarged solid-color silhouette drawn behind it.
	MaterialOutline
)

func (k MaterialKind) String() string {
	if k == MaterialOutline {
		return "outline"
	}
	return "fill"
}

// FragmentUniforms returns the binding table of the kind's fragment stage.
func (k MaterialKind) FragmentUniforms() uniform.Table {
	if k == MaterialOutline {
		return OutlineUniforms
	}
	return FillUniforms
}

// Material is the host-side description of one grass program's inputs.
// Uniforms points at the field's shared state and is read on every draw.
type Material struct {
	Kind         MaterialKind
	Uniforms     *Uniforms
	Wind         WindParams
	Scale        float32 // outward scale of the vertex stage, 1 for fill
	BladeCenter  float32
	Shading      ShadingModel
	Colors       ShadingParams
	OutlineColor math.Vec3
}

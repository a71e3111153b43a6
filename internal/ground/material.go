package ground

import (
	"github.com/Faultbox/meadow/internal/engine/uniform"
	"github.com/Faultbox/meadow/pkg/math"
)

// Ground program uniforms.
const (
	UniformViewProj   uniform.Mat4    = "uViewProj"
	UniformTexRepeat  uniform.Float   = "uTexRepeat"
	UniformColor      uniform.Vec3    = "uColor"
	UniformUseTexture uniform.Int     = "uUseTexture"
	UniformTexture    uniform.Sampler = "uTexture"
)

// VertexUniforms is the binding table of ground.vert.
var VertexUniforms = uniform.Table{UniformViewProj, UniformTexRepeat}

// FragmentUniforms is the binding table of ground.frag.
var FragmentUniforms = uniform.Table{UniformColor, UniformUseTexture, UniformTexture}

// Material describes how the plane is painted. The texture, once loaded,
// is multiplied by Color.
type Material struct {
	Color     math.Vec3
	TexRepeat float32
}

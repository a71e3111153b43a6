package grass

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// ShadingModel selects the fill fragment function.
type ShadingModel int32

const (
	// ShadingGradient blends root to tip color and applies a fixed Lambert term.
	ShadingGradient ShadingModel = iota
	// ShadingFlat paints every fragment one color.
	ShadingFlat
)

func (m ShadingModel) String() string {
	switch m {
	case ShadingGradient:
		return "gradient"
	case ShadingFlat:
		return "flat"
	default:
		return fmt.Sprintf("ShadingModel(%d)", int32(m))
	}
}

// ParseShadingModel maps a config string to a model.
func ParseShadingModel(s string) (ShadingModel, error) {
	switch s {
	case "gradient", "":
		return ShadingGradient, nil
	case "flat":
		return ShadingFlat, nil
	default:
		return 0, fmt.Errorf("unknown shading model %q", s)
	}
}

// ShadingParams are the fill colors and the fixed lighting setup.
type ShadingParams struct {
	Base       math.Vec3
	Tip        math.Vec3
	Flat       math.Vec3
	Normal     math.Vec3
	LightDir   math.Vec3
	MinLambert float32
	Ambient    float32
}

// DefaultShadingParams returns a two-tone green with light from above and
// in front of the blades.
func DefaultShadingParams() ShadingParams {
	return ShadingParams{
		Base:       math.Vec3{X: 0.12, Y: 0.30, Z: 0.07},
		Tip:        math.Vec3{X: 0.66, Y: 0.83, Z: 0.35},
		Flat:       math.Vec3{X: 0.2, Y: 0.8, Z: 0.2},
		Normal:     math.Vec3{X: 0, Y: 0, Z: 1},
		LightDir:   math.Vec3{X: 0.3, Y: 0.8, Z: 0.5},
		MinLambert: 0.35,
		Ambient:    0.1,
	}
}

// Shade returns the fill color at blade-local height h, mirroring grass.frag.
func Shade(h float32, model ShadingModel, p ShadingParams) math.Vec3 {
	if model == ShadingFlat {
		return p.Flat
	}
	color := p.Base.Lerp(p.Tip, clamp01(h))
	lambert := math32.Max(p.Normal.Normalize().Dot(p.LightDir.Normalize()), p.MinLambert)
	lit := color.Scale(lambert).Add(math.Vec3{X: p.Ambient, Y: p.Ambient, Z: p.Ambient})
	return math.Vec3{
		X: math32.Min(lit.X, 1),
		Y: math32.Min(lit.Y, 1),
		Z: math32.Min(lit.Z, 1),
	}
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(v, 1))
}

package grass

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Uniforms is the per-tick state shared by the fill and outline materials.
// Both materials hold the same pointer, so one write reaches both.
type Uniforms struct {
	Time          float32
	WindStrength  float32
	WindDirection math.Vec2 // unit vector
}

// WindParams are the tuning constants of the lean function.
type WindParams struct {
	LeanAmplitude   float32 // amplitude of the base sway, radians
	NoiseFrequency  float32 // time multiplier of the secondary wave
	StrengthScale   float32 // radians per unit of wind strength
	DirectionFactor float32 // weight of windDirection.x
}

// DefaultWindParams returns the stock tuning.
func DefaultWindParams() WindParams {
	return WindParams{
		LeanAmplitude:   0.2,
		NoiseFrequency:  0.35,
		StrengthScale:   1,
		DirectionFactor: 1,
	}
}

// WindDirectionAt returns the heading at time t: the angle sin(t)*pi/4
// sweeps slowly back and forth across +X.
func WindDirectionAt(t float32) math.Vec2 {
	return math.FromAngle(math32.Sin(t) * math32.Pi / 4)
}

// LeanAngle is the bend angle of a vertex at blade-local height h.
// It mirrors leanAngle in grass.vert.
func LeanAngle(h float32, u Uniforms, p WindParams) float32 {
	base := math32.Sin(u.Time+h) * p.LeanAmplitude
	noise := math32.Sin(u.Time*p.NoiseFrequency+h) * u.WindStrength * p.StrengthScale
	return (base + noise) * u.WindDirection.X * p.DirectionFactor
}

// Bend deforms a blade-local vertex the way the vertex stage does: scale
// about the blade axis (1 for the fill mesh), then rotate about the base
// (X) axis by LeanAngle of the undeformed height.
func Bend(pos math.Vec3, scale, center float32, u Uniforms, p WindParams) math.Vec3 {
	scaled := math.Vec3{
		X: center + (pos.X-center)*scale,
		Y: pos.Y * scale,
		Z: pos.Z,
	}
	return math.RotateX(LeanAngle(pos.Y, u, p)).TransformVec3(scaled)
}

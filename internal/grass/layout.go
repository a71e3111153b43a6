package grass

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// FloatsPerInstance is the size of one packed column-major mat4.
const FloatsPerInstance = 16

var (
	// ErrEmptyLayout is returned for a placement buffer with no instances.
	ErrEmptyLayout = errors.New("grass: empty placement buffer")
	// ErrMalformedLayout is returned for a placement buffer of the wrong
	// size or with non-finite values.
	ErrMalformedLayout = errors.New("grass: malformed placement buffer")
)

// Source supplies uniform floats in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Float32() float32
}

// Instance places one copy of the blade template.
type Instance struct {
	Position math.Vec3 // Y is always 0
	Scale    float32   // height scale in [0.5, 1)
	Rotation float32   // radians around Y
}

// Matrix returns translation * rotationY * scale(1, Scale, 1).
func (in Instance) Matrix() math.Mat4 {
	return math.TRS(in.Position, in.Rotation, math.Vec3{X: 1, Y: in.Scale, Z: 1})
}

// GenerateLayout scatters count instances uniformly over a width x height
// footprint centered on the origin. X lies in [-width/2, width/2) and Z in
// [-height/2, height/2). There is no minimum spacing; blades may overlap.
func GenerateLayout(width, height float32, count int, rng Source, randomRotation bool) []Instance {
	if count <= 0 {
		return nil
	}
	instances := make([]Instance, count)
	for i := range instances {
		x := below((rng.Float32()-0.5)*width, width/2)
		z := below((rng.Float32()-0.5)*height, height/2)
		s := below(0.5+rng.Float32()*0.5, 1)

		var rot float32
		if randomRotation {
			rot = rng.Float32() * 2 * math32.Pi
		}
		instances[i] = Instance{
			Position: math.Vec3{X: x, Y: 0, Z: z},
			Scale:    s,
			Rotation: rot,
		}
	}
	return instances
}

// below keeps v strictly under limit; float32 rounding can otherwise land
// exactly on the open end of a half-open range.
func below(v, limit float32) float32 {
	if v >= limit {
		return gomath.Nextafter32(limit, float32(gomath.Inf(-1)))
	}
	return v
}

// PackMatrices flattens the instance transforms into one buffer of
// FloatsPerInstance floats per instance, ready for upload.
func PackMatrices(instances []Instance) []float32 {
	buf := make([]float32, 0, len(instances)*FloatsPerInstance)
	for _, in := range instances {
		m := in.Matrix()
		buf = append(buf, m[:]...)
	}
	return buf
}

// ValidateLayout checks a packed placement buffer against the expected
// instance count.
func ValidateLayout(buf []float32, count int) error {
	if count <= 0 || len(buf) == 0 {
		return ErrEmptyLayout
	}
	if len(buf) != count*FloatsPerInstance {
		return fmt.Errorf("%w: %d floats for %d instances", ErrMalformedLayout, len(buf), count)
	}
	for i, v := range buf {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value at instance %d", ErrMalformedLayout, i/FloatsPerInstance)
		}
	}
	return nil
}

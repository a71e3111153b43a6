// Package grass builds and animates an instanced field of grass blades.
//
// The package is GPU-agnostic: it produces the blade template, the packed
// per-instance transforms and the uniform state, and hands them to a Device
// that owns the actual buffers and programs. The wind deformation itself
// runs in the vertex shader; LeanAngle, Bend and Shade are the same
// functions evaluated on the CPU for tools and tests.
package grass

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// Blade is the immutable geometry template shared by every instance and by
// both the fill and the outline mesh.
type Blade struct {
	Vertices []float32 // x,y,z per vertex
	Indices  []uint16  // three per triangle
	Width    float32   // extent along X
}

// BuildBlade samples vertexCount points along a sinusoidal leaf profile and
// triangulates them by pairing vertex i with its mirror vertexCount-1-i.
//
// With t = i/(vertexCount-1)/slimScale the vertex is (t*width, sin(t*slimScale*pi), 0):
// X runs across the blade and Y rises from 0 at both base corners to 1 at
// the middle vertex, which is the tip. Larger slimScale gives a narrower blade.
func BuildBlade(vertexCount int, slimScale, width float32) (*Blade, error) {
	if vertexCount < 3 {
		return nil, fmt.Errorf("blade needs at least 3 vertices, got %d", vertexCount)
	}
	if vertexCount > 1<<16 {
		return nil, fmt.Errorf("blade vertex count %d exceeds 16-bit indices", vertexCount)
	}
	if slimScale <= 0 || width <= 0 {
		return nil, fmt.Errorf("blade slim scale %g and width %g must be positive", slimScale, width)
	}

	n := vertexCount
	vertices := make([]float32, 0, n*3)
	for i := 0; i < n; i++ {
		t := float32(i) / float32(n-1) / slimScale
		x := t * width
		y := math32.Sin(t * slimScale * math32.Pi)
		vertices = append(vertices, x, y, 0)
	}
	// sin(pi) is not exactly zero in float32; pin the far base corner.
	vertices[(n-1)*3+1] = 0

	return &Blade{
		Vertices: vertices,
		Indices:  triangulate(n),
		Width:    width / slimScale,
	}, nil
}

// triangulate folds the two halves of the outline into a strip of quads
// closed by a single tip triangle. The second triangle of a pair, and for
// even counts the first, is skipped where it would collapse onto the
// middle, so the result always holds n-2 triangles.
func triangulate(n int) []uint16 {
	indices := make([]uint16, 0, 3*(n-2))
	for i := 0; i <= n/2; i++ {
		a, b, c, d := i, i+1, n-i-1, n-i-2
		if b < c {
			indices = append(indices, uint16(a), uint16(b), uint16(c))
		}
		if b < d {
			indices = append(indices, uint16(c), uint16(b), uint16(d))
		}
	}
	return indices
}

// VertexCount returns the number of template vertices.
func (b *Blade) VertexCount() int {
	return len(b.Vertices) / 3
}

// TriangleCount returns the number of template triangles.
func (b *Blade) TriangleCount() int {
	return len(b.Indices) / 3
}

// Vertex returns vertex i.
func (b *Blade) Vertex(i int) math.Vec3 {
	return math.Vec3{X: b.Vertices[i*3], Y: b.Vertices[i*3+1], Z: b.Vertices[i*3+2]}
}

// Center returns the X coordinate of the tip, the blade's vertical axis.
func (b *Blade) Center() float32 {
	return b.Width / 2
}

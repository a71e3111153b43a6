// Package ground composes the ground plane and the grass field growing on
// it, and loads the optional ground texture off the render thread.
package ground

// FloatsPerVertex is the interleaved layout of Plane.Vertices: x, y, z, u, v.
const FloatsPerVertex = 5

// Plane holds ground geometry ready for GPU upload.
type Plane struct {
	Vertices []float32
	Size     float32
}

// BuildPlane creates a size x size quad at y=0 centered on the origin, as
// two counter-clockwise triangles seen from above. UVs span [0,1].
func BuildPlane(size float32) *Plane {
	h := size / 2
	vertices := []float32{
		-h, 0, -h, 0, 0,
		-h, 0, h, 0, 1,
		h, 0, h, 1, 1,

		-h, 0, -h, 0, 0,
		h, 0, h, 1, 1,
		h, 0, -h, 1, 0,
	}
	return &Plane{Vertices: vertices, Size: size}
}

// VertexCount returns the number of vertices in the plane.
func (p *Plane) VertexCount() int {
	return len(p.Vertices) / FloatsPerVertex
}

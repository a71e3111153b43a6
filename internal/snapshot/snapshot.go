// Package snapshot evaluates a grass field on the CPU, without a GPU, for
// statistics and mesh export.
package snapshot

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/pkg/math"
)

// Device implements grass.Device by keeping every mesh in memory.
type Device struct {
	Meshes []*Mesh
}

var _ grass.Device = (*Device)(nil)

// NewMesh records its arguments.
func (d *Device) NewMesh(blade *grass.Blade, instances []float32, count int, mat *grass.Material) (grass.Mesh, error) {
	m := &Mesh{Blade: blade, Instances: instances, Count: count, Material: mat}
	d.Meshes = append(d.Meshes, m)
	return m, nil
}

// Mesh is a recorded grass mesh.
type Mesh struct {
	Blade     *grass.Blade
	Instances []float32
	Count     int
	Material  *grass.Material
	Disposed  bool
}

func (m *Mesh) Draw(math.Mat4)     {}
func (m *Mesh) Dispose()           { m.Disposed = true }
func (m *Mesh) InstanceCount() int { return m.Count }

// Stats summarizes a built field.
type Stats struct {
	Blades            int
	VerticesPerBlade  int
	TrianglesPerBlade int
	Triangles         int
	InstanceBytes     int
	Min, Max          math.Vec3 // bounds of the blade roots
	Outline           bool
}

// Collect computes Stats for f.
func Collect(f *grass.Field) Stats {
	blade := f.Blade()
	instances := f.Instances()
	s := Stats{
		Blades:            len(instances),
		VerticesPerBlade:  blade.VertexCount(),
		TrianglesPerBlade: blade.TriangleCount(),
		Triangles:         blade.TriangleCount() * len(instances),
		InstanceBytes:     len(instances) * grass.FloatsPerInstance * 4,
		Outline:           f.Outline() != nil,
	}
	for i, in := range instances {
		p := in.Position
		if i == 0 {
			s.Min, s.Max = p, p
			continue
		}
		s.Min = math.Vec3{X: min(s.Min.X, p.X), Y: min(s.Min.Y, p.Y), Z: min(s.Min.Z, p.Z)}
		s.Max = math.Vec3{X: max(s.Max.X, p.X), Y: max(s.Max.Y, p.Y), Z: max(s.Max.Z, p.Z)}
	}
	return s
}

// WriteOBJ writes the fill mesh of f, deformed by the wind at its current
// uniform state, as a Wavefront OBJ. Vertex colors follow the fill shading.
func WriteOBJ(w io.Writer, f *grass.Field) error {
	blade := f.Blade()
	if blade == nil {
		return grass.ErrDisposed
	}
	opts := f.Options()
	u := f.Uniforms()
	center := blade.Center()

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# meadow grass field: %d blades, t=%g, wind %g\n",
		len(f.Instances()), u.Time, u.WindStrength)
	fmt.Fprintln(bw, "o grass")

	n := blade.VertexCount()
	for _, in := range f.Instances() {
		m := in.Matrix()
		for i := 0; i < n; i++ {
			local := blade.Vertex(i)
			bent := grass.Bend(local, 1, center, u, opts.Wind)
			world := m.TransformVec3(bent)
			c := grass.Shade(local.Y, opts.Shading, opts.Colors)
			fmt.Fprintf(bw, "v %.5f %.5f %.5f %.4f %.4f %.4f\n", world.X, world.Y, world.Z, c.X, c.Y, c.Z)
		}
	}

	for k := range f.Instances() {
		base := k*n + 1
		for t := 0; t+2 < len(blade.Indices); t += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n",
				base+int(blade.Indices[t]),
				base+int(blade.Indices[t+1]),
				base+int(blade.Indices[t+2]))
		}
	}
	return bw.Flush()
}

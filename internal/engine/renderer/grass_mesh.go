package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/pkg/math"
)

// Attribute locations in grass.vert. The instance matrix takes four.
const (
	attrPosition = 0
	attrInstance = 1
)

// GrassMesh is one instanced draw of the blade template.
type GrassMesh struct {
	prog *shader.Program
	mat  *grass.Material

	vao, vbo, ebo, instanceVBO uint32

	indexCount int32
	count      int32
}

var _ grass.Mesh = (*GrassMesh)(nil)

// NewMesh uploads the blade template and the packed instance matrices.
func (r *Renderer) NewMesh(blade *grass.Blade, instances []float32, count int, mat *grass.Material) (grass.Mesh, error) {
	if len(blade.Vertices) == 0 || len(blade.Indices) == 0 {
		return nil, fmt.Errorf("empty blade template")
	}
	if count <= 0 || len(instances) != count*grass.FloatsPerInstance {
		return nil, fmt.Errorf("%w: %d floats for %d instances", grass.ErrMalformedLayout, len(instances), count)
	}
	prog, err := r.grassProgram(mat.Kind)
	if err != nil {
		return nil, err
	}

	m := &GrassMesh{
		prog:       prog,
		mat:        mat,
		indexCount: int32(len(blade.Indices)),
		count:      int32(count),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(blade.Vertices)*4, unsafe.Pointer(&blade.Vertices[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attrPosition, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(attrPosition)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(blade.Indices)*2, unsafe.Pointer(&blade.Indices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.instanceVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.instanceVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(instances)*4, unsafe.Pointer(&instances[0]), gl.STATIC_DRAW)
	stride := int32(grass.FloatsPerInstance * 4)
	for col := uint32(0); col < 4; col++ {
		loc := attrInstance + col
		gl.VertexAttribPointerWithOffset(loc, 4, gl.FLOAT, false, stride, uintptr(col*4*4))
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		m.Dispose()
		return nil, fmt.Errorf("uploading grass mesh: GL error 0x%x", errCode)
	}
	return m, nil
}

// InstanceCount returns the number of blades drawn.
func (m *GrassMesh) InstanceCount() int { return int(m.count) }

// Draw renders every instance with the material's current uniforms.
func (m *GrassMesh) Draw(viewProj math.Mat4) {
	if m.vao == 0 {
		return
	}
	p := m.prog
	mat := m.mat
	u := mat.Uniforms

	p.Use()
	p.SetMat4(grass.UniformViewProj, viewProj)
	p.SetFloat(grass.UniformTime, u.Time)
	p.SetFloat(grass.UniformWindStrength, u.WindStrength)
	p.SetVec2(grass.UniformWindDirection, u.WindDirection)
	p.SetFloat(grass.UniformLeanAmplitude, mat.Wind.LeanAmplitude)
	p.SetFloat(grass.UniformNoiseFrequency, mat.Wind.NoiseFrequency)
	p.SetFloat(grass.UniformStrengthScale, mat.Wind.StrengthScale)
	p.SetFloat(grass.UniformDirectionFactor, mat.Wind.DirectionFactor)
	p.SetFloat(grass.UniformOutlineScale, mat.Scale)
	p.SetFloat(grass.UniformBladeCenter, mat.BladeCenter)

	if mat.Kind == grass.MaterialOutline {
		p.SetVec3(grass.UniformOutlineColor, mat.OutlineColor)
		// Push the silhouette behind the fill of its own blade.
		gl.Enable(gl.POLYGON_OFFSET_FILL)
		gl.PolygonOffset(1, 1)
	} else {
		c := mat.Colors
		p.SetInt(grass.UniformShadingModel, int32(mat.Shading))
		p.SetVec3(grass.UniformBaseColor, c.Base)
		p.SetVec3(grass.UniformTipColor, c.Tip)
		p.SetVec3(grass.UniformFlatColor, c.Flat)
		p.SetVec3(grass.UniformNormal, c.Normal)
		p.SetVec3(grass.UniformLightDir, c.LightDir)
		p.SetFloat(grass.UniformMinLambert, c.MinLambert)
		p.SetFloat(grass.UniformAmbient, c.Ambient)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElementsInstanced(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_SHORT, nil, m.count)
	gl.BindVertexArray(0)

	if mat.Kind == grass.MaterialOutline {
		gl.Disable(gl.POLYGON_OFFSET_FILL)
	}
}

// Dispose releases the buffers. The program belongs to the renderer.
func (m *GrassMesh) Dispose() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	for _, buf := range []*uint32{&m.vbo, &m.ebo, &m.instanceVBO} {
		if *buf != 0 {
			gl.DeleteBuffers(1, buf)
			*buf = 0
		}
	}
}

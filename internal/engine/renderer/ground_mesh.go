package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/ground"
	"github.com/Faultbox/meadow/pkg/math"
)

// maxTextureSize is the smallest GL_MAX_TEXTURE_SIZE a 4.1 driver may report.
const maxTextureSize = 16384

// GroundMesh renders the ground plane, optionally textured.
type GroundMesh struct {
	prog *shader.Program
	mat  ground.Material

	vao, vbo    uint32
	vertexCount int32
	texture     uint32
}

var _ ground.PlaneMesh = (*GroundMesh)(nil)

// NewPlane uploads the ground quad.
func (r *Renderer) NewPlane(plane *ground.Plane, mat *ground.Material) (ground.PlaneMesh, error) {
	prog, err := r.groundShader()
	if err != nil {
		return nil, err
	}
	m := &GroundMesh{
		prog:        prog,
		mat:         *mat,
		vertexCount: int32(plane.VertexCount()),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(plane.Vertices)*4, unsafe.Pointer(&plane.Vertices[0]), gl.STATIC_DRAW)

	stride := int32(ground.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m, nil
}

// SetTexture uploads img, replacing any previous texture.
func (m *GroundMesh) SetTexture(img *image.RGBA) error {
	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("empty texture")
	}
	if b.Dx() > maxTextureSize || b.Dy() > maxTextureSize {
		return fmt.Errorf("texture %dx%d exceeds %d", b.Dx(), b.Dy(), maxTextureSize)
	}

	if m.texture == 0 {
		gl.GenTextures(1, &m.texture)
	}
	gl.BindTexture(gl.TEXTURE_2D, m.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[img.PixOffset(b.Min.X, b.Min.Y)]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return nil
}

// Draw renders the plane.
func (m *GroundMesh) Draw(viewProj math.Mat4) {
	if m.vao == 0 {
		return
	}
	p := m.prog
	p.Use()
	p.SetMat4(ground.UniformViewProj, viewProj)
	p.SetFloat(ground.UniformTexRepeat, m.mat.TexRepeat)
	p.SetVec3(ground.UniformColor, m.mat.Color)

	if m.texture != 0 {
		p.SetInt(ground.UniformUseTexture, 1)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, m.texture)
		p.SetSampler(ground.UniformTexture, 0)
	} else {
		p.SetInt(ground.UniformUseTexture, 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
	gl.BindVertexArray(0)
}

// Dispose releases the buffers and the texture.
func (m *GroundMesh) Dispose() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.texture != 0 {
		gl.DeleteTextures(1, &m.texture)
		m.texture = 0
	}
}

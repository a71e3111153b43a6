// Package shader provides OpenGL shader compilation and typed uniform access.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/meadow/internal/engine/uniform"
	"github.com/Faultbox/meadow/pkg/math"
)

// Program is a linked shader program with resolved uniform locations.
type Program struct {
	ID   uint32
	locs map[string]int32
}

// Link compiles both stages, links them and resolves every uniform of the
// given tables. A uniform the linker did not keep is an error.
func Link(vertexSrc, fragmentSrc string, tables ...uniform.Table) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}

	p := &Program{ID: id, locs: make(map[string]int32)}
	for _, table := range tables {
		for _, name := range table.Names() {
			loc := gl.GetUniformLocation(id, gl.Str(name+"\x00"))
			if loc < 0 {
				gl.DeleteProgram(id)
				return nil, fmt.Errorf("uniform %q not active in program %d", name, id)
			}
			p.locs[name] = loc
		}
	}
	return p, nil
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Delete releases the program. Safe to call more than once.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

// SetFloat writes a float uniform.
func (p *Program) SetFloat(u uniform.Float, v float32) {
	gl.Uniform1f(p.locs[string(u)], v)
}

// SetInt writes an int uniform.
func (p *Program) SetInt(u uniform.Int, v int32) {
	gl.Uniform1i(p.locs[string(u)], v)
}

// SetVec2 writes a vec2 uniform.
func (p *Program) SetVec2(u uniform.Vec2, v math.Vec2) {
	gl.Uniform2f(p.locs[string(u)], v.X, v.Y)
}

// SetVec3 writes a vec3 uniform.
func (p *Program) SetVec3(u uniform.Vec3, v math.Vec3) {
	gl.Uniform3f(p.locs[string(u)], v.X, v.Y, v.Z)
}

// SetMat4 writes a mat4 uniform.
func (p *Program) SetMat4(u uniform.Mat4, m math.Mat4) {
	gl.UniformMatrix4fv(p.locs[string(u)], 1, false, m.Ptr())
}

// SetSampler binds a sampler uniform to a texture unit.
func (p *Program) SetSampler(u uniform.Sampler, unit int32) {
	gl.Uniform1i(p.locs[string(u)], unit)
}

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Package uniform describes shader uniforms as typed Go values so that the
// programs sharing a vertex stage agree on names and types at compile time.
package uniform

import (
	"fmt"
	"regexp"
)

// Type is the GLSL type of a uniform.
type Type int

// Supported uniform types.
const (
	TypeFloat Type = iota
	TypeInt
	TypeVec2
	TypeVec3
	TypeMat4
	TypeSampler2D
)

// GLSL returns the type keyword used in shader source.
func (t Type) GLSL() string {
	switch t {
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeVec2:
		return "vec2"
	case TypeVec3:
		return "vec3"
	case TypeMat4:
		return "mat4"
	case TypeSampler2D:
		return "sampler2D"
	default:
		return "unknown"
	}
}

func parseType(s string) (Type, bool) {
	for t := TypeFloat; t <= TypeSampler2D; t++ {
		if t.GLSL() == s {
			return t, true
		}
	}
	return 0, false
}

// Binding names a uniform and its type.
type Binding struct {
	Name string
	Type Type
}

// Uniform is implemented by the typed handles below.
type Uniform interface {
	Binding() Binding
}

// Typed handles. A program only accepts values of the matching Go type for
// each of them.
type (
	Float string
	Int   string
	Vec2  string
	Vec3  string
	Mat4  string
	// Sampler is set to a texture unit index.
	Sampler string
)

func (u Float) Binding() Binding { return Binding{string(u), TypeFloat} }
func (u Int) Binding() Binding   { return Binding{string(u), TypeInt} }
func (u Vec2) Binding() Binding  { return Binding{string(u), TypeVec2} }
func (u Vec3) Binding() Binding  { return Binding{string(u), TypeVec3} }
func (u Mat4) Binding() Binding  { return Binding{string(u), TypeMat4} }
func (u Sampler) Binding() Binding {
	return Binding{string(u), TypeSampler2D}
}

// Table is an ordered set of uniforms consumed by one shader stage.
type Table []Uniform

// Bindings returns the table entries as plain bindings.
func (t Table) Bindings() []Binding {
	out := make([]Binding, len(t))
	for i, u := range t {
		out[i] = u.Binding()
	}
	return out
}

// Names returns the uniform names in table order.
func (t Table) Names() []string {
	out := make([]string, len(t))
	for i, u := range t {
		out[i] = u.Binding().Name
	}
	return out
}

// Validate checks that src declares every uniform of the table with the
// same GLSL type.
func (t Table) Validate(src string) error {
	decls := Declarations(src)
	for _, u := range t {
		b := u.Binding()
		got, ok := decls[b.Name]
		if !ok {
			return fmt.Errorf("uniform %s %s not declared", b.Type.GLSL(), b.Name)
		}
		if got != b.Type {
			return fmt.Errorf("uniform %s declared as %s, want %s", b.Name, got.GLSL(), b.Type.GLSL())
		}
	}
	return nil
}

var declPattern = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)

// Declarations parses `uniform <type> <name>;` lines from GLSL source.
// Uniforms of types outside this package (arrays, cube samplers) are skipped.
func Declarations(src string) map[string]Type {
	out := make(map[string]Type)
	for _, m := range declPattern.FindAllStringSubmatch(src, -1) {
		if t, ok := parseType(m[1]); ok {
			out[m[2]] = t
		}
	}
	return out
}

// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/shader"
	"github.com/Faultbox/meadow/internal/engine/shaders"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/ground"
	"github.com/Faultbox/meadow/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor math.Vec3
	MSAA       bool
}

// Renderer owns the GL state and the shader programs shared by every mesh.
// It implements ground.Device.
type Renderer struct {
	config Config
	log    *zap.Logger

	// Linked lazily on first use, released by Close.
	grassPrograms map[grass.MaterialKind]*shader.Program
	groundProgram *shader.Program
}

var _ ground.Device = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:        cfg,
		log:           log,
		grassPrograms: make(map[grass.MaterialKind]*shader.Program),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	// Blades are single-sided quads seen from both sides.
	gl.Disable(gl.CULL_FACE)
	if cfg.MSAA {
		gl.Enable(gl.MULTISAMPLE)
	}
	c := cfg.ClearColor
	gl.ClearColor(c.X, c.Y, c.Z, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close releases the shared programs. Meshes release their own buffers.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for kind, p := range r.grassPrograms {
		p.Delete()
		delete(r.grassPrograms, kind)
	}
	if r.groundProgram != nil {
		r.groundProgram.Delete()
		r.groundProgram = nil
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *Renderer) grassProgram(kind grass.MaterialKind) (*shader.Program, error) {
	if p, ok := r.grassPrograms[kind]; ok {
		return p, nil
	}
	frag := shaders.GrassFragmentShader
	if kind == grass.MaterialOutline {
		frag = shaders.OutlineFragmentShader
	}
	p, err := shader.Link(shaders.GrassVertexShader, frag, grass.VertexUniforms, kind.FragmentUniforms())
	if err != nil {
		return nil, fmt.Errorf("grass %s shader: %w", kind, err)
	}
	r.grassPrograms[kind] = p
	r.log.Debug("grass program linked", zap.Stringer("kind", kind), zap.Uint32("program", p.ID))
	return p, nil
}

func (r *Renderer) groundShader() (*shader.Program, error) {
	if r.groundProgram != nil {
		return r.groundProgram, nil
	}
	p, err := shader.Link(shaders.GroundVertexShader, shaders.GroundFragmentShader,
		ground.VertexUniforms, ground.FragmentUniforms)
	if err != nil {
		return nil, fmt.Errorf("ground shader: %w", err)
	}
	r.groundProgram = p
	return p, nil
}

package ground

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/texture"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/internal/stage"
	"github.com/Faultbox/meadow/pkg/math"
)

// PlaneMesh is the ground quad on the GPU.
type PlaneMesh interface {
	stage.Drawable
	SetTexture(img *image.RGBA) error
}

// Device creates the GPU resources of a ground and its grass.
type Device interface {
	grass.Device
	NewPlane(plane *Plane, mat *Material) (PlaneMesh, error)
}

// Config describes a ground and the field on it.
type Config struct {
	Size          float32
	Color         math.Vec3
	TextureRepeat float32
	Texture       string // optional, loaded with LoadTextureAsync by New

	Grass        grass.Config
	GrassOptions grass.Options

	// LoadTexture reads an image file. Nil uses texture.Load.
	LoadTexture func(path string) (*image.RGBA, error)
}

type textureResult struct {
	path string
	img  *image.RGBA
	err  error
}

// Ground owns the plane drawable and one grass field.
type Ground struct {
	ctx   *stage.Context
	log   *zap.Logger
	cfg   Config
	plane PlaneMesh
	field *grass.Field

	textures chan textureResult
	done     chan struct{}
	disposed bool
}

// New adds the plane and then the field to ctx.Stage. If cfg.Texture is set
// its loading starts in the background; a failure there is only logged.
func New(ctx *stage.Context, device Device, cfg Config) (*Ground, error) {
	if !(cfg.Size > 0) {
		return nil, fmt.Errorf("ground size %g must be positive", cfg.Size)
	}
	if cfg.TextureRepeat <= 0 {
		cfg.TextureRepeat = 1
	}
	if cfg.LoadTexture == nil {
		cfg.LoadTexture = texture.Load
	}

	g := &Ground{
		ctx:      ctx,
		log:      ctx.Log.Named("ground"),
		cfg:      cfg,
		textures: make(chan textureResult, 1),
		done:     make(chan struct{}),
	}

	plane, err := device.NewPlane(BuildPlane(cfg.Size), &Material{Color: cfg.Color, TexRepeat: cfg.TextureRepeat})
	if err != nil {
		return nil, fmt.Errorf("creating ground plane: %w", err)
	}
	ctx.Stage.Add(plane)

	field, err := grass.New(ctx, device, cfg.Grass, cfg.GrassOptions)
	if err != nil {
		ctx.Stage.Remove(plane)
		return nil, fmt.Errorf("creating grass field: %w", err)
	}
	g.plane, g.field = plane, field

	g.log.Info("ground created", zap.Float32("size", cfg.Size))
	if cfg.Texture != "" {
		g.LoadTextureAsync(cfg.Texture)
	}
	return g, nil
}

// Field returns the grass field.
func (g *Ground) Field() *grass.Field { return g.field }

// Plane returns the plane drawable.
func (g *Ground) Plane() PlaneMesh { return g.plane }

// Resize changes the grass footprint. The plane keeps its size.
func (g *Ground) Resize(width, height float32) error {
	return g.field.Resize(width, height)
}

// SetBladeCount changes the number of blades.
func (g *Ground) SetBladeCount(n int) error {
	return g.field.SetBladeCount(n)
}

// SetWindStrength changes the wind strength without rebuilding.
func (g *Ground) SetWindStrength(s float32) error {
	return g.field.SetWindStrength(s)
}

// SetOutline toggles the outline pass.
func (g *Ground) SetOutline(on bool) error {
	return g.field.SetOutline(on)
}

// StartAnimation starts the field's wind animation.
func (g *Ground) StartAnimation() error {
	return g.field.StartAnimation()
}

// StopAnimation stops the field's wind animation.
func (g *Ground) StopAnimation() {
	g.field.StopAnimation()
}

// ToggleAnimation starts a stopped field or stops an animating one.
func (g *Ground) ToggleAnimation() error {
	if g.field.State() == grass.StateAnimating {
		g.field.StopAnimation()
		return nil
	}
	return g.field.StartAnimation()
}

// LoadTextureAsync decodes path on its own goroutine. The result is applied
// by the next Poll that sees it.
func (g *Ground) LoadTextureAsync(path string) {
	if g.disposed {
		return
	}
	load := g.cfg.LoadTexture
	go func() {
		img, err := load(path)
		select {
		case g.textures <- textureResult{path: path, img: img, err: err}:
		case <-g.done:
		}
	}()
}

// Poll applies finished texture loads. It must run on the render thread.
// It reports whether a texture was applied.
func (g *Ground) Poll() bool {
	applied := false
	for {
		select {
		case r := <-g.textures:
			if g.apply(r) {
				applied = true
			}
		default:
			return applied
		}
	}
}

func (g *Ground) apply(r textureResult) bool {
	if g.disposed {
		return false
	}
	if r.err != nil {
		g.log.Warn("ground texture not loaded", zap.String("path", r.path), zap.Error(r.err))
		return false
	}
	if err := g.plane.SetTexture(r.img); err != nil {
		g.log.Warn("ground texture rejected", zap.String("path", r.path), zap.Error(err))
		return false
	}
	b := r.img.Bounds()
	g.log.Info("ground texture applied",
		zap.String("path", r.path),
		zap.Int("width", b.Dx()),
		zap.Int("height", b.Dy()),
	)
	return true
}

// Dispose releases the field and the plane. Pending texture loads are
// discarded.
func (g *Ground) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	close(g.done)
	g.field.Dispose()
	g.ctx.Stage.Remove(g.plane)
}

package grass

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/engine/timer"
	"github.com/Faultbox/meadow/internal/stage"
	"github.com/Faultbox/meadow/pkg/math"
)

// MaxBlades caps the instance count of one field.
const MaxBlades = 1 << 22

var (
	// ErrDisposed is returned by every operation on a disposed field.
	ErrDisposed = errors.New("grass: field disposed")
	// ErrInvalidConfig is returned for a configuration that cannot be built.
	ErrInvalidConfig = errors.New("grass: invalid config")
)

// Mesh is an instanced blade mesh living on the GPU.
type Mesh interface {
	stage.Drawable
	InstanceCount() int
}

// Device turns host-side geometry into renderable meshes. instances holds
// count packed matrices of FloatsPerInstance floats each.
type Device interface {
	NewMesh(blade *Blade, instances []float32, count int, mat *Material) (Mesh, error)
}

// Config is the mutable part of a field. Changing the footprint or the
// blade count requires a full rebuild; wind strength does not.
type Config struct {
	Width        float32
	Height       float32
	NumBlades    int
	WindStrength float32
}

func (c Config) validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: footprint %gx%g", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.NumBlades <= 0 {
		return fmt.Errorf("%w: %d blades: %w", ErrInvalidConfig, c.NumBlades, ErrEmptyLayout)
	}
	if c.NumBlades > MaxBlades {
		return fmt.Errorf("%w: %d blades exceeds %d", ErrInvalidConfig, c.NumBlades, MaxBlades)
	}
	return nil
}

// Options are set at construction. Only Outline changes afterwards,
// through SetOutline.
type Options struct {
	Rand           Source // nil seeds from the wall clock
	RandomRotation bool
	VertexCount    int
	SlimScale      float32
	BladeWidth     float32
	Outline        bool
	OutlineScale   float32
	OutlineColor   math.Vec3
	Shading        ShadingModel
	Colors         ShadingParams
	Wind           WindParams
	TickInterval   time.Duration
}

// DefaultOptions returns a 15-vertex blade with outline and gradient shading,
// ticking at roughly 60Hz.
func DefaultOptions() Options {
	return Options{
		RandomRotation: true,
		VertexCount:    15,
		SlimScale:      1,
		BladeWidth:     0.08,
		Outline:        true,
		OutlineScale:   1.08,
		OutlineColor:   math.Vec3{X: 0.04, Y: 0.12, Z: 0.02},
		Shading:        ShadingGradient,
		Colors:         DefaultShadingParams(),
		Wind:           DefaultWindParams(),
		TickInterval:   16 * time.Millisecond,
	}
}

// State is the lifecycle position of a field.
type State int

const (
	StateUninitialized State = iota
	StateBuilt
	StateAnimating
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBuilt:
		return "built"
	case StateAnimating:
		return "animating"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Field is an instanced grass field with an optional outline pass.
//
// All methods must be called from the thread that polls the scheduler and
// renders the stage; nothing here is synchronized.
type Field struct {
	ctx    *stage.Context
	device Device
	log    *zap.Logger

	cfg  Config
	opts Options

	uniforms  *Uniforms
	blade     *Blade
	instances []Instance
	fill      Mesh
	outline   Mesh

	state   State
	ticker  timer.Handle
	origin  time.Time
	started bool
}

// New builds a field and adds its meshes to ctx.Stage.
func New(ctx *stage.Context, device Device, cfg Config, opts Options) (*Field, error) {
	if opts.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultOptions().TickInterval
	}
	if opts.OutlineScale <= 0 {
		opts.OutlineScale = 1
	}

	f := &Field{
		ctx:    ctx,
		device: device,
		log:    ctx.Log.Named("grass"),
		cfg:    cfg,
		opts:   opts,
		uniforms: &Uniforms{
			WindStrength:  cfg.WindStrength,
			WindDirection: WindDirectionAt(0),
		},
	}
	if err := f.rebuild(cfg); err != nil {
		return nil, err
	}
	return f, nil
}

// Rebuild regenerates the blade template and instance transforms from the
// current config and swaps both meshes.
func (f *Field) Rebuild() error {
	if f.state == StateDisposed {
		return ErrDisposed
	}
	return f.rebuild(f.cfg)
}

// Resize changes the footprint and rebuilds. On failure the previous
// footprint and meshes stay in place.
func (f *Field) Resize(width, height float32) error {
	if f.state == StateDisposed {
		return ErrDisposed
	}
	next := f.cfg
	next.Width, next.Height = width, height
	return f.rebuild(next)
}

// SetBladeCount changes the instance count and rebuilds.
func (f *Field) SetBladeCount(n int) error {
	if f.state == StateDisposed {
		return ErrDisposed
	}
	next := f.cfg
	next.NumBlades = n
	return f.rebuild(next)
}

// SetOutline enables or disables the outline pass and rebuilds.
func (f *Field) SetOutline(on bool) error {
	if f.state == StateDisposed {
		return ErrDisposed
	}
	if f.opts.Outline == on {
		return nil
	}
	f.opts.Outline = on
	if err := f.rebuild(f.cfg); err != nil {
		f.opts.Outline = !on
		return err
	}
	return nil
}

// SetWindStrength updates the config and the shared uniform without
// touching geometry.
func (f *Field) SetWindStrength(s float32) error {
	if f.state == StateDisposed {
		return ErrDisposed
	}
	f.cfg.WindStrength = s
	f.uniforms.WindStrength = s
	return nil
}

// Tick sets the time uniform to t seconds and recomputes the wind heading.
// The result depends only on t.
func (f *Field) Tick(t float32) {
	if f.state == StateDisposed {
		return
	}
	f.uniforms.Time = t
	f.uniforms.WindDirection = WindDirectionAt(t)
}

// StartAnimation schedules Tick every TickInterval of wall-clock time.
// Time counts from the first start and is never reset, not by rebuilds
// and not by stopping.
func (f *Field) StartAnimation() error {
	switch f.state {
	case StateDisposed:
		return ErrDisposed
	case StateAnimating:
		return nil
	}

	sched := f.ctx.Scheduler
	if !f.started {
		f.origin = sched.Clock().Now()
		f.started = true
	}
	f.ticker = sched.Every(f.opts.TickInterval, func(now time.Time) {
		f.Tick(float32(now.Sub(f.origin).Seconds()))
	})
	f.state = StateAnimating
	f.log.Debug("animation started", zap.Duration("interval", f.opts.TickInterval))
	return nil
}

// StopAnimation cancels the tick callback. Stopping a field that is not
// animating is a no-op.
func (f *Field) StopAnimation() {
	if f.state != StateAnimating {
		return
	}
	f.ctx.Scheduler.Cancel(f.ticker)
	f.ticker = 0
	f.state = StateBuilt
	f.log.Debug("animation stopped")
}

// Dispose stops the animation, removes both meshes from the stage and
// releases them. Every later call fails with ErrDisposed.
func (f *Field) Dispose() {
	if f.state == StateDisposed {
		return
	}
	f.StopAnimation()
	f.ctx.Stage.Remove(f.drawables()...)
	f.fill, f.outline = nil, nil
	f.blade, f.instances = nil, nil
	f.state = StateDisposed
}

func (f *Field) rebuild(cfg Config) error {
	if err := cfg.validate(); err != nil {
		f.log.Error("grass config rejected",
			zap.Float32("width", cfg.Width),
			zap.Float32("height", cfg.Height),
			zap.Int("blades", cfg.NumBlades),
			zap.Error(err),
		)
		return err
	}

	blade, err := BuildBlade(f.opts.VertexCount, f.opts.SlimScale, f.opts.BladeWidth)
	if err != nil {
		f.log.Error("blade template rejected",
			zap.Int("vertices", f.opts.VertexCount),
			zap.Float32("slim_scale", f.opts.SlimScale),
			zap.Float32("blade_width", f.opts.BladeWidth),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	instances := GenerateLayout(cfg.Width, cfg.Height, cfg.NumBlades, f.opts.Rand, f.opts.RandomRotation)
	buf := PackMatrices(instances)
	if err := ValidateLayout(buf, cfg.NumBlades); err != nil {
		f.log.Error("placement buffer rejected",
			zap.Int("blades", cfg.NumBlades),
			zap.Int("floats", len(buf)),
			zap.Error(err),
		)
		return err
	}

	fill, err := f.device.NewMesh(blade, buf, len(instances), f.material(MaterialFill, blade))
	if err != nil {
		f.log.Error("fill mesh not created", zap.Int("blades", cfg.NumBlades), zap.Error(err))
		return fmt.Errorf("creating fill mesh: %w", err)
	}
	var outline Mesh
	if f.opts.Outline {
		outline, err = f.device.NewMesh(blade, buf, len(instances), f.material(MaterialOutline, blade))
		if err != nil {
			fill.Dispose()
			f.log.Error("outline mesh not created", zap.Int("blades", cfg.NumBlades), zap.Error(err))
			return fmt.Errorf("creating outline mesh: %w", err)
		}
	}

	// New meshes go on stage before the old ones leave, so no frame is
	// drawn without grass. The outline is added first to render behind.
	old := f.drawables()
	if outline != nil {
		f.ctx.Stage.Add(outline)
	}
	f.ctx.Stage.Add(fill)
	f.ctx.Stage.Remove(old...)

	f.cfg = cfg
	f.uniforms.WindStrength = cfg.WindStrength
	f.blade = blade
	f.instances = instances
	f.fill, f.outline = fill, outline
	if f.state == StateUninitialized {
		f.state = StateBuilt
	}

	f.log.Info("grass field built",
		zap.Float32("width", cfg.Width),
		zap.Float32("height", cfg.Height),
		zap.Int("blades", len(instances)),
		zap.Int("triangles", blade.TriangleCount()*len(instances)),
		zap.Bool("outline", outline != nil),
	)
	return nil
}

func (f *Field) material(kind MaterialKind, blade *Blade) *Material {
	scale := float32(1)
	if kind == MaterialOutline {
		scale = f.opts.OutlineScale
	}
	return &Material{
		Kind:         kind,
		Uniforms:     f.uniforms,
		Wind:         f.opts.Wind,
		Scale:        scale,
		BladeCenter:  blade.Center(),
		Shading:      f.opts.Shading,
		Colors:       f.opts.Colors,
		OutlineColor: f.opts.OutlineColor,
	}
}

func (f *Field) drawables() []stage.Drawable {
	var ds []stage.Drawable
	if f.outline != nil {
		ds = append(ds, f.outline)
	}
	if f.fill != nil {
		ds = append(ds, f.fill)
	}
	return ds
}

// Config returns the current configuration.
func (f *Field) Config() Config { return f.cfg }

// Options returns the construction options.
func (f *Field) Options() Options { return f.opts }

// State returns the lifecycle state.
func (f *Field) State() State { return f.state }

// Uniforms returns a snapshot of the shared uniform state.
func (f *Field) Uniforms() Uniforms { return *f.uniforms }

// Blade returns the current blade template.
func (f *Field) Blade() *Blade { return f.blade }

// Instances returns a copy of the current instance transforms.
func (f *Field) Instances() []Instance {
	return append([]Instance(nil), f.instances...)
}

// Fill returns the fill mesh, nil once disposed.
func (f *Field) Fill() Mesh { return f.fill }

// Outline returns the outline mesh, nil when disabled or disposed.
func (f *Field) Outline() Mesh { return f.outline }

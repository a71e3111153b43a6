// Package viewer implements the interactive meadow window: the main loop,
// camera controls and key bindings.
package viewer

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/camera"
	"github.com/Faultbox/meadow/internal/engine/input"
	"github.com/Faultbox/meadow/internal/engine/renderer"
	"github.com/Faultbox/meadow/internal/engine/timer"
	"github.com/Faultbox/meadow/internal/engine/window"
	"github.com/Faultbox/meadow/internal/ground"
	"github.com/Faultbox/meadow/internal/stage"
	"github.com/Faultbox/meadow/pkg/math"
)

const title = "Meadow"

// Viewer is the running application.
type Viewer struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	ctx      *stage.Context
	ground   *ground.Ground
	controls *Controls

	running  bool
	dragging bool
}

// New opens the window and builds the scene.
func New(cfg *config.Config, log *zap.Logger) (*Viewer, error) {
	v := &Viewer{cfg: cfg, log: log}

	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    cfg.Graphics.MSAA,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	fbWidth, fbHeight := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:      fbWidth,
		Height:     fbHeight,
		ClearColor: math.Vec3{X: 0.53, Y: 0.75, Z: 0.92},
		MSAA:       cfg.Graphics.MSAA > 0,
	}, log.Named("renderer"))
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	gcfg, err := ground.FromConfig(cfg)
	if err != nil {
		v.Close()
		return nil, err
	}

	v.ctx = stage.NewContext(stage.New(), timer.NewScheduler(timer.SystemClock{}), log)
	v.ground, err = ground.New(v.ctx, v.renderer, gcfg)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to create ground: %w", err)
	}
	if err := v.ground.StartAnimation(); err != nil {
		v.Close()
		return nil, err
	}

	v.input = input.New()
	v.camera = camera.NewOrbitCamera()
	v.camera.FitToBounds(gcfg.Grass.Width, gcfg.Grass.Height)
	v.controls = NewControls(v.ground, gcfg.Grass, gcfg.GrassOptions.Outline)

	log.Info("viewer initialized")
	return v, nil
}

// Run drives the main loop until the window closes or Esc is pressed.
func (v *Viewer) Run() error {
	v.running = true

	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting main loop")

	for v.running {
		if v.input.Update() {
			v.running = false
			break
		}
		for _, event := range v.input.Events() {
			v.handle(event)
		}

		// Ticks run here, on the render thread, at their own cadence.
		v.ctx.Scheduler.Poll()
		v.ground.Poll()

		v.renderer.Begin()
		v.ctx.Stage.Draw(v.camera.ViewProj(v.renderer.Aspect()))
		v.renderer.End()

		v.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			fps := float64(frameCount) / elapsed.Seconds()
			v.window.SetTitle(fmt.Sprintf("%s - %d blades - wind %.1f - %.0f fps",
				title, v.controls.Blades(), v.controls.Wind(), fps))
			v.log.Debug("fps", zap.Float64("fps", fps))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (v *Viewer) handle(event input.Event) {
	switch event.Type {
	case input.EventWindowResize:
		v.renderer.Resize(v.window.DrawableSize())

	case input.EventKeyDown:
		if event.Repeat && event.Key != sdl.K_UP && event.Key != sdl.K_DOWN {
			return
		}
		action, err := v.controls.HandleKey(event.Key)
		if err != nil {
			v.log.Warn("change rejected", zap.String("key", sdl.GetKeyName(event.Key)), zap.Error(err))
			return
		}
		switch action {
		case ActionQuit:
			v.running = false
		case ActionChanged:
			w, h := v.controls.Footprint()
			v.log.Debug("field changed",
				zap.Float32("wind", v.controls.Wind()),
				zap.Int("blades", v.controls.Blades()),
				zap.Float32("width", w),
				zap.Float32("height", h),
			)
		}

	case input.EventMouseDown:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = true
		}
	case input.EventMouseUp:
		if event.Button == sdl.BUTTON_LEFT {
			v.dragging = false
		}
	case input.EventMouseMove:
		if v.dragging {
			v.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
		}
	case input.EventMouseWheel:
		v.camera.HandleZoom(event.Wheel)
	}
}

// Close releases the scene, the renderer and the window, in that order.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.ground != nil {
		v.ground.Dispose()
	}
	if v.ctx != nil {
		v.ctx.Stage.Clear()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/meadow/internal/grass"
)

// Target is what the keyboard controls act on. *ground.Ground implements it.
type Target interface {
	SetWindStrength(s float32) error
	SetBladeCount(n int) error
	Resize(width, height float32) error
	SetOutline(on bool) error
	ToggleAnimation() error
}

// Action is the outcome of a key press.
type Action int

const (
	ActionNone Action = iota
	ActionChanged
	ActionQuit
)

const windStep = 0.1

// altFootprint is the footprint R switches to.
var altFootprint = [2]float32{20, 5}

// Controls maps keys to field mutations and tracks the values they step.
// Tracked values only move when the target accepts the change.
type Controls struct {
	target Target

	wind    float32
	blades  int
	outline bool

	home [2]float32
	away [2]float32
	wide bool
}

// NewControls starts from the field's current config.
func NewControls(target Target, cfg grass.Config, outline bool) *Controls {
	home := [2]float32{cfg.Width, cfg.Height}
	away := altFootprint
	if home == away {
		away = [2]float32{10, 10}
	}
	return &Controls{
		target:  target,
		wind:    cfg.WindStrength,
		blades:  cfg.NumBlades,
		outline: outline,
		home:    home,
		away:    away,
	}
}

// HandleKey applies the binding for key, if any.
func (c *Controls) HandleKey(key sdl.Keycode) (Action, error) {
	switch key {
	case sdl.K_ESCAPE:
		return ActionQuit, nil

	case sdl.K_UP, sdl.K_DOWN:
		next := c.wind + windStep
		if key == sdl.K_DOWN {
			next = max(c.wind-windStep, 0)
		}
		if err := c.target.SetWindStrength(next); err != nil {
			return ActionNone, err
		}
		c.wind = next

	case sdl.K_EQUALS, sdl.K_KP_PLUS, sdl.K_MINUS, sdl.K_KP_MINUS:
		next := min(c.blades*2, grass.MaxBlades)
		if key == sdl.K_MINUS || key == sdl.K_KP_MINUS {
			next = max(c.blades/2, 1)
		}
		if next == c.blades {
			return ActionNone, nil
		}
		if err := c.target.SetBladeCount(next); err != nil {
			return ActionNone, err
		}
		c.blades = next

	case sdl.K_r:
		size := c.away
		if c.wide {
			size = c.home
		}
		if err := c.target.Resize(size[0], size[1]); err != nil {
			return ActionNone, err
		}
		c.wide = !c.wide

	case sdl.K_o:
		if err := c.target.SetOutline(!c.outline); err != nil {
			return ActionNone, err
		}
		c.outline = !c.outline

	case sdl.K_SPACE:
		if err := c.target.ToggleAnimation(); err != nil {
			return ActionNone, err
		}

	default:
		return ActionNone, nil
	}
	return ActionChanged, nil
}

// Wind returns the tracked wind strength.
func (c *Controls) Wind() float32 { return c.wind }

// Blades returns the tracked blade count.
func (c *Controls) Blades() int { return c.blades }

// Footprint returns the footprint the field currently has.
func (c *Controls) Footprint() (width, height float32) {
	if c.wide {
		return c.away[0], c.away[1]
	}
	return c.home[0], c.home[1]
}

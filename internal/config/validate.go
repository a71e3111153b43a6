package config

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/meadow/internal/grass"
)

// Validate reports the first problem found in the grass and ground sections.
func (c *Config) Validate() error {
	g := c.Grass
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("grass field size %gx%g must be positive", g.Width, g.Height)
	}
	if g.NumBlades <= 0 || g.NumBlades > grass.MaxBlades {
		return fmt.Errorf("grass num_blades %d must be in [1, %d]", g.NumBlades, grass.MaxBlades)
	}
	if g.VertexCount < 5 || g.VertexCount%2 == 0 {
		return fmt.Errorf("grass vertex_count %d must be odd and at least 5", g.VertexCount)
	}
	if g.SlimScale <= 0 {
		return fmt.Errorf("grass slim_scale %g must be positive", g.SlimScale)
	}
	if g.TickInterval <= 0 {
		return errors.New("grass tick_interval must be positive")
	}
	if c.Ground.Size <= 0 {
		return fmt.Errorf("ground size %g must be positive", c.Ground.Size)
	}
	if c.Graphics.MSAA < 0 {
		return fmt.Errorf("graphics msaa %d must not be negative", c.Graphics.MSAA)
	}
	switch g.Shading {
	case "gradient", "flat":
	default:
		return fmt.Errorf("grass shading %q is not one of gradient, flat", g.Shading)
	}

	colors := []struct{ key, hex string }{
		{"grass.base_color", g.BaseColor},
		{"grass.tip_color", g.TipColor},
		{"grass.flat_color", g.FlatColor},
		{"grass.outline_color", g.OutlineColor},
		{"ground.color", c.Ground.Color},
	}
	for _, col := range colors {
		if _, err := ParseColor(col.hex); err != nil {
			return fmt.Errorf("%s: %w", col.key, err)
		}
	}
	return nil
}

// ParseColor converts a "#rrggbb" string into normalized RGB components.
func ParseColor(hex string) ([3]float32, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return [3]float32{}, err
	}
	r, g, b := col.Clamped().RGB255()
	return [3]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255}, nil
}

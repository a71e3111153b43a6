package ground

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/meadow/internal/config"
	"github.com/Faultbox/meadow/internal/engine/lighting"
	"github.com/Faultbox/meadow/internal/grass"
	"github.com/Faultbox/meadow/pkg/math"
)

// FromConfig translates the file/flag configuration into a ground Config.
// c must have passed Validate.
func FromConfig(c *config.Config) (Config, error) {
	g := c.Grass

	shading, err := grass.ParseShadingModel(g.Shading)
	if err != nil {
		return Config{}, err
	}

	colors := make(map[string]math.Vec3, 5)
	for key, hex := range map[string]string{
		"base":    g.BaseColor,
		"tip":     g.TipColor,
		"flat":    g.FlatColor,
		"outline": g.OutlineColor,
		"ground":  c.Ground.Color,
	} {
		rgb, err := config.ParseColor(hex)
		if err != nil {
			return Config{}, fmt.Errorf("%s color: %w", key, err)
		}
		colors[key] = math.Vec3{X: rgb[0], Y: rgb[1], Z: rgb[2]}
	}

	opts := grass.DefaultOptions()
	if g.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(g.Seed, g.Seed))
	}
	opts.RandomRotation = g.RandomRotation
	opts.VertexCount = g.VertexCount
	opts.SlimScale = g.SlimScale
	opts.BladeWidth = g.BladeWidth
	opts.Outline = g.Outline
	opts.OutlineScale = g.OutlineScale
	opts.OutlineColor = colors["outline"]
	opts.Shading = shading
	opts.TickInterval = g.TickInterval
	opts.Wind = grass.WindParams{
		LeanAmplitude:   g.LeanAmplitude,
		NoiseFrequency:  g.NoiseFrequency,
		StrengthScale:   g.StrengthScale,
		DirectionFactor: g.DirectionFactor,
	}
	opts.Colors.Base = colors["base"]
	opts.Colors.Tip = colors["tip"]
	opts.Colors.Flat = colors["flat"]
	opts.Colors.LightDir = lighting.SunDirection(c.Lighting.SunLongitude, c.Lighting.SunLatitude)
	opts.Colors.MinLambert = g.MinLambert
	opts.Colors.Ambient = g.Ambient

	return Config{
		Size:          c.Ground.Size,
		Color:         colors["ground"],
		TextureRepeat: c.Ground.TextureRepeat,
		Texture:       c.Ground.Texture,
		Grass: grass.Config{
			Width:        g.Width,
			Height:       g.Height,
			NumBlades:    g.NumBlades,
			WindStrength: g.WindStrength,
		},
		GrassOptions: opts,
	}, nil
}

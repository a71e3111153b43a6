// Package config handles viewer and grass field configuration.
package config

import "time"

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Grass    GrassConfig    `yaml:"grass"`
	Ground   GroundConfig   `yaml:"ground"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	MSAA       int  `yaml:"msaa"` // samples per pixel, 0 disables
}

// GrassConfig holds grass field settings.
type GrassConfig struct {
	Width          float32       `yaml:"width"`
	Height         float32       `yaml:"height"`
	NumBlades      int           `yaml:"num_blades"`
	WindStrength   float32       `yaml:"wind_strength"`
	VertexCount    int           `yaml:"vertex_count"`
	SlimScale      float32       `yaml:"slim_scale"`
	BladeWidth     float32       `yaml:"blade_width"`
	RandomRotation bool          `yaml:"random_rotation"`
	Seed           uint64        `yaml:"seed"` // 0 seeds from the wall clock
	Outline        bool          `yaml:"outline"`
	OutlineScale   float32       `yaml:"outline_scale"`
	Shading        string        `yaml:"shading"` // gradient | flat
	TickInterval   time.Duration `yaml:"tick_interval"`

	LeanAmplitude   float32 `yaml:"lean_amplitude"`
	NoiseFrequency  float32 `yaml:"noise_frequency"`
	StrengthScale   float32 `yaml:"strength_scale"`
	DirectionFactor float32 `yaml:"direction_factor"`

	BaseColor    string  `yaml:"base_color"`
	TipColor     string  `yaml:"tip_color"`
	FlatColor    string  `yaml:"flat_color"`
	OutlineColor string  `yaml:"outline_color"`
	MinLambert   float32 `yaml:"min_lambert"`
	Ambient      float32 `yaml:"ambient"`
}

// GroundConfig holds ground plane settings.
type GroundConfig struct {
	Size    float32 `yaml:"size"`
	Color   string  `yaml:"color"`
	Texture string  `yaml:"texture"` // optional image path, loaded in the background

	TextureRepeat float32 `yaml:"texture_repeat"` // tiles across the plane
}

// LightingConfig positions the fixed sun used by the Lambert term.
type LightingConfig struct {
	SunLongitude float32 `yaml:"sun_longitude"` // degrees around Y
	SunLatitude  float32 `yaml:"sun_latitude"`  // degrees above the horizon
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			MSAA:       4,
		},
		Grass: GrassConfig{
			Width:          10,
			Height:         10,
			NumBlades:      1000,
			WindStrength:   5,
			VertexCount:    15,
			SlimScale:      1,
			BladeWidth:     0.08,
			RandomRotation: true,
			Outline:        true,
			OutlineScale:   1.08,
			Shading:        "gradient",
			TickInterval:   16 * time.Millisecond,

			LeanAmplitude:   0.2,
			NoiseFrequency:  0.35,
			StrengthScale:   1,
			DirectionFactor: 1,

			BaseColor:    "#1f4d12",
			TipColor:     "#a8d45a",
			FlatColor:    "#33cc33",
			OutlineColor: "#0b1f06",
			MinLambert:   0.35,
			Ambient:      0.1,
		},
		Ground: GroundConfig{
			Size:          100,
			Color:         "#ffffff",
			TextureRepeat: 10,
		},
		Lighting: LightingConfig{
			SunLongitude: 30,
			SunLatitude:  55,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

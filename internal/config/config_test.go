package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Grass.Width != 10 || cfg.Grass.Height != 10 {
		t.Errorf("expected 10x10 field, got %gx%g", cfg.Grass.Width, cfg.Grass.Height)
	}
	if cfg.Grass.NumBlades != 1000 {
		t.Errorf("expected 1000 blades, got %d", cfg.Grass.NumBlades)
	}
	if cfg.Grass.WindStrength != 5 {
		t.Errorf("expected wind strength 5, got %g", cfg.Grass.WindStrength)
	}
	if cfg.Grass.StrengthScale != 1 {
		t.Errorf("expected strength scale 1, got %g", cfg.Grass.StrengthScale)
	}
	if cfg.Grass.VertexCount != 15 {
		t.Errorf("expected 15 blade vertices, got %d", cfg.Grass.VertexCount)
	}
	if cfg.Grass.NoiseFrequency != 0.35 {
		t.Errorf("expected noise frequency 0.35, got %g", cfg.Grass.NoiseFrequency)
	}
	if cfg.Grass.TickInterval != 16*time.Millisecond {
		t.Errorf("expected 16ms tick interval, got %v", cfg.Grass.TickInterval)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true

grass:
  width: 20
  height: 5
  num_blades: 5000
  wind_strength: 0.5
  shading: flat
  outline: false
  tick_interval: 33ms
  tip_color: "#ffee00"

ground:
  texture: "textures/soil.webp"

logging:
  level: "debug"
  log_file: "meadow.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Grass.Width != 20 || cfg.Grass.Height != 5 {
		t.Errorf("expected 20x5 field, got %gx%g", cfg.Grass.Width, cfg.Grass.Height)
	}
	if cfg.Grass.NumBlades != 5000 {
		t.Errorf("expected 5000 blades, got %d", cfg.Grass.NumBlades)
	}
	if cfg.Grass.Shading != "flat" {
		t.Errorf("expected flat shading, got %s", cfg.Grass.Shading)
	}
	if cfg.Grass.Outline {
		t.Error("expected outline to be disabled")
	}
	if cfg.Grass.TickInterval != 33*time.Millisecond {
		t.Errorf("expected 33ms tick interval, got %v", cfg.Grass.TickInterval)
	}
	// Untouched keys keep their defaults.
	if cfg.Grass.VertexCount != 15 {
		t.Errorf("expected default vertex count 15, got %d", cfg.Grass.VertexCount)
	}
	if cfg.Ground.Texture != "textures/soil.webp" {
		t.Errorf("expected ground texture path, got %s", cfg.Ground.Texture)
	}
	if cfg.Logging.LogFile != "meadow.log" {
		t.Errorf("expected log file 'meadow.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
grass:
  num_blades: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/meadow.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Grass.Width = 0 }, "size"},
		{"negative height", func(c *Config) { c.Grass.Height = -1 }, "size"},
		{"no blades", func(c *Config) { c.Grass.NumBlades = 0 }, "num_blades"},
		{"too many blades", func(c *Config) { c.Grass.NumBlades = 1 << 30 }, "num_blades"},
		{"even vertex count", func(c *Config) { c.Grass.VertexCount = 14 }, "vertex_count"},
		{"tiny vertex count", func(c *Config) { c.Grass.VertexCount = 3 }, "vertex_count"},
		{"zero slim scale", func(c *Config) { c.Grass.SlimScale = 0 }, "slim_scale"},
		{"zero tick", func(c *Config) { c.Grass.TickInterval = 0 }, "tick_interval"},
		{"unknown shading", func(c *Config) { c.Grass.Shading = "pbr" }, "shading"},
		{"bad color", func(c *Config) { c.Grass.TipColor = "green" }, "tip_color"},
		{"bad ground color", func(c *Config) { c.Ground.Color = "#12" }, "ground.color"},
		{"zero ground", func(c *Config) { c.Ground.Size = 0 }, "ground size"},
		{"negative msaa", func(c *Config) { c.Graphics.MSAA = -2 }, "msaa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateReportsColorsInOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		cfg := Default()
		cfg.Grass.BaseColor = "brown"
		cfg.Grass.OutlineColor = "black"
		cfg.Ground.Color = "#1"

		err := cfg.Validate()
		if err == nil {
			t.Fatal("expected validation error, got nil")
		}
		if !strings.HasPrefix(err.Error(), "grass.base_color") {
			t.Fatalf("expected the first bad color to be reported, got %v", err)
		}
	}
}

func TestParseColor(t *testing.T) {
	rgb, err := ParseColor("#ff8000")
	if err != nil {
		t.Fatalf("ParseColor: %v", err)
	}
	if rgb[0] != 1 || rgb[2] != 0 {
		t.Errorf("expected (1, ~0.5, 0), got %v", rgb)
	}
	if rgb[1] < 0.49 || rgb[1] > 0.51 {
		t.Errorf("expected green ~0.5, got %v", rgb[1])
	}

	if _, err := ParseColor("not-a-color"); err == nil {
		t.Error("expected error for malformed color")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "meadow.yaml")
	if err := os.WriteFile(configPath, []byte("grass:\n  num_blades: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find meadow.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "blades flag",
			setup: func() { *flagBlades = 4096 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grass.NumBlades != 4096 {
					t.Errorf("expected 4096 blades, got %d", cfg.Grass.NumBlades)
				}
			},
			teardown: func() { *flagBlades = 0 },
		},
		{
			name:  "wind flag zero is honored",
			setup: func() { *flagWind = 0 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grass.WindStrength != 0 {
					t.Errorf("expected wind strength 0, got %g", cfg.Grass.WindStrength)
				}
			},
			teardown: func() { *flagWind = -1 },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 42 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Grass.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Grass.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "meadow.yaml")

	yamlContent := `
grass:
  num_blades: 2000
  wind_strength: 2
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagBlades = 3000
	defer func() {
		*flagConfig = ""
		*flagBlades = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Grass.NumBlades != 3000 {
		t.Errorf("expected 3000 blades from flag, got %d", cfg.Grass.NumBlades)
	}
	if cfg.Grass.WindStrength != 2 {
		t.Errorf("expected wind strength 2 from file, got %g", cfg.Grass.WindStrength)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "meadow.yaml")

	cfg := Default()
	cfg.Grass.NumBlades = 777
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Grass.NumBlades != 777 {
		t.Errorf("expected 777 blades after reload, got %d", loaded.Grass.NumBlades)
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\"): %v", err)
	}
	if cfg.Grass.NumBlades != Default().Grass.NumBlades {
		t.Errorf("expected default blades, got %d", cfg.Grass.NumBlades)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("grass:\n  vertex_count: 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil || !strings.Contains(err.Error(), "vertex_count") {
		t.Errorf("expected vertex_count validation error, got %v", err)
	}
}

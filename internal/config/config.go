package config

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/field"
	"github.com/san-kum/metaballs/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAttraction = physics.DefaultAttraction
	DefaultMaxSpeed   = physics.DefaultMaxSpeed
	DefaultResolution = field.DefaultResolution
	DefaultCeiling    = field.DefaultCeiling
	DefaultThreshold  = 1.0
	DefaultFrameDt    = 1000.0 / 60.0
	DefaultMaxElapsed = 50.0
	DefaultSpeed      = 1.0
	DefaultFrames     = 600
)

type Config struct {
	Preset  string          `yaml:"preset,omitempty"`
	Seed    uint64          `yaml:"seed"`
	Backend string          `yaml:"backend"`
	Circles []dynamo.Circle `yaml:"circles"`
	Physics PhysicsConfig   `yaml:"physics"`
	Field   FieldConfig     `yaml:"field"`
	Run     RunConfig       `yaml:"run"`
}

type PhysicsConfig struct {
	Attraction float64 `yaml:"attraction"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Legacy     bool    `yaml:"legacy_accumulation"`
}

type FieldConfig struct {
	Resolution int     `yaml:"resolution"`
	Ceiling    float64 `yaml:"ceiling"`
	Threshold  float64 `yaml:"threshold"`
}

// RunConfig times are in milliseconds, matching the velocity units.
type RunConfig struct {
	FrameDt    float64 `yaml:"frame_dt"`
	MaxElapsed float64 `yaml:"max_elapsed"`
	Speed      float64 `yaml:"speed"`
	Frames     int     `yaml:"frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:  "classic",
		Backend: "auto",
		Circles: ClassicScene(),
		Physics: PhysicsConfig{
			Attraction: DefaultAttraction,
			MaxSpeed:   DefaultMaxSpeed,
		},
		Field: FieldConfig{
			Resolution: DefaultResolution,
			Ceiling:    DefaultCeiling,
			Threshold:  DefaultThreshold,
		},
		Run: RunConfig{
			FrameDt:    DefaultFrameDt,
			MaxElapsed: DefaultMaxElapsed,
			Speed:      DefaultSpeed,
			Frames:     DefaultFrames,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := DefaultConfig()
	cfg.Circles = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	// A file without circles gets the scene of its preset.
	if len(cfg.Circles) == 0 {
		name := cfg.Preset
		if name == "" {
			name = "classic"
		}
		if err := cfg.ApplyPreset(name); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Field.Resolution < 1 {
		return fmt.Errorf("field.resolution must be at least 1, got %d: %w", c.Field.Resolution, dynamo.ErrParameterBounds)
	}
	if c.Field.Ceiling <= 0 {
		return fmt.Errorf("field.ceiling must be positive, got %f: %w", c.Field.Ceiling, dynamo.ErrParameterBounds)
	}
	if c.Physics.MaxSpeed <= 0 {
		return fmt.Errorf("physics.max_speed must be positive, got %f: %w", c.Physics.MaxSpeed, dynamo.ErrParameterBounds)
	}
	if c.Run.FrameDt <= 0 || c.Run.MaxElapsed <= 0 {
		return fmt.Errorf("run.frame_dt and run.max_elapsed must be positive: %w", dynamo.ErrParameterBounds)
	}
	if c.Run.Speed < 0 {
		return fmt.Errorf("run.speed must not be negative, got %f: %w", c.Run.Speed, dynamo.ErrParameterBounds)
	}
	return dynamo.Scene(c.Circles).Validate()
}

// Scene returns a copy of the configured circles.
func (c *Config) Scene() dynamo.Scene {
	return dynamo.Scene(c.Circles).Clone()
}

// ApplyPreset replaces circles with the named preset.
func (c *Config) ApplyPreset(name string) error {
	scene := GetPreset(name)
	if scene == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Preset = name
	c.Circles = scene
	return nil
}

// RandomScene scatters n circles over the torus with radii in [0.15, 0.35)
// and velocities below the default speed clamp.
func RandomScene(n int, seed uint64) dynamo.Scene {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	scene := make(dynamo.Scene, n)
	for i := range scene {
		scene[i] = dynamo.Circle{
			X:  rng.Float64()*2 - 1,
			Y:  rng.Float64()*2 - 1,
			R:  0.15 + rng.Float64()*0.2,
			DX: (rng.Float64()*2 - 1) * DefaultMaxSpeed * 0.5,
			DY: (rng.Float64()*2 - 1) * DefaultMaxSpeed * 0.5,
		}
	}
	return scene
}

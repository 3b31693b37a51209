package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SeokHunPark/dicebox/internal/phys"
)

const (
	DefaultKind  = "d6"
	DefaultCount = 2
	DefaultColor = "ivory"
)

type Config struct {
	Kind    string        `yaml:"kind"`
	Count   int           `yaml:"count"`
	Seed    int64         `yaml:"seed"`
	Color   string        `yaml:"color"`
	Physics PhysicsConfig `yaml:"physics"`
}

type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	Friction       float64 `yaml:"friction"`
	Restitution    float64 `yaml:"restitution"`
	TrayHalfExtent float64 `yaml:"tray_half_extent"`
	WallHeight     float64 `yaml:"wall_height"`
}

func DefaultConfig() *Config {
	p := phys.DefaultParams()
	return &Config{
		Kind:  DefaultKind,
		Count: DefaultCount,
		Color: DefaultColor,
		Physics: PhysicsConfig{
			Gravity:        p.Gravity,
			Friction:       p.Friction,
			Restitution:    p.Restitution,
			TrayHalfExtent: p.TrayHalfExtent,
			WallHeight:     p.WallHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
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

// Params folds the configured physics values onto the solver defaults.
// Unset (zero) values keep their defaults so partial files stay valid.
func (c *Config) Params() phys.Params {
	p := phys.DefaultParams()
	if c.Physics.Gravity > 0 {
		p.Gravity = c.Physics.Gravity
	}
	if c.Physics.Friction > 0 {
		p.Friction = c.Physics.Friction
	}
	if c.Physics.Restitution > 0 {
		p.Restitution = c.Physics.Restitution
	}
	if c.Physics.TrayHalfExtent > 0 {
		p.TrayHalfExtent = c.Physics.TrayHalfExtent
	}
	if c.Physics.WallHeight > 0 {
		p.WallHeight = c.Physics.WallHeight
	}
	return p
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/armtorque/internal/optim"
	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDataDir = ".armtorque"

	// Slider bounds of the control surface.
	MaxMass          = 10.0
	MaxShoulderLimit = 200.0
	MaxElbowLimit    = 100.0
)

type Config struct {
	Gravity float64            `yaml:"gravity" toml:"gravity"`
	Links   physics.Lengths    `yaml:"links" toml:"links"`
	Masses  physics.Masses     `yaml:"masses" toml:"masses"`
	Limits  statics.Limits     `yaml:"limits" toml:"limits"`
	Link3   physics.Convention `yaml:"link3_convention" toml:"link3_convention"`
	Search  optim.ReachSearch  `yaml:"search" toml:"search"`
	DataDir string             `yaml:"data_dir" toml:"data_dir"`
}

func DefaultConfig() *Config {
	arm := physics.NewArm()
	return &Config{
		Gravity: arm.Gravity,
		Links:   arm.Lengths,
		Masses:  arm.Masses,
		Limits:  statics.Limits{Shoulder: 33.0, Elbow: 21.0},
		Link3:   arm.Link3,
		Search:  *optim.DefaultReachSearch(),
		DataDir: DefaultDataDir,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML or TOML file (chosen by extension) over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Arm().Validate(); err != nil {
		return err
	}
	if err := c.Limits.Validate(); err != nil {
		return err
	}
	return c.Search.Validate()
}

// Arm builds the manipulator described by the config.
func (c *Config) Arm() *physics.Arm {
	return &physics.Arm{
		Lengths: c.Links,
		Masses:  c.Masses,
		Gravity: c.Gravity,
		Link3:   c.Link3,
	}
}

// ReachSearch returns a copy of the search settings.
func (c *Config) ReachSearch() *optim.ReachSearch {
	return c.Search.Clone()
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Params flattens the tunable inputs for the control surface and for
// snapshot rows.
func (c *Config) Params() map[string]float64 {
	params := c.Masses.GetParams()
	params["shoulder_limit"] = c.Limits.Shoulder
	params["elbow_limit"] = c.Limits.Elbow
	return params
}

func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "shoulder_limit":
		c.Limits.Shoulder = value
	case "elbow_limit":
		c.Limits.Elbow = value
	default:
		return c.Masses.SetParam(name, value)
	}
	return nil
}

// Bounds returns the control-surface range of a tunable parameter.
func Bounds(name string) (lo, hi float64) {
	switch name {
	case "shoulder_limit":
		return 0, MaxShoulderLimit
	case "elbow_limit":
		return 0, MaxElbowLimit
	}
	return 0, MaxMass
}

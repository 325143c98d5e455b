package config

import (
	"sort"

	"github.com/san-kum/armtorque/internal/optim"
)

var Presets = map[string]func() *Config{
	"default": DefaultConfig,
	"light-payload": func() *Config {
		cfg := DefaultConfig()
		cfg.Masses.Payload = 1.0
		return cfg
	},
	"heavy-payload": func() *Config {
		cfg := DefaultConfig()
		cfg.Masses.Payload = 8.0
		return cfg
	},
	"strong-motors": func() *Config {
		cfg := DefaultConfig()
		cfg.Limits.Shoulder = 60.0
		cfg.Limits.Elbow = 40.0
		return cfg
	},
	"fine-grid": func() *Config {
		cfg := DefaultConfig()
		cfg.Search.Theta1 = optim.AngleRange{Start: -90, Stop: 30, Step: 0.5}
		cfg.Search.Theta2 = optim.AngleRange{Start: 0, Stop: 270.5, Step: 0.5}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

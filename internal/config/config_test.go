package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/armtorque/internal/optim"
	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gravity != 9.87 {
		t.Errorf("expected gravity 9.87, got %v", cfg.Gravity)
	}
	if cfg.Links.L1 != 0.400 || cfg.Links.L2 != 0.450 || cfg.Links.L3 != 0.180 {
		t.Errorf("unexpected links %+v", cfg.Links)
	}
	if cfg.Masses.Payload != 4.0 || cfg.Masses.Elbow != 1.09 {
		t.Errorf("unexpected masses %+v", cfg.Masses)
	}
	if cfg.Limits.Shoulder != 33 || cfg.Limits.Elbow != 21 {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.Search.Tolerance != 0.001 || cfg.Search.TargetHeight != 0.12 || cfg.Search.Theta3 != 90 {
		t.Errorf("unexpected search %+v", cfg.Search)
	}
	if cfg.Link3 != physics.Link3Absolute {
		t.Errorf("expected absolute link 3, got %s", cfg.Link3)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.yaml")
	data := []byte("masses:\n  payload: 2.5\nlimits:\n  elbow: 30\nsearch:\n  tolerance: 0.002\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Masses.Payload != 2.5 {
		t.Errorf("expected payload 2.5, got %v", cfg.Masses.Payload)
	}
	if cfg.Masses.Link1 != 0.367 {
		t.Errorf("unset mass should keep default, got %v", cfg.Masses.Link1)
	}
	if cfg.Limits.Elbow != 30 || cfg.Limits.Shoulder != 33 {
		t.Errorf("unexpected limits %+v", cfg.Limits)
	}
	if cfg.Search.Tolerance != 0.002 || cfg.Search.Theta2.Stop != 271 {
		t.Errorf("unexpected search %+v", cfg.Search)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arm.toml")
	data := []byte("gravity = 9.81\nlink3_convention = \"relative\"\n\n[links]\nl3 = 0.2\n\n[search.theta1]\nstart = -45.0\nstop = 0.0\nstep = 1.0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Gravity != 9.81 || cfg.Links.L3 != 0.2 || cfg.Links.L1 != 0.4 {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.Link3 != physics.Link3Relative {
		t.Errorf("expected relative convention, got %s", cfg.Link3)
	}
	if cfg.Search.Theta1.Start != -45 || cfg.Search.Theta1.Stop != 0 {
		t.Errorf("unexpected theta1 %+v", cfg.Search.Theta1)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("masses:\n  wrist: -0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, statics.ErrNegativeMass) {
		t.Errorf("expected ErrNegativeMass, got %v", err)
	}

	if err := os.WriteFile(path, []byte("search:\n  theta2:\n    step: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, optim.ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"arm.yaml", "arm.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			cfg := DefaultConfig()
			cfg.Masses.Payload = 6.5
			cfg.Search.Workers = 4

			if err := Save(path, cfg); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if *got != *cfg {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("heavy-payload")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Masses.Payload != 8.0 {
		t.Errorf("expected payload 8, got %v", cfg.Masses.Payload)
	}

	cfg.Masses.Payload = 0
	if GetPreset("heavy-payload").Masses.Payload != 8.0 {
		t.Error("presets must not share state")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	params := cfg.Params()
	if len(params) != 8 {
		t.Errorf("expected 8 params, got %d", len(params))
	}
	if err := cfg.SetParam("shoulder_limit", 50); err != nil || cfg.Limits.Shoulder != 50 {
		t.Errorf("SetParam shoulder_limit failed: %v", err)
	}
	if err := cfg.SetParam("wrist", 0.5); err != nil || cfg.Masses.Wrist != 0.5 {
		t.Errorf("SetParam wrist failed: %v", err)
	}
	if err := cfg.SetParam("nope", 1); !errors.Is(err, physics.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}

	if lo, hi := Bounds("elbow_limit"); lo != 0 || hi != 100 {
		t.Errorf("unexpected elbow bounds %v..%v", lo, hi)
	}
	if _, hi := Bounds("payload"); hi != 10 {
		t.Errorf("unexpected payload bound %v", hi)
	}
}

func TestConfigArm(t *testing.T) {
	cfg := DefaultConfig()
	arm := cfg.Arm()
	arm.Masses.Payload = 0
	if cfg.Masses.Payload == 0 {
		t.Error("Arm must not alias config masses")
	}
}

package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Kind != "d6" {
		t.Errorf("expected kind d6, got %s", cfg.Kind)
	}
	if cfg.Count <= 0 {
		t.Error("count should be positive")
	}
	if cfg.Physics.Gravity <= 0 {
		t.Error("gravity should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dicebox.yaml")

	cfg := DefaultConfig()
	cfg.Kind = "d20"
	cfg.Count = 4
	cfg.Seed = 77
	cfg.Physics.Restitution = 0.6

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Kind != "d20" {
		t.Errorf("expected kind d20, got %s", loaded.Kind)
	}
	if loaded.Count != 4 {
		t.Errorf("expected count 4, got %d", loaded.Count)
	}
	if loaded.Seed != 77 {
		t.Errorf("expected seed 77, got %d", loaded.Seed)
	}
	if loaded.Physics.Restitution != 0.6 {
		t.Errorf("expected restitution 0.6, got %f", loaded.Physics.Restitution)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("casino")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Physics.Friction != 0.45 {
		t.Errorf("expected friction 0.45, got %f", cfg.Physics.Friction)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected at least one preset")
	}
}

func TestParams_FoldsOntoDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics = PhysicsConfig{Gravity: 9.8}

	p := cfg.Params()
	if p.Gravity != 9.8 {
		t.Errorf("expected gravity 9.8, got %f", p.Gravity)
	}
	if p.Friction != 0.3 {
		t.Errorf("unset friction should keep default, got %f", p.Friction)
	}
	if p.FixedDt <= 0 {
		t.Error("fixed dt should come from defaults")
	}
}

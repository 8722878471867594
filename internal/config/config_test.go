package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxParticles <= 0 {
		t.Error("max_particles should be positive")
	}
	if cfg.FixedStepMS <= 0 {
		t.Error("fixed_step_ms should be positive")
	}
	if cfg.TimeScale != 1 {
		t.Errorf("expected time scale 1, got %f", cfg.TimeScale)
	}
	if cfg.World.Width <= 0 || cfg.World.Height <= 0 {
		t.Error("world extents should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	cfg := DefaultConfig()
	cfg.TypeCount = 7
	cfg.Integrator.Scheme = "verlet"
	cfg.Rules.Preset = "orbital"
	cfg.Forces.GravityY = 9.8

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.TypeCount != 7 {
		t.Errorf("expected type count 7, got %d", loaded.TypeCount)
	}
	if loaded.Integrator.Scheme != "verlet" {
		t.Errorf("expected scheme verlet, got %s", loaded.Integrator.Scheme)
	}
	if loaded.Rules.Preset != "orbital" {
		t.Errorf("expected preset orbital, got %s", loaded.Rules.Preset)
	}
	if loaded.Forces.GravityY != 9.8 {
		t.Errorf("expected gravity 9.8, got %f", loaded.Forces.GravityY)
	}
}

func TestLoadPartialUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("count: 50\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Count != 50 {
		t.Errorf("expected count 50, got %d", cfg.Count)
	}
	if cfg.MaxParticles != DefaultMaxParticles {
		t.Errorf("expected default max particles, got %d", cfg.MaxParticles)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/sim.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetScenario(t *testing.T) {
	cfg := GetScenario("orbits")
	if cfg == nil {
		t.Fatal("expected scenario, got nil")
	}
	if cfg.Integrator.Scheme != "verlet" {
		t.Errorf("expected scheme verlet, got %s", cfg.Integrator.Scheme)
	}

	if GetScenario("nonexistent") != nil {
		t.Error("expected nil for unknown scenario")
	}
}

func TestListScenarios(t *testing.T) {
	names := ListScenarios()
	if len(names) == 0 {
		t.Error("expected at least one scenario")
	}
}

package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Arena.Width != 900 || cfg.Arena.Height != 600 {
		t.Errorf("arena = %vx%v, want 900x600", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Pheromone.DepositInterval != 2 {
		t.Errorf("deposit interval = %v, want 2", cfg.Pheromone.DepositInterval)
	}
	if cfg.Clock.MaxTimeScale != 1440 {
		t.Errorf("max time scale = %v, want 1440", cfg.Clock.MaxTimeScale)
	}
}

func TestComputeDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"FoodRadius", cfg.Derived.FoodRadius, cfg.Food.Diameter / 2},
		{"PheromoneRadius", cfg.Derived.PheromoneRadius, cfg.Pheromone.Diameter / 2},
		{"HealthDecay", cfg.Derived.HealthDecay, cfg.Ant.MaxHealth / cfg.Ant.Lifespan},
		{"FoodTouch", cfg.Derived.FoodTouch, cfg.Food.Diameter/2 + cfg.Ant.Length*cfg.Ant.TouchFactor},
		{"ColonyTouch", cfg.Derived.ColonyTouch, cfg.Colony.Radius + cfg.Ant.Length*cfg.Ant.TouchFactor},
		{"SenseRadiusSq", cfg.Derived.SenseRadiusSq, cfg.Ant.SenseRadius * cfg.Ant.SenseRadius},
	}

	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %f, want %f", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	data := []byte("arena:\n  width: 400\npopulation:\n  ants: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Arena.Width != 400 {
		t.Errorf("width = %v, want 400", cfg.Arena.Width)
	}
	// Fields absent from the file keep their defaults
	if cfg.Arena.Height != 600 {
		t.Errorf("height = %v, want default 600", cfg.Arena.Height)
	}
	if cfg.Population.Ants != 5 || cfg.Population.Food != 8 {
		t.Errorf("population = %+v", cfg.Population)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero arena", "arena:\n  width: 0\n"},
		{"negative ants", "population:\n  ants: -1\n"},
		{"negative interval", "pheromone:\n  deposit_interval: -2\n"},
		{"zero lifespan", "ant:\n  lifespan: 0\n"},
		{"slow clock", "clock:\n  max_time_scale: 0.5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cfg.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want not-exist", err)
	}
}

func TestClampTimeScale(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	tests := []struct {
		in, want float64
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{60, 60},
		{5000, cfg.Clock.MaxTimeScale},
	}
	for _, tt := range tests {
		if got := cfg.ClampTimeScale(tt.in); got != tt.want {
			t.Errorf("ClampTimeScale(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteYAMLReloads(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	cfg.Steering.TrailBlend = 0.42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if reloaded.Steering.TrailBlend != 0.42 {
		t.Errorf("trail blend = %v, want 0.42", reloaded.Steering.TrailBlend)
	}
}

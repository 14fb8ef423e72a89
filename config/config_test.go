package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.World.Rows != 20 || cfg.World.Cols != 20 {
		t.Errorf("world = %dx%d, want 20x20", cfg.World.Rows, cfg.World.Cols)
	}
	if cfg.Population.Prey != 100 || cfg.Population.Predators != 5 {
		t.Errorf("population = %d prey / %d predators, want 100/5", cfg.Population.Prey, cfg.Population.Predators)
	}
	if cfg.Prey.BreedTime != 3 {
		t.Errorf("prey.breed_time = %d, want 3", cfg.Prey.BreedTime)
	}
	if cfg.Predator.BreedTime != 8 || cfg.Predator.StarveTime != 3 {
		t.Errorf("predator = breed %d starve %d, want 8/3", cfg.Predator.BreedTime, cfg.Predator.StarveTime)
	}
	if cfg.Engine.ScanMode != ScanLive {
		t.Errorf("scan_mode = %q, want %q", cfg.Engine.ScanMode, ScanLive)
	}
	if cfg.Derived.Cells != 400 {
		t.Errorf("Derived.Cells = %d, want 400", cfg.Derived.Cells)
	}
	if cfg.Derived.EmptyGlyph != '.' || cfg.Derived.PreyGlyph != 'o' || cfg.Derived.PredatorGlyph != 'X' {
		t.Errorf("glyphs = %q %q %q, want . o X", cfg.Derived.EmptyGlyph, cfg.Derived.PreyGlyph, cfg.Derived.PredatorGlyph)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("world:\n  rows: 5\n  cols: 7\nengine:\n  scan_mode: snapshot\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.World.Rows != 5 || cfg.World.Cols != 7 {
		t.Errorf("world = %dx%d, want 5x7", cfg.World.Rows, cfg.World.Cols)
	}
	if cfg.Engine.ScanMode != ScanSnapshot {
		t.Errorf("scan_mode = %q, want snapshot", cfg.Engine.ScanMode)
	}
	// Fields absent from the overlay keep their defaults
	if cfg.Population.Prey != 100 {
		t.Errorf("population.prey = %d, want default 100", cfg.Population.Prey)
	}
	if cfg.Derived.Cells != 35 {
		t.Errorf("Derived.Cells = %d, want 35", cfg.Derived.Cells)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"prey breed time zero", func(c *Config) { c.Prey.BreedTime = 0 }},
		{"predator breed time negative", func(c *Config) { c.Predator.BreedTime = -1 }},
		{"starve time zero", func(c *Config) { c.Predator.StarveTime = 0 }},
		{"unknown scan mode", func(c *Config) { c.Engine.ScanMode = "parallel" }},
		{"multi-rune glyph", func(c *Config) { c.Render.Prey = "oo" }},
		{"empty glyph", func(c *Config) { c.Render.Empty = "" }},
		{"stats window zero", func(c *Config) { c.Telemetry.StatsWindow = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.World.Rows = 9
	cfg.Predator.StarveTime = 4

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.World.Rows != 9 || loaded.Predator.StarveTime != 4 {
		t.Errorf("round trip lost values: rows=%d starve=%d", loaded.World.Rows, loaded.Predator.StarveTime)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init()")
		}
	}()
	Cfg()
}

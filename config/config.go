// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Scan modes for the per-species processing pass.
const (
	// ScanLive reads the grid cell by cell while it is being mutated, so offspring
	// placed later in scan order are processed in the same tick.
	ScanLive = "live"
	// ScanSnapshot processes exactly the organisms present when the phase begins.
	ScanSnapshot = "snapshot"
)

// ErrInvalid is returned by Validate for out-of-range configuration values.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Prey       PreyConfig       `yaml:"prey"`
	Predator   PredatorConfig   `yaml:"predator"`
	Engine     EngineConfig     `yaml:"engine"`
	Render     RenderConfig     `yaml:"render"`
	UI         UIConfig         `yaml:"ui"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds grid dimensions.
type WorldConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// PopulationConfig holds the initial population.
type PopulationConfig struct {
	Prey      int `yaml:"prey"`
	Predators int `yaml:"predators"`
}

// PreyConfig holds ant rule parameters.
type PreyConfig struct {
	BreedTime int `yaml:"breed_time"` // ticks between breeding attempts
}

// PredatorConfig holds doodlebug rule parameters.
type PredatorConfig struct {
	BreedTime  int `yaml:"breed_time"`  // ticks between breeding attempts
	StarveTime int `yaml:"starve_time"` // ticks without eating before death
}

// EngineConfig holds tick ordering options.
type EngineConfig struct {
	ScanMode string `yaml:"scan_mode"` // "live" or "snapshot"
}

// RenderConfig holds the glyph for each cell state.
type RenderConfig struct {
	Empty    string `yaml:"empty"`
	Prey     string `yaml:"prey"`
	Predator string `yaml:"predator"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	AutoplayIntervalMS int `yaml:"autoplay_interval_ms"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PredatorRecovery PredatorRecoveryConfig `yaml:"predator_recovery"`
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
	StableEcosystem  StableEcosystemConfig  `yaml:"stable_ecosystem"`
}

// PredatorRecoveryConfig holds predator recovery detection parameters.
type PredatorRecoveryConfig struct {
	MinPopulation      int `yaml:"min_population"`
	RecoveryMultiplier int `yaml:"recovery_multiplier"`
	MinFinal           int `yaml:"min_final"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinPrey       int     `yaml:"min_prey"`
	MinPred       int     `yaml:"min_pred"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells         int  // World.Rows * World.Cols
	EmptyGlyph    rune // first rune of Render.Empty
	PreyGlyph     rune
	PredatorGlyph rune
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks rule parameters and option values.
// Grid dimensions and population are checked by the engine at initialization.
func (c *Config) Validate() error {
	if c.Prey.BreedTime < 1 {
		return fmt.Errorf("%w: prey.breed_time must be >= 1, got %d", ErrInvalid, c.Prey.BreedTime)
	}
	if c.Predator.BreedTime < 1 {
		return fmt.Errorf("%w: predator.breed_time must be >= 1, got %d", ErrInvalid, c.Predator.BreedTime)
	}
	if c.Predator.StarveTime < 1 {
		return fmt.Errorf("%w: predator.starve_time must be >= 1, got %d", ErrInvalid, c.Predator.StarveTime)
	}
	switch c.Engine.ScanMode {
	case ScanLive, ScanSnapshot:
	default:
		return fmt.Errorf("%w: engine.scan_mode %q (want %q or %q)", ErrInvalid, c.Engine.ScanMode, ScanLive, ScanSnapshot)
	}
	for name, glyph := range map[string]string{
		"render.empty":    c.Render.Empty,
		"render.prey":     c.Render.Prey,
		"render.predator": c.Render.Predator,
	} {
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalid, name, glyph)
		}
	}
	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("%w: telemetry.stats_window must be >= 1, got %d", ErrInvalid, c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.World.Rows * c.World.Cols
	c.Derived.EmptyGlyph, _ = utf8.DecodeRuneInString(c.Render.Empty)
	c.Derived.PreyGlyph, _ = utf8.DecodeRuneInString(c.Render.Prey)
	c.Derived.PredatorGlyph, _ = utf8.DecodeRuneInString(c.Render.Predator)
}

// Clone returns a copy of the configuration with derived values recomputed.
func (c *Config) Clone() *Config {
	cp := *c
	cp.computeDerived()
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

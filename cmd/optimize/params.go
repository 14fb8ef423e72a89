package main

import (
	"math"

	"github.com/pthm-cable/wator/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Densities are fractions of the grid; the rule thresholds are rounded to ticks.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Initial population
			{Name: "prey_density", Path: "population.prey", Min: 0.01, Max: 0.60, Default: 0.25},
			{Name: "pred_density", Path: "population.predators", Min: 0.002, Max: 0.20, Default: 0.0125},
			// Rules
			{Name: "prey_breed_time", Path: "prey.breed_time", Min: 1, Max: 10, Default: 3},
			{Name: "pred_breed_time", Path: "predator.breed_time", Min: 2, Max: 20, Default: 8},
			{Name: "pred_starve_time", Path: "predator.starve_time", Min: 1, Max: 12, Default: 3},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Max(spec.Min, math.Min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cells := float64(cfg.World.Rows * cfg.World.Cols)

	prey := int(math.Round(clamped[0] * cells))
	pred := int(math.Round(clamped[1] * cells))
	if pred < 1 {
		pred = 1
	}
	if prey < 1 {
		prey = 1
	}
	// Densities can sum past the grid; keep the predators and trim prey.
	if prey+pred > int(cells) {
		prey = int(cells) - pred
	}
	cfg.Population.Prey = prey
	cfg.Population.Predators = pred

	cfg.Prey.BreedTime = int(math.Round(clamped[2]))
	cfg.Predator.BreedTime = int(math.Round(clamped[3]))
	cfg.Predator.StarveTime = int(math.Round(clamped[4]))
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	cells := float64(cfg.World.Rows * cfg.World.Cols)
	return []float64{
		float64(cfg.Population.Prey) / cells,
		float64(cfg.Population.Predators) / cells,
		float64(cfg.Prey.BreedTime),
		float64(cfg.Predator.BreedTime),
		float64(cfg.Predator.StarveTime),
	}
}

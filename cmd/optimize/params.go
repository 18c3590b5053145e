package main

import (
	"github.com/pthm-cable/antfarm/config"
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
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Steering
			{Name: "forward_bonus", Path: "steering.forward_bonus", Min: 0.0, Max: 1.0, Default: 0.4},
			{Name: "distance_decay", Path: "steering.distance_decay", Min: 0.001, Max: 0.05, Default: 0.015},
			{Name: "food_marker_weight", Path: "steering.food_marker_weight", Min: 0.5, Max: 4.0, Default: 1.8},
			{Name: "path_marker_weight", Path: "steering.path_marker_weight", Min: 0.01, Max: 0.5, Default: 0.06},
			{Name: "home_bias_offset", Path: "steering.home_bias_offset", Min: 0.0, Max: 1.2, Default: 0.6},
			{Name: "trail_blend", Path: "steering.trail_blend", Min: 0.2, Max: 0.9, Default: 0.6},
			{Name: "smoothing", Path: "steering.smoothing", Min: 0.5, Max: 0.95, Default: 0.82},
			{Name: "jitter", Path: "steering.jitter", Min: 0.02, Max: 0.5, Default: 0.15},
			// Trail laying
			{Name: "deposit_interval", Path: "pheromone.deposit_interval", Min: 0.5, Max: 6.0, Default: 2.0},
			{Name: "stall_duration", Path: "ant.stall_duration", Min: 0.5, Max: 4.0, Default: 1.4},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and
// recomputes derived values. Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)

	cfg.Steering.ForwardBonus = c[0]
	cfg.Steering.DistanceDecay = c[1]
	cfg.Steering.FoodMarkerWeight = c[2]
	cfg.Steering.PathMarkerWeight = c[3]
	cfg.Steering.HomeBiasOffset = c[4]
	cfg.Steering.TrailBlend = c[5]
	cfg.Steering.Smoothing = c[6]
	cfg.Steering.Jitter = c[7]

	cfg.Pheromone.DepositInterval = c[8]
	cfg.Ant.StallDuration = c[9]

	cfg.ComputeDerived()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Steering.ForwardBonus,
		cfg.Steering.DistanceDecay,
		cfg.Steering.FoodMarkerWeight,
		cfg.Steering.PathMarkerWeight,
		cfg.Steering.HomeBiasOffset,
		cfg.Steering.TrailBlend,
		cfg.Steering.Smoothing,
		cfg.Steering.Jitter,
		cfg.Pheromone.DepositInterval,
		cfg.Ant.StallDuration,
	}
}

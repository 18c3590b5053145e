// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Ant        AntConfig        `yaml:"ant"`
	Steering   SteeringConfig   `yaml:"steering"`
	Food       FoodConfig       `yaml:"food"`
	Pheromone  PheromoneConfig  `yaml:"pheromone"`
	Colony     ColonyConfig     `yaml:"colony"`
	Clock      ClockConfig      `yaml:"clock"`
	Pick       PickConfig       `yaml:"pick"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the graphical host.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // control panel to the right of the arena
}

// ArenaConfig holds the arena bounds. 1 unit is 1 mm.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// AntConfig holds per-ant physical and behavioral constants.
type AntConfig struct {
	Length            float64 `yaml:"length"`              // mm
	Width             float64 `yaml:"width"`               // mm
	Speed             float64 `yaml:"speed"`               // mm/s at full velocity
	CarryCapacity     float64 `yaml:"carry_capacity"`      // units per trip
	ConsumptionPerSec float64 `yaml:"consumption_per_sec"` // harvest transfer rate
	SenseRadius       float64 `yaml:"sense_radius"`
	MinSenseDistance  float64 `yaml:"min_sense_distance"` // markers closer than this are ignored
	Lifespan          float64 `yaml:"lifespan"`           // seconds to deplete MaxHealth
	MaxHealth         float64 `yaml:"max_health"`
	WeakenedBelow     float64 `yaml:"weakened_below"` // health under this is Weakened
	HealthRegen       float64 `yaml:"health_regen"`   // health per harvested unit
	FoodTrailDuration float64 `yaml:"food_trail_duration"`
	HarvestDuration   float64 `yaml:"harvest_duration"`
	RestDuration      float64 `yaml:"rest_duration"`
	TouchFactor       float64 `yaml:"touch_factor"`     // fraction of body length added to contact radii
	InitialVelocity   float64 `yaml:"initial_velocity"` // spawn velocity range per axis
	StallDuration     float64 `yaml:"stall_duration"`   // max seconds following the same marker
}

// SteeringConfig holds the weights of marker attraction and velocity blending.
type SteeringConfig struct {
	ForwardBonus     float64 `yaml:"forward_bonus"`
	DistanceDecay    float64 `yaml:"distance_decay"`
	FoodMarkerWeight float64 `yaml:"food_marker_weight"`
	PathMarkerWeight float64 `yaml:"path_marker_weight"`
	IntensityEpsilon float64 `yaml:"intensity_epsilon"`
	HomeBiasFloor    float64 `yaml:"home_bias_floor"`
	HomeBiasOffset   float64 `yaml:"home_bias_offset"`
	TrailBlend       float64 `yaml:"trail_blend"` // share of the marker vector when food is also sensed
	Smoothing        float64 `yaml:"smoothing"`   // share of old velocity kept each tick
	Jitter           float64 `yaml:"jitter"`
	Damping          float64 `yaml:"damping"`
	MaxVelocity      float64 `yaml:"max_velocity"`
}

// FoodConfig holds food source spawn parameters.
type FoodConfig struct {
	Diameter     float64 `yaml:"diameter"`
	MinQuantity  int     `yaml:"min_quantity"`
	QuantitySpan int     `yaml:"quantity_span"` // quantity = min + floor(rand*span)
	MinTTL       float64 `yaml:"min_ttl"`
	TTLSpan      float64 `yaml:"ttl_span"`
	SpawnCount   int     `yaml:"spawn_count"` // default for AddFood
}

// PheromoneConfig holds trail marker parameters.
type PheromoneConfig struct {
	Diameter        float64 `yaml:"diameter"`
	WeakStrength    float64 `yaml:"weak_strength"`
	StrongStrength  float64 `yaml:"strong_strength"`
	PulseStrength   float64 `yaml:"pulse_strength"`
	MaxIntensity    float64 `yaml:"max_intensity"`
	DecayRate       float64 `yaml:"decay_rate"`   // intensity/s numerator
	DecayOffset     float64 `yaml:"decay_offset"` // rate = decay_rate / (offset + strength)
	RemoveBelow     float64 `yaml:"remove_below"`
	DepositInterval float64 `yaml:"deposit_interval"` // seconds between deposits
	PulseCount      int     `yaml:"pulse_count"`      // default for PulseTrail
}

// ColonyConfig holds colony parameters.
type ColonyConfig struct {
	Radius     float64 `yaml:"radius"`
	PickMargin float64 `yaml:"pick_margin"` // extra radius for colony selection
}

// ClockConfig holds frame-to-simulation time scaling.
type ClockConfig struct {
	MaxFrameDT   float64 `yaml:"max_frame_dt"`   // wall-clock clamp (s)
	MaxScaledDT  float64 `yaml:"max_scaled_dt"`  // simulated clamp (s)
	TimeScale    float64 `yaml:"time_scale"`     // initial acceleration
	MaxTimeScale float64 `yaml:"max_time_scale"` // 1 day per minute
}

// PickConfig holds selection lookup parameters.
type PickConfig struct {
	Radius float64 `yaml:"radius"`
}

// PopulationConfig holds initial entity counts.
type PopulationConfig struct {
	Ants int `yaml:"ants"`
	Food int `yaml:"food"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // simulated seconds per window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FoodRadius      float64 // Food.Diameter / 2
	PheromoneRadius float64 // Pheromone.Diameter / 2
	HealthDecay     float64 // MaxHealth / Lifespan, per second
	FoodTouch       float64 // food contact radius including ant reach
	ColonyTouch     float64 // colony capture radius including ant reach
	SenseRadiusSq   float64
	MinSenseDistSq  float64
}

// ErrInvalid is wrapped by Validate failures.
var ErrInvalid = errors.New("invalid config")

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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.ComputeDerived()

	return cfg, nil
}

// Validate checks values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Arena.Width <= 0 || c.Arena.Height <= 0:
		return fmt.Errorf("%w: arena must be positive, got %vx%v", ErrInvalid, c.Arena.Width, c.Arena.Height)
	case c.Ant.Lifespan <= 0:
		return fmt.Errorf("%w: ant.lifespan must be positive", ErrInvalid)
	case c.Ant.CarryCapacity <= 0:
		return fmt.Errorf("%w: ant.carry_capacity must be positive", ErrInvalid)
	case c.Population.Ants < 0 || c.Population.Food < 0:
		return fmt.Errorf("%w: population counts must not be negative", ErrInvalid)
	case c.Pheromone.DepositInterval < 0:
		return fmt.Errorf("%w: pheromone.deposit_interval must not be negative", ErrInvalid)
	case c.Pheromone.DecayOffset+c.Pheromone.WeakStrength <= 0:
		return fmt.Errorf("%w: pheromone decay denominator must be positive", ErrInvalid)
	case c.Clock.MaxTimeScale < 1:
		return fmt.Errorf("%w: clock.max_time_scale must be at least 1", ErrInvalid)
	}
	return nil
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating fields in place.
func (c *Config) ComputeDerived() {
	reach := c.Ant.Length * c.Ant.TouchFactor

	c.Derived.FoodRadius = c.Food.Diameter / 2
	c.Derived.PheromoneRadius = c.Pheromone.Diameter / 2
	c.Derived.HealthDecay = c.Ant.MaxHealth / c.Ant.Lifespan
	c.Derived.FoodTouch = c.Derived.FoodRadius + reach
	c.Derived.ColonyTouch = c.Colony.Radius + reach
	c.Derived.SenseRadiusSq = c.Ant.SenseRadius * c.Ant.SenseRadius
	c.Derived.MinSenseDistSq = c.Ant.MinSenseDistance * c.Ant.MinSenseDistance
}

// ClampTimeScale bounds a requested acceleration to [1, MaxTimeScale].
func (c *Config) ClampTimeScale(v float64) float64 {
	if v < 1 {
		return 1
	}
	if v > c.Clock.MaxTimeScale {
		return c.Clock.MaxTimeScale
	}
	return v
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

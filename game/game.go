// Package game owns the arena: the ECS world, the colony, the clock and the
// ordered tick phases.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

// ErrInvalidConfig is returned for counts, intervals or arena sizes the
// simulation cannot run with.
var ErrInvalidConfig = errors.New("invalid game config")

// Game holds the complete simulation state.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	rng     *rand.Rand
	rngSeed int64

	// Entity mappers and filters per entity kind
	antMapper       *ecs.Map3[components.Position, components.Velocity, components.Ant]
	antFilter       *ecs.Filter3[components.Position, components.Velocity, components.Ant]
	foodMapper      *ecs.Map2[components.Position, components.Food]
	foodFilter      *ecs.Filter2[components.Position, components.Food]
	pheromoneMapper *ecs.Map2[components.Position, components.Pheromone]
	pheromoneFilter *ecs.Filter2[components.Position, components.Pheromone]

	colony components.Colony
	bounds systems.Bounds

	// Per-tick sensing state, rebuilt each tick
	env        systems.Surroundings
	markerGrid *systems.SpatialGrid
	foodGrid   *systems.SpatialGrid
	deposits   []systems.Deposit
	contacts   []foodRef

	// State
	nextID          uint32 // never reset, so ids are not reused within a process
	tick            int64
	simTime         float64
	running         bool
	timeScale       float64
	depositInterval float64
	antCount        int
	foodCount       int
	pheromoneCount  int

	statusHook func(Status)
	selected   Selection

	// Telemetry
	registry         *systems.SystemRegistry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	bookmarkDetector *telemetry.BookmarkDetector
	lifetimeTracker  *telemetry.LifetimeTracker
	logStats         bool
	statsCallback    func(telemetry.WindowStats)
}

// NewGame creates a game from cfg and populates it with the configured
// initial ants and food. The game starts paused.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if cfg.Arena.Width <= 0 || cfg.Arena.Height <= 0 {
		return nil, fmt.Errorf("%w: arena must be positive, got %vx%v", ErrInvalidConfig, cfg.Arena.Width, cfg.Arena.Height)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()

	g := &Game{
		cfg:              cfg,
		world:            world,
		rng:              rand.New(rand.NewSource(seed)),
		rngSeed:          seed,
		antMapper:        ecs.NewMap3[components.Position, components.Velocity, components.Ant](world),
		antFilter:        ecs.NewFilter3[components.Position, components.Velocity, components.Ant](world),
		foodMapper:       ecs.NewMap2[components.Position, components.Food](world),
		foodFilter:       ecs.NewFilter2[components.Position, components.Food](world),
		pheromoneMapper:  ecs.NewMap2[components.Position, components.Pheromone](world),
		pheromoneFilter:  ecs.NewFilter2[components.Position, components.Pheromone](world),
		bounds:           systems.Bounds{Width: cfg.Arena.Width, Height: cfg.Arena.Height},
		nextID:           1,
		timeScale:        1,
		registry:         systems.NewSystemRegistry(),
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
	}

	// Sensing grids use the sense radius as cell size so a query touches at most 3x3 cells
	g.markerGrid = systems.NewSpatialGrid(cfg.Arena.Width, cfg.Arena.Height, cfg.Ant.SenseRadius)
	g.foodGrid = systems.NewSpatialGrid(cfg.Arena.Width, cfg.Arena.Height, cfg.Ant.SenseRadius)

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	if err := g.Configure(cfg.Population.Ants, cfg.Population.Food, cfg.Pheromone.DepositInterval, cfg.Clock.TimeScale); err != nil {
		om.Close()
		return nil, err
	}

	slog.Info("game created", "seed", seed, "arena_w", cfg.Arena.Width, "arena_h", cfg.Arena.Height)
	return g, nil
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	return g.outputManager.Close()
}

// Config returns the simulation config.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.rngSeed
}

// Bounds returns the arena bounds.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

// Tick returns the number of ticks run since the last Configure.
func (g *Game) Tick() int64 {
	return g.tick
}

// SimTime returns the simulated seconds since the last Configure.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// AntCount returns the number of live ants.
func (g *Game) AntCount() int {
	return g.antCount
}

// FoodCount returns the number of live food sources.
func (g *Game) FoodCount() int {
	return g.foodCount
}

// PheromoneCount returns the number of live pheromones.
func (g *Game) PheromoneCount() int {
	return g.pheromoneCount
}

// Stock returns the food delivered to the colony.
func (g *Game) Stock() float64 {
	return g.colony.Stock
}

// Colony returns a copy of the colony.
func (g *Game) Colony() components.Colony {
	return g.colony
}

// Running reports whether Update advances the simulation.
func (g *Game) Running() bool {
	return g.running
}

// TimeScale returns the current time acceleration.
func (g *Game) TimeScale() float64 {
	return g.timeScale
}

// DepositInterval returns the seconds between trail deposits.
func (g *Game) DepositInterval() float64 {
	return g.depositInterval
}

// Registry returns the tick phase registry.
func (g *Game) Registry() *systems.SystemRegistry {
	return g.registry
}

// PerfStats returns the rolling per-phase timing.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame records host frame timing for FPS reporting.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Lifetime returns the lifetime stats of a live ant, or nil.
func (g *Game) Lifetime(antID uint32) *telemetry.LifetimeStats {
	return g.lifetimeTracker.Get(antID)
}

// allocID returns the next entity id.
func (g *Game) allocID() uint32 {
	id := g.nextID
	g.nextID++
	return id
}

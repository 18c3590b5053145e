package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

// StatusState classifies a status update for the host.
type StatusState string

const (
	StatusReady   StatusState = "ready"
	StatusRunning StatusState = "running"
	StatusPaused  StatusState = "paused"
	StatusInfo    StatusState = "info"
)

// Status is a short human-readable report of a lifecycle change.
type Status struct {
	Label  string
	Detail string
	State  StatusState
}

// SetStatusHook registers a function called on every lifecycle change.
// A nil hook disables reporting.
func (g *Game) SetStatusHook(hook func(Status)) {
	g.statusHook = hook
}

func (g *Game) setStatus(label, detail string, state StatusState) {
	if g.statusHook != nil {
		g.statusHook(Status{Label: label, Detail: detail, State: state})
	}
}

// Configure clears the arena and repopulates it: ants and food at random
// positions, colony stock at zero. The game is left paused. Entity ids keep
// counting from where they were.
func (g *Game) Configure(ants, food int, depositInterval, timeScale float64) error {
	switch {
	case ants < 0:
		return fmt.Errorf("%w: ant count %d is negative", ErrInvalidConfig, ants)
	case food < 0:
		return fmt.Errorf("%w: food count %d is negative", ErrInvalidConfig, food)
	case depositInterval < 0:
		return fmt.Errorf("%w: deposit interval %v is negative", ErrInvalidConfig, depositInterval)
	}

	g.clearWorld()

	g.colony = components.Colony{
		Pos:    r2.Vec{X: g.bounds.Width / 2, Y: g.bounds.Height / 2},
		Radius: g.cfg.Colony.Radius,
	}
	g.selected = Selection{}
	g.running = false
	g.depositInterval = depositInterval
	g.timeScale = g.cfg.ClampTimeScale(timeScale)
	g.tick = 0
	g.simTime = 0
	g.collector.Reset(0, 0)
	g.lifetimeTracker.Clear()

	for i := 0; i < ants; i++ {
		p := systems.RandomPoint(g.rng, g.bounds)
		g.spawnAnt(p, components.Role(i%components.RoleCount()))
	}
	for i := 0; i < food; i++ {
		g.spawnFood(systems.RandomPoint(g.rng, g.bounds))
	}

	slog.Info("configure",
		"ants", ants,
		"food", food,
		"deposit_interval", depositInterval,
		"time_scale", g.timeScale,
	)
	g.setStatus("Ready", g.summary(), StatusReady)
	return nil
}

// Start resumes ticking on Update. Starting a running game is a no-op.
func (g *Game) Start() {
	if g.running {
		return
	}
	g.running = true
	slog.Info("start", "tick", g.tick)
	g.setStatus("Running", "The simulation is running", StatusRunning)
}

// Pause stops ticking on Update. An in-flight tick is never interrupted.
func (g *Game) Pause() {
	g.running = false
	slog.Info("pause", "tick", g.tick)
	g.setStatus("Paused", "Resume to continue", StatusPaused)
}

// SetTimeScale sets the time acceleration, clamped to [1, max_time_scale].
func (g *Game) SetTimeScale(v float64) {
	g.timeScale = g.cfg.ClampTimeScale(v)
	g.setStatus("Time scale", fmt.Sprintf("x%.0f (max x%.0f)", g.timeScale, g.cfg.Clock.MaxTimeScale), StatusInfo)
}

// AddFood spawns count food sources at random positions without touching
// existing state.
func (g *Game) AddFood(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: food count %d is negative", ErrInvalidConfig, count)
	}
	for i := 0; i < count; i++ {
		g.spawnFood(systems.RandomPoint(g.rng, g.bounds))
	}
	slog.Info("add_food", "count", count, "total", g.foodCount)
	g.setStatus("Food added", fmt.Sprintf("Food sources: %d", g.foodCount), StatusInfo)
	return nil
}

// PulseTrail scatters count path pheromones at random positions, each
// pointing home.
func (g *Game) PulseTrail(count int) error {
	if count < 0 {
		return fmt.Errorf("%w: pheromone count %d is negative", ErrInvalidConfig, count)
	}
	pc := &g.cfg.Pheromone
	for i := 0; i < count; i++ {
		p := systems.RandomPoint(g.rng, g.bounds)
		g.spawnPheromone(systems.Deposit{
			Pos:        p,
			Kind:       components.PheromonePath,
			Strength:   pc.PulseStrength,
			HomeDir:    r2.Sub(g.colony.Pos, p),
			HasHomeDir: true,
		})
	}
	slog.Info("pulse_trail", "count", count, "total", g.pheromoneCount)
	g.setStatus("Trail pulse", fmt.Sprintf("Active pheromones: %d", g.pheromoneCount), StatusInfo)
	return nil
}

// summary returns the population line used in status reports.
func (g *Game) summary() string {
	return fmt.Sprintf("Ants: %d | Food: %d | Pheromones: %d", g.antCount, g.foodCount, g.pheromoneCount)
}

// SpawnAnt creates a healthy roaming ant at p with a small random velocity.
func (g *Game) SpawnAnt(p r2.Vec, role components.Role) ecs.Entity {
	return g.spawnAnt(p, role)
}

func (g *Game) spawnAnt(p r2.Vec, role components.Role) ecs.Entity {
	ac := &g.cfg.Ant
	pos := components.Position{Vec: systems.Wrap(p, g.bounds)}
	vel := components.Velocity{Vec: r2.Vec{
		X: (g.rng.Float64() - 0.5) * ac.InitialVelocity,
		Y: (g.rng.Float64() - 0.5) * ac.InitialVelocity,
	}}
	ant := components.Ant{
		ID:        g.allocID(),
		Role:      role,
		State:     components.StateRoaming,
		Health:    ac.MaxHealth,
		Condition: systems.ConditionFor(ac.MaxHealth, ac.WeakenedBelow),
	}

	entity := g.antMapper.NewEntity(&pos, &vel, &ant)
	g.antCount++
	g.lifetimeTracker.Register(ant.ID, g.tick, g.simTime)
	return entity
}

// SpawnFood creates a food source at p with random quantity and time to live.
func (g *Game) SpawnFood(p r2.Vec) ecs.Entity {
	return g.spawnFood(p)
}

func (g *Game) spawnFood(p r2.Vec) ecs.Entity {
	pos := components.Position{Vec: systems.Wrap(p, g.bounds)}
	food := systems.NewFood(g.allocID(), g.rng, &g.cfg.Food)

	entity := g.foodMapper.NewEntity(&pos, &food)
	g.foodCount++
	g.emit(telemetry.Event{Type: telemetry.EventFoodSpawned, Tick: g.tick, EntityID: food.ID})
	return entity
}

// SpawnPheromone creates a pheromone from a deposit.
func (g *Game) SpawnPheromone(d systems.Deposit) ecs.Entity {
	return g.spawnPheromone(d)
}

func (g *Game) spawnPheromone(d systems.Deposit) ecs.Entity {
	pos := components.Position{Vec: systems.Wrap(d.Pos, g.bounds)}
	p := systems.NewPheromone(g.allocID(), d, &g.cfg.Pheromone)

	entity := g.pheromoneMapper.NewEntity(&pos, &p)
	g.pheromoneCount++
	g.emit(telemetry.Event{Type: telemetry.EventDeposit, Tick: g.tick, EntityID: d.OwnerID, TargetID: p.ID})
	return entity
}

// clearWorld removes every ant, food source and pheromone.
func (g *Game) clearWorld() {
	// Collect first: the world is locked while a query runs
	var toRemove []ecs.Entity

	antQuery := g.antFilter.Query()
	for antQuery.Next() {
		toRemove = append(toRemove, antQuery.Entity())
	}
	foodQuery := g.foodFilter.Query()
	for foodQuery.Next() {
		toRemove = append(toRemove, foodQuery.Entity())
	}
	pheromoneQuery := g.pheromoneFilter.Query()
	for pheromoneQuery.Next() {
		toRemove = append(toRemove, pheromoneQuery.Entity())
	}

	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
	g.antCount = 0
	g.foodCount = 0
	g.pheromoneCount = 0
}

package game

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
)

// AntView is a read-only copy of an ant for presentation.
type AntView struct {
	ID        uint32
	Pos       r2.Vec
	Heading   r2.Vec // unit direction of travel, zero when standing still
	Role      components.Role
	State     components.AntState
	Condition components.Condition
	Health    float64
	Carrying  float64
	FoodTrail bool // laying alarm markers after a discovery
}

// FoodView is a read-only copy of a food source for presentation.
type FoodView struct {
	ID         uint32
	Pos        r2.Vec
	Kind       components.FoodKind
	Quantity   float64
	TimeToLive float64
}

// PheromoneView is a read-only copy of a pheromone for presentation.
type PheromoneView struct {
	ID        uint32
	Pos       r2.Vec
	Kind      components.PheromoneKind
	FromFood  bool
	Strength  float64
	Intensity float64
}

// ColonyView is a read-only copy of the colony.
type ColonyView struct {
	Pos    r2.Vec
	Radius float64
	Stock  float64
}

// Snapshot is everything a renderer needs for one frame.
// Entity slices are sorted by id.
type Snapshot struct {
	Tick       int64
	SimTime    float64
	Running    bool
	TimeScale  float64
	Bounds     systems.Bounds
	Colony     ColonyView
	Ants       []AntView
	Food       []FoodView
	Pheromones []PheromoneView
	Selected   Selection
}

// Snapshot copies the current state for rendering. It does not mutate the simulation.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       g.tick,
		SimTime:    g.simTime,
		Running:    g.running,
		TimeScale:  g.timeScale,
		Bounds:     g.bounds,
		Colony:     g.colonyView(),
		Ants:       make([]AntView, 0, g.antCount),
		Food:       make([]FoodView, 0, g.foodCount),
		Pheromones: make([]PheromoneView, 0, g.pheromoneCount),
	}
	if sel, ok := g.resolve(g.selected); ok {
		s.Selected = sel
	}

	aq := g.antFilter.Query()
	for aq.Next() {
		pos, vel, ant := aq.Get()
		s.Ants = append(s.Ants, antView(pos, vel, ant))
	}
	fq := g.foodFilter.Query()
	for fq.Next() {
		pos, f := fq.Get()
		s.Food = append(s.Food, foodView(pos, f))
	}
	pq := g.pheromoneFilter.Query()
	for pq.Next() {
		pos, p := pq.Get()
		s.Pheromones = append(s.Pheromones, pheromoneView(pos, p))
	}

	sort.Slice(s.Ants, func(i, j int) bool { return s.Ants[i].ID < s.Ants[j].ID })
	sort.Slice(s.Food, func(i, j int) bool { return s.Food[i].ID < s.Food[j].ID })
	sort.Slice(s.Pheromones, func(i, j int) bool { return s.Pheromones[i].ID < s.Pheromones[j].ID })

	return s
}

func (g *Game) colonyView() ColonyView {
	return ColonyView{Pos: g.colony.Pos, Radius: g.colony.Radius, Stock: g.colony.Stock}
}

func antView(pos *components.Position, vel *components.Velocity, ant *components.Ant) AntView {
	heading := ant.Heading
	if r2.Norm2(vel.Vec) > 0 {
		heading = systems.Unit(vel.Vec)
	}
	return AntView{
		ID:        ant.ID,
		Pos:       pos.Vec,
		Heading:   heading,
		Role:      ant.Role,
		State:     ant.State,
		Condition: ant.Condition,
		Health:    ant.Health,
		Carrying:  ant.Carrying,
		FoodTrail: ant.FoodTrailTimer > 0,
	}
}

func foodView(pos *components.Position, f *components.Food) FoodView {
	return FoodView{
		ID:         f.ID,
		Pos:        pos.Vec,
		Kind:       f.Kind,
		Quantity:   f.Quantity,
		TimeToLive: f.TimeToLive,
	}
}

func pheromoneView(pos *components.Position, p *components.Pheromone) PheromoneView {
	return PheromoneView{
		ID:        p.ID,
		Pos:       pos.Vec,
		Kind:      p.Kind,
		FromFood:  p.FromFood,
		Strength:  p.Strength,
		Intensity: p.Intensity,
	}
}

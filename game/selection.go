package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/telemetry"
)

// EntityKind tags what a Selection refers to.
type EntityKind uint8

const (
	KindNone EntityKind = iota
	KindColony
	KindAnt
	KindFood
	KindPheromone
)

// String returns the display name for an EntityKind.
func (k EntityKind) String() string {
	switch k {
	case KindColony:
		return "Colony"
	case KindAnt:
		return "Ant"
	case KindFood:
		return "Food"
	case KindPheromone:
		return "Pheromone"
	}
	return "None"
}

// Selection identifies a selectable thing in the arena. Entity is zero for
// the colony and for KindNone.
type Selection struct {
	Kind   EntityKind
	Entity ecs.Entity
	ID     uint32
}

// None reports whether nothing is selected.
func (s Selection) None() bool {
	return s.Kind == KindNone
}

// Inspection is a resolved Selection with the matching view filled in.
type Inspection struct {
	Selection
	Colony    ColonyView
	Ant       AntView
	Food      FoodView
	Pheromone PheromoneView
	Lifetime  telemetry.LifetimeStats // ants only
}

// Pick returns the selectable thing at (x, y). The colony wins when the
// point is within its radius plus the pick margin; otherwise the nearest
// ant, then food, then pheromone strictly within radius. Pick never
// mutates the simulation.
func (g *Game) Pick(x, y, radius float64) Selection {
	at := r2.Vec{X: x, Y: y}

	colonyReach := g.colony.Radius + g.cfg.Colony.PickMargin
	if r2.Norm2(r2.Sub(at, g.colony.Pos)) < colonyReach*colonyReach {
		return Selection{Kind: KindColony}
	}

	radiusSq := radius * radius
	best := Selection{}
	bestSq := radiusSq
	consider := func(kind EntityKind, e ecs.Entity, id uint32, p r2.Vec) {
		d := r2.Norm2(r2.Sub(at, p))
		if d < bestSq || (d == bestSq && best.Kind == kind && id < best.ID) {
			best, bestSq = Selection{Kind: kind, Entity: e, ID: id}, d
		}
	}

	aq := g.antFilter.Query()
	for aq.Next() {
		pos, _, ant := aq.Get()
		consider(KindAnt, aq.Entity(), ant.ID, pos.Vec)
	}
	if !best.None() {
		return best
	}

	fq := g.foodFilter.Query()
	for fq.Next() {
		pos, f := fq.Get()
		consider(KindFood, fq.Entity(), f.ID, pos.Vec)
	}
	if !best.None() {
		return best
	}

	pq := g.pheromoneFilter.Query()
	for pq.Next() {
		pos, p := pq.Get()
		consider(KindPheromone, pq.Entity(), p.ID, pos.Vec)
	}
	return best
}

// Select stores the thing at (x, y) as the current selection, using the
// configured pick radius. Clicking empty space clears the selection.
func (g *Game) Select(x, y float64) Selection {
	g.selected = g.Pick(x, y, g.cfg.Pick.Radius)
	return g.selected
}

// ClearSelection drops the current selection.
func (g *Game) ClearSelection() {
	g.selected = Selection{}
}

// Selected resolves the current selection. A selection whose entity was
// removed falls back to none.
func (g *Game) Selected() (Inspection, bool) {
	sel, ok := g.resolve(g.selected)
	if !ok {
		g.selected = Selection{}
		return Inspection{}, false
	}
	return g.Inspect(sel)
}

// Inspect fills in the view for a selection. It reports false when the
// entity no longer exists.
func (g *Game) Inspect(sel Selection) (Inspection, bool) {
	sel, ok := g.resolve(sel)
	if !ok {
		return Inspection{}, false
	}

	in := Inspection{Selection: sel, Colony: g.colonyView()}
	switch sel.Kind {
	case KindAnt:
		pos, vel, ant := g.antMapper.Get(sel.Entity)
		in.Ant = antView(pos, vel, ant)
		if lt := g.lifetimeTracker.Get(ant.ID); lt != nil {
			in.Lifetime = *lt
			in.Lifetime.AgeSec = g.simTime - lt.BirthTimeSec
		}
	case KindFood:
		pos, f := g.foodMapper.Get(sel.Entity)
		in.Food = foodView(pos, f)
	case KindPheromone:
		pos, p := g.pheromoneMapper.Get(sel.Entity)
		in.Pheromone = pheromoneView(pos, p)
	}
	return in, true
}

// resolve checks that a selection still refers to a live entity of its kind.
func (g *Game) resolve(sel Selection) (Selection, bool) {
	switch sel.Kind {
	case KindNone:
		return sel, false
	case KindColony:
		return sel, true
	}
	// Entities never change kind, so a live handle still refers to the same thing
	if !g.world.Alive(sel.Entity) {
		return Selection{}, false
	}
	return sel, true
}

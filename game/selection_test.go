package game

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
)

func TestPickPriority(t *testing.T) {
	g := newTestGame(t, 0, 0)
	_, antID := placeAnt(g, r2.Vec{X: 100, Y: 100})
	_, foodID := placeFood(g, r2.Vec{X: 200, Y: 100}, 20, 100)
	g.SpawnPheromone(systems.Deposit{Pos: r2.Vec{X: 103, Y: 100}, Kind: components.PheromonePath, Strength: 1})
	g.SpawnPheromone(systems.Deposit{Pos: r2.Vec{X: 201, Y: 100}, Kind: components.PheromonePath, Strength: 1})
	pheromoneEntity := g.SpawnPheromone(systems.Deposit{Pos: r2.Vec{X: 300, Y: 100}, Kind: components.PheromonePath, Strength: 1})
	_, p := g.pheromoneMapper.Get(pheromoneEntity)
	lonePheromone := p.ID

	colony := g.Colony().Pos
	tests := []struct {
		name   string
		at     r2.Vec
		kind   EntityKind
		wantID uint32
	}{
		{"colony center", colony, KindColony, 0},
		{"colony margin", r2.Vec{X: colony.X + g.Config().Colony.Radius + 3, Y: colony.Y}, KindColony, 0},
		{"ant beats nearer pheromone", r2.Vec{X: 103, Y: 100}, KindAnt, antID},
		{"food beats nearer pheromone", r2.Vec{X: 201, Y: 100}, KindFood, foodID},
		{"pheromone alone", r2.Vec{X: 305, Y: 100}, KindPheromone, lonePheromone},
		{"empty space", r2.Vec{X: 700, Y: 500}, KindNone, 0},
		{"edge of radius is outside", r2.Vec{X: 310, Y: 100}, KindNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Pick(tt.at.X, tt.at.Y, 10)
			if got.Kind != tt.kind || got.ID != tt.wantID {
				t.Errorf("Pick = %v #%d, want %v #%d", got.Kind, got.ID, tt.kind, tt.wantID)
			}
		})
	}

	if g.Tick() != 0 || g.AntCount() != 1 || g.PheromoneCount() != 3 {
		t.Error("Pick mutated the simulation")
	}
}

func TestSelectionFallsBackWhenRemoved(t *testing.T) {
	g := newTestGame(t, 0, 0)
	placeFood(g, r2.Vec{X: 100, Y: 100}, 20, 0.1)

	sel := g.Select(100, 100)
	if sel.Kind != KindFood {
		t.Fatalf("Select = %v, want Food", sel.Kind)
	}
	in, ok := g.Selected()
	if !ok || in.Food.Quantity != 20 {
		t.Fatalf("Selected = %+v %v", in.Food, ok)
	}

	g.Step(0.2)
	if _, ok := g.Selected(); ok {
		t.Error("selection of expired food should resolve to none")
	}
	if !g.Snapshot().Selected.None() {
		t.Error("snapshot still carries the stale selection")
	}
}

func TestInspectAnt(t *testing.T) {
	g := newTestGame(t, 0, 0)
	_, antID := placeAnt(g, r2.Vec{X: 100, Y: 100})

	g.Select(100, 100)
	in, ok := g.Selected()
	if !ok || in.Kind != KindAnt || in.Ant.ID != antID {
		t.Fatalf("Selected = %+v %v", in.Selection, ok)
	}
	if in.Ant.Health != g.Config().Ant.MaxHealth {
		t.Errorf("health = %f", in.Ant.Health)
	}
	if in.Colony.Pos != g.Colony().Pos {
		t.Errorf("inspection colony = %v", in.Colony.Pos)
	}

	g.ClearSelection()
	if _, ok := g.Selected(); ok {
		t.Error("ClearSelection left a selection")
	}
}

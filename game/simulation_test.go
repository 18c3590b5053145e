package game

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
)

func TestDiscoveryLaysOneAlarm(t *testing.T) {
	g := newTestGame(t, 0, 0)
	at := r2.Vec{X: 200, Y: 150}
	_, foodID := placeFood(g, at, 50, 1000)
	antEntity, antID := placeAnt(g, at)

	g.Step(0.1)

	if g.PheromoneCount() != 1 {
		t.Fatalf("pheromones = %d, want 1", g.PheromoneCount())
	}
	p := g.Snapshot().Pheromones[0]
	if p.Kind != components.PheromoneAlarm || !p.FromFood {
		t.Errorf("discovery marker = %+v", p)
	}

	_, _, ant := g.antMapper.Get(antEntity)
	if ant.State != components.StateHarvesting {
		t.Errorf("state = %v, want Harvesting", ant.State)
	}
	if ant.LastFoodID != foodID || ant.FoodTrailTimer <= 0 {
		t.Errorf("ant food link = %d timer %f", ant.LastFoodID, ant.FoodTrailTimer)
	}

	// The marker is linked to the food and owned by the ant
	pq := g.pheromoneFilter.Query()
	for pq.Next() {
		_, m := pq.Get()
		if m.OwnerID != antID || m.SourceFoodID != foodID {
			t.Errorf("marker owner %d source %d, want %d %d", m.OwnerID, m.SourceFoodID, antID, foodID)
		}
	}
}

func TestForagingCycleConservesFood(t *testing.T) {
	g := newTestGame(t, 0, 0)
	cfg := g.Config()
	at := r2.Vec{X: 350, Y: 300}
	foodEntity, _ := placeFood(g, at, 50, 10000)
	antEntity, _ := placeAnt(g, at)

	sawFull := false
	for i := 0; i < 2000 && g.Stock() == 0; i++ {
		g.Step(0.1)

		_, _, ant := g.antMapper.Get(antEntity)
		if ant.Carrying >= cfg.Ant.CarryCapacity {
			sawFull = true
		}
		_, food := g.foodMapper.Get(foodEntity)
		if total := g.Stock() + ant.Carrying + food.Quantity; math.Abs(total-50) > 1e-9 {
			t.Fatalf("tick %d: food not conserved, total %f", g.Tick(), total)
		}
	}

	if !sawFull {
		t.Error("ant never filled up")
	}
	if g.Stock() != cfg.Ant.CarryCapacity {
		t.Fatalf("stock = %f, want %f", g.Stock(), cfg.Ant.CarryCapacity)
	}

	_, _, ant := g.antMapper.Get(antEntity)
	if ant.State != components.StateResting || ant.Carrying != 0 {
		t.Errorf("after delivery: state %v carrying %f", ant.State, ant.Carrying)
	}
}

func TestHarvestingAntKeepsLoadAtColony(t *testing.T) {
	g := newTestGame(t, 0, 0)
	home := g.Colony().Pos
	placeFood(g, home, 50, 10000)
	antEntity, _ := placeAnt(g, home)

	g.Step(0.1)

	_, _, ant := g.antMapper.Get(antEntity)
	if ant.State != components.StateHarvesting || ant.Carrying <= 0 {
		t.Fatalf("state %v carrying %f, want harvesting with cargo", ant.State, ant.Carrying)
	}
	if g.Stock() != 0 {
		t.Errorf("stock = %f while harvesting, want 0", g.Stock())
	}

	for i := 0; i < 100 && g.Stock() == 0; i++ {
		g.Step(0.1)
	}
	if g.Stock() != g.Config().Ant.CarryCapacity {
		t.Errorf("stock = %f, want a full load", g.Stock())
	}
}

func TestHarvestStopsWhenTimerRunsOut(t *testing.T) {
	g := newTestGame(t, 0, 0)
	g.cfg.Ant.HarvestDuration = 0.25
	rate := g.cfg.Ant.ConsumptionPerSec * 0.1
	at := r2.Vec{X: 200, Y: 150}
	foodEntity, _ := placeFood(g, at, 50, 10000)
	antEntity, _ := placeAnt(g, at)

	// Contact tick plus the two ticks the timer still covers
	wantLoad := 3 * rate
	for i := 0; i < 6; i++ {
		g.Step(0.1)

		_, _, ant := g.antMapper.Get(antEntity)
		if ant.Carrying > wantLoad+1e-9 {
			t.Fatalf("tick %d: carrying %.2f after the harvest timer ran out, want %.2f", g.Tick(), ant.Carrying, wantLoad)
		}
	}

	_, _, ant := g.antMapper.Get(antEntity)
	if math.Abs(ant.Carrying-wantLoad) > 1e-9 {
		t.Errorf("carrying = %f, want %f", ant.Carrying, wantLoad)
	}
	if ant.State != components.StateReturning || ant.HarvestTimer != 0 {
		t.Errorf("state %v timer %f, want Returning with no timer", ant.State, ant.HarvestTimer)
	}
	_, food := g.foodMapper.Get(foodEntity)
	if math.Abs(food.Quantity-(50-wantLoad)) > 1e-9 {
		t.Errorf("food = %f, want %f", food.Quantity, 50-wantLoad)
	}
}

func TestExpiredFoodInvalidatesLinkedMarkers(t *testing.T) {
	g := newTestGame(t, 0, 0)
	pc := g.Config().Pheromone
	_, foodID := placeFood(g, r2.Vec{X: 100, Y: 100}, 30, 0.25)

	g.SpawnPheromone(systems.Deposit{
		Pos:          r2.Vec{X: 120, Y: 100},
		Kind:         components.PheromoneAlarm,
		FromFood:     true,
		Strength:     pc.StrongStrength,
		OwnerID:      99,
		SourceFoodID: foodID,
	})
	g.SpawnPheromone(systems.Deposit{
		Pos:      r2.Vec{X: 140, Y: 100},
		Kind:     components.PheromonePath,
		Strength: pc.StrongStrength,
	})

	g.Step(0.1)
	g.Step(0.1)
	if g.FoodCount() != 1 || g.PheromoneCount() != 2 {
		t.Fatalf("before expiry: %d food %d pheromones", g.FoodCount(), g.PheromoneCount())
	}

	g.Step(0.1)
	if g.FoodCount() != 0 {
		t.Errorf("food count = %d after expiry, want 0", g.FoodCount())
	}
	if g.PheromoneCount() != 1 {
		t.Fatalf("pheromone count = %d, want 1", g.PheromoneCount())
	}
	if p := g.Snapshot().Pheromones[0]; p.FromFood {
		t.Errorf("linked marker survived: %+v", p)
	}
}

func TestDeadAntsArePruned(t *testing.T) {
	g := newTestGame(t, 0, 0)
	antEntity, _ := placeAnt(g, r2.Vec{X: 100, Y: 100})
	_, _, ant := g.antMapper.Get(antEntity)
	ant.Health = 1e-9

	g.Step(1)

	if g.AntCount() != 0 || g.world.Alive(antEntity) {
		t.Errorf("dead ant still present: count %d", g.AntCount())
	}
}

func TestFadedPheromonesArePruned(t *testing.T) {
	g := newTestGame(t, 0, 0)
	pc := g.Config().Pheromone
	g.SpawnPheromone(systems.Deposit{Pos: r2.Vec{X: 50, Y: 50}, Kind: components.PheromonePath, Strength: pc.WeakStrength})

	rate := systems.DecayRate(pc.WeakStrength, &pc)
	life := (pc.WeakStrength - pc.RemoveBelow) / rate

	g.Step(life * 0.9)
	if g.PheromoneCount() != 1 {
		t.Fatalf("pheromone gone early")
	}
	g.Step(life * 0.2)
	if g.PheromoneCount() != 0 {
		t.Errorf("faded pheromone still present")
	}
}

package game

import (
	"sort"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/systems"
	"github.com/pthm-cable/antfarm/telemetry"
)

// foodRef locates a live food source for the contact passes.
type foodRef struct {
	entity ecs.Entity
	id     uint32
	pos    r2.Vec
}

// ScaleFrame converts a wall-clock frame delta into simulated seconds: the
// frame is clamped to max_frame_dt, scaled by the time scale, and the result
// clamped to max_scaled_dt.
func (g *Game) ScaleFrame(frameSeconds float64) float64 {
	cc := &g.cfg.Clock
	dt := frameSeconds
	if dt < 0 {
		dt = 0
	}
	if dt > cc.MaxFrameDT {
		dt = cc.MaxFrameDT
	}
	dt *= g.timeScale
	if dt > cc.MaxScaledDT {
		dt = cc.MaxScaledDT
	}
	return dt
}

// Update is the per-frame host entry: it advances one tick while running.
func (g *Game) Update(frameSeconds float64) {
	if !g.running {
		return
	}
	g.Advance(frameSeconds)
}

// Advance scales the frame delta and runs exactly one tick, running or not.
func (g *Game) Advance(frameSeconds float64) {
	g.Step(g.ScaleFrame(frameSeconds))
}

// Step runs one tick with an already scaled dt. Phases run in a fixed order
// because each one reads what the previous produced.
func (g *Game) Step(dt float64) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.buildSurroundings()

	g.perfCollector.StartPhase(telemetry.PhaseAnts)
	g.updateAnts(dt)

	g.perfCollector.StartPhase(telemetry.PhaseDeposits)
	g.flushDeposits()

	g.perfCollector.StartPhase(telemetry.PhaseFood)
	g.updateFood(dt)

	g.perfCollector.StartPhase(telemetry.PhaseDecay)
	g.updatePheromones(dt)

	g.perfCollector.StartPhase(telemetry.PhaseFeeding)
	g.updateFeeding()

	g.perfCollector.StartPhase(telemetry.PhaseHarvest)
	g.updateHarvest(dt)

	g.perfCollector.StartPhase(telemetry.PhaseDelivery)
	g.updateDelivery(dt)

	g.perfCollector.StartPhase(telemetry.PhasePrune)
	g.prune()

	g.tick++
	g.simTime += dt

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick(dt)
}

// buildSurroundings copies markers and food into id-ordered views and
// indexes them. Ants sense this copy, so deposits made during the ant pass
// are not visible until the next tick.
func (g *Game) buildSurroundings() {
	markers := g.env.Markers[:0]
	pq := g.pheromoneFilter.Query()
	for pq.Next() {
		pos, p := pq.Get()
		markers = append(markers, systems.MarkerView{
			ID:         p.ID,
			Pos:        pos.Vec,
			Kind:       p.Kind,
			FromFood:   p.FromFood,
			Intensity:  p.Intensity,
			OwnerID:    p.OwnerID,
			HomeDir:    p.HomeDir,
			HasHomeDir: p.HasHomeDir,
		})
	}
	sort.Slice(markers, func(i, j int) bool { return markers[i].ID < markers[j].ID })

	food := g.env.Food[:0]
	fq := g.foodFilter.Query()
	for fq.Next() {
		pos, f := fq.Get()
		food = append(food, systems.FoodView{ID: f.ID, Pos: pos.Vec, Quantity: f.Quantity})
	}
	sort.Slice(food, func(i, j int) bool { return food[i].ID < food[j].ID })

	g.markerGrid.Clear()
	for i := range markers {
		g.markerGrid.Insert(i, markers[i].Pos)
	}
	g.foodGrid.Clear()
	for i := range food {
		g.foodGrid.Insert(i, food[i].Pos)
	}

	g.env.Bounds = g.bounds
	g.env.Markers = markers
	g.env.Food = food
	g.env.Colony = &g.colony
	g.env.MarkerGrid = g.markerGrid
	g.env.FoodGrid = g.foodGrid
	g.env.DepositInterval = g.depositInterval
}

// updateAnts runs sensing, steering, movement, aging and deposit timing.
// Deposits are buffered because the world is locked during the query.
func (g *Game) updateAnts(dt float64) {
	g.deposits = g.deposits[:0]

	query := g.antFilter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		if d, ok := systems.UpdateAnt(ant, pos, vel, dt, &g.env, g.rng, g.cfg); ok {
			g.deposits = append(g.deposits, d)
		}
	}
}

// flushDeposits creates the pheromones buffered by the last ant or feeding pass.
func (g *Game) flushDeposits() {
	for _, d := range g.deposits {
		g.spawnPheromone(d)
	}
	g.deposits = g.deposits[:0]
}

// updateFood ticks every food source's time to live.
func (g *Game) updateFood(dt float64) {
	query := g.foodFilter.Query()
	for query.Next() {
		_, f := query.Get()
		systems.UpdateFood(f, dt)
	}
}

// updatePheromones fades every pheromone, including those laid this tick.
func (g *Game) updatePheromones(dt float64) {
	pc := &g.cfg.Pheromone
	query := g.pheromoneFilter.Query()
	for query.Next() {
		_, p := query.Get()
		systems.UpdatePheromone(p, dt, pc)
	}
}

// updateFeeding starts harvesting for free ants touching food. The first
// food in id order wins. Each discovery lays a strong alarm marker at once,
// regardless of the deposit cooldown.
func (g *Game) updateFeeding() {
	cfg := g.cfg

	g.contacts = g.contacts[:0]
	fq := g.foodFilter.Query()
	for fq.Next() {
		pos, f := fq.Get()
		if f.Quantity > 0 {
			g.contacts = append(g.contacts, foodRef{entity: fq.Entity(), id: f.ID, pos: pos.Vec})
		}
	}
	if len(g.contacts) == 0 {
		return
	}
	sort.Slice(g.contacts, func(i, j int) bool { return g.contacts[i].id < g.contacts[j].id })

	touchSq := cfg.Derived.FoodTouch * cfg.Derived.FoodTouch
	var discoveries []telemetry.Event

	query := g.antFilter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		// Resting ants are frozen at the colony and cannot start a harvest
		if ant.Carrying > 0 || ant.State == components.StateHarvesting || ant.State == components.StateResting {
			continue
		}

		for _, food := range g.contacts {
			if r2.Norm2(r2.Sub(pos.Vec, food.pos)) > touchSq {
				continue
			}

			ant.State = components.StateHarvesting
			ant.HarvestTimer = cfg.Ant.HarvestDuration
			ant.HarvestFood = food.entity
			ant.LastFoodID = food.id
			ant.FoodTrailTimer = cfg.Ant.FoodTrailDuration
			vel.Vec = r2.Vec{}

			g.deposits = append(g.deposits, systems.Deposit{
				Pos:          pos.Vec,
				Kind:         components.PheromoneAlarm,
				FromFood:     true,
				Strength:     cfg.Pheromone.StrongStrength,
				OwnerID:      ant.ID,
				SourceFoodID: food.id,
				HomeDir:      r2.Sub(g.colony.Pos, pos.Vec),
				HasHomeDir:   true,
			})
			discoveries = append(discoveries, telemetry.Event{
				Type:     telemetry.EventDiscovery,
				Tick:     g.tick,
				EntityID: ant.ID,
				TargetID: food.id,
			})
			break
		}
	}

	g.flushDeposits()
	for _, ev := range discoveries {
		g.emit(ev)
	}
}

// updateHarvest moves food into the loads of harvesting ants and ends the
// harvest once the timer elapsed, the load is full or the food is gone.
func (g *Game) updateHarvest(dt float64) {
	ac := &g.cfg.Ant

	query := g.antFilter.Query()
	for query.Next() {
		_, _, ant := query.Get()
		if ant.State != components.StateHarvesting {
			continue
		}

		// The timer ran out during the ant pass: no transfer this tick.
		// A dead link means the food was removed already.
		if ant.HarvestTimer <= 0 || !g.world.Alive(ant.HarvestFood) {
			endHarvest(ant)
			continue
		}

		_, food := g.foodMapper.Get(ant.HarvestFood)
		amount := systems.Harvest(ant, food, dt, ac)
		if amount > 0 {
			g.emit(telemetry.Event{
				Type:     telemetry.EventHarvest,
				Tick:     g.tick,
				EntityID: ant.ID,
				TargetID: food.ID,
				Amount:   amount,
			})
		}

		if ant.Carrying >= ac.CarryCapacity || food.Quantity <= 0 {
			endHarvest(ant)
		}
	}
}

// endHarvest clears the harvest timer and link; cargo turns the ant homeward.
func endHarvest(ant *components.Ant) {
	ant.HarvestTimer = 0
	ant.HarvestFood = ecs.Entity{}
	if ant.Carrying > 0 {
		ant.State = components.StateReturning
	} else {
		ant.State = components.StateRoaming
	}
}

// updateDelivery unloads carrying ants inside the colony capture radius and
// puts them to rest.
func (g *Game) updateDelivery(dt float64) {
	cfg := g.cfg
	touchSq := cfg.Derived.ColonyTouch * cfg.Derived.ColonyTouch

	query := g.antFilter.Query()
	for query.Next() {
		pos, vel, ant := query.Get()
		// A harvesting ant keeps its load until the harvest ends
		if ant.Carrying <= 0 || ant.State == components.StateHarvesting {
			continue
		}
		if r2.Norm2(r2.Sub(pos.Vec, g.colony.Pos)) > touchSq {
			continue
		}

		amount := ant.Carrying
		foodID := ant.LastFoodID
		g.colony.Stock += amount
		ant.Carrying = 0
		ant.FoodTrailTimer = 0
		ant.DepositCooldown = 0
		ant.LastFoodID = 0
		ant.RestTimer = cfg.Ant.RestDuration
		ant.State = components.StateResting
		vel.Vec = r2.Vec{}

		g.emit(telemetry.Event{Type: telemetry.EventDelivery, Tick: g.tick, EntityID: ant.ID, Amount: amount})
		g.recordDelivery(ant.ID, foodID, amount, g.simTime+dt)
	}
}

// prune removes dead ants, empty food and faded pheromones. Food-linked
// pheromones whose source food is removed this tick go with it.
func (g *Game) prune() {
	pc := &g.cfg.Pheromone

	type removal struct {
		entity ecs.Entity
		event  telemetry.Event
	}
	var toRemove []removal
	depleted := make(map[uint32]struct{})

	fq := g.foodFilter.Query()
	for fq.Next() {
		_, f := fq.Get()
		if f.Quantity > 0 {
			continue
		}
		depleted[f.ID] = struct{}{}
		typ := telemetry.EventFoodDepleted
		if f.TimeToLive <= 0 {
			typ = telemetry.EventFoodExpired
		}
		toRemove = append(toRemove, removal{fq.Entity(), telemetry.Event{Type: typ, Tick: g.tick, EntityID: f.ID}})
	}
	foodRemoved := len(toRemove)

	aq := g.antFilter.Query()
	for aq.Next() {
		_, _, ant := aq.Get()
		if ant.Health <= 0 {
			toRemove = append(toRemove, removal{aq.Entity(), telemetry.Event{Type: telemetry.EventDeath, Tick: g.tick, EntityID: ant.ID}})
		}
	}
	antsRemoved := len(toRemove) - foodRemoved

	pq := g.pheromoneFilter.Query()
	for pq.Next() {
		_, p := pq.Get()
		if systems.Expired(p, pc) {
			toRemove = append(toRemove, removal{pq.Entity(), telemetry.Event{Type: telemetry.EventPrune, Tick: g.tick, EntityID: p.ID}})
			continue
		}
		if _, gone := depleted[p.SourceFoodID]; p.FromFood && p.SourceFoodID != 0 && gone {
			toRemove = append(toRemove, removal{pq.Entity(), telemetry.Event{Type: telemetry.EventInvalidate, Tick: g.tick, EntityID: p.ID}})
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, r := range toRemove {
		g.world.RemoveEntity(r.entity)
		g.emit(r.event)
		if r.event.Type == telemetry.EventDeath {
			g.lifetimeTracker.Remove(r.event.EntityID)
		}
	}
	g.foodCount -= foodRemoved
	g.antCount -= antsRemoved
	g.pheromoneCount -= len(toRemove) - foodRemoved - antsRemoved
}

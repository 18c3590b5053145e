package game

import (
	"log/slog"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/telemetry"
)

// emit feeds an event to the window collector and the lifetime tracker.
func (g *Game) emit(ev telemetry.Event) {
	g.collector.Record(ev)
	g.lifetimeTracker.Observe(ev)
}

// recordDelivery appends an unload to deliveries.csv when output is enabled.
func (g *Game) recordDelivery(antID, foodID uint32, amount, simTime float64) {
	if g.outputManager == nil {
		return
	}
	rec := telemetry.DeliveryRecord{
		SimTime: simTime,
		Tick:    g.tick,
		AntID:   antID,
		FoodID:  foodID,
		Amount:  amount,
		Stock:   g.colony.Stock,
	}
	if lt := g.lifetimeTracker.Get(antID); lt != nil {
		rec.Trip = lt.Trips
	}
	if err := g.outputManager.WriteDelivery(rec); err != nil {
		slog.Error("failed to write delivery", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.simTime) {
		return
	}

	stats := g.collector.Flush(g.tick, g.simTime, g.sampleGauges())
	perfStats := g.perfCollector.Stats()

	// Call stats callback if provided
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	// Log stats if enabled (console output)
	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	} else {
		slog.Debug("perf", "stats", perfStats)
	}

	// Write to CSV if output manager is enabled
	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}

	// Check for bookmarks
	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}

// sampleGauges collects population state for the window being flushed.
func (g *Game) sampleGauges() telemetry.Gauges {
	gauges := telemetry.Gauges{
		Ants:       g.antCount,
		Food:       g.foodCount,
		Pheromones: g.pheromoneCount,
		Stock:      g.colony.Stock,
	}

	query := g.antFilter.Query()
	for query.Next() {
		_, _, ant := query.Get()

		switch ant.State {
		case components.StateRoaming:
			gauges.Roaming++
		case components.StateHarvesting:
			gauges.Harvesting++
		case components.StateReturning:
			gauges.Returning++
		case components.StateResting:
			gauges.Resting++
		}
		if ant.Condition == components.ConditionWeakened {
			gauges.Weakened++
		}
		gauges.Healths = append(gauges.Healths, ant.Health)
		gauges.Loads = append(gauges.Loads, ant.Carrying)

		// Keep lifetime ages current for the inspector
		g.lifetimeTracker.UpdateAge(ant.ID, g.simTime)
	}

	pq := g.pheromoneFilter.Query()
	for pq.Next() {
		_, p := pq.Get()
		gauges.Intensities = append(gauges.Intensities, p.Intensity)
	}

	return gauges
}

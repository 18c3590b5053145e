package systems

import "github.com/pthm-cable/antfarm/telemetry"

// SystemInfo describes a tick phase for UI display.
type SystemInfo struct {
	Phase       telemetry.Phase
	Name        string
	Description string
}

// SystemRegistry holds display metadata for the tick phases, in execution
// order, so the perf panel and the perf collector share one phase list.
type SystemRegistry struct {
	systems []SystemInfo
	byPhase map[telemetry.Phase]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byPhase: make(map[telemetry.Phase]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{Phase: telemetry.PhaseSnapshot, Name: "Snapshot", Description: "Copies markers and food into sensing views"})
	r.Register(SystemInfo{Phase: telemetry.PhaseAnts, Name: "Ants", Description: "Sensing, steering, aging"})
	r.Register(SystemInfo{Phase: telemetry.PhaseDeposits, Name: "Deposits", Description: "Creates pheromones laid this tick"})
	r.Register(SystemInfo{Phase: telemetry.PhaseFood, Name: "Food", Description: "Ticks food time to live"})
	r.Register(SystemInfo{Phase: telemetry.PhaseDecay, Name: "Decay", Description: "Fades pheromone intensity"})
	r.Register(SystemInfo{Phase: telemetry.PhaseFeeding, Name: "Feeding", Description: "Starts harvesting on food contact"})
	r.Register(SystemInfo{Phase: telemetry.PhaseHarvest, Name: "Harvest", Description: "Moves food into ant loads"})
	r.Register(SystemInfo{Phase: telemetry.PhaseDelivery, Name: "Delivery", Description: "Unloads cargo at the colony"})
	r.Register(SystemInfo{Phase: telemetry.PhasePrune, Name: "Prune", Description: "Removes dead, depleted and faded entities"})
	r.Register(SystemInfo{Phase: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Flushes stats windows"})
}

// Register adds a phase. A later entry for the same phase replaces the
// display info but keeps both in All.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byPhase[info.Phase] = info
}

// Get returns the info registered for p.
func (r *SystemRegistry) Get(p telemetry.Phase) (SystemInfo, bool) {
	info, ok := r.byPhase[p]
	return info, ok
}

// GetName returns the display name for p, or its short identifier if
// nothing is registered.
func (r *SystemRegistry) GetName(p telemetry.Phase) string {
	if info, ok := r.byPhase[p]; ok {
		return info.Name
	}
	return p.String()
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// Phases returns the registered phases in registration order.
func (r *SystemRegistry) Phases() []telemetry.Phase {
	out := make([]telemetry.Phase, len(r.systems))
	for i, info := range r.systems {
		out[i] = info.Phase
	}
	return out
}

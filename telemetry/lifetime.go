package telemetry

// LifetimeStats tracks per-ant foraging statistics over its lifetime.
type LifetimeStats struct {
	BirthTick    int64
	BirthTimeSec float64
	AgeSec       float64

	Discoveries int     // food sources touched
	Harvested   float64 // total food moved into the load
	Trips       int     // completed deliveries
	Delivered   float64 // total food unloaded at the colony
	Deposits    int     // pheromones laid
}

// LifetimeTracker manages per-ant lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new ant.
func (lt *LifetimeTracker) Register(antID uint32, birthTick int64, birthTimeSec float64) {
	lt.stats[antID] = &LifetimeStats{
		BirthTick:    birthTick,
		BirthTimeSec: birthTimeSec,
	}
}

// Get returns the lifetime stats for an ant, or nil if not found.
func (lt *LifetimeTracker) Get(antID uint32) *LifetimeStats {
	return lt.stats[antID]
}

// Remove removes an ant's stats and returns them (for logging).
func (lt *LifetimeTracker) Remove(antID uint32) *LifetimeStats {
	stats := lt.stats[antID]
	delete(lt.stats, antID)
	return stats
}

// Clear drops all tracked ants.
func (lt *LifetimeTracker) Clear() {
	clear(lt.stats)
}

// Observe feeds an event into the stats of the ant it concerns.
// Events for untracked ants are ignored.
func (lt *LifetimeTracker) Observe(ev Event) {
	s := lt.stats[ev.EntityID]
	if s == nil {
		return
	}
	switch ev.Type {
	case EventDiscovery:
		s.Discoveries++
	case EventHarvest:
		s.Harvested += ev.Amount
	case EventDelivery:
		s.Trips++
		s.Delivered += ev.Amount
	case EventDeposit:
		s.Deposits++
	}
}

// UpdateAge updates the age based on the current simulated time.
func (lt *LifetimeTracker) UpdateAge(antID uint32, simTimeSec float64) {
	if s := lt.stats[antID]; s != nil {
		s.AgeSec = simTimeSec - s.BirthTimeSec
	}
}

// Count returns the number of tracked ants.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}

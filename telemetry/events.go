// Package telemetry provides colony foraging statistics, bookmarking, and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventDiscovery EventType = iota // ant touched food and started harvesting
	EventHarvest                    // food moved into an ant's load
	EventDelivery                   // cargo unloaded at the colony
	EventDeath                      // ant health reached zero
	EventFoodSpawned
	EventFoodDepleted // food harvested to zero
	EventFoodExpired  // food dried up when its time to live ran out
	EventDeposit      // pheromone laid by an ant or a pulse
	EventPrune        // pheromone faded below the removal threshold
	EventInvalidate   // pheromone removed with its source food
)

// String returns the display name for an EventType.
func (t EventType) String() string {
	switch t {
	case EventDiscovery:
		return "discovery"
	case EventHarvest:
		return "harvest"
	case EventDelivery:
		return "delivery"
	case EventDeath:
		return "death"
	case EventFoodSpawned:
		return "food_spawned"
	case EventFoodDepleted:
		return "food_depleted"
	case EventFoodExpired:
		return "food_expired"
	case EventDeposit:
		return "deposit"
	case EventPrune:
		return "prune"
	case EventInvalidate:
		return "invalidate"
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type     EventType
	Tick     int64
	EntityID uint32

	// Optional fields depending on event type
	TargetID uint32  // food id for discovery/harvest events
	Amount   float64 // food moved (harvest, delivery)
}

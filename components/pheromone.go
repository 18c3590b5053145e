package components

import "gonum.org/v1/gonum/spatial/r2"

// Pheromone is a decaying trail marker.
type Pheromone struct {
	ID           uint32
	Kind         PheromoneKind
	FromFood     bool
	Strength     float64
	Intensity    float64
	OwnerID      uint32 // 0 = deposited by a pulse
	SourceFoodID uint32 // 0 = not linked
	HomeDir      r2.Vec // unit vector toward the colony at deposit time
	HasHomeDir   bool
}

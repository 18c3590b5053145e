// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's arena position.
type Position struct {
	r2.Vec
}

// Velocity represents an entity's velocity in arena units per speed-second.
// Its magnitude is kept at or below 1; ants scale it by their speed.
type Velocity struct {
	r2.Vec
}

// Role is a cosmetic caste tag. It does not alter behavior.
type Role uint8

const (
	RoleWorker Role = iota
	RoleScout
	RoleLookout
)

// RoleNames returns the display names for all roles.
// The order matches the Role constants.
func RoleNames() []string {
	return []string{"Worker", "Scout", "Lookout"}
}

// RoleCount returns the number of roles.
func RoleCount() int {
	return len(RoleNames())
}

// String returns the display name for a Role.
func (r Role) String() string {
	names := RoleNames()
	if int(r) < len(names) {
		return names[r]
	}
	return "Unknown"
}

// Condition is derived from health thresholds.
type Condition uint8

const (
	ConditionHealthy Condition = iota
	ConditionWeakened
	ConditionDead
)

// String returns the display name for a Condition.
func (c Condition) String() string {
	switch c {
	case ConditionHealthy:
		return "Healthy"
	case ConditionWeakened:
		return "Weakened"
	case ConditionDead:
		return "Dead"
	}
	return "Unknown"
}

// AntState is the explicit behavior state of an ant.
type AntState uint8

const (
	StateRoaming    AntState = iota // free search, no cargo
	StateHarvesting                 // frozen on a food source, HarvestTimer running
	StateReturning                  // carrying cargo home
	StateResting                    // frozen at the colony, RestTimer running
)

// String returns the display name for an AntState.
func (s AntState) String() string {
	switch s {
	case StateRoaming:
		return "Roaming"
	case StateHarvesting:
		return "Harvesting"
	case StateReturning:
		return "Returning"
	case StateResting:
		return "Resting"
	}
	return "Unknown"
}

// FoodKind is a cosmetic food type tag.
type FoodKind uint8

const (
	FoodSugar FoodKind = iota
	FoodProtein
)

// String returns the display name for a FoodKind.
func (k FoodKind) String() string {
	if k == FoodProtein {
		return "Protein"
	}
	return "Sugar"
}

// PheromoneKind distinguishes ordinary path trails from food alarms.
type PheromoneKind uint8

const (
	PheromonePath PheromoneKind = iota
	PheromoneAlarm
)

// String returns the display name for a PheromoneKind.
func (k PheromoneKind) String() string {
	if k == PheromoneAlarm {
		return "Alarm"
	}
	return "Path"
}

package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"
)

// Ant holds ant-specific data.
type Ant struct {
	ID   uint32
	Role Role

	// Core state
	State     AntState
	Health    float64
	Condition Condition
	Carrying  float64
	Heading   r2.Vec // last steering direction, for display

	// Timers (seconds)
	HarvestTimer    float64 // attached to StateHarvesting
	RestTimer       float64 // attached to StateResting
	FoodTrailTimer  float64 // deposit alarms while > 0
	DepositCooldown float64 // accumulates until the deposit interval

	// HarvestFood is a weak link to the food being harvested.
	// A dead entity means the link was already invalidated.
	HarvestFood ecs.Entity
	LastFoodID  uint32 // 0 = none

	// Stall breaking
	LastFollowedID       uint32 // 0 = none
	LastFollowedDuration float64
}

// Returning reports whether the ant carries cargo.
// Marker visibility and homing are driven by this, not by State.
func (a *Ant) Returning() bool {
	return a.Carrying > 0
}

// Frozen reports whether the ant is pinned in place by a timed state.
func (a *Ant) Frozen() bool {
	return a.State == StateHarvesting || a.State == StateResting
}

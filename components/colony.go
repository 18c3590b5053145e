package components

import "gonum.org/v1/gonum/spatial/r2"

// Colony is the nest: the homing target and accumulator of delivered food.
// It is a singleton held by the game, not an ECS entity.
type Colony struct {
	Pos    r2.Vec
	Stock  float64
	Radius float64
}

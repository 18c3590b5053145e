// Package systems contains the per-entity simulation algorithms.
package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
)

// Bounds represents the arena bounds.
type Bounds struct {
	Width, Height float64
}

// Integrate advances pos by vel scaled by speed and dt, then wraps it
// toroidally. Frozen entities keep their position but are still wrapped.
func Integrate(pos *components.Position, vel components.Velocity, dt, speed float64, frozen bool, b Bounds) {
	if !frozen {
		pos.Vec = r2.Add(pos.Vec, r2.Scale(dt*speed, vel.Vec))
	}
	pos.Vec = Wrap(pos.Vec, b)
}

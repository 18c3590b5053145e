package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

// RNG is the interface for random number generation.
type RNG interface {
	Float64() float64
}

// NewFood rolls a food source with random quantity, kind and time to live.
func NewFood(id uint32, rng RNG, fc *config.FoodConfig) components.Food {
	kind := components.FoodSugar
	quantity := float64(fc.MinQuantity) + float64(int(rng.Float64()*float64(fc.QuantitySpan)))
	if rng.Float64() > 0.5 {
		kind = components.FoodProtein
	}
	return components.Food{
		ID:         id,
		Kind:       kind,
		Quantity:   quantity,
		TimeToLive: fc.MinTTL + rng.Float64()*fc.TTLSpan,
	}
}

// RandomPoint returns a uniformly distributed point inside the bounds.
func RandomPoint(rng RNG, b Bounds) r2.Vec {
	return r2.Vec{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}
}

// UpdateFood advances a food source's time to live. Once it runs out the
// source dries up, whether or not it was ever harvested.
func UpdateFood(f *components.Food, dt float64) {
	f.TimeToLive -= dt
	if f.TimeToLive <= 0 {
		f.TimeToLive = 0
		f.Quantity = 0
	}
}

// Harvest moves up to dt worth of food into the ant's load, bounded by the
// remaining capacity and the food left. Returns the amount moved.
func Harvest(ant *components.Ant, f *components.Food, dt float64, ac *config.AntConfig) float64 {
	amount := ac.CarryCapacity - ant.Carrying
	if rate := ac.ConsumptionPerSec * dt; rate < amount {
		amount = rate
	}
	if f.Quantity < amount {
		amount = f.Quantity
	}
	if amount < 0 {
		amount = 0
	}

	f.Quantity = decay(f.Quantity, amount)
	ant.Carrying = clampFloat(ant.Carrying+amount, 0, ac.CarryCapacity)
	ant.Health = clampFloat(ant.Health+amount*ac.HealthRegen, 0, ac.MaxHealth)
	return amount
}

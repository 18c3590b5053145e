package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

// Deposit describes a pheromone an ant wants to lay this tick.
// The caller creates the entity once the ant pass is over.
type Deposit struct {
	Pos          r2.Vec
	Kind         components.PheromoneKind
	FromFood     bool
	Strength     float64
	OwnerID      uint32
	SourceFoodID uint32
	HomeDir      r2.Vec // raw offset toward the colony; normalized on creation
	HasHomeDir   bool
}

// UpdateAnt runs one perception-steer-act cycle for an ant.
// Returns the pheromone to deposit, if any.
func UpdateAnt(ant *components.Ant, pos *components.Position, vel *components.Velocity, dt float64, env *Surroundings, rng *rand.Rand, cfg *config.Config) (Deposit, bool) {
	// Flags are sampled before timers tick so the last frozen tick still freezes
	harvesting := ant.State == components.StateHarvesting
	resting := ant.State == components.StateResting
	frozen := harvesting || resting

	ant.HarvestTimer = decay(ant.HarvestTimer, dt)
	ant.RestTimer = decay(ant.RestTimer, dt)
	if resting && ant.RestTimer <= 0 {
		ant.State = components.StateRoaming
	}

	target := SelectTarget(ant, pos.Vec, vel.Vec, env, cfg)
	TrackTarget(ant, &target, dt, cfg.Ant.StallDuration)
	Steer(ant, vel, target, frozen, rng, &cfg.Steering)

	Integrate(pos, *vel, dt, cfg.Ant.Speed, frozen, env.Bounds)
	Age(ant, dt, cfg)

	ant.DepositCooldown += dt
	ant.FoodTrailTimer = decay(ant.FoodTrailTimer, dt)
	if frozen || ant.DepositCooldown < env.DepositInterval {
		return Deposit{}, false
	}
	ant.DepositCooldown = 0
	return TrailDeposit(ant, pos.Vec, env.Colony, &cfg.Pheromone), true
}

// Steer updates velocity toward the target. Frozen ants are damped, idle
// ants wander with jitter. Magnitude is capped at MaxVelocity.
func Steer(ant *components.Ant, vel *components.Velocity, t Target, frozen bool, rng *rand.Rand, st *config.SteeringConfig) {
	v := vel.Vec
	switch {
	case frozen:
		v = r2.Scale(st.Damping, v)
	case !t.Has:
		v.X += (rng.Float64() - 0.5) * st.Jitter
		v.Y += (rng.Float64() - 0.5) * st.Jitter
	}

	if t.Has {
		dir := Unit(t.Dir)
		v = r2.Add(r2.Scale(st.Smoothing, v), r2.Scale(1-st.Smoothing, dir))
		ant.Heading = dir
	}

	vel.Vec = ClampMagnitude(v, st.MaxVelocity)
}

// Age applies linear health decay and derives the condition tag.
func Age(ant *components.Ant, dt float64, cfg *config.Config) {
	ant.Health = decay(ant.Health, dt*cfg.Derived.HealthDecay)
	ant.Condition = ConditionFor(ant.Health, cfg.Ant.WeakenedBelow)
}

// ConditionFor maps a health value to its condition tag.
func ConditionFor(health, weakenedBelow float64) components.Condition {
	switch {
	case health <= 0:
		return components.ConditionDead
	case health < weakenedBelow:
		return components.ConditionWeakened
	default:
		return components.ConditionHealthy
	}
}

// TrailDeposit builds the marker an ant lays at p given its mode:
// cargo or a fresh discovery lays a strong alarm linked to the food,
// otherwise a weak path marker.
func TrailDeposit(ant *components.Ant, p r2.Vec, colony *components.Colony, pc *config.PheromoneConfig) Deposit {
	d := Deposit{
		Pos:      p,
		Kind:     components.PheromonePath,
		Strength: pc.WeakStrength,
		OwnerID:  ant.ID,
	}
	if colony != nil {
		d.HomeDir = r2.Sub(colony.Pos, p)
		d.HasHomeDir = true
	}

	if ant.Returning() || ant.FoodTrailTimer > 0 {
		d.Kind = components.PheromoneAlarm
		d.FromFood = true
		d.Strength = pc.StrongStrength
		d.SourceFoodID = ant.LastFoodID
	}
	return d
}

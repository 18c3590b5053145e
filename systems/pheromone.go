package systems

import (
	"math"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

// NewPheromone turns a deposit into a marker. Intensity starts at the
// strength, capped at MaxIntensity; the home hint is normalized.
func NewPheromone(id uint32, d Deposit, pc *config.PheromoneConfig) components.Pheromone {
	p := components.Pheromone{
		ID:           id,
		Kind:         d.Kind,
		FromFood:     d.FromFood,
		Strength:     d.Strength,
		Intensity:    math.Min(pc.MaxIntensity, d.Strength),
		OwnerID:      d.OwnerID,
		SourceFoodID: d.SourceFoodID,
	}
	if d.HasHomeDir {
		p.HomeDir = Unit(d.HomeDir)
		p.HasHomeDir = true
	}
	return p
}

// DecayRate returns the intensity lost per second for a marker strength.
// Stronger markers fade slower.
func DecayRate(strength float64, pc *config.PheromoneConfig) float64 {
	return pc.DecayRate / (pc.DecayOffset + strength)
}

// UpdatePheromone fades a marker's intensity, stopping at zero.
func UpdatePheromone(p *components.Pheromone, dt float64, pc *config.PheromoneConfig) {
	p.Intensity = decay(p.Intensity, dt*DecayRate(p.Strength, pc))
}

// Expired reports whether a marker has faded below the removal threshold.
func Expired(p *components.Pheromone, pc *config.PheromoneConfig) bool {
	return p.Intensity <= pc.RemoveBelow
}

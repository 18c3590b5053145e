package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
)

func TestNewPheromone(t *testing.T) {
	cfg := testConfig(t)
	pc := cfg.Pheromone

	d := Deposit{
		Kind:       components.PheromoneAlarm,
		FromFood:   true,
		Strength:   pc.MaxIntensity * 2,
		OwnerID:    4,
		HomeDir:    r2.Vec{X: 0, Y: -40},
		HasHomeDir: true,
	}
	p := NewPheromone(11, d, &pc)

	if p.Intensity != pc.MaxIntensity {
		t.Errorf("intensity = %f, want cap %f", p.Intensity, pc.MaxIntensity)
	}
	if p.Strength != d.Strength {
		t.Errorf("strength = %f, want %f", p.Strength, d.Strength)
	}
	if math.Abs(p.HomeDir.Y+1) > 1e-9 || p.HomeDir.X != 0 {
		t.Errorf("home dir = %v, want (0, -1)", p.HomeDir)
	}
}

func TestDecayRateStrongerFadesSlower(t *testing.T) {
	cfg := testConfig(t)
	pc := &cfg.Pheromone

	weak := DecayRate(pc.WeakStrength, pc)
	strong := DecayRate(pc.StrongStrength, pc)
	if strong >= weak {
		t.Errorf("strong rate %f should be below weak rate %f", strong, weak)
	}

	want := pc.DecayRate / (pc.DecayOffset + pc.WeakStrength)
	if math.Abs(weak-want) > 1e-12 {
		t.Errorf("weak rate = %f, want %f", weak, want)
	}
}

func TestUpdatePheromoneConverges(t *testing.T) {
	cfg := testConfig(t)
	pc := &cfg.Pheromone
	p := &components.Pheromone{Strength: pc.WeakStrength, Intensity: pc.WeakStrength}

	prev := p.Intensity
	steps := 0
	for !Expired(p, pc) {
		UpdatePheromone(p, 1, pc)
		if p.Intensity > prev {
			t.Fatalf("intensity rose from %f to %f", prev, p.Intensity)
		}
		prev = p.Intensity
		steps++
		if steps > 1000 {
			t.Fatal("marker never expired")
		}
	}

	rate := DecayRate(pc.WeakStrength, pc)
	want := int(math.Ceil((pc.WeakStrength - pc.RemoveBelow) / rate))
	if steps < want-1 || steps > want+1 {
		t.Errorf("expired after %d steps, want about %d", steps, want)
	}

	for i := 0; i < 100; i++ {
		UpdatePheromone(p, 1, pc)
	}
	if p.Intensity != 0 {
		t.Errorf("intensity = %f, want 0", p.Intensity)
	}
}

package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
)

func TestConditionFor(t *testing.T) {
	tests := []struct {
		health float64
		want   components.Condition
	}{
		{100, components.ConditionHealthy},
		{30, components.ConditionHealthy},
		{29.9, components.ConditionWeakened},
		{0.01, components.ConditionWeakened},
		{0, components.ConditionDead},
	}

	for _, tt := range tests {
		if got := ConditionFor(tt.health, 30); got != tt.want {
			t.Errorf("ConditionFor(%f) = %v, want %v", tt.health, got, tt.want)
		}
	}
}

func TestAgeDecaysToDeath(t *testing.T) {
	cfg := testConfig(t)
	ant := &components.Ant{Health: cfg.Ant.MaxHealth}

	Age(ant, cfg.Ant.Lifespan/2, cfg)
	if math.Abs(ant.Health-cfg.Ant.MaxHealth/2) > 1e-6 {
		t.Errorf("half a lifespan: health = %f, want %f", ant.Health, cfg.Ant.MaxHealth/2)
	}

	Age(ant, cfg.Ant.Lifespan, cfg)
	if ant.Health != 0 || ant.Condition != components.ConditionDead {
		t.Errorf("past lifespan: health = %f condition = %v", ant.Health, ant.Condition)
	}
}

func TestSteer(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name   string
		vel    r2.Vec
		target Target
		frozen bool
		check  func(t *testing.T, v r2.Vec)
	}{
		{
			name:   "clamps fast velocity",
			vel:    r2.Vec{X: 5, Y: 5},
			target: Target{Has: true, Dir: r2.Vec{X: 1}},
			check: func(t *testing.T, v r2.Vec) {
				if math.Abs(r2.Norm(v)-cfg.Steering.MaxVelocity) > 1e-9 {
					t.Errorf("|v| = %f, want %f", r2.Norm(v), cfg.Steering.MaxVelocity)
				}
			},
		},
		{
			name:   "frozen damps",
			vel:    r2.Vec{X: 0.5},
			frozen: true,
			check: func(t *testing.T, v r2.Vec) {
				want := 0.5 * cfg.Steering.Damping
				if math.Abs(v.X-want) > 1e-9 || v.Y != 0 {
					t.Errorf("v = %v, want (%f, 0)", v, want)
				}
			},
		},
		{
			name:   "blends toward target",
			target: Target{Has: true, Dir: r2.Vec{Y: 3}},
			check: func(t *testing.T, v r2.Vec) {
				want := 1 - cfg.Steering.Smoothing
				if math.Abs(v.Y-want) > 1e-9 || v.X != 0 {
					t.Errorf("v = %v, want (0, %f)", v, want)
				}
			},
		},
		{
			name: "wanders without target",
			check: func(t *testing.T, v r2.Vec) {
				half := cfg.Steering.Jitter / 2
				if math.Abs(v.X) > half || math.Abs(v.Y) > half {
					t.Errorf("jitter %v exceeds %f", v, half)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ant := &components.Ant{}
			vel := &components.Velocity{Vec: tt.vel}
			Steer(ant, vel, tt.target, tt.frozen, rng, &cfg.Steering)
			tt.check(t, vel.Vec)
		})
	}
}

func TestTrailDeposit(t *testing.T) {
	cfg := testConfig(t)
	colony := &components.Colony{Pos: r2.Vec{X: 450, Y: 300}}
	p := r2.Vec{X: 100, Y: 300}

	tests := []struct {
		name     string
		ant      components.Ant
		wantKind components.PheromoneKind
		wantFood bool
		strength float64
	}{
		{"roaming lays path", components.Ant{ID: 1}, components.PheromonePath, false, cfg.Pheromone.WeakStrength},
		{"carrying lays alarm", components.Ant{ID: 1, Carrying: 3, LastFoodID: 9}, components.PheromoneAlarm, true, cfg.Pheromone.StrongStrength},
		{"fresh discovery lays alarm", components.Ant{ID: 1, FoodTrailTimer: 4, LastFoodID: 9}, components.PheromoneAlarm, true, cfg.Pheromone.StrongStrength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := TrailDeposit(&tt.ant, p, colony, &cfg.Pheromone)
			if d.Kind != tt.wantKind || d.FromFood != tt.wantFood || d.Strength != tt.strength {
				t.Errorf("deposit = %+v", d)
			}
			if d.OwnerID != 1 {
				t.Errorf("owner = %d, want 1", d.OwnerID)
			}
			if tt.wantFood && d.SourceFoodID != 9 {
				t.Errorf("source food = %d, want 9", d.SourceFoodID)
			}
			if !d.HasHomeDir || d.HomeDir != (r2.Vec{X: 350}) {
				t.Errorf("home dir = %v (%v)", d.HomeDir, d.HasHomeDir)
			}
		})
	}

	d := TrailDeposit(&components.Ant{ID: 1}, p, nil, &cfg.Pheromone)
	if d.HasHomeDir {
		t.Error("no colony should leave the home hint unset")
	}
}

func TestUpdateAntDepositInterval(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(3))
	env := &Surroundings{Bounds: Bounds{Width: 900, Height: 600}, DepositInterval: 2}

	ant := &components.Ant{ID: 1, Health: cfg.Ant.MaxHealth}
	pos := &components.Position{Vec: r2.Vec{X: 400, Y: 300}}
	vel := &components.Velocity{}

	var deposits []bool
	for i := 0; i < 4; i++ {
		_, ok := UpdateAnt(ant, pos, vel, 1, env, rng, cfg)
		deposits = append(deposits, ok)
	}

	want := []bool{false, true, false, true}
	for i := range want {
		if deposits[i] != want[i] {
			t.Errorf("tick %d: deposited = %v, want %v", i, deposits[i], want[i])
		}
	}
}

func TestUpdateAntHarvestingStaysPut(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(3))
	env := &Surroundings{Bounds: Bounds{Width: 900, Height: 600}}

	ant := &components.Ant{ID: 1, Health: cfg.Ant.MaxHealth, State: components.StateHarvesting, HarvestTimer: 3}
	start := r2.Vec{X: 400, Y: 300}
	pos := &components.Position{Vec: start}
	vel := &components.Velocity{Vec: r2.Vec{X: 1}}

	_, ok := UpdateAnt(ant, pos, vel, 1, env, rng, cfg)
	if ok {
		t.Error("harvesting ant should not deposit")
	}
	if pos.Vec != start {
		t.Errorf("harvesting ant moved to %v", pos.Vec)
	}
	if math.Abs(ant.HarvestTimer-2) > 1e-9 {
		t.Errorf("harvest timer = %f, want 2", ant.HarvestTimer)
	}
}

func TestUpdateAntRestEnds(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(3))
	env := &Surroundings{Bounds: Bounds{Width: 900, Height: 600}}

	ant := &components.Ant{ID: 1, Health: cfg.Ant.MaxHealth, State: components.StateResting, RestTimer: 0.5}
	pos := &components.Position{Vec: r2.Vec{X: 400, Y: 300}}
	vel := &components.Velocity{}

	UpdateAnt(ant, pos, vel, 1, env, rng, cfg)
	if ant.State != components.StateRoaming {
		t.Errorf("state = %v, want Roaming", ant.State)
	}
}

package game

import (
	"errors"
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

// newTestGame creates a paused game with the given population and seed 1.
func newTestGame(t *testing.T, ants, food int) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Population.Ants = ants
	cfg.Population.Food = food

	g, err := NewGame(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

// placeFood spawns a food source with a fixed quantity and time to live.
func placeFood(g *Game, p r2.Vec, quantity, ttl float64) (ecs.Entity, uint32) {
	e := g.SpawnFood(p)
	_, f := g.foodMapper.Get(e)
	f.Quantity = quantity
	f.TimeToLive = ttl
	return e, f.ID
}

// placeAnt spawns a standing ant.
func placeAnt(g *Game, p r2.Vec) (ecs.Entity, uint32) {
	e := g.SpawnAnt(p, components.RoleWorker)
	_, vel, ant := g.antMapper.Get(e)
	vel.Vec = r2.Vec{}
	return e, ant.ID
}

func TestNewGamePopulates(t *testing.T) {
	g := newTestGame(t, 12, 4)

	if g.AntCount() != 12 || g.FoodCount() != 4 || g.PheromoneCount() != 0 {
		t.Errorf("counts = %d/%d/%d, want 12/4/0", g.AntCount(), g.FoodCount(), g.PheromoneCount())
	}
	if g.Running() {
		t.Error("new game should start paused")
	}
	c := g.Colony()
	if c.Pos != (r2.Vec{X: 450, Y: 300}) || c.Stock != 0 {
		t.Errorf("colony = %+v", c)
	}
}

func TestConfigureRejectsInvalid(t *testing.T) {
	g := newTestGame(t, 3, 1)

	tests := []struct {
		name string
		err  error
	}{
		{"negative ants", g.Configure(-1, 0, 2, 1)},
		{"negative food", g.Configure(0, -1, 2, 1)},
		{"negative interval", g.Configure(0, 0, -0.5, 1)},
		{"negative add food", g.AddFood(-1)},
		{"negative pulse", g.PulseTrail(-2)},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", tt.name, tt.err)
		}
	}

	// Rejected calls leave the arena untouched
	if g.AntCount() != 3 || g.FoodCount() != 1 {
		t.Errorf("counts changed to %d/%d", g.AntCount(), g.FoodCount())
	}
}

func TestConfigureDoesNotReuseIDs(t *testing.T) {
	g := newTestGame(t, 5, 2)

	var maxID uint32
	s := g.Snapshot()
	for _, a := range s.Ants {
		maxID = max(maxID, a.ID)
	}
	for _, f := range s.Food {
		maxID = max(maxID, f.ID)
	}

	if err := g.Configure(5, 2, 2, 1); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	s = g.Snapshot()
	for _, a := range s.Ants {
		if a.ID <= maxID {
			t.Errorf("ant id %d reused (previous max %d)", a.ID, maxID)
		}
	}
	if g.Tick() != 0 || g.Stock() != 0 {
		t.Errorf("tick = %d stock = %f after Configure", g.Tick(), g.Stock())
	}
}

func TestConfigureClampsTimeScale(t *testing.T) {
	g := newTestGame(t, 0, 0)

	if err := g.Configure(0, 0, 2, 5000); err != nil {
		t.Fatal(err)
	}
	if g.TimeScale() != g.Config().Clock.MaxTimeScale {
		t.Errorf("time scale = %f, want %f", g.TimeScale(), g.Config().Clock.MaxTimeScale)
	}

	g.SetTimeScale(0)
	if g.TimeScale() != 1 {
		t.Errorf("time scale = %f, want 1", g.TimeScale())
	}
}

func TestScaleFrame(t *testing.T) {
	g := newTestGame(t, 0, 0)

	tests := []struct {
		name      string
		timeScale float64
		frame     float64
		want      float64
	}{
		{"plain frame", 1, 0.016, 0.016},
		{"long frame clamped", 1, 1, 0.05},
		{"negative frame", 1, -0.1, 0},
		{"accelerated", 60, 0.02, 1.2},
		{"scaled clamp", 1440, 0.05, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.SetTimeScale(tt.timeScale)
			if got := g.ScaleFrame(tt.frame); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScaleFrame(%f) = %f, want %f", tt.frame, got, tt.want)
			}
		})
	}
}

func TestUpdateOnlyWhileRunning(t *testing.T) {
	g := newTestGame(t, 4, 2)

	g.Update(0.016)
	if g.Tick() != 0 {
		t.Errorf("paused Update ticked: %d", g.Tick())
	}

	g.Advance(0.016)
	if g.Tick() != 1 {
		t.Errorf("Advance while paused: tick = %d, want 1", g.Tick())
	}

	g.Start()
	g.Update(0.016)
	g.Update(0.016)
	if g.Tick() != 3 {
		t.Errorf("running Update: tick = %d, want 3", g.Tick())
	}
	if math.Abs(g.SimTime()-0.048) > 1e-9 {
		t.Errorf("sim time = %f, want 0.048", g.SimTime())
	}

	g.Pause()
	g.Update(0.016)
	if g.Tick() != 3 {
		t.Errorf("Update after Pause ticked: %d", g.Tick())
	}
}

func TestStatusHook(t *testing.T) {
	g := newTestGame(t, 2, 1)

	var states []StatusState
	g.SetStatusHook(func(s Status) { states = append(states, s.State) })

	g.Start()
	g.Start()
	g.Pause()
	if err := g.AddFood(2); err != nil {
		t.Fatal(err)
	}
	if err := g.Configure(2, 1, 2, 1); err != nil {
		t.Fatal(err)
	}

	want := []StatusState{StatusRunning, StatusPaused, StatusInfo, StatusReady}
	if len(states) != len(want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Errorf("state %d = %s, want %s", i, states[i], want[i])
		}
	}
}

func TestAddFoodAndPulseTrail(t *testing.T) {
	g := newTestGame(t, 3, 1)

	if err := g.AddFood(4); err != nil {
		t.Fatal(err)
	}
	if err := g.PulseTrail(6); err != nil {
		t.Fatal(err)
	}
	if g.FoodCount() != 5 || g.PheromoneCount() != 6 || g.AntCount() != 3 {
		t.Errorf("counts = %d ants %d food %d pheromones", g.AntCount(), g.FoodCount(), g.PheromoneCount())
	}

	pc := g.Config().Pheromone
	for _, p := range g.Snapshot().Pheromones {
		if p.Kind != components.PheromonePath || p.FromFood {
			t.Errorf("pulse pheromone %d is %v fromFood=%v", p.ID, p.Kind, p.FromFood)
		}
		if p.Intensity != math.Min(pc.MaxIntensity, pc.PulseStrength) {
			t.Errorf("pulse intensity = %f", p.Intensity)
		}
	}
}

func TestSnapshotSortedByID(t *testing.T) {
	g := newTestGame(t, 30, 6)
	if err := g.PulseTrail(10); err != nil {
		t.Fatal(err)
	}

	s := g.Snapshot()
	for i := 1; i < len(s.Ants); i++ {
		if s.Ants[i-1].ID >= s.Ants[i].ID {
			t.Fatalf("ants not sorted at %d", i)
		}
	}
	for i := 1; i < len(s.Food); i++ {
		if s.Food[i-1].ID >= s.Food[i].ID {
			t.Fatalf("food not sorted at %d", i)
		}
	}
	for i := 1; i < len(s.Pheromones); i++ {
		if s.Pheromones[i-1].ID >= s.Pheromones[i].ID {
			t.Fatalf("pheromones not sorted at %d", i)
		}
	}
	if g.Tick() != 0 {
		t.Error("Snapshot should not advance the simulation")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []AntView {
		g := newTestGame(t, 20, 5)
		g.Start()
		for i := 0; i < 200; i++ {
			g.Update(0.05)
		}
		return g.Snapshot().Ants
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("ant counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Carrying != b[i].Carrying {
			t.Errorf("ant %d diverged: %+v vs %+v", a[i].ID, a[i], b[i])
		}
	}
}

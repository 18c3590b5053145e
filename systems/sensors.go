package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/antfarm/components"
	"github.com/pthm-cable/antfarm/config"
)

// MarkerView is a read-only copy of a pheromone taken at the start of a tick.
type MarkerView struct {
	ID         uint32
	Pos        r2.Vec
	Kind       components.PheromoneKind
	FromFood   bool
	Intensity  float64
	OwnerID    uint32
	HomeDir    r2.Vec
	HasHomeDir bool
}

// FoodView is a read-only copy of a food source taken at the start of a tick.
type FoodView struct {
	ID       uint32
	Pos      r2.Vec
	Quantity float64
}

// Surroundings is everything an ant can sense during one tick.
// Markers and Food must be sorted by ascending ID: slice order is the
// encounter order used for tie-breaking.
type Surroundings struct {
	Bounds  Bounds
	Markers []MarkerView
	Food    []FoodView
	Colony  *components.Colony // nil disables homing and home hints

	// Optional indexes over Markers and Food. Nil means linear scan.
	MarkerGrid *SpatialGrid
	FoodGrid   *SpatialGrid

	DepositInterval float64

	scratch []Neighbor
}

// Target is the drive vector chosen for one tick.
type Target struct {
	Dir      r2.Vec
	Has      bool
	SourceID uint32 // marker being followed, 0 = none
}

// neighbors returns candidates within radius of origin, from the grid when
// present. Linear scans keep slice order.
func (s *Surroundings) neighbors(grid *SpatialGrid, n int, at func(int) r2.Vec, origin r2.Vec, radius float64) []Neighbor {
	s.scratch = s.scratch[:0]
	if grid != nil {
		s.scratch = grid.QueryRadiusInto(s.scratch, origin, radius)
		return s.scratch
	}
	for i := 0; i < n; i++ {
		d := r2.Sub(at(i), origin)
		s.scratch = append(s.scratch, Neighbor{Index: i, Delta: d, DistSq: r2.Norm2(d)})
	}
	return s.scratch
}

// markerVisible applies the visibility rules for one candidate marker.
func markerVisible(ant *components.Ant, m *MarkerView, returning bool) bool {
	if !m.FromFood {
		// Weak trails only guide ants on their way home
		if !returning || m.Kind != components.PheromonePath {
			return false
		}
	}
	// Never chase the alarm trail it is laying itself
	if m.FromFood && returning && m.OwnerID == ant.ID {
		return false
	}
	return true
}

// MarkerWeight scores a visible marker at offset delta (distance dist) for
// an ant moving with vel. colonyDir is the raw offset from the ant to the
// colony (zero when there is no colony).
func MarkerWeight(m *MarkerView, delta r2.Vec, dist float64, vel, colonyDir r2.Vec, st *config.SteeringConfig) float64 {
	heading := r2.Scale(1/magnitude(vel), vel)
	toMarker := r2.Scale(1/dist, delta)
	forwardBias := math.Max(0, r2.Dot(heading, toMarker)) + st.ForwardBonus
	distanceDecay := 1 / (1 + dist*st.DistanceDecay)

	base := st.PathMarkerWeight
	if m.FromFood {
		base = st.FoodMarkerWeight
	}

	homeBias := 1.0
	if !m.FromFood && m.HasHomeDir {
		align := r2.Dot(m.HomeDir, colonyDir) / magnitude(colonyDir)
		homeBias = math.Max(st.HomeBiasFloor, align+st.HomeBiasOffset)
	}

	return base * (m.Intensity + st.IntensityEpsilon) * forwardBias * distanceDecay * homeBias
}

// SelectTarget computes the drive vector for one ant: marker attraction,
// then food attraction, then the homing override.
func SelectTarget(ant *components.Ant, pos r2.Vec, vel r2.Vec, env *Surroundings, cfg *config.Config) Target {
	var t Target
	returning := ant.Returning()

	var colonyDir r2.Vec
	if env.Colony != nil {
		colonyDir = r2.Sub(env.Colony.Pos, pos)
	}

	// Marker attraction
	if len(env.Markers) > 0 {
		best, bestIdx := 0.0, -1
		cands := env.neighbors(env.MarkerGrid, len(env.Markers), func(i int) r2.Vec { return env.Markers[i].Pos }, pos, cfg.Ant.SenseRadius)
		for _, n := range cands {
			m := &env.Markers[n.Index]
			if !markerVisible(ant, m, returning) {
				continue
			}
			if n.DistSq > cfg.Derived.SenseRadiusSq || n.DistSq < cfg.Derived.MinSenseDistSq {
				continue
			}
			w := MarkerWeight(m, n.Delta, math.Sqrt(n.DistSq), vel, colonyDir, &cfg.Steering)
			// Strictly greater wins; equal weights go to the earlier marker
			if w > best || (w == best && bestIdx >= 0 && n.Index < bestIdx) {
				best, bestIdx = w, n.Index
				t.Dir = n.Delta
				t.Has = true
				t.SourceID = m.ID
			}
		}
	}

	// Food attraction
	if !returning && len(env.Food) > 0 {
		nearestIdx := -1
		nearestSq := math.Inf(1)
		var nearestDelta r2.Vec
		cands := env.neighbors(env.FoodGrid, len(env.Food), func(i int) r2.Vec { return env.Food[i].Pos }, pos, cfg.Ant.SenseRadius)
		for _, n := range cands {
			if n.DistSq >= cfg.Derived.SenseRadiusSq {
				continue
			}
			if n.DistSq < nearestSq || (n.DistSq == nearestSq && n.Index < nearestIdx) {
				nearestIdx, nearestSq, nearestDelta = n.Index, n.DistSq, n.Delta
			}
		}
		if nearestIdx >= 0 {
			blend := cfg.Steering.TrailBlend
			t.Dir = r2.Add(r2.Scale(blend, t.Dir), r2.Scale(1-blend, Unit(nearestDelta)))
			t.Has = true
		}
	}

	// Homing override
	if returning && env.Colony != nil {
		t.Dir = Unit(colonyDir)
		t.Has = true
	}

	return t
}

// TrackTarget applies stall breaking: following the same marker for longer
// than stall seconds discards the target for this tick.
func TrackTarget(ant *components.Ant, t *Target, dt, stall float64) {
	if !t.Has {
		return
	}
	if t.SourceID != 0 && ant.LastFollowedID == t.SourceID {
		ant.LastFollowedDuration += dt
	} else {
		ant.LastFollowedID = t.SourceID
		ant.LastFollowedDuration = 0
	}

	if t.SourceID != 0 && ant.LastFollowedDuration > stall {
		ant.LastFollowedID = 0
		ant.LastFollowedDuration = 0
		t.Has = false
	}
}

package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Population counts at window end
	Ants       int     `csv:"ants"`
	Food       int     `csv:"food"`
	Pheromones int     `csv:"pheromones"`
	Stock      float64 `csv:"stock"`

	// Ant states at window end
	Roaming    int `csv:"roaming"`
	Harvesting int `csv:"harvesting"`
	Returning  int `csv:"returning"`
	Resting    int `csv:"resting"`
	Weakened   int `csv:"weakened"`

	// Foraging during window
	Discoveries  int     `csv:"discoveries"`
	Deliveries   int     `csv:"deliveries"`
	Delivered    float64 `csv:"delivered"`
	DeliveryRate float64 `csv:"delivery_rate"` // delivered per simulated second
	Harvested    float64 `csv:"harvested"`
	Deaths       int     `csv:"deaths"`

	// Food turnover during window
	FoodSpawned  int `csv:"food_spawned"`
	FoodDepleted int `csv:"food_depleted"`
	FoodExpired  int `csv:"food_expired"`

	// Trail turnover during window
	PheromonesDeposited   int `csv:"pheromones_deposited"`
	PheromonesPruned      int `csv:"pheromones_pruned"`
	PheromonesInvalidated int `csv:"pheromones_invalidated"`

	// Health distribution (sampled at window end)
	HealthMean float64 `csv:"health_mean"`
	HealthP10  float64 `csv:"health_p10"`
	HealthP50  float64 `csv:"health_p50"`
	HealthP90  float64 `csv:"health_p90"`

	// Load distribution (sampled at window end)
	LoadMean float64 `csv:"load_mean"`
	LoadP50  float64 `csv:"load_p50"`
	LoadP90  float64 `csv:"load_p90"`

	IntensityMean float64 `csv:"intensity_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of the values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	// Sort a copy for percentiles
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("ants", s.Ants),
		slog.Int("food", s.Food),
		slog.Int("pheromones", s.Pheromones),
		slog.Float64("stock", s.Stock),
		slog.Int("roaming", s.Roaming),
		slog.Int("harvesting", s.Harvesting),
		slog.Int("returning", s.Returning),
		slog.Int("resting", s.Resting),
		slog.Int("weakened", s.Weakened),
		slog.Int("discoveries", s.Discoveries),
		slog.Int("deliveries", s.Deliveries),
		slog.Float64("delivered", s.Delivered),
		slog.Float64("delivery_rate", s.DeliveryRate),
		slog.Float64("harvested", s.Harvested),
		slog.Int("deaths", s.Deaths),
		slog.Int("food_spawned", s.FoodSpawned),
		slog.Int("food_depleted", s.FoodDepleted),
		slog.Int("food_expired", s.FoodExpired),
		slog.Int("pheromones_deposited", s.PheromonesDeposited),
		slog.Int("pheromones_pruned", s.PheromonesPruned),
		slog.Int("pheromones_invalidated", s.PheromonesInvalidated),
		slog.Float64("health_mean", s.HealthMean),
		slog.Float64("health_p10", s.HealthP10),
		slog.Float64("health_p50", s.HealthP50),
		slog.Float64("health_p90", s.HealthP90),
		slog.Float64("load_mean", s.LoadMean),
		slog.Float64("load_p50", s.LoadP50),
		slog.Float64("load_p90", s.LoadP90),
		slog.Float64("intensity_mean", s.IntensityMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"ants", s.Ants,
		"food", s.Food,
		"pheromones", s.Pheromones,
		"stock", s.Stock,
		"harvesting", s.Harvesting,
		"returning", s.Returning,
		"resting", s.Resting,
		"weakened", s.Weakened,
		"discoveries", s.Discoveries,
		"deliveries", s.Deliveries,
		"delivered", s.Delivered,
		"delivery_rate", s.DeliveryRate,
		"deaths", s.Deaths,
		"food_depleted", s.FoodDepleted,
		"food_expired", s.FoodExpired,
		"pheromones_deposited", s.PheromonesDeposited,
		"pheromones_pruned", s.PheromonesPruned,
		"pheromones_invalidated", s.PheromonesInvalidated,
		"health_mean", s.HealthMean,
		"health_p10", s.HealthP10,
		"load_mean", s.LoadMean,
	)
}

package telemetry

// Collector accumulates events within simulated-time windows and produces WindowStats.
// Windows are measured in simulated seconds because the tick length varies
// with the time scale.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartTick int64
	windowStartSec  float64

	// Event counters for current window
	discoveries           int
	deliveries            int
	delivered             float64
	harvested             float64
	deaths                int
	foodSpawned           int
	foodDepleted          int
	foodExpired           int
	pheromonesDeposited   int
	pheromonesPruned      int
	pheromonesInvalidated int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// Record counts an event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventDiscovery:
		c.discoveries++
	case EventHarvest:
		c.harvested += ev.Amount
	case EventDelivery:
		c.deliveries++
		c.delivered += ev.Amount
	case EventDeath:
		c.deaths++
	case EventFoodSpawned:
		c.foodSpawned++
	case EventFoodDepleted:
		c.foodDepleted++
	case EventFoodExpired:
		c.foodExpired++
	case EventDeposit:
		c.pheromonesDeposited++
	case EventPrune:
		c.pheromonesPruned++
	case EventInvalidate:
		c.pheromonesInvalidated++
	}
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(simTimeSec float64) bool {
	return simTimeSec-c.windowStartSec >= c.windowDurationSec
}

// Gauges holds the population state sampled at window end.
type Gauges struct {
	Ants       int
	Food       int
	Pheromones int
	Stock      float64

	Roaming    int
	Harvesting int
	Returning  int
	Resting    int
	Weakened   int

	Healths     []float64 // one per live ant
	Loads       []float64 // carried amount per live ant
	Intensities []float64 // one per live pheromone
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(tick int64, simTimeSec float64, g Gauges) WindowStats {
	healthMean, healthP10, healthP50, healthP90 := ComputeDistribution(g.Healths)
	loadMean, _, loadP50, loadP90 := ComputeDistribution(g.Loads)
	intensityMean, _, _, _ := ComputeDistribution(g.Intensities)

	var deliveryRate float64
	if elapsed := simTimeSec - c.windowStartSec; elapsed > 0 {
		deliveryRate = c.delivered / elapsed
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   tick,
		SimTimeSec:      simTimeSec,

		Ants:       g.Ants,
		Food:       g.Food,
		Pheromones: g.Pheromones,
		Stock:      g.Stock,

		Roaming:    g.Roaming,
		Harvesting: g.Harvesting,
		Returning:  g.Returning,
		Resting:    g.Resting,
		Weakened:   g.Weakened,

		Discoveries:  c.discoveries,
		Deliveries:   c.deliveries,
		Delivered:    c.delivered,
		DeliveryRate: deliveryRate,
		Harvested:    c.harvested,
		Deaths:       c.deaths,

		FoodSpawned:  c.foodSpawned,
		FoodDepleted: c.foodDepleted,
		FoodExpired:  c.foodExpired,

		PheromonesDeposited:   c.pheromonesDeposited,
		PheromonesPruned:      c.pheromonesPruned,
		PheromonesInvalidated: c.pheromonesInvalidated,

		HealthMean: healthMean,
		HealthP10:  healthP10,
		HealthP50:  healthP50,
		HealthP90:  healthP90,

		LoadMean: loadMean,
		LoadP50:  loadP50,
		LoadP90:  loadP90,

		IntensityMean: intensityMean,
	}

	// Reset for next window
	c.windowStartTick = tick
	c.windowStartSec = simTimeSec
	c.discoveries = 0
	c.deliveries = 0
	c.delivered = 0
	c.harvested = 0
	c.deaths = 0
	c.foodSpawned = 0
	c.foodDepleted = 0
	c.foodExpired = 0
	c.pheromonesDeposited = 0
	c.pheromonesPruned = 0
	c.pheromonesInvalidated = 0

	return stats
}

// Reset starts a fresh window at the given time, dropping pending counts.
func (c *Collector) Reset(tick int64, simTimeSec float64) {
	*c = Collector{
		windowDurationSec: c.windowDurationSec,
		windowStartTick:   tick,
		windowStartSec:    simTimeSec,
	}
}

// WindowDuration returns the simulated seconds per window.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}

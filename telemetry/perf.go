package telemetry

import (
	"log/slog"
	"sort"
	"time"
)

// Phase identifies one step of the simulation tick.
type Phase uint8

// Tick phases in execution order.
const (
	PhaseSnapshot Phase = iota
	PhaseAnts
	PhaseDeposits
	PhaseFood
	PhaseDecay
	PhaseFeeding
	PhaseHarvest
	PhaseDelivery
	PhasePrune
	PhaseTelemetry

	phaseCount
)

var phaseNames = [phaseCount]string{
	"snapshot", "ants", "deposits", "food", "decay",
	"feeding", "harvest", "delivery", "prune", "telemetry",
}

// String returns the short identifier used in logs and CSV headers.
func (p Phase) String() string {
	if p < phaseCount {
		return phaseNames[p]
	}
	return "unknown"
}

// Phases returns all phases in execution order.
func Phases() []Phase {
	out := make([]Phase, phaseCount)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// PerfSample is the timing of one tick.
type PerfSample struct {
	Wall   time.Duration
	SimDT  float64 // simulated seconds the tick covered
	Phases [phaseCount]time.Duration
}

// PerfCollector keeps a ring of recent tick samples. Phases not started
// during a tick count as zero.
type PerfCollector struct {
	samples []PerfSample
	next    int
	count   int

	cur        PerfSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	// Host frame timing, independent of ticks
	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	return &PerfCollector{samples: make([]PerfSample, window)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.cur = PerfSample{}
	p.tickStart = time.Now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase, p.phaseStart, p.inPhase = ph, now, ph < phaseCount
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick records the tick, which advanced the simulation by simDT seconds.
func (p *PerfCollector) EndTick(simDT float64) {
	now := time.Now()
	p.closePhase(now)
	p.cur.Wall = now.Sub(p.tickStart)
	p.cur.SimDT = simDT

	p.samples[p.next] = p.cur
	p.next = (p.next + 1) % len(p.samples)
	if p.count < len(p.samples) {
		p.count++
	}
}

// RecordFrame marks the end of a host frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the collector window.
type PerfStats struct {
	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration

	PhaseAvg [phaseCount]time.Duration

	TicksPerSecond float64
	AvgSimDT       float64 // simulated seconds per tick
	SimRate        float64 // simulated seconds per second of tick work

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return s
	}

	var wall time.Duration
	var sim float64
	var phases [phaseCount]time.Duration
	for i, smp := range p.samples[:p.count] {
		wall += smp.Wall
		sim += smp.SimDT
		if i == 0 || smp.Wall < s.MinTick {
			s.MinTick = smp.Wall
		}
		s.MaxTick = max(s.MaxTick, smp.Wall)
		for ph, d := range smp.Phases {
			phases[ph] += d
		}
	}

	n := time.Duration(p.count)
	s.AvgTick = wall / n
	for ph := range phases {
		s.PhaseAvg[ph] = phases[ph] / n
	}
	s.AvgSimDT = sim / float64(p.count)
	if wall > 0 {
		s.TicksPerSecond = float64(p.count) / wall.Seconds()
		s.SimRate = sim / wall.Seconds()
	}
	return s
}

// Avg returns the average time spent in ph per tick.
func (s PerfStats) Avg(ph Phase) time.Duration {
	if ph >= phaseCount {
		return 0
	}
	return s.PhaseAvg[ph]
}

// Pct returns the share of the average tick spent in ph, in percent.
func (s PerfStats) Pct(ph Phase) float64 {
	if s.AvgTick <= 0 {
		return 0
	}
	return float64(s.Avg(ph)) / float64(s.AvgTick) * 100
}

// Slowest returns the phases that took any time, most expensive first.
// Equal averages keep execution order.
func (s PerfStats) Slowest() []Phase {
	var out []Phase
	for _, ph := range Phases() {
		if s.PhaseAvg[ph] > 0 {
			out = append(out, ph)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return s.PhaseAvg[out[i]] > s.PhaseAvg[out[j]] })
	return out
}

// LogStats logs the window at Info, listing phases above 0.1%.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTick.Microseconds(),
		"max_tick_us", s.MaxTick.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
		"sim_rate", int(s.SimRate),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, ph := range s.Slowest() {
		if pct := s.Pct(ph); pct > 0.1 {
			attrs = append(attrs, ph.String()+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Float64("avg_sim_dt", s.AvgSimDT),
		slog.Float64("sim_rate", s.SimRate),
	}
	for _, ph := range s.Slowest() {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.Pct(ph)))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row, written when a stats window flushes.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	SimTime      float64 `csv:"sim_time"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	AvgSimDT     float64 `csv:"avg_sim_dt"`
	SimRate      float64 `csv:"sim_rate"`
	FPS          float64 `csv:"fps"`
	SnapshotPct  float64 `csv:"snapshot_pct"`
	AntsPct      float64 `csv:"ants_pct"`
	DepositsPct  float64 `csv:"deposits_pct"`
	FoodPct      float64 `csv:"food_pct"`
	DecayPct     float64 `csv:"decay_pct"`
	FeedingPct   float64 `csv:"feeding_pct"`
	HarvestPct   float64 `csv:"harvest_pct"`
	DeliveryPct  float64 `csv:"delivery_pct"`
	PrunePct     float64 `csv:"prune_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at tick / simTime.
func (s PerfStats) ToCSV(tick int64, simTime float64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    tick,
		SimTime:      simTime,
		AvgTickUS:    s.AvgTick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		AvgSimDT:     s.AvgSimDT,
		SimRate:      s.SimRate,
		FPS:          s.FPS,
		SnapshotPct:  s.Pct(PhaseSnapshot),
		AntsPct:      s.Pct(PhaseAnts),
		DepositsPct:  s.Pct(PhaseDeposits),
		FoodPct:      s.Pct(PhaseFood),
		DecayPct:     s.Pct(PhaseDecay),
		FeedingPct:   s.Pct(PhaseFeeding),
		HarvestPct:   s.Pct(PhaseHarvest),
		DeliveryPct:  s.Pct(PhaseDelivery),
		PrunePct:     s.Pct(PhasePrune),
		TelemetryPct: s.Pct(PhaseTelemetry),
	}
}

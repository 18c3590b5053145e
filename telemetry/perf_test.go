package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseSnapshot)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseAnts)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick(0.05)
	}

	stats := pc.Stats()

	if stats.AvgTick <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.Avg(PhaseSnapshot) <= 0 || stats.Avg(PhaseAnts) <= 0 {
		t.Errorf("phases not tracked: snapshot %v ants %v", stats.Avg(PhaseSnapshot), stats.Avg(PhaseAnts))
	}
	if stats.Avg(PhaseDecay) != 0 {
		t.Errorf("decay = %v, want 0 for a phase never started", stats.Avg(PhaseDecay))
	}
}

func TestPerfCollector_SimulatedTime(t *testing.T) {
	pc := NewPerfCollector(4)

	// Older samples fall out of the window
	for _, dt := range []float64{30, 30, 0.5, 0.5, 0.5, 0.5} {
		pc.StartTick()
		pc.StartPhase(PhaseAnts)
		time.Sleep(50 * time.Microsecond)
		pc.EndTick(dt)
	}

	stats := pc.Stats()
	if math.Abs(stats.AvgSimDT-0.5) > 1e-12 {
		t.Errorf("AvgSimDT = %f, want 0.5", stats.AvgSimDT)
	}
	if stats.SimRate <= 0 || stats.TicksPerSecond <= 0 {
		t.Errorf("rates not positive: sim %f ticks %f", stats.SimRate, stats.TicksPerSecond)
	}
}

func TestPerfStats_SlowestAndPct(t *testing.T) {
	stats := PerfStats{AvgTick: 100 * time.Microsecond}
	stats.PhaseAvg[PhaseFeeding] = 10 * time.Microsecond
	stats.PhaseAvg[PhaseAnts] = 60 * time.Microsecond
	stats.PhaseAvg[PhasePrune] = 10 * time.Microsecond

	got := stats.Slowest()
	want := []Phase{PhaseAnts, PhaseFeeding, PhasePrune}
	if len(got) != len(want) {
		t.Fatalf("Slowest = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Slowest[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if pct := stats.Pct(PhaseAnts); math.Abs(pct-60) > 1e-9 {
		t.Errorf("Pct(ants) = %f, want 60", pct)
	}
	if pct := (PerfStats{}).Pct(PhaseAnts); pct != 0 {
		t.Errorf("Pct on empty stats = %f, want 0", pct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgTick != 0 || stats.TicksPerSecond != 0 {
		t.Errorf("empty collector: %+v", stats)
	}
	if len(stats.Slowest()) != 0 {
		t.Error("empty collector should have no timed phases")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS < 20 || stats.FPS > 70 {
		t.Errorf("expected FPS near 60 with 16ms frames, got %v", stats.FPS)
	}
}

func TestPhaseNames(t *testing.T) {
	phases := Phases()
	if len(phases) != 10 || phases[0] != PhaseSnapshot || phases[9] != PhaseTelemetry {
		t.Fatalf("Phases = %v", phases)
	}
	if PhaseDelivery.String() != "delivery" {
		t.Errorf("PhaseDelivery = %q", PhaseDelivery.String())
	}
	if Phase(200).String() != "unknown" {
		t.Errorf("out of range phase = %q", Phase(200).String())
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	stats := PerfStats{AvgTick: 250 * time.Microsecond, SimRate: 900}
	stats.PhaseAvg[PhaseAnts] = 150 * time.Microsecond
	stats.PhaseAvg[PhaseFeeding] = 25 * time.Microsecond

	row := stats.ToCSV(1200, 60)

	if row.WindowEnd != 1200 || row.SimTime != 60 {
		t.Errorf("window = %d / %f, want 1200 / 60", row.WindowEnd, row.SimTime)
	}
	if row.AvgTickUS != 250 || row.SimRate != 900 {
		t.Errorf("row = %+v", row)
	}
	if math.Abs(row.AntsPct-60) > 1e-9 || math.Abs(row.FeedingPct-10) > 1e-9 {
		t.Errorf("phase percentages not mapped: %+v", row)
	}
	if row.DecayPct != 0 {
		t.Errorf("DecayPct = %v, want 0 for an untracked phase", row.DecayPct)
	}
}

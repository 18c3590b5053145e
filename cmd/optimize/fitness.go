package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/antfarm/config"
	"github.com/pthm-cable/antfarm/game"
	"github.com/pthm-cable/antfarm/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	horizonSec float64 // simulated seconds per run
	frameDT    float64 // wall-clock seconds fed to Update
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, horizonSec, frameDT float64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		horizonSec: horizonSec,
		frameDT:    frameDT,
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	available   float64                 // food present at start
	delivered   float64                 // colony stock at the end
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is the negative share of available food that reached the colony.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	// Each run owns its world and RNG, so seeds run in parallel
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(result, quality),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation executes a single headless simulation run for horizonSec
// simulated seconds.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{}
	g, err := game.NewGame(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Close()

	snap := g.Snapshot()
	for _, f := range snap.Food {
		result.available += f.Quantity
	}

	g.Start()
	for g.SimTime() < fe.horizonSec {
		g.Update(fe.frameDT)
	}

	result.delivered = g.Stock()
	return result
}

// copyConfig returns an independent copy of the base config.
// Config holds only values, so a struct copy is deep.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(collected × (1.0 + 0.2 × quality))
// Collection dominates; quality adds up to 20% to separate configs that
// collect about the same.
func computeFitness(r *runResult, quality float64) float64 {
	if r.available <= 0 {
		return 0
	}
	collected := r.delivered / r.available
	return -(collected * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightSteady   = 0.6
	qualityWeightSurvival = 0.4

	qualityWarmupWindows = 1 // skip first N windows (ants are still scouting)
)

// computeQuality scores a run in [0, 1]: steady deliveries across windows
// and healthy ants at the end.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	delivered := make([]float64, len(valid))
	for i, w := range valid {
		delivered[i] = w.Delivered
	}

	// Steadiness: low coefficient of variation of per-window deliveries
	steady := 0.0
	if mean := stat.Mean(delivered, nil); mean > 0 {
		cv := stat.StdDev(delivered, nil) / mean
		steady = math.Exp(-cv * cv)
	}

	last := valid[len(valid)-1]
	survival := 0.0
	if last.Ants > 0 {
		survival = 1 - float64(last.Weakened)/float64(last.Ants)
	}

	return clamp01(qualityWeightSteady*steady + qualityWeightSurvival*survival)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

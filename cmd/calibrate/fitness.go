package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaball/config"
	"github.com/pthm-cable/metaball/contour"
	"github.com/pthm-cable/metaball/systems"
	"github.com/pthm-cable/metaball/telemetry"
)

// CoverageEvaluator measures how much of the domain the contours enclose
// at a given threshold, averaged over seeds and ticks.
type CoverageEvaluator struct {
	cfg    *config.Config
	seeds  []int64
	ticks  int
	target float64

	mu           sync.Mutex
	lastCoverage float64
}

// NewCoverageEvaluator creates a new evaluator. Each run samples the first
// ticks frames of a fresh source generation.
func NewCoverageEvaluator(cfg *config.Config, seeds []int64, ticks int, target float64) *CoverageEvaluator {
	if ticks < 1 {
		ticks = 1
	}
	return &CoverageEvaluator{cfg: cfg, seeds: seeds, ticks: ticks, target: target}
}

// LastCoverage returns the mean coverage from the most recent Evaluate call.
func (ce *CoverageEvaluator) LastCoverage() float64 {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return ce.lastCoverage
}

// Evaluate returns the squared distance between the mean coverage at
// threshold and the target (lower = better).
func (ce *CoverageEvaluator) Evaluate(threshold float64) float64 {
	if !(threshold > 0) || math.IsInf(threshold, 0) {
		return math.Inf(1)
	}

	// Run all seeds in parallel
	results := make([]float64, len(ce.seeds))
	var wg sync.WaitGroup
	for i, seed := range ce.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = ce.coverage(threshold, s)
		}(i, seed)
	}
	wg.Wait()

	mean, _ := telemetry.MeanStd(results)

	ce.mu.Lock()
	ce.lastCoverage = mean
	ce.mu.Unlock()

	d := mean - ce.target
	return d * d
}

// coverage runs one seed and returns the mean enclosed area over the domain area.
func (ce *CoverageEvaluator) coverage(threshold float64, seed int64) float64 {
	cfg := ce.cfg
	engine, err := contour.New(cfg.Grid.Unit, cfg.Grid.Width, cfg.Grid.Height, threshold)
	if err != nil {
		return math.Inf(1)
	}
	engine.SetMergeTolerance(cfg.Grid.MergeTolerance)

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))
	domain := systems.DomainFromConfig(cfg)
	spawner := systems.NewSpawner(world, rng, cfg.Sources, domain)
	motion := systems.NewMotionSystem(world, rng, cfg.Sources)
	collector := systems.NewSourceCollector(world, domain)
	spawner.SpawnGeneration()

	domainArea := domain.Width * domain.Height
	var sources []contour.Source
	var total float64
	for t := 0; t < ce.ticks; t++ {
		sources = collector.Collect(sources)
		var area float64
		for _, pl := range engine.Update(sources) {
			area += telemetry.MeasurePolyline(pl).Area
		}
		total += area / domainArea
		motion.Update()
	}
	return total / float64(ce.ticks)
}

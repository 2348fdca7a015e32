// Package main searches for the contour threshold that makes the metaball
// contours enclose a target fraction of the domain.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/metaball/config"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target", 0.35, "Target fraction of the domain enclosed by contours")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	ticks := flag.Int("ticks", 10, "Frames sampled per seed")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for the calibrated config")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *target <= 0 || *target >= 1 {
		log.Fatalf("--target must be in (0, 1), got %v", *target)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewCoverageEvaluator(baseCfg, evalSeeds, *ticks, *target)

	// Search in log space so the threshold stays positive.
	evalCount := 0
	bestFitness := math.Inf(1)
	bestThreshold := baseCfg.Grid.Threshold
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			threshold := math.Exp(x[0])
			fitness := evaluator.Evaluate(threshold)
			evalCount++
			if fitness < bestFitness {
				bestFitness = fitness
				bestThreshold = threshold
			}
			fmt.Printf("Eval %d/%d: threshold=%.4f coverage=%.4f (best=%.4f) | elapsed: %s\n",
				evalCount, *maxEvals, threshold, evaluator.LastCoverage(), bestThreshold,
				time.Since(startTime).Round(time.Millisecond))
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.NelderMead{}

	initX := []float64{math.Log(baseCfg.Grid.Threshold)}
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, time.Since(startTime).Round(time.Second))
	fmt.Printf("Best threshold: %.4f (coverage error %.6f)\n", bestThreshold, math.Sqrt(bestFitness))

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	bestCfg.Grid.Threshold = bestThreshold

	configOutPath := filepath.Join(*outputDir, "calibrated_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Fatalf("failed to write calibrated config: %v", err)
	}
	fmt.Printf("Calibrated config saved to: %s\n", configOutPath)
}

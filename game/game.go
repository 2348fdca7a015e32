// Package game wires sources, the contour engine, telemetry and rendering
// into a runnable simulation.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaball/camera"
	"github.com/pthm-cable/metaball/config"
	"github.com/pthm-cable/metaball/contour"
	"github.com/pthm-cable/metaball/export"
	"github.com/pthm-cable/metaball/systems"
	"github.com/pthm-cable/metaball/telemetry"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	PlotDir        string
	Headless       bool
	StepsPerUpdate int
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	domain    systems.Domain
	spawner   *systems.Spawner
	motion    *systems.MotionSystem
	collector *systems.SourceCollector
	engine    *contour.Engine

	// Last frame, in window coordinates
	sources   []contour.Source
	polylines []contour.Polyline
	frame     telemetry.FrameStats
	history   *History

	// Telemetry
	stats         *telemetry.Collector
	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	snapshots     *export.Snapshotter
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Display
	camera       *camera.Camera
	ui           *overlay
	screenWidth  float32
	screenHeight float32
	showGrid     bool
	showHistory  bool
	showSources  bool

	// State
	tick           int32
	paused         bool
	headless       bool
	stepsPerUpdate int
	totalRadius    float64
}

// NewGameWithOptions creates a game from the global config and opts.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	engine, err := contour.New(cfg.Grid.Unit, cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.Threshold)
	if err != nil {
		return nil, fmt.Errorf("creating contour engine: %w", err)
	}
	engine.SetMergeTolerance(cfg.Grid.MergeTolerance)

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	domain := systems.DomainFromConfig(cfg)

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:            cfg,
		world:          world,
		rng:            rng,
		domain:         domain,
		engine:         engine,
		history:        NewHistory(cfg.Display.HistoryLayers),
		stats:          telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		perf:           telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:       opts.LogStats,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
		showGrid:       cfg.Display.ShowGrid,
		showHistory:    cfg.Display.HistoryLayers > 0,
		showSources:    cfg.Display.ShowSources,
		headless:       opts.Headless,
		stepsPerUpdate: steps,
	}
	g.spawner = systems.NewSpawner(g.world, rng, cfg.Sources, domain)
	g.motion = systems.NewMotionSystem(g.world, rng, cfg.Sources)
	g.collector = systems.NewSourceCollector(g.world, domain)
	engine.SetPhaseTimer(g.perf)

	if !opts.Headless {
		g.camera = camera.New(g.screenWidth, g.screenHeight, g.screenWidth, g.screenHeight)
	}

	g.outputManager, err = telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.outputManager.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g.snapshots = export.NewSnapshotter(opts.PlotDir, int32(cfg.Export.PlotEvery), export.PlotOptions{
		Width:    float64(cfg.Screen.Width),
		Height:   float64(cfg.Screen.Height),
		WidthIn:  cfg.Export.PlotWidthIn,
		HeightIn: cfg.Export.PlotHeightIn,
	})

	g.spawner.SpawnGeneration()
	g.extract()

	slog.Info("game initialized",
		"seed", opts.Seed,
		"grid", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"unit", cfg.Grid.Unit,
		"threshold", cfg.Grid.Threshold,
		"sources", cfg.Sources.Count,
		"run_id", g.outputManager.RunID(),
	)
	return g, nil
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Tick returns the number of simulation steps taken.
func (g *Game) Tick() int32 {
	return g.tick
}

// Polylines returns the contours of the last step in window coordinates.
func (g *Game) Polylines() []contour.Polyline {
	return g.polylines
}

// Frame returns the summary of the last step.
func (g *Game) Frame() telemetry.FrameStats {
	return g.frame
}

// Generation returns the current source generation.
func (g *Game) Generation() int32 {
	return g.spawner.Generation()
}

// Threshold returns the iso level in use.
func (g *Game) Threshold() float64 {
	return g.engine.Threshold()
}

// SetThreshold rebuilds the contour engine with a new iso level.
func (g *Game) SetThreshold(threshold float64) error {
	engine, err := contour.New(g.cfg.Grid.Unit, g.cfg.Grid.Width, g.cfg.Grid.Height, threshold)
	if err != nil {
		return err
	}
	engine.SetMergeTolerance(g.cfg.Grid.MergeTolerance)
	engine.SetPhaseTimer(g.perf)
	g.engine = engine
	g.history.Clear()
	g.extract()
	return nil
}

// Update handles input and runs stepsPerUpdate simulation steps.
func (g *Game) Update() {
	g.perf.RecordFrame()
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs stepsPerUpdate simulation steps without input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Unload flushes outputs and releases resources.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

package game

import (
	"log/slog"

	"github.com/pthm-cable/metaball/contour"
	"github.com/pthm-cable/metaball/telemetry"
)

// simulationStep runs a single tick of the simulation.
func (g *Game) simulationStep() {
	g.perf.StartTick()

	// 1. Drift and shrink sources
	g.perf.StartPhase(telemetry.PhaseMotion)
	g.totalRadius = g.motion.Update()

	// 2. Extract contours (the engine reports its own phases)
	g.extract()

	g.tick++

	// 3. Telemetry, snapshots and respawn
	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.stats.RecordFrame(g.frame)
	g.writeSnapshot()
	g.flushTelemetry()

	if g.totalRadius == 0 && g.cfg.Sources.Respawn && g.cfg.Sources.Count > 0 {
		g.respawn()
	}

	g.perf.EndTick()
}

// extract runs the contour engine over the current sources and stores the
// frame in window coordinates.
func (g *Game) extract() {
	g.sources = g.collector.Collect(g.sources)
	polylines := g.engine.Update(g.sources)
	g.domain.TranslatePolylines(polylines)
	g.polylines = polylines
	g.history.Push(polylines)
	g.frame = telemetry.NewFrameStats(g.tick, g.spawner.Generation(), len(g.sources), g.engine.Stats(), polylines)
}

// respawn replaces every source with a fresh generation.
func (g *Game) respawn() {
	n := g.spawner.SpawnGeneration()
	g.stats.RecordRespawn()
	g.history.Clear()
	g.totalRadius = 0
	slog.Debug("respawned sources", "generation", g.spawner.Generation(), "count", n, "tick", g.tick)
}

// regenerate discards the current sources and spawns a new generation now.
func (g *Game) regenerate() {
	g.respawn()
	g.extract()
}

// addSource places a stationary source at a window position if it lies in
// the domain.
func (g *Game) addSource(x, y float32) bool {
	if !g.domain.Contains(x, y) {
		return false
	}
	g.spawner.SpawnAt(x, y)
	g.extract()
	return true
}

// writeSnapshot exports the current frame when one is due.
func (g *Game) writeSnapshot() {
	if !g.snapshots.Due(g.tick) {
		return
	}
	sources := make([]contour.Source, len(g.sources))
	for i, s := range g.sources {
		x, y := g.domain.ToWorld(s.Center)
		sources[i] = contour.Source{Center: contour.Point{X: float64(x), Y: float64(y)}, Radius: s.Radius}
	}
	if err := g.snapshots.Write(g.tick, g.polylines, sources); err != nil {
		slog.Error("failed to write snapshot", "tick", g.tick, "error", err)
	}
}

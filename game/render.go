package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaball/contour"
	"github.com/pthm-cable/metaball/telemetry"
	"github.com/pthm-cable/metaball/ui"
)

const controlsLegend = "Click: add source | Right click: regenerate | Space: pause | G: grid | H: trail | S: sources | ,/.: speed | Tab: panel | Arrows/wheel: camera"

var (
	gridColor    = rl.Color{R: 225, G: 225, B: 225, A: 255}
	domainColor  = rl.Color{R: 190, G: 190, B: 190, A: 255}
	contourColor = rl.Color{R: 20, G: 20, B: 20, A: 255}
	openColor    = rl.Color{R: 200, G: 40, B: 40, A: 255}
	sourceColor  = rl.Color{R: 40, G: 90, B: 200, A: 90}
	historyLight = rl.Color{R: 170, G: 170, B: 185, A: 255}
	historyDark  = rl.Color{R: 70, G: 70, B: 85, A: 255}
)

// overlay holds the lazily created raylib-side widgets.
type overlay struct {
	hud      *ui.HUD
	perf     *ui.PerfPanel
	controls *ui.ControlsPanel
}

func (g *Game) ensureOverlay() *overlay {
	if g.ui == nil {
		g.ui = &overlay{
			hud:      ui.NewHUD(),
			perf:     ui.NewPerfPanel(10, 100),
			controls: ui.NewControlsPanel(int32(g.screenWidth)-230, 10, 220, 0.5, float32(3*g.cfg.Grid.Threshold)),
		}
	}
	return g.ui
}

// Draw renders the game state.
func (g *Game) Draw() {
	o := g.ensureOverlay()

	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	if g.showGrid {
		g.drawGrid()
	}
	g.drawDomain()
	if g.showHistory {
		g.drawHistory()
	}
	if g.showSources {
		g.drawSources()
	}
	g.drawPolylines(g.polylines, contourColor, openColor)

	stats := g.perf.Stats()
	o.hud.Draw(ui.HUDData{
		Title:         "Metaball Contours",
		Sources:       g.frame.Sources,
		Polylines:     g.frame.Polylines,
		OpenPolylines: g.frame.OpenPolylines,
		Saddles:       g.frame.SaddleCells,
		Generation:    g.frame.Generation,
		Tick:          g.tick,
		Speed:         g.stepsPerUpdate,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		ScreenWidth:   int32(g.screenWidth),
		ScreenHeight:  int32(g.screenHeight),
	})
	o.perf.Draw(ui.PerfPanelData{PhaseAvg: stats.PhaseAvg, Total: stats.AvgTickDuration}, telemetry.Phases)

	res := o.controls.Draw(ui.ControlsState{
		Threshold:   float32(g.engine.Threshold()),
		ShowGrid:    g.showGrid,
		ShowHistory: g.showHistory,
		ShowSources: g.showSources,
	})
	g.applyControls(res)

	o.hud.DrawControls(int32(g.screenWidth), int32(g.screenHeight), controlsLegend)

	rl.EndDrawing()
}

// applyControls applies panel edits made during Draw.
func (g *Game) applyControls(res ui.ControlsResult) {
	g.showGrid = res.State.ShowGrid
	g.showHistory = res.State.ShowHistory
	g.showSources = res.State.ShowSources
	if res.Changed {
		if err := g.SetThreshold(float64(res.State.Threshold)); err != nil {
			g.logError("threshold rejected", err)
		}
	}
	if res.Regenerate {
		g.regenerate()
	}
}

// drawGrid draws the reference lattice every Display.GridSpacing pixels.
func (g *Game) drawGrid() {
	spacing := float32(g.cfg.Display.GridSpacing)
	if spacing <= 0 {
		return
	}
	for x := float32(0); x <= g.screenWidth; x += spacing {
		g.drawWorldLine(x, 0, x, g.screenHeight, 1, gridColor)
	}
	for y := float32(0); y <= g.screenHeight; y += spacing {
		g.drawWorldLine(0, y, g.screenWidth, y, 1, gridColor)
	}
}

// drawDomain outlines the sampled area.
func (g *Game) drawDomain() {
	x0, y0 := float32(g.domain.OriginX), float32(g.domain.OriginY)
	x1, y1 := x0+float32(g.domain.Width), y0+float32(g.domain.Height)
	g.drawWorldLine(x0, y0, x1, y0, 1, domainColor)
	g.drawWorldLine(x1, y0, x1, y1, 1, domainColor)
	g.drawWorldLine(x1, y1, x0, y1, 1, domainColor)
	g.drawWorldLine(x0, y1, x0, y0, 1, domainColor)
}

// historyShade alternates light and dark layers like an elevation map. Older
// layers are more transparent.
func historyShade(seq, age, layers int) rl.Color {
	c := historyDark
	if seq%2 == 1 {
		c = historyLight
	}
	c.A = uint8(40 + 160*(layers-age)/layers)
	return c
}

// drawHistory draws the stored frames older than the current one.
func (g *Game) drawHistory() {
	n := g.history.Len()
	// The newest layer is the current frame.
	for i := 0; i < n-1; i++ {
		c := historyShade(g.history.Seq(i), n-1-i, n)
		g.drawPolylines(g.history.Layer(i), c, c)
	}
}

func (g *Game) drawSources() {
	for _, s := range g.sources {
		wx, wy := g.domain.ToWorld(s.Center)
		// The contour of a lone source sits at r / sqrt(threshold).
		r := float32(s.Radius / sqrtPositive(g.engine.Threshold()))
		if !g.camera.IsVisible(wx, wy, r) {
			continue
		}
		sx, sy := g.camera.WorldToScreen(wx, wy)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, r*g.camera.Zoom, sourceColor)
	}
}

func (g *Game) drawPolylines(polylines []contour.Polyline, closed, open rl.Color) {
	width := float32(g.cfg.Display.LineWidth)
	for _, pl := range polylines {
		c := closed
		if !pl.Closed {
			c = open
		}
		pts := pl.Points
		for i := 1; i < len(pts); i++ {
			g.drawWorldLine(float32(pts[i-1].X), float32(pts[i-1].Y), float32(pts[i].X), float32(pts[i].Y), width, c)
		}
		if pl.Closed && len(pts) > 2 {
			last, first := pts[len(pts)-1], pts[0]
			g.drawWorldLine(float32(last.X), float32(last.Y), float32(first.X), float32(first.Y), width, c)
		}
	}
}

// drawWorldLine draws a world-space segment through the camera.
func (g *Game) drawWorldLine(x0, y0, x1, y1, width float32, c rl.Color) {
	if !g.camera.SegmentVisible(x0, y0, x1, y1) {
		return
	}
	sx0, sy0 := g.camera.WorldToScreen(x0, y0)
	sx1, sy1 := g.camera.WorldToScreen(x1, y1)
	rl.DrawLineEx(rl.Vector2{X: sx0, Y: sy0}, rl.Vector2{X: sx1, Y: sy1}, width, c)
}

package game

import (
	"log/slog"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyG) {
		g.showGrid = !g.showGrid
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.showHistory = !g.showHistory
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.showSources = !g.showSources
	}
	if rl.IsKeyPressed(rl.KeyTab) && g.ui != nil {
		g.ui.controls.Toggle()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	g.handleMouse()
	g.handleCameraInput()
}

// handleMouse adds a source on left click and regenerates on right click.
// Clicks over the control panel are left to raygui.
func (g *Game) handleMouse() {
	mouse := rl.GetMousePosition()
	if mouse.X > g.screenWidth-240 && mouse.Y < 130 {
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
		g.addSource(wx, wy)
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.regenerate()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	if g.camera != nil {
		g.camera.Resize(w, h)
	}
	if g.ui != nil {
		g.ui.controls.SetPosition(int32(w)-230, 10)
	}
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	if g.camera == nil {
		return
	}

	// Pan speed in screen pixels
	const panSpeed = float32(8.0)

	// Arrow key panning
	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom toward the cursor with the mouse wheel
	if wheelMove := rl.GetMouseWheelMove(); wheelMove != 0 {
		mouse := rl.GetMousePosition()
		g.camera.ZoomAt(mouse.X, mouse.Y, 1+wheelMove*0.1)
	}

	// Keyboard zoom with +/- (= and - keys)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}

func (g *Game) logError(msg string, err error) {
	slog.Warn(msg, "tick", g.tick, "error", err)
}

func sqrtPositive(x float64) float64 {
	if x <= 0 {
		return 1
	}
	return math.Sqrt(x)
}

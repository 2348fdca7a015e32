// Contour preview tool - interactive metaball field and contour viewer with sliders.
//
// Usage: go run ./cmd/contourpreview
package main

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaball/contour"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	gridSize = 128
	unit     = 2.0
)

// PreviewParams holds the field parameters
type PreviewParams struct {
	Threshold   float32
	Count       int
	RadiusScale float32
	Seed        uint32
	ShowField   bool
}

func defaultParams() PreviewParams {
	return PreviewParams{
		Threshold:   15,
		Count:       12,
		RadiusScale: 1,
		Seed:        12345,
		ShowField:   true,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Contour Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	// Create texture for rendering the field
	field := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var (
		sources   []contour.Source
		polylines []contour.Polyline
		stats     contour.FrameStats
	)

	needsRegen := true
	scale := float32(previewSize) / float32(gridSize*unit)

	for !rl.WindowShouldClose() {
		if needsRegen {
			sources = generateSources(params)
			engine := contour.MustNew(unit, gridSize, gridSize, float64(params.Threshold))
			polylines = engine.Update(sources)
			stats = engine.Stats()
			sampleField(field, sources)
			updateTexture(texture, field, float64(params.Threshold))
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		if params.ShowField {
			rl.DrawTexturePro(
				texture,
				rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
				rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.White,
			)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)
		drawPolylines(polylines, scale)

		// Draw stats
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Contours: %d (%d open)  Points: %d", stats.Polylines, stats.OpenPolylines, stats.Points), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Active: %d  Crossed: %d  Saddles: %d", stats.ActivePoints, stats.CrossedCells, stats.SaddleCells), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Metaball Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Threshold slider
		rl.DrawText("Threshold (iso level)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newThreshold := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "50",
			params.Threshold, 0.5, 50,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Threshold), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newThreshold != params.Threshold {
			params.Threshold = newThreshold
			needsRegen = true
		}
		panelY += 35

		// Count slider
		rl.DrawText("Sources", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newCount := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "40",
			float32(params.Count), 1, 40,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Count), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newCount) != params.Count {
			params.Count = int(newCount)
			needsRegen = true
		}
		panelY += 35

		// Radius scale slider
		rl.DrawText("Radius scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "3.0",
			params.RadiusScale, 0.1, 3.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.RadiusScale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.RadiusScale {
			params.RadiusScale = newScale
			needsRegen = true
		}
		panelY += 35

		// Seed slider
		rl.DrawText("Seed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if uint32(newSeed) != params.Seed {
			params.Seed = uint32(newSeed)
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.ShowField, "Hide Field", "Show Field")) {
			params.ShowField = !params.ShowField
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = uint32(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

func yamlLines(params PreviewParams) []string {
	return []string{
		"grid:",
		fmt.Sprintf("  threshold: %.2f", params.Threshold),
		"sources:",
		fmt.Sprintf("  count: %d", params.Count),
		fmt.Sprintf("  radius_min: %.0f", 100*params.RadiusScale),
		fmt.Sprintf("  radius_max: %.0f", 300*params.RadiusScale),
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// generateSources places Count static sources inside the grid.
// Radii follow the simulation's 100..300 range scaled to this smaller grid.
func generateSources(params PreviewParams) []contour.Source {
	rng := rand.New(rand.NewSource(int64(params.Seed)))
	size := float64(gridSize) * unit
	sources := make([]contour.Source, params.Count)
	for i := range sources {
		sources[i] = contour.Source{
			Center: contour.Point{X: rng.Float64() * size, Y: rng.Float64() * size},
			Radius: (25 + rng.Float64()*50) * float64(params.RadiusScale),
		}
	}
	return sources
}

// sampleField evaluates the field at every grid point.
func sampleField(field []float64, sources []contour.Source) {
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			p := contour.Point{X: float64(col) * unit, Y: float64(row) * unit}
			field[row*gridSize+col] = contour.FieldValue(p, sources)
		}
	}
}

// updateTexture updates the GPU texture from the field values, shading by
// log distance from the threshold.
func updateTexture(texture rl.Texture2D, field []float64, threshold float64) {
	pixels := make([]color.RGBA, len(field))
	for i, v := range field {
		t := 0.5 + 0.25*math.Log2((v+1e-9)/threshold)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		var r, g, b uint8
		if t < 0.5 {
			// Outside: white to pale blue
			k := t / 0.5
			r = uint8(255 - k*60)
			g = uint8(255 - k*30)
			b = 255
		} else {
			// Inside: pale orange to orange
			k := (t - 0.5) / 0.5
			r = 255
			g = uint8(220 - k*90)
			b = uint8(180 - k*150)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

func drawPolylines(polylines []contour.Polyline, scale float32) {
	toScreen := func(p contour.Point) rl.Vector2 {
		return rl.Vector2{X: 10 + float32(p.X)*scale, Y: 10 + float32(p.Y)*scale}
	}
	for _, pl := range polylines {
		c := rl.Black
		if !pl.Closed {
			c = rl.Red
		}
		for i := 1; i < len(pl.Points); i++ {
			rl.DrawLineEx(toScreen(pl.Points[i-1]), toScreen(pl.Points[i]), 1.5, c)
		}
		if pl.Closed && len(pl.Points) > 2 {
			rl.DrawLineEx(toScreen(pl.Points[len(pl.Points)-1]), toScreen(pl.Points[0]), 1.5, c)
		}
	}
}

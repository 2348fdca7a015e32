package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel edits.
type ControlsState struct {
	Threshold   float32
	ShowGrid    bool
	ShowHistory bool
	ShowSources bool
}

// ControlsResult reports the user's actions for one frame.
type ControlsResult struct {
	State      ControlsState
	Changed    bool // Threshold moved
	Regenerate bool
}

// ControlsPanel renders the threshold slider and display toggles.
type ControlsPanel struct {
	x, y, width  int32
	minThreshold float32
	maxThreshold float32
	visible      bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32, minThreshold, maxThreshold float32) *ControlsPanel {
	return &ControlsPanel{
		x:            x,
		y:            y,
		width:        width,
		minThreshold: minThreshold,
		maxThreshold: maxThreshold,
		visible:      true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the edited state.
func (c *ControlsPanel) Draw(state ControlsState) ControlsResult {
	res := ControlsResult{State: state}
	if !c.visible {
		return res
	}

	x := float32(c.x)
	y := float32(c.y)
	w := float32(c.width)

	rl.DrawText("Threshold", c.x, int32(y), 14, rl.Gray)
	y += 18
	newThreshold := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: w - 60, Height: 18},
		"", "",
		state.Threshold, c.minThreshold, c.maxThreshold,
	)
	rl.DrawText(fmt.Sprintf("%.2f", state.Threshold), int32(x+w-50), int32(y+2), 14, rl.DarkGray)
	if newThreshold != state.Threshold {
		res.State.Threshold = newThreshold
		res.Changed = true
	}
	y += 28

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: (w - 10) / 2, Height: 24}, toggleText(state.ShowGrid, "Hide Grid", "Show Grid")) {
		res.State.ShowGrid = !state.ShowGrid
	}
	if gui.Button(rl.Rectangle{X: x + (w+10)/2, Y: y, Width: (w - 10) / 2, Height: 24}, toggleText(state.ShowHistory, "Hide Trail", "Show Trail")) {
		res.State.ShowHistory = !state.ShowHistory
	}
	y += 30

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: (w - 10) / 2, Height: 24}, toggleText(state.ShowSources, "Hide Sources", "Show Sources")) {
		res.State.ShowSources = !state.ShowSources
	}
	if gui.Button(rl.Rectangle{X: x + (w+10)/2, Y: y, Width: (w - 10) / 2, Height: 24}, "Regenerate") {
		res.Regenerate = true
	}

	return res
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

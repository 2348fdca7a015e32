package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNew(t *testing.T) {
	cam := New(600, 600, 1200, 600)

	// Should be centered on world
	if cam.X != 600 || cam.Y != 300 {
		t.Errorf("expected camera at (600, 300), got (%f, %f)", cam.X, cam.Y)
	}
	// World is twice as wide as the viewport
	if cam.Zoom != 0.5 {
		t.Errorf("expected fitting zoom 0.5, got %f", cam.Zoom)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(600, 600, 600, 600)

	sx, sy := cam.WorldToScreen(300, 300)
	if !near(sx, 300) || !near(sy, 300) {
		t.Errorf("expected screen center (300, 300), got (%f, %f)", sx, sy)
	}
	sx, sy = cam.WorldToScreen(0, 0)
	if !near(sx, 0) || !near(sy, 0) {
		t.Errorf("expected world origin at screen origin, got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(600, 600, 600, 600)
	cam.SetZoom(2.5)
	cam.Pan(-40, 70)

	testCases := []struct{ sx, sy float32 }{
		{300, 300},
		{10, 20},
		{590, 450},
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(sx, tc.sx) || !near(sy, tc.sy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestPanClampsToWorld(t *testing.T) {
	cam := New(600, 600, 600, 600)

	cam.Pan(-10000, 0)
	if cam.X != 0 {
		t.Errorf("expected X clamped to 0, got %f", cam.X)
	}
	cam.Pan(0, 10000)
	if cam.Y != 600 {
		t.Errorf("expected Y clamped to 600, got %f", cam.Y)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(600, 600, 600, 600)

	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
	cam.SetZoom(0.01)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(600, 600, 600, 600)

	wx, wy := cam.ScreenToWorld(200, 250)
	cam.ZoomAt(200, 250, 2)
	sx, sy := cam.WorldToScreen(wx, wy)
	if !near(sx, 200) || !near(sy, 250) {
		t.Errorf("expected anchor to stay at (200, 250), got (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(600, 600, 600, 600)
	cam.SetZoom(2) // visible area is [150, 450]

	if !cam.IsVisible(300, 300, 1) {
		t.Error("expected center to be visible")
	}
	if cam.IsVisible(100, 300, 10) {
		t.Error("expected point left of view to be culled")
	}
	if !cam.IsVisible(140, 300, 20) {
		t.Error("expected radius to extend visibility")
	}
}

func TestSegmentVisible(t *testing.T) {
	cam := New(600, 600, 600, 600)
	cam.SetZoom(2)

	if !cam.SegmentVisible(100, 300, 500, 300) {
		t.Error("expected spanning segment to be visible")
	}
	if cam.SegmentVisible(10, 10, 100, 100) {
		t.Error("expected segment outside view to be culled")
	}
}

func TestResizeRefits(t *testing.T) {
	cam := New(600, 600, 600, 600)
	cam.Resize(300, 300)
	if cam.MinZoom != 0.25 {
		t.Errorf("expected min zoom 0.25, got %f", cam.MinZoom)
	}
	cam.Reset()
	if cam.Zoom != 0.5 {
		t.Errorf("expected fitting zoom 0.5 after reset, got %f", cam.Zoom)
	}
}

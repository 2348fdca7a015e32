package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/metaball/contour"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := ComputeDistribution(values)

	// Mean should be 0.55
	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}

	// P10 should be around 0.19
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}

	// P50 should be around 0.55
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}

	// P90 should be around 0.91
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
}

func TestComputeDistributionEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeDistribution([]float64{})

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestMeanStd(t *testing.T) {
	mean, std := MeanStd([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if mean != 5 {
		t.Errorf("mean = %v, want 5", mean)
	}
	if math.Abs(std-2) > 1e-9 {
		t.Errorf("std = %v, want 2", std)
	}
}

func square(side float64) contour.Polyline {
	return contour.Polyline{
		Points: []contour.Point{{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side}},
		Closed: true,
	}
}

func TestMeasurePolylineClosed(t *testing.T) {
	m := MeasurePolyline(square(2))

	if m.Perimeter != 8 {
		t.Errorf("perimeter = %v, want 8", m.Perimeter)
	}
	if m.Area != 4 {
		t.Errorf("area = %v, want 4", m.Area)
	}
	if math.Abs(m.Centroid.X-1) > 1e-12 || math.Abs(m.Centroid.Y-1) > 1e-12 {
		t.Errorf("centroid = %v, want (1, 1)", m.Centroid)
	}
}

func TestMeasurePolylineWindingIndependent(t *testing.T) {
	sq := square(3)
	rev := contour.Polyline{Closed: true}
	for i := len(sq.Points) - 1; i >= 0; i-- {
		rev.Points = append(rev.Points, sq.Points[i])
	}

	a, b := MeasurePolyline(sq), MeasurePolyline(rev)
	if a.Area != b.Area || a.Centroid != b.Centroid {
		t.Errorf("winding changed result: %+v vs %+v", a, b)
	}
}

func TestMeasurePolylineOpen(t *testing.T) {
	pl := contour.Polyline{Points: []contour.Point{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: 3, Y: 0}}}
	m := MeasurePolyline(pl)

	if m.Perimeter != 9 {
		t.Errorf("perimeter = %v, want 9", m.Perimeter)
	}
	if m.Area != 0 {
		t.Errorf("open chain area = %v, want 0", m.Area)
	}
	if m.Centroid != (contour.Point{X: 2, Y: 4.0 / 3}) {
		t.Errorf("centroid = %v, want point mean", m.Centroid)
	}
}

func TestNewFrameStats(t *testing.T) {
	es := contour.FrameStats{ActivePoints: 9, CrossedCells: 12, Segments: 12, Polylines: 2, OpenPolylines: 1}
	open := contour.Polyline{Points: []contour.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	// A square with an extra point on one side, so not every point is concyclic.
	notched := contour.Polyline{
		Points: []contour.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}},
		Closed: true,
	}
	fs := NewFrameStats(7, 2, 3, es, []contour.Polyline{notched, open})

	if fs.Tick != 7 || fs.Generation != 2 || fs.Sources != 3 {
		t.Errorf("unexpected identity columns: %+v", fs)
	}
	if fs.TotalArea != 4 || fs.Perimeter != 9 {
		t.Errorf("area = %v perimeter = %v, want 4 and 9", fs.TotalArea, fs.Perimeter)
	}
	if fs.LargestFitRMS <= 0 {
		t.Errorf("expected positive fit residual for a square, got %v", fs.LargestFitRMS)
	}
}

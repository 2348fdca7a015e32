package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/metaball/contour"
)

// ContourMetrics describes the shape of one polyline.
type ContourMetrics struct {
	Points    int
	Closed    bool
	Perimeter float64
	// Area is the absolute shoelace area; zero for open chains.
	Area     float64
	Centroid contour.Point
}

// MeasurePolyline computes length, enclosed area and centroid of pl.
// The centroid of a closed polyline with non-zero area is the polygon
// centroid; otherwise it is the mean of the points.
func MeasurePolyline(pl contour.Polyline) ContourMetrics {
	pts := pl.Points
	m := ContourMetrics{Points: len(pts), Closed: pl.Closed}
	if len(pts) == 0 {
		return m
	}

	n := len(pts)
	segments := n - 1
	if pl.Closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		a, b := pts[i], pts[(i+1)%n]
		m.Perimeter += math.Hypot(b.X-a.X, b.Y-a.Y)
	}

	if pl.Closed && n >= 3 {
		var cross, cx, cy float64
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			c := a.X*b.Y - b.X*a.Y
			cross += c
			cx += (a.X + b.X) * c
			cy += (a.Y + b.Y) * c
		}
		if cross != 0 {
			m.Area = math.Abs(cross) / 2
			m.Centroid = contour.Point{X: cx / (3 * cross), Y: cy / (3 * cross)}
			return m
		}
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	m.Centroid = contour.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
	return m
}

// FrameStats is the per-tick summary of one contour extraction.
type FrameStats struct {
	Tick          int32   `csv:"tick"`
	Generation    int32   `csv:"generation"`
	Sources       int     `csv:"sources"`
	ActivePoints  int     `csv:"active_points"`
	CrossedCells  int     `csv:"crossed_cells"`
	SaddleCells   int     `csv:"saddle_cells"`
	Segments      int     `csv:"segments"`
	Polylines     int     `csv:"polylines"`
	OpenPolylines int     `csv:"open_polylines"`
	TotalArea     float64 `csv:"total_area"`
	Perimeter     float64 `csv:"perimeter"`
	// LargestFitRMS is the circle-fit residual of the largest closed contour
	// relative to its fitted radius; 0 when no fit was possible.
	LargestFitRMS float64 `csv:"largest_fit_rms"`
}

// NewFrameStats summarises an engine frame and its polylines.
func NewFrameStats(tick, generation int32, sources int, es contour.FrameStats, polylines []contour.Polyline) FrameStats {
	fs := FrameStats{
		Tick:          tick,
		Generation:    generation,
		Sources:       sources,
		ActivePoints:  es.ActivePoints,
		CrossedCells:  es.CrossedCells,
		SaddleCells:   es.SaddleCells,
		Segments:      es.Segments,
		Polylines:     es.Polylines,
		OpenPolylines: es.OpenPolylines,
	}

	largest := -1
	var largestArea float64
	for i, pl := range polylines {
		m := MeasurePolyline(pl)
		fs.TotalArea += m.Area
		fs.Perimeter += m.Perimeter
		if m.Closed && m.Area > largestArea {
			largest, largestArea = i, m.Area
		}
	}
	if largest >= 0 {
		if fit, err := FitCircle(polylines[largest].Points); err == nil && fit.Radius > 0 {
			fs.LargestFitRMS = fit.RMS / fit.Radius
		}
	}
	return fs
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID           string  `csv:"run_id"`
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`
	Generation      int32   `csv:"generation"`
	Respawns        int     `csv:"respawns"`

	// Source and grid activity at window end
	Sources      int `csv:"sources"`
	ActivePoints int `csv:"active_points"`

	// Polyline counts across the window
	PolylinesMean float64 `csv:"polylines_mean"`
	PolylinesStd  float64 `csv:"polylines_std"`
	PolylinesMax  int     `csv:"polylines_max"`
	OpenMax       int     `csv:"open_max"`
	SegmentsMean  float64 `csv:"segments_mean"`
	SaddleCells   int     `csv:"saddle_cells"`

	// Enclosed area distribution
	AreaMean float64 `csv:"area_mean"`
	AreaP10  float64 `csv:"area_p10"`
	AreaP50  float64 `csv:"area_p50"`
	AreaP90  float64 `csv:"area_p90"`

	PerimeterMean float64 `csv:"perimeter_mean"`
	FitRMSMean    float64 `csv:"fit_rms_mean"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = floats.Sum(values) / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// MeanStd returns the mean and population standard deviation of values.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean = stat.Mean(values, nil)
	std = math.Sqrt(stat.MomentAbout(2, values, mean, nil))
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("generation", int(s.Generation)),
		slog.Int("respawns", s.Respawns),
		slog.Int("sources", s.Sources),
		slog.Int("active_points", s.ActivePoints),
		slog.Float64("polylines_mean", s.PolylinesMean),
		slog.Float64("polylines_std", s.PolylinesStd),
		slog.Int("polylines_max", s.PolylinesMax),
		slog.Int("open_max", s.OpenMax),
		slog.Float64("segments_mean", s.SegmentsMean),
		slog.Int("saddle_cells", s.SaddleCells),
		slog.Float64("area_mean", s.AreaMean),
		slog.Float64("area_p10", s.AreaP10),
		slog.Float64("area_p50", s.AreaP50),
		slog.Float64("area_p90", s.AreaP90),
		slog.Float64("perimeter_mean", s.PerimeterMean),
		slog.Float64("fit_rms_mean", s.FitRMSMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}

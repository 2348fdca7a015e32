package contour

import (
	"errors"
	"fmt"
	"math"
)

// Phase names reported to a PhaseTimer during Update.
const (
	PhaseActivate = "contour_activate"
	PhaseMarch    = "contour_march"
	PhaseStitch   = "contour_stitch"
)

var (
	ErrInvalidGrid      = errors.New("grid needs at least 2x2 points")
	ErrInvalidUnit      = errors.New("cell unit must be positive and finite")
	ErrInvalidThreshold = errors.New("threshold must be finite")
)

// PhaseTimer receives phase boundaries. telemetry.PerfCollector implements it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// FrameStats summarises the most recent Update.
type FrameStats struct {
	ActivePoints  int
	CrossedCells  int
	SaddleCells   int
	Segments      int
	Points        int
	Polylines     int
	OpenPolylines int
}

// Engine runs marching squares over a fixed grid. It is not safe for
// concurrent use; callers serialise Update or use one engine each.
type Engine struct {
	unit      float64
	width     int
	height    int
	threshold float64
	tolerance float64

	grid     *Grid
	segments []Segment
	stats    FrameStats
	timer    PhaseTimer
}

// New allocates an engine with a width x height grid of points spaced unit
// world units apart.
func New(unit float64, width, height int, threshold float64) (*Engine, error) {
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("contour: %dx%d: %w", width, height, ErrInvalidGrid)
	}
	if !(unit > 0) || math.IsInf(unit, 0) {
		return nil, fmt.Errorf("contour: unit %v: %w", unit, ErrInvalidUnit)
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, fmt.Errorf("contour: threshold %v: %w", threshold, ErrInvalidThreshold)
	}
	return &Engine{
		unit:      unit,
		width:     width,
		height:    height,
		threshold: threshold,
		grid:      NewGrid(height, width),
		segments:  make([]Segment, 0, 2*(width+height)),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(unit float64, width, height int, threshold float64) *Engine {
	e, err := New(unit, width, height, threshold)
	if err != nil {
		panic(err.Error())
	}
	return e
}

// SetPhaseTimer installs a timer notified at each pipeline phase. nil disables it.
func (e *Engine) SetPhaseTimer(t PhaseTimer) {
	e.timer = t
}

// SetMergeTolerance switches stitching to StitchTolerance with eps.
// eps <= 0 restores exact point matching. Keep eps well below unit*1e-6:
// larger values can merge the crossings either side of a grid point that
// sits exactly on the threshold.
func (e *Engine) SetMergeTolerance(eps float64) {
	e.tolerance = eps
}

// Unit returns the grid spacing in world units.
func (e *Engine) Unit() float64 { return e.unit }

// Threshold returns the iso level.
func (e *Engine) Threshold() float64 { return e.threshold }

// Size returns the grid size in points.
func (e *Engine) Size() (width, height int) { return e.width, e.height }

// Grid exposes the sample grid. Callers must treat it as read-only.
func (e *Engine) Grid() *Grid { return e.grid }

// Segments returns the segments gathered by the last Update. The slice is
// reused by the next Update.
func (e *Engine) Segments() []Segment { return e.segments }

// Stats returns counters for the last Update.
func (e *Engine) Stats() FrameStats { return e.stats }

func (e *Engine) phase(name string) {
	if e.timer != nil {
		e.timer.StartPhase(name)
	}
}

// Update recomputes the field for sources and returns the contour polylines
// in grid-local world units.
func (e *Engine) Update(sources []Source) []Polyline {
	e.stats = FrameStats{}

	e.phase(PhaseActivate)
	e.stats.ActivePoints = e.grid.Activate(sources, e.unit, e.threshold)

	e.phase(PhaseMarch)
	e.march()

	e.phase(PhaseStitch)
	var out []Polyline
	if e.tolerance > 0 {
		out = StitchTolerance(e.segments, e.tolerance)
	} else {
		out = Stitch(e.segments)
	}

	e.stats.Segments = len(e.segments)
	e.stats.Polylines = len(out)
	for _, pl := range out {
		e.stats.Points += len(pl.Points)
		if !pl.Closed {
			e.stats.OpenPolylines++
		}
	}
	return out
}

// march classifies every cell and gathers crossing segments in row-major order.
func (e *Engine) march() {
	g := e.grid
	e.segments = e.segments[:0]
	for i := range g.cells {
		row, col := i/g.Cols, i%g.Cols
		kind := g.Classify(row, col)
		g.cells[i].Kind = kind
		if kind == None || kind == All {
			continue
		}
		e.stats.CrossedCells++
		if kind.Saddle() {
			e.stats.SaddleCells++
		}
		v := cellValues{
			tl: g.cells[i].Value,
			tr: g.value(row, col+1),
			br: g.value(row+1, col+1),
			bl: g.value(row+1, col),
		}
		e.segments = cellSegments(e.segments, kind, row, col, v, e.unit, e.threshold)
	}
}

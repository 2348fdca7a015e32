package telemetry

// Collector accumulates frames within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32
	last            FrameStats

	// Per-frame samples for current window
	polylines []float64
	segments  []float64
	areas     []float64
	perims    []float64
	fitRMS    []float64

	polylinesMax int
	openMax      int
	saddleCells  int
	respawns     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordFrame adds one tick's frame summary to the current window.
func (c *Collector) RecordFrame(fs FrameStats) {
	c.last = fs
	c.polylines = append(c.polylines, float64(fs.Polylines))
	c.segments = append(c.segments, float64(fs.Segments))
	c.areas = append(c.areas, fs.TotalArea)
	c.perims = append(c.perims, fs.Perimeter)
	if fs.LargestFitRMS > 0 {
		c.fitRMS = append(c.fitRMS, fs.LargestFitRMS)
	}
	if fs.Polylines > c.polylinesMax {
		c.polylinesMax = fs.Polylines
	}
	if fs.OpenPolylines > c.openMax {
		c.openMax = fs.OpenPolylines
	}
	c.saddleCells += fs.SaddleCells
}

// RecordRespawn records a new source generation.
func (c *Collector) RecordRespawn() {
	c.respawns++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32) WindowStats {
	polyMean, polyStd := MeanStd(c.polylines)
	segMean, _ := MeanStd(c.segments)
	perimMean, _ := MeanStd(c.perims)
	fitMean, _ := MeanStd(c.fitRMS)
	areaMean, areaP10, areaP50, areaP90 := ComputeDistribution(c.areas)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),
		Frames:          len(c.polylines),
		Generation:      c.last.Generation,
		Respawns:        c.respawns,

		Sources:      c.last.Sources,
		ActivePoints: c.last.ActivePoints,

		PolylinesMean: polyMean,
		PolylinesStd:  polyStd,
		PolylinesMax:  c.polylinesMax,
		OpenMax:       c.openMax,
		SegmentsMean:  segMean,
		SaddleCells:   c.saddleCells,

		AreaMean: areaMean,
		AreaP10:  areaP10,
		AreaP50:  areaP50,
		AreaP90:  areaP90,

		PerimeterMean: perimMean,
		FitRMSMean:    fitMean,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.polylines = c.polylines[:0]
	c.segments = c.segments[:0]
	c.areas = c.areas[:0]
	c.perims = c.perims[:0]
	c.fitRMS = c.fitRMS[:0]
	c.polylinesMax = 0
	c.openMax = 0
	c.saddleCells = 0
	c.respawns = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

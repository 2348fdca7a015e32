package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/metaball/contour"
)

// Phase names for the simulation step. The contour phases are started by the
// engine itself through contour.PhaseTimer.
const (
	PhaseMotion          = "motion"
	PhaseContourActivate = contour.PhaseActivate
	PhaseContourMarch    = contour.PhaseMarch
	PhaseContourStitch   = contour.PhaseStitch
	PhaseTelemetry       = "telemetry"
)

// Phases lists every phase in tick order.
var Phases = []string{
	PhaseMotion, PhaseContourActivate, PhaseContourMarch, PhaseContourStitch, PhaseTelemetry,
}

// tickSample is one slot of the rolling window. phases is indexed by phase id.
type tickSample struct {
	total  time.Duration
	phases []time.Duration
}

// PerfCollector times ticks and their phases over a rolling window of ticks.
// Phases are assigned ids on first use, starting with Phases in order.
type PerfCollector struct {
	window []tickSample
	next   int
	filled int

	names []string
	ids   map[string]int

	current    []time.Duration
	phase      int
	tickStart  time.Time
	phaseStart time.Time

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last windowSize ticks; values below 1 mean 60.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	p := &PerfCollector{
		window: make([]tickSample, windowSize),
		ids:    make(map[string]int, len(Phases)),
		phase:  -1,
	}
	for _, name := range Phases {
		p.id(name)
	}
	return p
}

func (p *PerfCollector) id(name string) int {
	if i, ok := p.ids[name]; ok {
		return i
	}
	i := len(p.names)
	p.names = append(p.names, name)
	p.ids[name] = i
	return i
}

// closePhase charges the running phase up to now.
func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase < 0 {
		return
	}
	for len(p.current) < len(p.names) {
		p.current = append(p.current, 0)
	}
	p.current[p.phase] += now.Sub(p.phaseStart)
}

// StartTick begins timing a new tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	clear(p.current)
	p.phase = -1
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = p.id(phase)
	p.phaseStart = now
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = -1

	slot := &p.window[p.next]
	slot.total = now.Sub(p.tickStart)
	slot.phases = append(slot.phases[:0], p.current...)

	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks a rendered frame; FPS is derived from the last interval.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats aggregates the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of the average tick, keyed by phase name.
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	sums := make([]time.Duration, len(p.names))
	var total time.Duration
	for i, t := range p.window[:p.filled] {
		total += t.total
		if i == 0 || t.total < s.MinTickDuration {
			s.MinTickDuration = t.total
		}
		s.MaxTickDuration = max(s.MaxTickDuration, t.total)
		for id, d := range t.phases {
			sums[id] += d
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = total / n
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}
	for id, sum := range sums {
		if sum == 0 {
			continue
		}
		name := p.names[id]
		s.PhaseAvg[name] = sum / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[name] = float64(s.PhaseAvg[name]) / float64(s.AvgTickDuration) * 100
		}
	}
	return s
}

// LogStats logs the window under the "perf" message.
func (s PerfStats) LogStats() {
	slog.Info("perf", "window", s)
}

// LogValue implements slog.LogValuer. Phases below 0.1% are omitted.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct := s.PhasePct[phase]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	RunID              string  `csv:"run_id"`
	WindowEnd          int32   `csv:"window_end"`
	AvgTickUS          int64   `csv:"avg_tick_us"`
	MinTickUS          int64   `csv:"min_tick_us"`
	MaxTickUS          int64   `csv:"max_tick_us"`
	TicksPerSec        float64 `csv:"ticks_per_sec"`
	FPS                float64 `csv:"fps"`
	MotionPct          float64 `csv:"motion_pct"`
	ContourActivatePct float64 `csv:"contour_activate_pct"`
	ContourMarchPct    float64 `csv:"contour_march_pct"`
	ContourStitchPct   float64 `csv:"contour_stitch_pct"`
	TelemetryPct       float64 `csv:"telemetry_pct"`
}

// ToCSV flattens s into a perf.csv row ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:          windowEnd,
		AvgTickUS:          s.AvgTickDuration.Microseconds(),
		MinTickUS:          s.MinTickDuration.Microseconds(),
		MaxTickUS:          s.MaxTickDuration.Microseconds(),
		TicksPerSec:        s.TicksPerSecond,
		FPS:                s.FPS,
		MotionPct:          s.PhasePct[PhaseMotion],
		ContourActivatePct: s.PhasePct[PhaseContourActivate],
		ContourMarchPct:    s.PhasePct[PhaseContourMarch],
		ContourStitchPct:   s.PhasePct[PhaseContourStitch],
		TelemetryPct:       s.PhasePct[PhaseTelemetry],
	}
}

package contour

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewValidates(t *testing.T) {
	tests := []struct {
		name      string
		unit      float64
		w, h      int
		threshold float64
		want      error
	}{
		{"ok", 1, 10, 10, 1, nil},
		{"narrow", 1, 1, 10, 1, ErrInvalidGrid},
		{"zero unit", 0, 10, 10, 1, ErrInvalidUnit},
		{"nan unit", math.NaN(), 10, 10, 1, ErrInvalidUnit},
		{"inf threshold", 1, 10, 10, math.Inf(1), ErrInvalidThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.unit, tt.w, tt.h, tt.threshold)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && e == nil {
				t.Fatal("expected engine")
			}
		})
	}
	expectPanic(t, "MustNew", func() { MustNew(1, 0, 0, 1) })
}

func TestUpdateEmptyField(t *testing.T) {
	e := MustNew(1, 20, 20, 1)

	if got := e.Update(nil); len(got) != 0 {
		t.Errorf("no sources: expected no polylines, got %d", len(got))
	}
	zero := []Source{{Center: Point{10, 10}, Radius: 0}, {Center: Point{4, 4}, Radius: 0}}
	if got := e.Update(zero); len(got) != 0 {
		t.Errorf("zero radii: expected no polylines, got %d", len(got))
	}
	far := []Source{{Center: Point{-1000, -1000}, Radius: 1}}
	if got := e.Update(far); len(got) != 0 {
		t.Errorf("far source: expected no polylines, got %d", len(got))
	}
}

func TestUpdateSingleSourceScenario(t *testing.T) {
	e := MustNew(1, 10, 10, 1)
	center := Point{5, 5}
	got := e.Update([]Source{{Center: center, Radius: 3}})

	if len(got) != 1 {
		t.Fatalf("expected 1 polyline, got %d", len(got))
	}
	pl := got[0]
	if !pl.Closed {
		t.Error("expected a closed polyline")
	}
	if len(pl.Points) != 20 {
		t.Errorf("expected 20 crossing points around the 5x5 active block, got %d", len(pl.Points))
	}
	for _, p := range pl.Points {
		d2 := (p.X-center.X)*(p.X-center.X) + (p.Y-center.Y)*(p.Y-center.Y)
		if v := 9 / d2; math.Abs(v-1) > 0.15 {
			t.Errorf("point %v: field %v too far from threshold", p, v)
		}
		if p.X <= 0 || p.Y <= 0 {
			t.Errorf("point %v lies on the domain boundary", p)
		}
	}

	stats := e.Stats()
	if stats.ActivePoints != 25 {
		t.Errorf("expected 25 active points, got %d", stats.ActivePoints)
	}
	if stats.SaddleCells != 0 || stats.OpenPolylines != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.Segments != stats.CrossedCells {
		t.Errorf("expected one segment per crossed cell, got %d segments for %d cells", stats.Segments, stats.CrossedCells)
	}
}

func TestUpdateCircleApproximation(t *testing.T) {
	const unit = 0.5
	e := MustNew(unit, 80, 80, 1)
	center := Point{20.3, 19.7}
	radius := 8.0
	got := e.Update([]Source{{Center: center, Radius: radius}})

	if len(got) != 1 || !got[0].Closed {
		t.Fatalf("expected one closed loop, got %d", len(got))
	}
	for _, p := range got[0].Points {
		d := math.Hypot(p.X-center.X, p.Y-center.Y)
		if math.Abs(d-radius) > unit {
			t.Errorf("point %v at distance %.3f, want within %.2f of %.1f", p, d, unit, radius)
		}
	}
}

// inside is an even-odd point-in-polygon test.
func inside(p Point, poly []Point) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func TestUpdateSeparateSources(t *testing.T) {
	e := MustNew(1, 40, 20, 1)
	a, b := Point{10, 10}, Point{30, 10}
	got := e.Update([]Source{{Center: a, Radius: 3}, {Center: b, Radius: 3}})

	if len(got) != 2 {
		t.Fatalf("expected 2 polylines, got %d", len(got))
	}
	for _, pl := range got {
		if !pl.Closed {
			t.Error("expected closed polylines")
		}
		ia, ib := inside(a, pl.Points), inside(b, pl.Points)
		if ia == ib {
			t.Errorf("each loop should enclose exactly one source (a=%v, b=%v)", ia, ib)
		}
	}
}

func TestUpdateMergedSources(t *testing.T) {
	e := MustNew(1, 24, 20, 1)
	a, b := Point{8, 10}, Point{13, 10}
	got := e.Update([]Source{{Center: a, Radius: 3}, {Center: b, Radius: 3}})

	if len(got) != 1 {
		t.Fatalf("expected the blobs to merge into 1 polyline, got %d", len(got))
	}
	if !got[0].Closed {
		t.Error("expected a closed polyline")
	}
	if !inside(a, got[0].Points) || !inside(b, got[0].Points) {
		t.Error("merged loop should enclose both sources")
	}
}

func randomSources(rng *rand.Rand, n int, size float64) []Source {
	out := make([]Source, n)
	for i := range out {
		out[i] = Source{
			Center: Point{rng.Float64() * size, rng.Float64() * size},
			Radius: 1 + rng.Float64()*4,
		}
	}
	return out
}

func TestUpdateIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sources := randomSources(rng, 12, 60)

	e := MustNew(1, 64, 64, 1.5)
	first := e.Update(sources)
	second := e.Update(sources)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated update differs (-first +second):\n%s", diff)
	}

	other := MustNew(1, 64, 64, 1.5)
	other.Update(randomSources(rng, 5, 60))
	if diff := cmp.Diff(first, other.Update(sources)); diff != "" {
		t.Errorf("reused engine differs from fresh result:\n%s", diff)
	}
}

func TestUpdateRandomFieldsStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	e := MustNew(1, 48, 48, 1)
	for i := 0; i < 20; i++ {
		polylines := e.Update(randomSources(rng, 8, 48))
		stats := e.Stats()
		if stats.Segments != stats.CrossedCells+stats.SaddleCells {
			t.Fatalf("frame %d: %d segments for %d crossed and %d saddle cells",
				i, stats.Segments, stats.CrossedCells, stats.SaddleCells)
		}
		for _, pl := range polylines {
			for _, p := range pl.Points {
				if p.X <= 0 || p.Y <= 0 {
					t.Fatalf("frame %d: point %v on the boundary", i, p)
				}
			}
		}
	}
}

func TestUpdateMergeToleranceMatchesExact(t *testing.T) {
	sources := []Source{{Center: Point{12, 12}, Radius: 4}, {Center: Point{18, 13}, Radius: 3}}

	exact := MustNew(1, 32, 32, 1)
	want := exact.Update(sources)

	tol := MustNew(1, 32, 32, 1)
	tol.SetMergeTolerance(1e-9)
	if diff := cmp.Diff(want, tol.Update(sources)); diff != "" {
		t.Errorf("tolerance stitching changed a clean field:\n%s", diff)
	}
}

type recordingTimer struct {
	phases []string
}

func (r *recordingTimer) StartPhase(p string) { r.phases = append(r.phases, p) }

func TestUpdateReportsPhases(t *testing.T) {
	e := MustNew(1, 8, 8, 1)
	timer := &recordingTimer{}
	e.SetPhaseTimer(timer)
	e.Update(nil)

	want := []string{PhaseActivate, PhaseMarch, PhaseStitch}
	if diff := cmp.Diff(want, timer.phases); diff != "" {
		t.Errorf("phase order mismatch:\n%s", diff)
	}
}

func TestUpdateRecordsCellKinds(t *testing.T) {
	e := MustNew(1, 10, 10, 1)
	e.Update([]Source{{Center: Point{5, 5}, Radius: 3}})

	g := e.Grid()
	if k := g.At(5, 5).Kind; k != All {
		t.Errorf("centre cell kind = %s, want all", k)
	}
	if k := g.At(0, 0).Kind; k != None {
		t.Errorf("corner cell kind = %s, want none", k)
	}
	if k := g.At(2, 2).Kind; k != BR {
		t.Errorf("cell (2,2) kind = %s, want br", k)
	}
}

func TestUpdateGridPointOnThreshold(t *testing.T) {
	// The midpoint between the sources evaluates to exactly 4/4 + 4/4 = 2,
	// with active neighbours on both sides of it.
	tests := []struct {
		name string
		w, h int
		a, b Point
	}{
		{"horizontal pinch", 12, 10, Point{3, 5}, Point{7, 5}},
		{"vertical pinch", 10, 12, Point{5, 3}, Point{5, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := MustNew(1, tt.w, tt.h, 2)
			if v := FieldValue(Point{5, 5}, []Source{{Center: tt.a, Radius: 2}, {Center: tt.b, Radius: 2}}); v != 2 {
				t.Fatalf("midpoint field = %v, want exactly 2", v)
			}

			var got []Polyline
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("Update panicked: %v", r)
					}
				}()
				got = e.Update([]Source{{Center: tt.a, Radius: 2}, {Center: tt.b, Radius: 2}})
			}()

			if len(got) != 2 {
				t.Fatalf("expected 2 loops either side of the pinch, got %d", len(got))
			}
			for _, pl := range got {
				if !pl.Closed {
					t.Errorf("expected closed polylines, got open chain of %d points", len(pl.Points))
				}
				if inside(tt.a, pl.Points) == inside(tt.b, pl.Points) {
					t.Error("each loop should enclose exactly one source")
				}
				for _, p := range pl.Points {
					if p == (Point{5, 5}) {
						t.Errorf("crossing landed on the grid point %v", p)
					}
				}
			}
			if open := e.Stats().OpenPolylines; open != 0 {
				t.Errorf("expected no open polylines, got %d", open)
			}
		})
	}
}

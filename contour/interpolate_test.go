package contour

import (
	"math"
	"testing"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"midpoint", 0, 2, 1, 0.5},
		{"descending", 3, 1, 2, 0.5},
		{"at start", 1, 5, 1, 0},
		{"at end", 1, 5, 5, 1},
		{"equal ends", 4, 4, 1, 0},
		{"equal ends at threshold", 1, 1, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.a, tt.b, tt.t)
			if math.IsNaN(got) || math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Interpolate(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

// valuesFor builds corner values consistent with kind for threshold 1.
func valuesFor(kind Corners) cellValues {
	v := func(bit Corners) float64 {
		if kind&bit != 0 {
			return 3
		}
		return 0
	}
	return cellValues{tl: v(TL), tr: v(TR), br: v(BR), bl: v(BL)}
}

func onCellEdge(p Point, row, col int, unit float64) bool {
	x0, x1 := float64(col)*unit, float64(col+1)*unit
	y0, y1 := float64(row)*unit, float64(row+1)*unit
	inX := p.X >= x0 && p.X <= x1
	inY := p.Y >= y0 && p.Y <= y1
	return (inX && (p.Y == y0 || p.Y == y1)) || (inY && (p.X == x0 || p.X == x1))
}

func TestCellSegmentCounts(t *testing.T) {
	const row, col, unit = 4, 7, 2.0
	for kind := None; kind <= All; kind++ {
		t.Run(kind.String(), func(t *testing.T) {
			segs := cellSegments(nil, kind, row, col, valuesFor(kind), unit, 1)

			want := 1
			switch {
			case kind == None || kind == All:
				want = 0
			case kind.Saddle():
				want = 2
			}
			if len(segs) != want {
				t.Fatalf("expected %d segments, got %d", want, len(segs))
			}
			for _, s := range segs {
				if !onCellEdge(s.A, row, col, unit) || !onCellEdge(s.B, row, col, unit) {
					t.Errorf("segment %v leaves cell (%d, %d)", s, row, col)
				}
			}
		})
	}
}

func TestSaddlePairing(t *testing.T) {
	// tr and bl active: top pairs with left, right with bottom.
	v := cellValues{tl: 0, tr: 2, br: 0, bl: 2}
	segs := cellSegments(nil, TRBL, 0, 0, v, 1, 1)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	top := Point{0.5, 0}
	right := Point{1, 0.5}
	left := Point{0, 0.5}
	bottom := Point{0.5, 1}
	if segs[0] != (Segment{A: top, B: left}) {
		t.Errorf("first saddle segment = %v, want top-left", segs[0])
	}
	if segs[1] != (Segment{A: right, B: bottom}) {
		t.Errorf("second saddle segment = %v, want right-bottom", segs[1])
	}
}

func TestCrossingPositions(t *testing.T) {
	v := cellValues{tl: 0, tr: 4, br: 4, bl: 0}
	unit := 0.5
	tests := []struct {
		edge Edge
		want Point
	}{
		{Top, Point{(2 + 0.25) * unit, 1 * unit}},
		{Bottom, Point{(2 + 0.25) * unit, 2 * unit}},
		// Uncrossed edges still stay off the corner.
		{Left, Point{2 * unit, (1 + edgeInset) * unit}},
		{Right, Point{3 * unit, (1 + edgeInset) * unit}},
	}
	for _, tt := range tests {
		got := crossing(tt.edge, 1, 2, v, unit, 1)
		if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
			t.Errorf("crossing(%s) = %v, want %v", tt.edge, got, tt.want)
		}
	}
}

func TestEdgeFractionStaysInside(t *testing.T) {
	tests := []struct {
		name    string
		a, b, t float64
		want    float64
	}{
		{"midpoint", 0, 2, 1, 0.5},
		{"start on threshold", 2, 6, 2, edgeInset},
		{"end on threshold", 6, 2, 2, 1 - edgeInset},
		{"descending start on threshold", 2, 0, 2, edgeInset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgeFraction(tt.a, tt.b, tt.t); got != tt.want {
				t.Errorf("edgeFraction(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestCrossingOnThresholdCornerLeavesVertex(t *testing.T) {
	// tl sits exactly on the threshold and is therefore inactive.
	v := cellValues{tl: 1, tr: 3, br: 3, bl: 3}
	top := crossing(Top, 0, 0, v, 1, 1)
	left := crossing(Left, 0, 0, v, 1, 1)
	if top == (Point{}) || left == (Point{}) {
		t.Fatalf("crossing collapsed onto the corner: top %v, left %v", top, left)
	}
	if top == left {
		t.Errorf("top and left crossings coincide at %v", top)
	}
}

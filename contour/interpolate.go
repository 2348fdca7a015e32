package contour

// Interpolate returns how far along an edge from a to b the value threshold
// lies: (threshold - a) / (b - a). Equal endpoints return 0.
func Interpolate(a, b, threshold float64) float64 {
	if a == b {
		return 0
	}
	return (threshold - a) / (b - a)
}

// edgeInset keeps crossings strictly inside their edge. A corner sitting
// exactly on the threshold is inactive, and an unclamped crossing next to it
// would land on the shared grid vertex where up to four cells meet.
const edgeInset = 1e-6

// edgeFraction is Interpolate clamped to [edgeInset, 1-edgeInset].
func edgeFraction(a, b, threshold float64) float64 {
	f := Interpolate(a, b, threshold)
	switch {
	case f < edgeInset:
		return edgeInset
	case f > 1-edgeInset:
		return 1 - edgeInset
	}
	return f
}

// cellValues holds the field values at a cell's four corners.
type cellValues struct {
	tl, tr, br, bl float64
}

// crossing locates the contour crossing on edge e of cell (row, col).
func crossing(e Edge, row, col int, v cellValues, unit, threshold float64) Point {
	switch e {
	case Top:
		a := edgeFraction(v.tl, v.tr, threshold)
		return Point{X: (float64(col) + a) * unit, Y: float64(row) * unit}
	case Right:
		a := edgeFraction(v.tr, v.br, threshold)
		return Point{X: float64(col+1) * unit, Y: (float64(row) + a) * unit}
	case Left:
		a := edgeFraction(v.tl, v.bl, threshold)
		return Point{X: float64(col) * unit, Y: (float64(row) + a) * unit}
	case Bottom:
		a := edgeFraction(v.bl, v.br, threshold)
		return Point{X: (float64(col) + a) * unit, Y: float64(row+1) * unit}
	}
	panic("contour: invalid edge")
}

// cellSegments appends the segments of one cell to dst. Two crossed edges
// form one segment; saddles pair points 0-2 and 1-3 in Top, Right, Left,
// Bottom order without consulting the cell centre.
func cellSegments(dst []Segment, kind Corners, row, col int, v cellValues, unit, threshold float64) []Segment {
	set := kind.Edges()
	if set == 0 {
		return dst
	}
	var pts [4]Point
	n := 0
	for _, e := range edgeOrder {
		if set.Has(e) {
			pts[n] = crossing(e, row, col, v, unit, threshold)
			n++
		}
	}
	switch n {
	case 2:
		dst = append(dst, Segment{A: pts[0], B: pts[1]})
	case 4:
		dst = append(dst, Segment{A: pts[0], B: pts[2]}, Segment{A: pts[1], B: pts[3]})
	default:
		panic("contour: configuration " + kind.String() + " crosses an odd number of edges")
	}
	return dst
}

// Package contour extracts iso-contours of a metaball field with marching squares.
//
// An Engine owns a fixed sample grid. Each Update evaluates the summed
// r²/d² influence of every source at every grid point, classifies each cell by
// its four corner activations, interpolates crossing points along the crossed
// cell edges, and stitches the resulting segments into polylines.
package contour

// MinDistSq floors the squared distance between a sample point and a source
// centre so a coincident point yields a large finite value instead of Inf.
const MinDistSq = 1e-12

// Point is a 2D position in grid-local world units.
type Point struct {
	X, Y float64
}

// Source is a circular influence region (a metaball).
type Source struct {
	Center Point
	Radius float64
}

// FieldValue returns the summed influence of all sources at p.
// Each source contributes r² / d²; zero-radius sources contribute nothing.
func FieldValue(p Point, sources []Source) float64 {
	var v float64
	for _, s := range sources {
		if s.Radius == 0 {
			continue
		}
		dx := p.X - s.Center.X
		dy := p.Y - s.Center.Y
		d2 := dx*dx + dy*dy
		if d2 < MinDistSq {
			d2 = MinDistSq
		}
		v += s.Radius * s.Radius / d2
	}
	return v
}

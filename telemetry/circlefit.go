package telemetry

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/metaball/contour"
)

// ErrTooFewPoints is returned by FitCircle for fewer than three points.
var ErrTooFewPoints = errors.New("circle fit needs at least 3 points")

// CircleFit is the result of an algebraic circle fit.
type CircleFit struct {
	Center contour.Point
	Radius float64
	// RMS is the root mean square of the radial residuals.
	RMS float64
}

// FitCircle fits x² + y² + Dx + Ey + F = 0 to pts by linear least squares.
// Points are shifted to their mean first to keep the system well conditioned.
func FitCircle(pts []contour.Point) (CircleFit, error) {
	n := len(pts)
	if n < 3 {
		return CircleFit{}, ErrTooFewPoints
	}

	var mx, my float64
	for _, p := range pts {
		mx += p.X
		my += p.Y
	}
	mx /= float64(n)
	my /= float64(n)

	a := mat.NewDense(n, 3, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range pts {
		x, y := p.X-mx, p.Y-my
		a.Set(i, 0, x)
		a.Set(i, 1, y)
		a.Set(i, 2, 1)
		b.SetVec(i, -(x*x + y*y))
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return CircleFit{}, fmt.Errorf("circle fit: %w", err)
	}
	d, e, f := sol.AtVec(0), sol.AtVec(1), sol.AtVec(2)

	cx, cy := -d/2, -e/2
	r2 := cx*cx + cy*cy - f
	if !(r2 > 0) || math.IsInf(r2, 0) {
		return CircleFit{}, fmt.Errorf("circle fit: degenerate radius² %v", r2)
	}
	r := math.Sqrt(r2)

	var ss float64
	for _, p := range pts {
		res := math.Hypot(p.X-mx-cx, p.Y-my-cy) - r
		ss += res * res
	}

	return CircleFit{
		Center: contour.Point{X: cx + mx, Y: cy + my},
		Radius: r,
		RMS:    math.Sqrt(ss / float64(n)),
	}, nil
}

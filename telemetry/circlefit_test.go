package telemetry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/metaball/contour"
)

func circlePoints(cx, cy, r float64, n int) []contour.Point {
	pts := make([]contour.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = contour.Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}

func TestFitCircleExact(t *testing.T) {
	fit, err := FitCircle(circlePoints(120, -40, 7.5, 24))
	require.NoError(t, err)

	assert.InDelta(t, 120, fit.Center.X, 1e-6)
	assert.InDelta(t, -40, fit.Center.Y, 1e-6)
	assert.InDelta(t, 7.5, fit.Radius, 1e-6)
	assert.Less(t, fit.RMS, 1e-6)
}

func TestFitCircleNoisy(t *testing.T) {
	pts := circlePoints(0, 0, 10, 40)
	for i := range pts {
		// Alternate inward and outward by 0.2
		s := 1.02
		if i%2 == 1 {
			s = 0.98
		}
		pts[i].X *= s
		pts[i].Y *= s
	}

	fit, err := FitCircle(pts)
	require.NoError(t, err)
	assert.InDelta(t, 10, fit.Radius, 0.05)
	assert.InDelta(t, 0.2, fit.RMS, 0.05)
}

func TestFitCircleTooFewPoints(t *testing.T) {
	_, err := FitCircle([]contour.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestFitCircleOnEngineContour(t *testing.T) {
	e := contour.MustNew(0.5, 80, 80, 4)
	pls := e.Update([]contour.Source{{Center: contour.Point{X: 20, Y: 20}, Radius: 10}})
	require.Len(t, pls, 1)

	fit, err := FitCircle(pls[0].Points)
	require.NoError(t, err)
	// r²/d² = 4 puts the contour at d = 5
	assert.InDelta(t, 5, fit.Radius, 0.1)
	assert.InDelta(t, 20, fit.Center.X, 0.1)
	assert.InDelta(t, 20, fit.Center.Y, 0.1)
}

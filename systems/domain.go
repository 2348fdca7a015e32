// Package systems contains ECS systems for metaball sources.
package systems

import (
	"github.com/pthm-cable/metaball/config"
	"github.com/pthm-cable/metaball/contour"
)

// Domain is the rectangle covered by the contour grid, in window coordinates.
// The contour engine works in grid-local units starting at (0, 0); Domain
// translates between the two.
type Domain struct {
	OriginX, OriginY float64
	Width, Height    float64
}

// DomainFromConfig builds the domain from grid and domain settings.
func DomainFromConfig(cfg *config.Config) Domain {
	return Domain{
		OriginX: cfg.Domain.OriginX,
		OriginY: cfg.Domain.OriginY,
		Width:   cfg.Derived.DomainW,
		Height:  cfg.Derived.DomainH,
	}
}

// ToLocal converts a window position to grid-local units.
func (d Domain) ToLocal(x, y float32) contour.Point {
	return contour.Point{X: float64(x) - d.OriginX, Y: float64(y) - d.OriginY}
}

// ToWorld converts a grid-local point back to window coordinates.
func (d Domain) ToWorld(p contour.Point) (x, y float32) {
	return float32(p.X + d.OriginX), float32(p.Y + d.OriginY)
}

// Contains reports whether a window position lies inside the domain.
func (d Domain) Contains(x, y float32) bool {
	lx := float64(x) - d.OriginX
	ly := float64(y) - d.OriginY
	return lx >= 0 && ly >= 0 && lx <= d.Width && ly <= d.Height
}

// TranslatePolylines converts contour output into window coordinates in place.
func (d Domain) TranslatePolylines(polylines []contour.Polyline) {
	for _, pl := range polylines {
		for i := range pl.Points {
			pl.Points[i].X += d.OriginX
			pl.Points[i].Y += d.OriginY
		}
	}
}

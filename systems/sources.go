package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaball/components"
	"github.com/pthm-cable/metaball/contour"
)

// SourceCollector snapshots source entities into contour sources.
type SourceCollector struct {
	filter *ecs.Filter2[components.Position, components.Blob]
	domain Domain
}

// NewSourceCollector creates a collector translating into domain-local units.
func NewSourceCollector(w *ecs.World, domain Domain) *SourceCollector {
	return &SourceCollector{
		filter: ecs.NewFilter2[components.Position, components.Blob](w),
		domain: domain,
	}
}

// Collect appends one contour.Source per entity to dst[:0] and returns it.
// Zero-radius sources are skipped.
func (c *SourceCollector) Collect(dst []contour.Source) []contour.Source {
	dst = dst[:0]
	query := c.filter.Query()
	for query.Next() {
		pos, blob := query.Get()
		if blob.Radius <= 0 {
			continue
		}
		dst = append(dst, contour.Source{
			Center: c.domain.ToLocal(pos.X, pos.Y),
			Radius: float64(blob.Radius),
		})
	}
	return dst
}

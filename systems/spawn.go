package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaball/components"
	"github.com/pthm-cable/metaball/config"
)

// Spawner creates and removes source entities.
type Spawner struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Blob]
	filter *ecs.Filter1[components.Blob]
	rng    *rand.Rand
	cfg    config.SourcesConfig
	domain Domain

	generation int32
}

// NewSpawner creates a spawner placing sources inside domain.
func NewSpawner(w *ecs.World, rng *rand.Rand, cfg config.SourcesConfig, domain Domain) *Spawner {
	return &Spawner{
		world:  w,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Blob](w),
		filter: ecs.NewFilter1[components.Blob](w),
		rng:    rng,
		cfg:    cfg,
		domain: domain,
	}
}

// Generation returns the number of generations spawned so far.
func (s *Spawner) Generation() int32 {
	return s.generation
}

// SpawnGeneration removes every source and spawns cfg.Count new ones with
// random centres inside the domain, radii in [RadiusMin, RadiusMax] and
// velocity components in [-Speed, Speed]. Returns the number spawned.
func (s *Spawner) SpawnGeneration() int {
	s.Clear()
	s.generation++
	for i := 0; i < s.cfg.Count; i++ {
		x := float32(s.domain.OriginX + s.rng.Float64()*s.domain.Width)
		y := float32(s.domain.OriginY + s.rng.Float64()*s.domain.Height)
		r := float32(uniform(s.rng, s.cfg.RadiusMin, s.cfg.RadiusMax))
		vel := components.Velocity{
			X: float32(uniform(s.rng, -s.cfg.Speed, s.cfg.Speed)),
			Y: float32(uniform(s.rng, -s.cfg.Speed, s.cfg.Speed)),
		}
		s.spawn(x, y, r, vel)
	}
	return s.cfg.Count
}

// SpawnAt adds a stationary source at a window position with a random radius
// in [ClickRadiusMin, ClickRadiusMax].
func (s *Spawner) SpawnAt(x, y float32) ecs.Entity {
	r := float32(uniform(s.rng, s.cfg.ClickRadiusMin, s.cfg.ClickRadiusMax))
	return s.spawn(x, y, r, components.Velocity{})
}

func (s *Spawner) spawn(x, y, radius float32, vel components.Velocity) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	blob := components.Blob{Radius: radius, Generation: s.generation}
	return s.mapper.NewEntity(&pos, &vel, &blob)
}

// Clear removes every source entity.
func (s *Spawner) Clear() {
	// Collect first; the world is locked while a query is open.
	var toRemove []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		s.world.RemoveEntity(e)
	}
}

// uniform draws from [lo, hi].
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

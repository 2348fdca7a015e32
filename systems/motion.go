package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/metaball/components"
	"github.com/pthm-cable/metaball/config"
)

// MotionSystem drifts sources along their velocity and shrinks their radius.
type MotionSystem struct {
	filter *ecs.Filter3[components.Position, components.Velocity, components.Blob]
	rng    *rand.Rand
	cfg    config.SourcesConfig
}

// NewMotionSystem creates a new motion system.
func NewMotionSystem(w *ecs.World, rng *rand.Rand, cfg config.SourcesConfig) *MotionSystem {
	return &MotionSystem{
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Blob](w),
		rng:    rng,
		cfg:    cfg,
	}
}

// Update advances every source by one tick. Each axis moves by its velocity
// divided by a random factor in [JitterMin, JitterMax]; the radius shrinks by
// a random step in [DecayMin, DecayMax] and never goes below zero.
// Returns the summed radius after the step.
func (s *MotionSystem) Update() float64 {
	var total float64
	query := s.filter.Query()
	for query.Next() {
		pos, vel, blob := query.Get()

		pos.X += vel.X / float32(uniform(s.rng, s.cfg.JitterMin, s.cfg.JitterMax))
		pos.Y += vel.Y / float32(uniform(s.rng, s.cfg.JitterMin, s.cfg.JitterMax))

		blob.Radius -= float32(uniform(s.rng, s.cfg.DecayMin, s.cfg.DecayMax))
		if blob.Radius < 0 {
			blob.Radius = 0
		}
		total += float64(blob.Radius)
	}
	return total
}

// Package components defines ECS components for metaball sources.
package components

// Position represents a source centre in window coordinates.
type Position struct {
	X, Y float32
}

// Velocity is the per-tick displacement of a source before jitter.
type Velocity struct {
	X, Y float32
}

// Blob holds the influence radius of a source.
type Blob struct {
	Radius     float32
	Generation int32 // Spawn generation; clicks join the current one
}

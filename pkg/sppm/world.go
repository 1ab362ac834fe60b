package sppm

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
)

// World is the scene the engine renders. It must be safe for concurrent reads.
type World interface {
	// Intersect returns the closest surface hit along ray
	Intersect(ray core.Ray) (geometry.SurfaceHit, bool)
	// IntersectAll returns every surface hit along ray
	IntersectAll(ray core.Ray) []geometry.SurfaceHit
	// Lights returns the light sources
	Lights() []lights.Light
}

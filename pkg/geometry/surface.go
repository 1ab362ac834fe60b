package geometry

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Surface is anything a ray can hit. Implementations must be safe for concurrent
// read-only use once the scene is built.
type Surface interface {
	// Intersect returns the closest hit with distance greater than core.Eps
	Intersect(ray core.Ray) (core.Hit, bool)
	// IntersectAll returns every hit with distance greater than core.Eps, in no particular order
	IntersectAll(ray core.Ray) []core.Hit
	// Material returns the surface's material. Callers may modify it while authoring a scene.
	Material() *material.Material
}

// SurfaceHit pairs a hit with the surface that produced it
type SurfaceHit struct {
	core.Hit
	Surface Surface
}

// closest returns the smaller of two candidate hit distances above core.Eps
func closest(t0, t1 float64) (float64, bool) {
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 > core.Eps {
		return t0, true
	}
	if t1 > core.Eps {
		return t1, true
	}
	return 0, false
}

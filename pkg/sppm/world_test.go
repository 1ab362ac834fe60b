package sppm

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
)

// testWorld is a linear-scan world for engine tests
type testWorld struct {
	surfaces []geometry.Surface
	lights   []lights.Light
}

func (w *testWorld) Intersect(ray core.Ray) (geometry.SurfaceHit, bool) {
	var closest geometry.SurfaceHit
	found := false
	for _, s := range w.surfaces {
		hit, ok := s.Intersect(ray)
		if ok && (!found || hit.Distance < closest.Distance) {
			closest = geometry.SurfaceHit{Hit: hit, Surface: s}
			found = true
		}
	}
	return closest, found
}

func (w *testWorld) IntersectAll(ray core.Ray) []geometry.SurfaceHit {
	var hits []geometry.SurfaceHit
	for _, s := range w.surfaces {
		for _, hit := range s.IntersectAll(ray) {
			hits = append(hits, geometry.SurfaceHit{Hit: hit, Surface: s})
		}
	}
	return hits
}

func (w *testWorld) Lights() []lights.Light {
	return w.lights
}

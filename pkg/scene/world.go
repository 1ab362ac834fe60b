package scene

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/material"
)

// World owns the surfaces and lights of a scene. It is read-only while rendering.
type World struct {
	surfaces []geometry.Surface
	lights   []lights.Light
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// Add appends surfaces to the world
func (w *World) Add(surfaces ...geometry.Surface) {
	w.surfaces = append(w.surfaces, surfaces...)
}

// AddLight appends light sources to the world
func (w *World) AddLight(sources ...lights.Light) {
	w.lights = append(w.lights, sources...)
}

// Surfaces returns the world's surfaces in insertion order
func (w *World) Surfaces() []geometry.Surface {
	return w.surfaces
}

// Lights returns the world's light sources
func (w *World) Lights() []lights.Light {
	return w.lights
}

// Intersect returns the closest surface hit along ray. Equal distances resolve
// to the surface added first.
func (w *World) Intersect(ray core.Ray) (geometry.SurfaceHit, bool) {
	var closest geometry.SurfaceHit
	found := false

	for _, surface := range w.surfaces {
		hit, ok := surface.Intersect(ray)
		if !ok || hit.Distance <= core.Eps {
			continue
		}
		if !found || hit.Distance < closest.Distance {
			closest = geometry.SurfaceHit{Hit: hit, Surface: surface}
			found = true
		}
	}
	return closest, found
}

// IntersectAll returns every hit of every surface along ray, unordered
func (w *World) IntersectAll(ray core.Ray) []geometry.SurfaceHit {
	var hits []geometry.SurfaceHit
	for _, surface := range w.surfaces {
		for _, hit := range surface.IntersectAll(ray) {
			hits = append(hits, geometry.SurfaceHit{Hit: hit, Surface: surface})
		}
	}
	return hits
}

// AddSphereLight adds a spherical light together with its visible emitter surface
func (w *World) AddSphereLight(center core.Vec3, radius float64, power core.Vec3) *lights.SphereLight {
	light := lights.NewSphereLight(center, radius, power)
	w.AddLight(light)
	w.Add(geometry.NewSphere(center, radius, emitterMaterial(power, 4*math.Pi*radius*radius)))
	return light
}

// AddDiscLight adds a one-sided disc light together with its visible emitter surface
func (w *World) AddDiscLight(center, normal core.Vec3, radius float64, power core.Vec3) *lights.DiscLight {
	light := lights.NewDiscLight(center, normal, radius, power)
	w.AddLight(light)
	w.Add(geometry.NewDisc(center, normal, radius, emitterMaterial(power, math.Pi*radius*radius)))
	return light
}

// emitterMaterial returns the material of a Lambertian emitter of the given
// power and area as seen by the camera
func emitterMaterial(power core.Vec3, area float64) *material.Material {
	if area <= 0 {
		return material.NewEmissive(core.Zero)
	}
	return material.NewEmissive(power.Multiply(1 / (math.Pi * area)))
}

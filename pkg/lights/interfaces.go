package lights

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
)

// Occluder answers all-hits queries for shadow and transmission tests
type Occluder interface {
	IntersectAll(ray core.Ray) []geometry.SurfaceHit
}

// Light is a source of both direct illumination and photons
type Light interface {
	// Illuminate returns the radiance arriving at point and the unit direction
	// it travels (from the light toward the point). Occluded points get zero radiance.
	Illuminate(point core.Vec3, occluder Occluder) (core.Vec3, core.Vec3)

	// Emit samples the origin and direction of a photon leaving the light
	Emit(sampler core.Sampler) core.Ray

	// Flux returns the total power carried by the light's photons
	Flux() core.Vec3
}

// transmission returns the product of the transmittances of every surface between
// point and the light along direction, up to distance. skip excludes hits that
// belong to the light itself. The second result is false when an opaque surface
// blocks the light.
func transmission(occluder Occluder, point, direction core.Vec3, distance float64, skip func(p core.Vec3) bool) (core.Vec3, bool) {
	coeff := core.One
	for _, hit := range occluder.IntersectAll(core.NewRay(point, direction)) {
		if hit.Distance >= distance {
			continue
		}
		if skip != nil && skip(hit.Point) {
			continue
		}

		transparency, ok := hit.Surface.Material().Transparency()
		if !ok {
			return core.Zero, false
		}
		coeff = coeff.MultiplyVec(transparency)
	}
	return coeff, true
}

// towardLocation computes the unit direction and distance from point to location
func towardLocation(point, location core.Vec3) (core.Vec3, float64) {
	toLight := location.Subtract(point)
	distance := toLight.Length()
	if distance < core.Eps {
		return core.Zero, 0
	}
	return toLight.Multiply(1.0 / distance), distance
}

// atLocation skips hits that coincide with a light's location
func atLocation(location core.Vec3) func(p core.Vec3) bool {
	return func(p core.Vec3) bool {
		return p.DistanceSquared(location) < core.Eps2
	}
}

// inverseSquare is the fraction of an isotropic source's power per unit area at distance
func inverseSquare(distance float64) float64 {
	return 1.0 / (4.0 * math.Pi * distance * distance)
}

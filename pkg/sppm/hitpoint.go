package sppm

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
)

// HitPoint is a diffuse surface location seen from the camera where photon
// density is estimated
type HitPoint struct {
	core.Hit
	Incoming core.Vec3        // Direction of the eye ray that reached the point
	Surface  geometry.Surface // Surface the point lies on
	Pixel    core.Pixel       // Pixel the estimate is added to
	Weight   core.Vec3        // Product of reflectances along the eye path

	Radius2 float64   // Squared gather radius, non-increasing
	Photons float64   // Cumulative (blended) photon count N
	Flux    core.Vec3 // Accumulated flux, scaled with the radius
}

// Progress folds the photons gathered during one iteration into the running
// estimate. A point that has never received photons is only seeded (N = M,
// no shrink), so seeding happens on the first iteration that reaches the point
// rather than only on the first photon iteration.
func (hp *HitPoint) Progress(newPhotons int, newFlux core.Vec3, alpha float64) {
	m := float64(newPhotons)
	n := hp.Photons

	if n == 0 {
		hp.Photons = m
		hp.Flux = hp.Flux.Add(newFlux)
		return
	}

	coeff := (n + alpha*m) / (n + m)
	hp.Radius2 *= coeff
	hp.Flux = hp.Flux.Add(newFlux).Multiply(coeff)
	hp.Photons = n + alpha*m
}

// FacingNormal returns the normal on the side the camera sees
func (hp *HitPoint) FacingNormal() core.Vec3 {
	return hp.Hit.FacingNormal(hp.Incoming)
}

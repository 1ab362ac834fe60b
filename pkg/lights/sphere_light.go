package lights

import (
	"github.com/df07/go-sppm/pkg/core"
)

// SphereLight is a spherical emitter. It shades like a point light at its center
// and emits photons radially from its surface.
type SphereLight struct {
	Center core.Vec3
	Radius float64
	Power  core.Vec3
}

// NewSphereLight creates a spherical light
func NewSphereLight(center core.Vec3, radius float64, power core.Vec3) *SphereLight {
	return &SphereLight{Center: center, Radius: radius, Power: power}
}

// Illuminate returns the inverse-square irradiance from the center, ignoring
// hits inside the light's own radius
func (sl *SphereLight) Illuminate(point core.Vec3, occluder Occluder) (core.Vec3, core.Vec3) {
	direction, distance := towardLocation(point, sl.Center)
	if distance <= sl.Radius {
		return core.Zero, direction.Negate()
	}

	r2 := sl.Radius * sl.Radius
	inside := func(p core.Vec3) bool {
		return p.DistanceSquared(sl.Center) <= r2+core.Eps
	}

	coeff, ok := transmission(occluder, point, direction, distance, inside)
	if !ok {
		return core.Zero, direction.Negate()
	}

	radiance := sl.Power.MultiplyVec(coeff).Multiply(inverseSquare(distance))
	return radiance, direction.Negate()
}

// Emit samples a point on the surface and sends the photon straight outward
func (sl *SphereLight) Emit(sampler core.Sampler) core.Ray {
	dir := core.SampleOnUnitSphere(sampler.Get2D())
	return core.NewRay(sl.Center.Add(dir.Multiply(sl.Radius)), dir)
}

// Flux returns the light's total power
func (sl *SphereLight) Flux() core.Vec3 {
	return sl.Power
}

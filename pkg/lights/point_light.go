package lights

import (
	"github.com/df07/go-sppm/pkg/core"
)

// PointLight is an isotropic point source
type PointLight struct {
	Position core.Vec3
	Power    core.Vec3 // Total emitted power per channel
}

// NewPointLight creates a point light at position emitting power in all directions
func NewPointLight(position, power core.Vec3) *PointLight {
	return &PointLight{Position: position, Power: power}
}

// Illuminate returns the inverse-square irradiance, attenuated by transparent occluders
func (pl *PointLight) Illuminate(point core.Vec3, occluder Occluder) (core.Vec3, core.Vec3) {
	direction, distance := towardLocation(point, pl.Position)
	if distance == 0 {
		return core.Zero, core.Zero
	}

	coeff, ok := transmission(occluder, point, direction, distance, atLocation(pl.Position))
	if !ok {
		return core.Zero, direction.Negate()
	}

	radiance := pl.Power.MultiplyVec(coeff).Multiply(inverseSquare(distance))
	return radiance, direction.Negate()
}

// Emit samples a uniformly distributed direction from the light's position
func (pl *PointLight) Emit(sampler core.Sampler) core.Ray {
	return core.NewRay(pl.Position, core.SampleOnUnitSphere(sampler.Get2D()))
}

// Flux returns the light's total power
func (pl *PointLight) Flux() core.Vec3 {
	return pl.Power
}

package lights

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
)

// DiscLight is a one-sided circular emitter facing along Normal
type DiscLight struct {
	Center core.Vec3
	Normal core.Vec3
	Radius float64
	Power  core.Vec3

	tangent, bitangent core.Vec3 // Basis of the disc plane
}

// NewDiscLight creates a disc light emitting power from its front face
func NewDiscLight(center, normal core.Vec3, radius float64, power core.Vec3) *DiscLight {
	n := normal.Normalize()
	tangent := n.Perpendicular()
	return &DiscLight{
		Center:    center,
		Normal:    n,
		Radius:    radius,
		Power:     power,
		tangent:   tangent,
		bitangent: n.Cross(tangent),
	}
}

// Illuminate treats the disc as a small Lambertian emitter at its center: the
// intensity falls off with the cosine to the disc normal. Points behind the disc are dark.
func (dl *DiscLight) Illuminate(point core.Vec3, occluder Occluder) (core.Vec3, core.Vec3) {
	direction, distance := towardLocation(point, dl.Center)
	if distance == 0 {
		return core.Zero, core.Zero
	}

	cosLight := -direction.Dot(dl.Normal)
	if cosLight <= 0 {
		return core.Zero, direction.Negate()
	}

	coeff, ok := transmission(occluder, point, direction, distance, atLocation(dl.Center))
	if !ok {
		return core.Zero, direction.Negate()
	}

	radiance := dl.Power.MultiplyVec(coeff).Multiply(cosLight / (math.Pi * distance * distance))
	return radiance, direction.Negate()
}

// Emit samples a uniform point on the disc and a cosine-weighted direction in front of it
func (dl *DiscLight) Emit(sampler core.Sampler) core.Ray {
	p := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(dl.Radius)
	origin := dl.Center.Add(dl.tangent.Multiply(p.X)).Add(dl.bitangent.Multiply(p.Y))
	return core.NewRay(origin, core.SampleCosineHemisphere(dl.Normal, sampler.Get2D()))
}

// Flux returns the light's total power
func (dl *DiscLight) Flux() core.Vec3 {
	return dl.Power
}

package lights

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
)

// ParallelLight is a directional source such as sunlight. Photons leave a disc
// of the given radius centered at Center, all travelling along Direction.
type ParallelLight struct {
	Direction  core.Vec3 // Direction light travels
	Irradiance core.Vec3 // Power per unit area perpendicular to Direction
	Center     core.Vec3 // Center of the emission disc
	Radius     float64   // Radius of the emission disc

	tangent, bitangent core.Vec3
}

// NewParallelLight creates a directional light
func NewParallelLight(direction, irradiance, center core.Vec3, radius float64) *ParallelLight {
	d := direction.Normalize()
	tangent := d.Perpendicular()
	return &ParallelLight{
		Direction:  d,
		Irradiance: irradiance,
		Center:     center,
		Radius:     radius,
		tangent:    tangent,
		bitangent:  d.Cross(tangent),
	}
}

// Illuminate returns the constant irradiance, attenuated by everything between
// the point and infinity against the light direction
func (pl *ParallelLight) Illuminate(point core.Vec3, occluder Occluder) (core.Vec3, core.Vec3) {
	coeff, ok := transmission(occluder, point, pl.Direction.Negate(), math.Inf(1), nil)
	if !ok {
		return core.Zero, pl.Direction
	}
	return pl.Irradiance.MultiplyVec(coeff), pl.Direction
}

// Emit samples a uniform point on the emission disc
func (pl *ParallelLight) Emit(sampler core.Sampler) core.Ray {
	p := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(pl.Radius)
	origin := pl.Center.Add(pl.tangent.Multiply(p.X)).Add(pl.bitangent.Multiply(p.Y))
	return core.NewRay(origin, pl.Direction)
}

// Flux returns the power crossing the emission disc
func (pl *ParallelLight) Flux() core.Vec3 {
	return pl.Irradiance.Multiply(math.Pi * pl.Radius * pl.Radius)
}

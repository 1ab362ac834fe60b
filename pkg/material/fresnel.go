package material

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
)

// Reflect mirrors a unit direction about a unit normal
func Reflect(direction, normal core.Vec3) core.Vec3 {
	return direction.Reflect(normal)
}

// Refract bends a unit direction crossing from index n1 into n2. The normal must
// face against the direction. A zero vector is returned on total internal reflection.
func Refract(direction, normal core.Vec3, n1, n2 float64) core.Vec3 {
	eta := n1 / n2
	cosI := -direction.Dot(normal)
	sin2T := eta * eta * (1.0 - cosI*cosI)
	if sin2T > 1.0 {
		return core.Zero
	}
	cosT := math.Sqrt(1.0 - sin2T)
	return direction.Multiply(eta).Add(normal.Multiply(eta*cosI - cosT)).Normalize()
}

// Fresnel returns the reflected fraction of unpolarized light at an interface,
// averaging the s- and p-polarized reflectances
func Fresnel(cosI, cosT, n1, n2 float64) float64 {
	sDen := n1*cosI + n2*cosT
	pDen := n1*cosT + n2*cosI
	if sDen < core.Eps || pDen < core.Eps {
		return 1.0
	}
	rs := (n1*cosI - n2*cosT) / sDen
	rp := (n1*cosT - n2*cosI) / pDen
	return math.Max(0, math.Min(1, 0.5*(rs*rs+rp*rp)))
}

// Interface describes how a ray splits at a refractive boundary
type Interface struct {
	Normal      core.Vec3        // Normal facing against the incoming ray
	Reflected   core.Vec3        // Mirror direction
	Transmitted core.Vec3        // Refracted direction, zero on total internal reflection
	Reflectance float64          // Fraction carried by the reflected branch
	Media       core.MediumStack // Media seen by the transmitted branch
}

// TotalInternalReflection reports whether no energy is transmitted
func (i Interface) TotalInternalReflection() bool {
	return i.Transmitted == core.Zero
}

// Transmittance returns the fraction carried by the transmitted branch
func (i Interface) Transmittance() float64 {
	return 1.0 - i.Reflectance
}

// Split computes the reflected and transmitted branches for a ray hitting a
// surface with the given outward normal and interior refractive index.
// Entering pushes index onto the ray's media, leaving pops back to the outer medium.
func Split(ray core.Ray, outward core.Vec3, index float64) Interface {
	d := ray.Direction
	var n core.Vec3
	var n1, n2 float64
	var media core.MediumStack

	if outward.Dot(d) < 0 {
		// Entering the surface
		n = outward
		n1, n2 = ray.Media.Current(), index
		media = ray.Media.Push(index)
	} else {
		// Leaving the surface
		n = outward.Negate()
		n1, n2 = ray.Media.Current(), ray.Media.Outer()
		media = ray.Media.Pop()
	}

	result := Interface{
		Normal:    n,
		Reflected: Reflect(d, n),
		Media:     media,
	}

	result.Transmitted = Refract(d, n, n1, n2)
	if result.TotalInternalReflection() {
		result.Reflectance = 1.0
		return result
	}

	cosI := -d.Dot(n)
	cosT := -result.Transmitted.Dot(n)
	result.Reflectance = Fresnel(cosI, cosT, n1, n2)
	return result
}

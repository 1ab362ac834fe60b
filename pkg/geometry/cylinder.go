package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Cylinder is a finite open-ended cylinder (no caps). It does not enclose a
// volume, so it should not carry a refractive material.
type Cylinder struct {
	BaseCenter core.Vec3
	TopCenter  core.Vec3
	Radius     float64
	mat        *material.Material

	axis   core.Vec3 // Unit vector from base to top
	height float64   // Distance between base and top
}

// NewCylinder creates a new cylinder
func NewCylinder(baseCenter, topCenter core.Vec3, radius float64, mat *material.Material) *Cylinder {
	axisVector := topCenter.Subtract(baseCenter)
	return &Cylinder{
		BaseCenter: baseCenter,
		TopCenter:  topCenter,
		Radius:     radius,
		mat:        mat,
		axis:       axisVector.Normalize(),
		height:     axisVector.Length(),
	}
}

// Material returns the cylinder's material
func (c *Cylinder) Material() *material.Material {
	return c.mat
}

// roots solves for the crossings of the infinite cylinder around the axis
func (c *Cylinder) roots(ray core.Ray) (float64, float64, bool) {
	delta := ray.Origin.Subtract(c.BaseCenter)

	// a t² + b t + cc = 0 over the components perpendicular to the axis
	dv := ray.Direction.Dot(c.axis)
	deltaV := delta.Dot(c.axis)
	a := ray.Direction.LengthSquared() - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// Parallel to the axis: the side is never crossed
	if math.Abs(a) < core.Eps {
		return 0, 0, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < core.Eps2 {
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return (-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a), true
}

// crossings returns the hit for each root within the cylinder's height, nearest first
func (c *Cylinder) crossings(ray core.Ray) []core.Hit {
	t0, t1, ok := c.roots(ray)
	if !ok {
		return nil
	}
	var hits []core.Hit
	for _, t := range [2]float64{t0, t1} {
		if t <= core.Eps {
			continue
		}
		if hit, ok := c.hitAt(ray, t); ok {
			hits = append(hits, hit)
		}
	}
	return hits
}

// Intersect returns the nearest crossing of the side within the cylinder's height
func (c *Cylinder) Intersect(ray core.Ray) (core.Hit, bool) {
	hits := c.crossings(ray)
	if len(hits) == 0 {
		return core.Hit{}, false
	}
	return hits[0], true
}

// IntersectAll returns up to two crossings of the side
func (c *Cylinder) IntersectAll(ray core.Ray) []core.Hit {
	return c.crossings(ray)
}

// hitAt builds the hit at distance t with the radial outward normal. (u,v) are
// the angle around the axis and the height, both scaled to [0,1].
func (c *Cylinder) hitAt(ray core.Ray, t float64) (core.Hit, bool) {
	point := ray.At(t)
	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	if h < 0 || h > c.height {
		return core.Hit{}, false
	}

	axisPoint := c.BaseCenter.Add(c.axis.Multiply(h))
	normal := point.Subtract(axisPoint).Multiply(1.0 / c.Radius)

	// Angle measured in a frame perpendicular to the axis
	right := c.axis.Perpendicular()
	up := c.axis.Cross(right)
	u := 0.5 + math.Atan2(normal.Dot(up), normal.Dot(right))/(2*math.Pi)

	return core.Hit{
		Point:    point,
		Normal:   normal,
		Distance: t,
		UV:       core.NewVec2(u, h/c.height),
		HasUV:    true,
	}, true
}

// BoundingBox returns the box around both end discs
func (c *Cylinder) BoundingBox() core.AABB {
	// An end disc extends r·sqrt(1 - axis_i²) along coordinate axis i
	extent := core.NewVec3(
		c.Radius*math.Sqrt(math.Max(0, 1-c.axis.X*c.axis.X)),
		c.Radius*math.Sqrt(math.Max(0, 1-c.axis.Y*c.axis.Y)),
		c.Radius*math.Sqrt(math.Max(0, 1-c.axis.Z*c.axis.Z)),
	)
	return core.NewAABBFromPoints(
		c.BaseCenter.Subtract(extent), c.BaseCenter.Add(extent),
		c.TopCenter.Subtract(extent), c.TopCenter.Add(extent),
	)
}

package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
	mat    *material.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, mat *material.Material) *Plane {
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(), // Ensure normal is normalized
		mat:    mat,
	}
}

// Material returns the plane's material
func (p *Plane) Material() *material.Material {
	return p.mat
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray) (core.Hit, bool) {
	// Calculate denominator: dot product of ray direction and plane normal
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to plane (no intersection)
	if math.Abs(denominator) < core.Eps {
		return core.Hit{}, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= core.Eps {
		return core.Hit{}, false
	}

	return core.Hit{
		Point:    ray.At(t),
		Normal:   p.Normal,
		Distance: t,
	}, true
}

// IntersectAll returns the single plane crossing, if any
func (p *Plane) IntersectAll(ray core.Ray) []core.Hit {
	if hit, ok := p.Intersect(ray); ok {
		return []core.Hit{hit}
	}
	return nil
}

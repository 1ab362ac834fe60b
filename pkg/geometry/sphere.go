package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	mat    *material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat *material.Material) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		mat:    mat,
	}
}

// Material returns the sphere's material
func (s *Sphere) Material() *material.Material {
	return s.mat
}

// roots solves |o + t d - c|² = r² for t. Directions are unit length so a = 1.
func (s *Sphere) roots(ray core.Ray) (float64, float64, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < core.Eps2 {
		// Missing or grazing
		return 0, 0, false
	}

	sqrtD := math.Sqrt(discriminant)
	return -halfB - sqrtD, -halfB + sqrtD, true
}

// Intersect tests if a ray intersects with the sphere
func (s *Sphere) Intersect(ray core.Ray) (core.Hit, bool) {
	t0, t1, ok := s.roots(ray)
	if !ok {
		return core.Hit{}, false
	}
	t, ok := closest(t0, t1)
	if !ok {
		return core.Hit{}, false
	}
	return s.hitAt(ray, t), true
}

// IntersectAll returns both crossings in front of the ray origin
func (s *Sphere) IntersectAll(ray core.Ray) []core.Hit {
	t0, t1, ok := s.roots(ray)
	if !ok {
		return nil
	}
	var hits []core.Hit
	for _, t := range [2]float64{t0, t1} {
		if t > core.Eps {
			hits = append(hits, s.hitAt(ray, t))
		}
	}
	return hits
}

// hitAt builds the hit at distance t with the outward normal and spherical (u,v)
func (s *Sphere) hitAt(ray core.Ray, t float64) core.Hit {
	point := ray.At(t)
	normal := point.Subtract(s.Center).Multiply(1.0 / s.Radius)

	u := 0.5 + math.Atan2(normal.Z, normal.X)/(2*math.Pi)
	v := 0.5 - math.Asin(math.Max(-1, math.Min(1, normal.Y)))/math.Pi

	return core.Hit{
		Point:    point,
		Normal:   normal,
		Distance: t,
		UV:       core.NewVec2(u, v),
		HasUV:    true,
	}
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

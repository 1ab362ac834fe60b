package geometry

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	mat        *material.Material
	normal     core.Vec3 // Cached normal vector
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{
		V0:  v0,
		V1:  v1,
		V2:  v2,
		mat: mat,
	}

	// Normal is the cross product of the two edges
	t.normal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.bbox = core.NewAABBFromPoints(v0, v1, v2)

	return t
}

// Material returns the triangle's material
func (t *Triangle) Material() *material.Material {
	return t.mat
}

// Intersect tests if a ray intersects with the triangle using the Möller-Trumbore algorithm.
// The hit reports the barycentric coordinates of V1 and V2 as (u,v).
func (t *Triangle) Intersect(ray core.Ray) (core.Hit, bool) {
	dist, u, v, ok := intersectTriangle(ray, t.V0, t.V1, t.V2)
	if !ok {
		return core.Hit{}, false
	}
	return core.Hit{
		Point:    ray.At(dist),
		Normal:   t.normal,
		Distance: dist,
		UV:       core.NewVec2(u, v),
		HasUV:    true,
	}, true
}

// IntersectAll returns the single triangle crossing, if any
func (t *Triangle) IntersectAll(ray core.Ray) []core.Hit {
	if hit, ok := t.Intersect(ray); ok {
		return []core.Hit{hit}
	}
	return nil
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's normal vector
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// intersectTriangle returns the ray distance and barycentric coordinates of a hit
func intersectTriangle(ray core.Ray, v0, v1, v2 core.Vec3) (dist, u, v float64, ok bool) {
	edge1 := v1.Subtract(v0)
	edge2 := v2.Subtract(v0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle or the triangle is degenerate
	if a > -core.Eps && a < core.Eps {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(v0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	dist = f * edge2.Dot(q)
	if dist <= core.Eps {
		return 0, 0, 0, false
	}
	return dist, u, v, true
}

package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Quad represents a parallelogram defined by a corner and two edge vectors
type Quad struct {
	Corner core.Vec3 // One corner of the quad
	U      core.Vec3 // First edge vector
	V      core.Vec3 // Second edge vector
	Normal core.Vec3 // Unit normal along U × V
	D      float64   // Plane equation constant: normal · x = D
	W      core.Vec3 // Cached vector for the in-plane coordinates
	mat    *material.Material
}

// NewQuad creates a new quad from a corner point and two edge vectors
func NewQuad(corner, u, v core.Vec3, mat *material.Material) *Quad {
	cross := u.Cross(v)
	normal := cross.Normalize()

	// w = n / (n · (u × v))
	return &Quad{
		Corner: corner,
		U:      u,
		V:      v,
		Normal: normal,
		D:      normal.Dot(corner),
		W:      normal.Multiply(1.0 / normal.Dot(cross)),
		mat:    mat,
	}
}

// Material returns the quad's material
func (q *Quad) Material() *material.Material {
	return q.mat
}

// Intersect tests the ray against the quad. (u,v) are the coordinates of the
// hit along the two edges.
func (q *Quad) Intersect(ray core.Ray) (core.Hit, bool) {
	denominator := ray.Direction.Dot(q.Normal)
	if math.Abs(denominator) < core.Eps {
		return core.Hit{}, false
	}

	t := (q.D - ray.Origin.Dot(q.Normal)) / denominator
	if t <= core.Eps {
		return core.Hit{}, false
	}

	point := ray.At(t)
	offset := point.Subtract(q.Corner)
	alpha := q.W.Dot(offset.Cross(q.V))
	beta := q.W.Dot(q.U.Cross(offset))
	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return core.Hit{}, false
	}

	return core.Hit{
		Point:    point,
		Normal:   q.Normal,
		Distance: t,
		UV:       core.NewVec2(alpha, beta),
		HasUV:    true,
	}, true
}

// IntersectAll returns the single quad crossing, if any
func (q *Quad) IntersectAll(ray core.Ray) []core.Hit {
	if hit, ok := q.Intersect(ray); ok {
		return []core.Hit{hit}
	}
	return nil
}

// BoundingBox returns the box around the quad's four corners
func (q *Quad) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		q.Corner,
		q.Corner.Add(q.U),
		q.Corner.Add(q.V),
		q.Corner.Add(q.U).Add(q.V),
	)
}

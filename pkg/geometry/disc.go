package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center core.Vec3 // Center of the disc
	Normal core.Vec3 // Unit normal
	Radius float64   // Radius of the disc
	Right  core.Vec3 // In-plane axis perpendicular to the normal
	Up     core.Vec3 // In-plane axis perpendicular to normal and right
	mat    *material.Material
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat *material.Material) *Disc {
	n := normal.Normalize()
	right := n.Perpendicular()

	return &Disc{
		Center: center,
		Normal: n,
		Radius: radius,
		Right:  right,
		Up:     n.Cross(right).Normalize(),
		mat:    mat,
	}
}

// Material returns the disc's material
func (d *Disc) Material() *material.Material {
	return d.mat
}

// Intersect tests the ray against the disc's plane and radius. (u,v) are the
// polar coordinates of the hit scaled to [0,1].
func (d *Disc) Intersect(ray core.Ray) (core.Hit, bool) {
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < core.Eps {
		return core.Hit{}, false
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t <= core.Eps {
		return core.Hit{}, false
	}

	point := ray.At(t)
	offset := point.Subtract(d.Center)
	distanceSquared := offset.LengthSquared()
	if distanceSquared > d.Radius*d.Radius {
		return core.Hit{}, false
	}

	theta := math.Atan2(offset.Dot(d.Up), offset.Dot(d.Right))
	return core.Hit{
		Point:    point,
		Normal:   d.Normal,
		Distance: t,
		UV:       core.NewVec2(0.5+theta/(2*math.Pi), math.Sqrt(distanceSquared)/d.Radius),
		HasUV:    true,
	}, true
}

// IntersectAll returns the single disc crossing, if any
func (d *Disc) IntersectAll(ray core.Ray) []core.Hit {
	if hit, ok := d.Intersect(ray); ok {
		return []core.Hit{hit}
	}
	return nil
}

// BoundingBox returns the box spanned by the disc's in-plane extents
func (d *Disc) BoundingBox() core.AABB {
	r := d.Right.Multiply(d.Radius)
	u := d.Up.Multiply(d.Radius)
	return core.NewAABBFromPoints(
		d.Center.Add(r).Add(u),
		d.Center.Add(r).Subtract(u),
		d.Center.Subtract(r).Add(u),
		d.Center.Subtract(r).Subtract(u),
	)
}

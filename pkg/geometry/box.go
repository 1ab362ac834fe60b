package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// Box represents an axis-aligned box
type Box struct {
	Bounds core.AABB
	mat    *material.Material
}

// NewBox creates a box spanning min to max
func NewBox(min, max core.Vec3, mat *material.Material) *Box {
	return &Box{Bounds: core.NewAABB(min, max), mat: mat}
}

// NewBoxFromCenter creates a box from its center and half-extents
// (a size of (1,1,1) creates a 2x2x2 box)
func NewBoxFromCenter(center, halfSize core.Vec3, mat *material.Material) *Box {
	return NewBox(center.Subtract(halfSize), center.Add(halfSize), mat)
}

// Material returns the box's material
func (b *Box) Material() *material.Material {
	return b.mat
}

// slabs returns the entry and exit distances and the axes they happen on
func (b *Box) slabs(ray core.Ray) (tNear, tFar float64, nearAxis, farAxis int, ok bool) {
	tNear, tFar = math.Inf(-1), math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		o := ray.Origin.Axis(axis)
		d := ray.Direction.Axis(axis)
		lo, hi := b.Bounds.Min.Axis(axis), b.Bounds.Max.Axis(axis)

		if math.Abs(d) < core.Eps {
			// Parallel to this slab, must already be inside it
			if o < lo || o > hi {
				return 0, 0, 0, 0, false
			}
			continue
		}

		t0 := (lo - o) / d
		t1 := (hi - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tNear {
			tNear, nearAxis = t0, axis
		}
		if t1 < tFar {
			tFar, farAxis = t1, axis
		}
		if tNear > tFar {
			return 0, 0, 0, 0, false
		}
	}
	return tNear, tFar, nearAxis, farAxis, true
}

// Intersect tests if a ray intersects with the box
func (b *Box) Intersect(ray core.Ray) (core.Hit, bool) {
	tNear, tFar, nearAxis, farAxis, ok := b.slabs(ray)
	if !ok {
		return core.Hit{}, false
	}
	if tNear > core.Eps {
		return b.hitAt(ray, tNear, nearAxis), true
	}
	if tFar > core.Eps {
		// Origin is inside the box
		return b.hitAt(ray, tFar, farAxis), true
	}
	return core.Hit{}, false
}

// IntersectAll returns the entry and exit crossings in front of the ray origin
func (b *Box) IntersectAll(ray core.Ray) []core.Hit {
	tNear, tFar, nearAxis, farAxis, ok := b.slabs(ray)
	if !ok {
		return nil
	}
	var hits []core.Hit
	if tNear > core.Eps {
		hits = append(hits, b.hitAt(ray, tNear, nearAxis))
	}
	if tFar > core.Eps && tFar-tNear > core.Eps {
		hits = append(hits, b.hitAt(ray, tFar, farAxis))
	}
	return hits
}

// hitAt builds the hit at distance t on a face perpendicular to axis, with the outward normal
func (b *Box) hitAt(ray core.Ray, t float64, axis int) core.Hit {
	point := ray.At(t)
	center := b.Bounds.Center()

	var normal core.Vec3
	if point.Axis(axis) > center.Axis(axis) {
		normal = normal.WithAxis(axis, 1)
	} else {
		normal = normal.WithAxis(axis, -1)
	}

	return core.Hit{
		Point:    point,
		Normal:   normal,
		Distance: t,
	}
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.Bounds
}

package core

import "math"

// AABB represents an axis-aligned bounding box. The KD-tree uses it as the cube
// "range" of a node.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	min := points[0]
	max := points[0]

	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return AABB{Min: min, Max: max}
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Axis(axis)
		max := aabb.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < 1e-8 {
			// Ray is parallel to this axis
			if origin < min || origin > max {
				return false // Ray origin outside slab
			}
			continue
		}

		// Calculate intersection distances for this axis
		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection

		// Ensure t1 <= t2 (swap if needed)
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		// Update overall intersection interval
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		// No intersection if tMin > tMax
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}

// Contains reports whether p lies inside the box (boundary inclusive)
func (aabb AABB) Contains(p Vec3) bool {
	return aabb.Min.X <= p.X && p.X <= aabb.Max.X &&
		aabb.Min.Y <= p.Y && p.Y <= aabb.Max.Y &&
		aabb.Min.Z <= p.Z && p.Z <= aabb.Max.Z
}

// ContainsWithin reports whether p lies inside the box dilated by margin on every side
func (aabb AABB) ContainsWithin(p Vec3, margin float64) bool {
	return aabb.Expand(margin).Contains(p)
}

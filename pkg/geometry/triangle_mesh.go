package geometry

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	vertices []core.Vec3
	faces    []int       // Three vertex indices per triangle
	uvs      []core.Vec2 // Optional per-vertex texture coordinates
	normals  []core.Vec3 // Cached per-triangle normals
	bvh      *bvh
	mat      *material.Material
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	UVs      []core.Vec2 // Optional per-vertex (u,v), interpolated across each triangle
	Rotation *core.Vec3  // Optional rotation to apply to vertices
	Center   *core.Vec3  // Optional center point for rotation
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat *material.Material, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}
	if options != nil && options.UVs != nil && len(options.UVs) != len(vertices) {
		panic("Number of uvs must match number of vertices")
	}

	// Apply rotation if specified
	workingVertices := make([]core.Vec3, len(vertices))
	copy(workingVertices, vertices)
	if options != nil && options.Rotation != nil {
		for i, vertex := range workingVertices {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	numTriangles := len(faces) / 3
	normals := make([]core.Vec3, numTriangles)
	boxes := make([]core.AABB, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]

		// Bounds check
		if i0 >= len(workingVertices) || i1 >= len(workingVertices) || i2 >= len(workingVertices) ||
			i0 < 0 || i1 < 0 || i2 < 0 {
			panic("Face index out of bounds")
		}

		v0, v1, v2 := workingVertices[i0], workingVertices[i1], workingVertices[i2]
		normals[i] = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
		boxes[i] = core.NewAABBFromPoints(v0, v1, v2)
	}

	mesh := &TriangleMesh{
		vertices: workingVertices,
		faces:    append([]int(nil), faces...),
		normals:  normals,
		bvh:      newBVH(boxes),
		mat:      mat,
	}
	if options != nil && options.UVs != nil {
		mesh.uvs = append([]core.Vec2(nil), options.UVs...)
	}
	return mesh
}

// Material returns the mesh's material
func (tm *TriangleMesh) Material() *material.Material {
	return tm.mat
}

// Intersect tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Intersect(ray core.Ray) (core.Hit, bool) {
	var best core.Hit
	found := false
	closestSoFar := math.Inf(1)

	tm.bvh.traverse(ray, &closestSoFar, func(i int) {
		if hit, ok := tm.intersectTriangle(ray, i); ok && hit.Distance < closestSoFar {
			best = hit
			found = true
			closestSoFar = hit.Distance
		}
	})

	return best, found
}

// IntersectAll returns every triangle crossing in front of the ray origin
func (tm *TriangleMesh) IntersectAll(ray core.Ray) []core.Hit {
	var hits []core.Hit
	tMax := math.Inf(1)

	tm.bvh.traverse(ray, &tMax, func(i int) {
		if hit, ok := tm.intersectTriangle(ray, i); ok {
			hits = append(hits, hit)
		}
	})

	return hits
}

// intersectTriangle tests triangle i and fills in its index and texture coordinates
func (tm *TriangleMesh) intersectTriangle(ray core.Ray, i int) (core.Hit, bool) {
	i0, i1, i2 := tm.faces[i*3], tm.faces[i*3+1], tm.faces[i*3+2]
	dist, u, v, ok := intersectTriangle(ray, tm.vertices[i0], tm.vertices[i1], tm.vertices[i2])
	if !ok {
		return core.Hit{}, false
	}

	uv := core.NewVec2(u, v)
	if tm.uvs != nil {
		w := 1 - u - v
		uv = core.NewVec2(
			w*tm.uvs[i0].X+u*tm.uvs[i1].X+v*tm.uvs[i2].X,
			w*tm.uvs[i0].Y+u*tm.uvs[i1].Y+v*tm.uvs[i2].Y,
		)
	}

	return core.Hit{
		Point:    ray.At(dist),
		Normal:   tm.normals[i],
		Distance: dist,
		UV:       uv,
		HasUV:    true,
		Index:    i,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.bounds()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.normals)
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	// Rotation around X axis
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	// Rotation around Y axis
	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	// Rotation around Z axis
	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}

package scene

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// NewTriangleMeshScene creates a scene showcasing triangle mesh geometry: a
// glass box, a diffuse pyramid and a mirrored icosahedron
func NewTriangleMeshScene() *Scene {
	world := NewWorld()
	world.Add(geometry.NewPlane(core.Zero, core.NewVec3(0, 1, 0), material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7))))

	// Main overhead light and a cool fill light
	world.AddSphereLight(core.NewVec3(2, 6, 3), 0.5, core.NewVec3(600, 550, 500))
	world.AddLight(lights.NewPointLight(core.NewVec3(-3, 4, 2), core.NewVec3(120, 140, 160)))

	world.Add(
		createBoxMesh(
			core.NewVec3(-2, 0.5, 0),      // center (sitting on ground)
			core.NewVec3(1, 1, 1),         // size
			core.NewVec3(0, math.Pi/6, 0), // rotation (30° around Y-axis)
			material.NewGlass(1.5, core.NewVec3(0.9, 0.95, 1)),
		),
		createPyramidMesh(
			core.NewVec3(0, 1, 0),         // center
			1.5,                           // base size
			2.0,                           // height
			core.NewVec3(0, math.Pi/4, 0), // rotation (45° around Y-axis only)
			material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.8)),
		),
		createIcosahedronMesh(
			core.NewVec3(2, 0.8, 0),       // center (sitting on ground)
			0.8,                           // radius
			core.NewVec3(0, math.Pi/3, 0), // rotation (60° around Y-axis)
			material.NewMirror(0.8),
		),
	)

	return &Scene{
		Name:        "meshes",
		Description: "Glass, diffuse and mirrored triangle meshes",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0, 2, 6),
			LookAt:   core.NewVec3(0, 1, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     45,
		},
		Width:    480,
		Height:   270,
		Settings: DefaultRenderSettings(),
	}
}

// NewPrismScene creates a glass prism splitting a narrow parallel beam onto a wall
func NewPrismScene() *Scene {
	world := NewWorld()
	white := material.NewDiffuse(core.NewVec3(0.85, 0.85, 0.85))
	world.Add(
		geometry.NewPlane(core.Zero, core.NewVec3(0, 1, 0), white),
		geometry.NewPlane(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1), white),
	)

	world.Add(createPrismMesh(
		core.NewVec3(0, 0.8, 0),
		1.0,
		1.6,
		material.NewGlass(1.6, core.One),
	))

	// Narrow beam from the right, aimed at the prism
	world.AddLight(lights.NewParallelLight(
		core.NewVec3(-1, -0.1, -0.3),
		core.NewVec3(40, 40, 40),
		core.NewVec3(3, 1.1, 0.9),
		0.08,
	))
	world.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 3), core.NewVec3(30, 30, 30)))

	return &Scene{
		Name:        "prism",
		Description: "Parallel beam refracted by a triangular glass prism",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0.5, 1.8, 4),
			LookAt:   core.NewVec3(0, 0.8, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     45,
		},
		Width:  400,
		Height: 300,
		Settings: RenderSettings{
			Iterations:          40,
			PhotonsPerIteration: 200000,
			InitialRadius:       0.05,
		},
	}
}

// meshOptions returns rotation options, or nil when there is no rotation
func meshOptions(center, rotation core.Vec3) *geometry.TriangleMeshOptions {
	if rotation == core.Zero {
		return nil
	}
	return &geometry.TriangleMeshOptions{Rotation: &rotation, Center: &center}
}

// createBoxMesh creates a triangle mesh representing a box
func createBoxMesh(center, size core.Vec3, rotation core.Vec3, mat *material.Material) *geometry.TriangleMesh {
	// Calculate the 8 corners of the box
	halfSize := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfSize.X, -halfSize.Y, -halfSize.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+halfSize.X, -halfSize.Y, -halfSize.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+halfSize.X, +halfSize.Y, -halfSize.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-halfSize.X, +halfSize.Y, -halfSize.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-halfSize.X, -halfSize.Y, +halfSize.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+halfSize.X, -halfSize.Y, +halfSize.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+halfSize.X, +halfSize.Y, +halfSize.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-halfSize.X, +halfSize.Y, +halfSize.Z)), // 7: left-top-front
	}

	// 12 triangles wound so normals point outward
	faces := []int{
		// Back face (Z-)
		0, 2, 1, 0, 3, 2,
		// Front face (Z+)
		4, 5, 6, 4, 6, 7,
		// Left face (X-)
		0, 4, 7, 0, 7, 3,
		// Right face (X+)
		1, 2, 6, 1, 6, 5,
		// Bottom face (Y-)
		0, 1, 5, 0, 5, 4,
		// Top face (Y+)
		3, 7, 6, 3, 6, 2,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, meshOptions(center, rotation))
}

// createPyramidMesh creates a triangle mesh representing a pyramid
func createPyramidMesh(center core.Vec3, baseSize, height float64, rotation core.Vec3, mat *material.Material) *geometry.TriangleMesh {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		// Base vertices (Y = center.Y - halfHeight)
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		// Apex (Y = center.Y + halfHeight)
		center.Add(core.NewVec3(0, +halfHeight, 0)), // 4: apex
	}

	faces := []int{
		// Base (2 triangles)
		0, 1, 2, 0, 2, 3,
		// Side faces
		0, 4, 1, // back face
		1, 4, 2, // right face
		2, 4, 3, // front face
		3, 4, 0, // left face
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, meshOptions(center, rotation))
}

// createIcosahedronMesh creates a triangle mesh representing an icosahedron (20-sided polyhedron)
func createIcosahedronMesh(center core.Vec3, radius float64, rotation core.Vec3, mat *material.Material) *geometry.TriangleMesh {
	// Golden ratio
	phi := (1.0 + math.Sqrt(5)) / 2.0

	// Vertices (±1, ±phi, 0) and permutations lie at distance sqrt(1+phi²)
	scale := radius / math.Sqrt(1+phi*phi)

	// 12 vertices of icosahedron
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-1, phi, 0).Multiply(scale)),  // 0
		center.Add(core.NewVec3(1, phi, 0).Multiply(scale)),   // 1
		center.Add(core.NewVec3(-1, -phi, 0).Multiply(scale)), // 2
		center.Add(core.NewVec3(1, -phi, 0).Multiply(scale)),  // 3
		center.Add(core.NewVec3(0, -1, phi).Multiply(scale)),  // 4
		center.Add(core.NewVec3(0, 1, phi).Multiply(scale)),   // 5
		center.Add(core.NewVec3(0, -1, -phi).Multiply(scale)), // 6
		center.Add(core.NewVec3(0, 1, -phi).Multiply(scale)),  // 7
		center.Add(core.NewVec3(phi, 0, -1).Multiply(scale)),  // 8
		center.Add(core.NewVec3(phi, 0, 1).Multiply(scale)),   // 9
		center.Add(core.NewVec3(-phi, 0, -1).Multiply(scale)), // 10
		center.Add(core.NewVec3(-phi, 0, 1).Multiply(scale)),  // 11
	}

	// 20 triangular faces
	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, meshOptions(center, rotation))
}

// createPrismMesh creates a closed triangular prism along Z with an equilateral
// cross-section pointing up
func createPrismMesh(center core.Vec3, side, length float64, mat *material.Material) *geometry.TriangleMesh {
	h := side * math.Sqrt(3) / 2
	hz := length / 2

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-side/2, -h/3, -hz)), // 0: left-back
		center.Add(core.NewVec3(side/2, -h/3, -hz)),  // 1: right-back
		center.Add(core.NewVec3(0, 2*h/3, -hz)),      // 2: top-back
		center.Add(core.NewVec3(-side/2, -h/3, hz)),  // 3: left-front
		center.Add(core.NewVec3(side/2, -h/3, hz)),   // 4: right-front
		center.Add(core.NewVec3(0, 2*h/3, hz)),       // 5: top-front
	}

	faces := []int{
		// End caps
		0, 2, 1,
		3, 4, 5,
		// Bottom
		0, 1, 4, 0, 4, 3,
		// Left slope
		0, 3, 5, 0, 5, 2,
		// Right slope
		1, 2, 5, 1, 5, 4,
	}

	return geometry.NewTriangleMesh(vertices, faces, mat, nil)
}

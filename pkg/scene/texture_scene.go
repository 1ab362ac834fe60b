package scene

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// NewTextureScene creates a row of parameterized surfaces, each showing a
// procedural texture, for checking (u,v) mappings
func NewTextureScene() *Scene {
	world := NewWorld()

	checker := material.NewTextured(material.NewCheckerboard(
		core.NewVec3(0.9, 0.9, 0.9),
		core.NewVec3(0.2, 0.2, 0.8),
		8,
	))
	gradient := material.NewTextured(material.NewGradient(
		core.NewVec3(0.2, 1.0, 0.2),
		core.NewVec3(1.0, 0.2, 0.2),
	))
	uvDebug := material.NewTextured(material.UVColors{})
	brick := material.NewTextured(material.NewCheckerboard(
		core.NewVec3(0.7, 0.3, 0.1),
		core.NewVec3(0.5, 0.2, 0.05),
		32,
	))

	// Left to right
	world.Add(
		geometry.NewSphere(core.NewVec3(-6, 1, 0), 1.0, checker),
		geometry.NewCylinder(core.NewVec3(-4, 0, 0), core.NewVec3(-4, 2, 0), 0.6, gradient),
		geometry.NewBoxFromCenter(core.NewVec3(-1.5, 0.8, 0), core.NewVec3(0.8, 0.8, 0.8), brick),
		geometry.NewDisc(core.NewVec3(1, 1.2, 0), core.NewVec3(0, 0, 1), 0.9, checker),
		geometry.NewQuad(core.NewVec3(2.5, 0, 0.2), core.NewVec3(1.5, 0, -0.3), core.NewVec3(0, 2, 0), gradient),
		geometry.NewTriangle(core.NewVec3(4.5, 0, 0), core.NewVec3(6, 0, 0), core.NewVec3(5.25, 2, 0), uvDebug),
		geometry.NewQuad(core.NewVec3(-10, 0, -5), core.NewVec3(0, 0, 15), core.NewVec3(20, 0, 0), brick),
	)

	world.AddSphereLight(core.NewVec3(0, 8, 5), 1.0, core.NewVec3(3000, 3000, 3000))
	world.AddLight(lights.NewPointLight(core.NewVec3(0, 3, 8), core.NewVec3(150, 160, 200)))

	return &Scene{
		Name:        "textures",
		Description: "Checkerboard, gradient and UV textures on every surface kind",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0, 2, 10),
			LookAt:   core.NewVec3(0, 1, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     50,
		},
		Width:  480,
		Height: 270,
		Settings: RenderSettings{
			Iterations:          30,
			PhotonsPerIteration: 200000,
			InitialRadius:       0.1,
		},
	}
}

package scene

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// NewCylinderScene creates open tubes in three orientations next to a glass
// sphere. The gold tube points at the camera so its inside is visible.
func NewCylinderScene() *Scene {
	world := NewWorld()

	world.Add(NewGroundQuad(core.Zero, 40, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))))

	gold := material.NewMirror(0.6)
	gold.Diffuse = core.NewVec3(0.3, 0.22, 0.05)
	red := material.NewDiffuse(core.NewVec3(0.8, 0.2, 0.2))
	blue := material.NewDiffuse(core.NewVec3(0.2, 0.2, 0.8))
	glass := material.NewGlass(1.5, core.NewVec3(0.95, 0.95, 0.95))

	world.Add(
		// Center: tilted toward the camera
		geometry.NewCylinder(core.NewVec3(-0.3, 1.0, -1.5), core.NewVec3(0, 1.2, 2.0), 0.35, gold),
		// Right: upright
		geometry.NewCylinder(core.NewVec3(1.8, 0, 0), core.NewVec3(1.8, 2, 0), 0.5, red),
		// Left: along the x axis
		geometry.NewCylinder(core.NewVec3(-2.5, 0.3, 0), core.NewVec3(-1.5, 0.3, 0), 0.3, blue),
		geometry.NewSphere(core.NewVec3(0.5, 0.25, 1), 0.25, glass),
	)

	world.AddSphereLight(core.NewVec3(3, 5, 3), 0.5, core.NewVec3(600, 600, 600))
	world.AddLight(lights.NewParallelLight(core.NewVec3(-0.2, -1, -0.3), core.NewVec3(0.3, 0.35, 0.45), core.NewVec3(0, 10, 0), 8))

	return &Scene{
		Name:        "cylinders",
		Description: "Open tubes of mirror and diffuse materials beside a glass sphere",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0, 1.5, 4),
			LookAt:   core.NewVec3(0, 1, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     50,
		},
		Width:  400,
		Height: 225,
		Settings: RenderSettings{
			Iterations:          50,
			PhotonsPerIteration: 200000,
			InitialRadius:       0.05,
		},
	}
}

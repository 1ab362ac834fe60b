package scene

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// NewCausticGlassScene creates glass objects on a floor under a parallel beam,
// focusing light into caustics
func NewCausticGlassScene() *Scene {
	world := NewWorld()

	floor := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))
	world.Add(NewGroundQuad(core.Zero, 20, floor))

	clear := material.NewGlass(1.5, core.One)
	tinted := material.NewGlass(1.4, core.NewVec3(0.6, 0.9, 0.7))

	// Water-drop lens above the floor focusing to a spot
	world.Add(geometry.NewSphere(core.NewVec3(0, 1.2, 0), 0.6, clear))

	// Tinted slab throwing a colored shadow
	world.Add(geometry.NewBox(core.NewVec3(1.2, 0, -0.8), core.NewVec3(1.6, 1.0, 0.8), tinted))

	// A hollow glass shell nests two interfaces
	world.Add(
		geometry.NewSphere(core.NewVec3(-1.4, 0.5, 0.3), 0.5, clear),
		geometry.NewSphere(core.NewVec3(-1.4, 0.5, 0.3), 0.45, material.NewGlass(core.AirIndex, core.One)),
	)

	world.AddLight(lights.NewParallelLight(
		core.NewVec3(-0.2, -1, 0.1),
		core.NewVec3(1.2, 1.15, 1.05),
		core.NewVec3(0.4, 6, -0.2),
		3,
	))

	return &Scene{
		Name:        "caustic",
		Description: "Parallel beam focused by glass into caustics",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0, 4, 5),
			LookAt:   core.NewVec3(0, 0.5, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     40,
		},
		Width:  400,
		Height: 300,
		Settings: RenderSettings{
			Iterations:          60,
			PhotonsPerIteration: 300000,
			InitialRadius:       0.05,
		},
	}
}

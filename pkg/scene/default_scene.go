package scene

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// NewDefaultScene creates a checkered ground with a mirror, a glass and a
// glossy sphere under a sphere light and a point light
func NewDefaultScene() *Scene {
	world := NewWorld()

	checker := material.NewTextured(material.NewCheckerboard(
		core.NewVec3(0.8, 0.8, 0.8),
		core.NewVec3(0.2, 0.3, 0.5),
		40,
	))
	world.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 40, checker))

	// Glossy red sphere in the middle
	glossyRed := material.NewDiffuse(core.NewVec3(0.65, 0.2, 0.15))
	glossyRed.Specular = core.NewVec3(0.3, 0.3, 0.3)
	glossyRed.Shininess = 40

	// Mirror with a faint diffuse tint
	mirror := material.NewMirror(0.85)
	mirror.Diffuse = core.NewVec3(0.05, 0.05, 0.05)

	glass := material.NewGlass(1.5, core.NewVec3(0.95, 0.95, 0.95))

	world.Add(
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, glossyRed),
		geometry.NewSphere(core.NewVec3(-1.1, 0.5, -1), 0.5, mirror),
		geometry.NewSphere(core.NewVec3(1.1, 0.5, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(0.4, 0.2, -0.2), 0.2, glass),
	)

	world.AddSphereLight(core.NewVec3(3, 5, 2), 0.5, core.NewVec3(350, 330, 300))
	world.AddLight(lights.NewPointLight(core.NewVec3(-3, 4, 1), core.NewVec3(80, 90, 110)))

	return &Scene{
		Name:        "default",
		Description: "Mirror, glass and glossy spheres on a checkered ground",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0, 1.2, 3),
			LookAt:   core.NewVec3(0, 0.5, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     40,
		},
		Width:    400,
		Height:   225,
		Settings: DefaultRenderSettings(),
	}
}

// NewPlaneScene creates a single diffuse plane under a point light. Its photon
// estimate converges to the analytic direct lighting.
func NewPlaneScene() *Scene {
	world := NewWorld()
	world.Add(geometry.NewPlane(core.Zero, core.NewVec3(0, 1, 0), material.NewDiffuse(core.NewVec3(0.75, 0.75, 0.75))))
	world.AddLight(lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(100, 100, 100)))

	return &Scene{
		Name:        "plane",
		Description: "Diffuse plane lit by a point light",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(0, 10, 0),
			LookAt:   core.Zero,
			Up:       core.NewVec3(0, 0, -1),
			VFov:     40,
		},
		Width:  256,
		Height: 256,
		Settings: RenderSettings{
			Iterations:          10,
			PhotonsPerIteration: 10000,
			InitialRadius:       1.0,
		},
	}
}

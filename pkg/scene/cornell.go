package scene

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// NewCornellScene creates a classic Cornell box with a disc light, a mirror
// sphere and a glass sphere
func NewCornellScene() *Scene {
	world := NewWorld()

	// Create materials
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	// Cornell box dimensions, open toward -z
	boxSize := 5.55

	// Floor (white) - XZ plane at y=0, normal up
	floor := geometry.NewQuad(
		core.NewVec3(0, 0, 0),       // corner
		core.NewVec3(0, 0, boxSize), // u vector (Z direction)
		core.NewVec3(boxSize, 0, 0), // v vector (X direction)
		white,
	)

	// Ceiling (white) - XZ plane at y=boxSize, normal down
	ceiling := geometry.NewQuad(
		core.NewVec3(0, boxSize, 0), // corner
		core.NewVec3(boxSize, 0, 0), // u vector (X direction)
		core.NewVec3(0, 0, boxSize), // v vector (Z direction)
		white,
	)

	// Back wall (white) - XY plane at z=boxSize, normal toward the camera
	backWall := geometry.NewQuad(
		core.NewVec3(0, 0, boxSize), // corner
		core.NewVec3(0, boxSize, 0), // u vector (Y direction)
		core.NewVec3(boxSize, 0, 0), // v vector (X direction)
		white,
	)

	// Left wall (red) - YZ plane at x=0
	leftWall := geometry.NewQuad(
		core.NewVec3(0, 0, 0),       // corner
		core.NewVec3(0, boxSize, 0), // u vector (Y direction)
		core.NewVec3(0, 0, boxSize), // v vector (Z direction)
		red,
	)

	// Right wall (green) - YZ plane at x=boxSize
	rightWall := geometry.NewQuad(
		core.NewVec3(boxSize, 0, 0), // corner
		core.NewVec3(0, 0, boxSize), // u vector (Z direction)
		core.NewVec3(0, boxSize, 0), // v vector (Y direction)
		green,
	)

	world.Add(floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, slightly below the ceiling and facing down
	world.AddDiscLight(
		core.NewVec3(boxSize/2, boxSize-0.01, boxSize/2),
		core.NewVec3(0, -1, 0),
		0.7,
		core.NewVec3(60, 55, 48),
	)

	// Left sphere (mirror), right sphere (glass)
	world.Add(
		geometry.NewSphere(core.NewVec3(1.85, 0.825, 3.7), 0.825, material.NewMirror(0.9)),
		geometry.NewSphere(core.NewVec3(3.7, 0.9, 1.69), 0.9, material.NewGlass(1.5, core.One)),
	)

	return &Scene{
		Name:        "cornell",
		Description: "Cornell box with a mirror and a glass sphere",
		World:       world,
		Camera: sppm.CameraConfig{
			Position: core.NewVec3(2.78, 2.78, -8),
			LookAt:   core.NewVec3(2.78, 2.78, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     40,
		},
		Width:  400,
		Height: 400,
		Settings: RenderSettings{
			Iterations:          100,
			PhotonsPerIteration: 200000,
			InitialRadius:       0.08,
		},
	}
}

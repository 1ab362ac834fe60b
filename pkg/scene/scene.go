package scene

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	World       *World
	Camera      sppm.CameraConfig
	Width       int // Image width
	Height      int // Image height
	Settings    RenderSettings
}

// RenderSettings are the progressive parameters a scene is tuned for
type RenderSettings struct {
	Iterations          int     `json:"iterations"`          // Photon passes
	PhotonsPerIteration int     `json:"photonsPerIteration"` // Photons emitted per pass
	InitialRadius       float64 `json:"initialRadius"`       // Gather radius of the first pass
}

// DefaultRenderSettings returns settings suited to unit-scale scenes
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{
		Iterations:          50,
		PhotonsPerIteration: 200000,
		InitialRadius:       0.1,
	}
}

// SurfaceCount returns the number of primitives in the scene, counting each
// mesh triangle
func (s *Scene) SurfaceCount() int {
	count := 0
	for _, surface := range s.World.Surfaces() {
		switch obj := surface.(type) {
		case *geometry.TriangleMesh:
			count += obj.TriangleCount()
		default:
			count++
		}
	}
	return count
}

// NewGroundQuad creates a large horizontal quad centered at center with its
// normal pointing up (0,1,0)
func NewGroundQuad(center core.Vec3, size float64, mat *material.Material) *geometry.Quad {
	// Corner at the bottom-left; u × v = (0,0,size) × (size,0,0) points up
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, mat)
}

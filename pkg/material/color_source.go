package material

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for parametric textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors over a grid in (u,v) space
type Checkerboard struct {
	Even, Odd core.Vec3
	Checks    float64 // Number of checks along each parametric axis
}

// NewCheckerboard creates a checkerboard with the given number of checks per axis
func NewCheckerboard(even, odd core.Vec3, checks float64) *Checkerboard {
	return &Checkerboard{Even: even, Odd: odd, Checks: checks}
}

// Evaluate returns Even or Odd depending on which check contains uv
func (c *Checkerboard) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cx := int(math.Floor(uv.X * c.Checks))
	cy := int(math.Floor(uv.Y * c.Checks))
	if (cx+cy)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

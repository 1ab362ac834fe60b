package sppm

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/material"
)

// branch is a ray leaving a specular interaction and the factor applied to
// whatever it carries
type branch struct {
	ray    core.Ray
	factor core.Vec3
}

// mirrorBranch continues ray as a mirror reflection at hit
func mirrorBranch(ray core.Ray, hit geometry.SurfaceHit, mat *material.Material) branch {
	n := hit.FacingNormal(ray.Direction)
	return branch{
		ray:    ray.Continue(hit.Point, material.Reflect(ray.Direction, n), ray.Media),
		factor: core.One.Multiply(mat.Reflectiveness),
	}
}

// refractionBranches splits ray at a refractive interface into its Fresnel
// weighted reflected and transmitted parts. Under total internal reflection
// only the reflected branch is returned, carrying the full refractiveness.
func refractionBranches(ray core.Ray, hit geometry.SurfaceHit, mat *material.Material) []branch {
	split := material.Split(ray, hit.Normal, mat.RefractiveIndex)

	reflected := branch{
		ray:    ray.Continue(hit.Point, split.Reflected, ray.Media),
		factor: mat.Refractiveness.Multiply(split.Reflectance),
	}
	if split.TotalInternalReflection() {
		return []branch{reflected}
	}

	transmitted := branch{
		ray:    ray.Continue(hit.Point, split.Transmitted, split.Media),
		factor: mat.Refractiveness.Multiply(split.Transmittance()),
	}
	return []branch{reflected, transmitted}
}

// exceedsDepth reports whether a specular chain has reached the configured bound
func (c *Camera) exceedsDepth(depth int) bool {
	return c.config.MaxSpecularDepth > 0 && depth >= c.config.MaxSpecularDepth
}

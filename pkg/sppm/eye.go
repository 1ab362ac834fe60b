package sppm

import (
	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/film"
)

// traceEye follows an eye ray through mirror and refractive interactions.
// Diffuse surfaces record a hit point and end that branch; emission seen along
// the path is added to img.
func (c *Camera) traceEye(ray core.Ray, weight core.Vec3, depth int, img *film.Image, found *[]HitPoint) {
	if weight.LengthSquared() <= core.Eps || c.exceedsDepth(depth) {
		return
	}

	hit, ok := c.world.Intersect(ray)
	if !ok {
		return
	}
	mat := hit.Surface.Material()

	if mat.IsEmissive() {
		img.AddCapped(ray.Pixel.X, ray.Pixel.Y, weight.MultiplyVec(mat.Emission))
	}

	if mat.IsDiffuseAt(hit.Hit) {
		*found = append(*found, HitPoint{
			Hit:      hit.Hit,
			Incoming: ray.Direction,
			Surface:  hit.Surface,
			Pixel:    ray.Pixel,
			Weight:   weight.Multiply(1 - mat.Reflectiveness),
		})
	}

	if mat.IsReflective() {
		b := mirrorBranch(ray, hit, mat)
		c.traceEye(b.ray, weight.MultiplyVec(b.factor), depth+1, img, found)
	}

	if mat.IsRefractive() {
		for _, b := range refractionBranches(ray, hit, mat) {
			c.traceEye(b.ray, weight.MultiplyVec(b.factor), depth+1, img, found)
		}
	}
}

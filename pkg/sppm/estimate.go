package sppm

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/film"
)

// PhongEstimate adds Phong direct lighting at every hit point to img. It
// ignores photon data and serves to check direct lighting.
func (c *Camera) PhongEstimate(img *film.Image) {
	lightList := c.world.Lights()

	c.accumulate(img, func(hp *HitPoint) core.Vec3 {
		mat := hp.Surface.Material()
		n := hp.FacingNormal()
		diffuse := mat.DiffuseAt(hp.Hit)

		id, is := core.Zero, core.Zero
		for _, light := range lightList {
			radiance, ldir := light.Illuminate(hp.Point, c.world)
			if radiance.IsBlack() {
				continue
			}

			if ndotl := ldir.Dot(n.Negate()); ndotl >= core.Eps {
				id = id.Add(radiance.MultiplyVec(diffuse).Multiply(ndotl))
			}

			if mat.Specular.IsBlack() {
				continue
			}
			reflected := ldir.Reflect(n).Negate()
			if rdotv := reflected.Dot(hp.Incoming); rdotv >= core.Eps {
				is = is.Add(radiance.MultiplyVec(mat.Specular).Multiply(math.Pow(rdotv, mat.Shininess)))
			}
		}
		return id.Add(is).MultiplyVec(hp.Weight)
	})
}

// PPMEstimate adds the photon density estimate of every hit point to img.
// totalPhotons is the number of photons emitted over all passes so far.
func (c *Camera) PPMEstimate(img *film.Image, totalPhotons int64) {
	if totalPhotons <= 0 {
		return
	}
	total := float64(totalPhotons)

	c.accumulate(img, func(hp *HitPoint) core.Vec3 {
		if hp.Radius2 <= 0 {
			return core.Zero
		}
		return hp.Flux.Multiply(1.0 / (math.Pi * hp.Radius2 * total)).MultiplyVec(hp.Weight)
	})
}

// accumulate evaluates radiance for every hit point in parallel and adds the
// results to img. Several hit points can share a pixel, so adding is serial.
func (c *Camera) accumulate(img *film.Image, radiance func(hp *HitPoint) core.Vec3) {
	values := make([]core.Vec3, len(c.hitPoints))

	forkJoin(len(c.hitPoints), c.config.Workers, func(ch chunk) {
		for i := ch.start; i < ch.end; i++ {
			values[i] = radiance(&c.hitPoints[i])
		}
	})

	for i := range c.hitPoints {
		px := c.hitPoints[i].Pixel
		img.AddCapped(px.X, px.Y, values[i])
	}
}

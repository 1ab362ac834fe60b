package sppm

import (
	"github.com/df07/go-sppm/pkg/core"
)

// viewBasis maps pixels to primary rays
type viewBasis struct {
	origin           core.Vec3
	front, right, up core.Vec3
	focal            float64
	halfW, halfH     int
	height           int
	aperture         float64
	focusDistance    float64
	samples          int
}

type primaryRay struct {
	ray    core.Ray
	weight core.Vec3
}

func (c *Camera) newViewBasis(width, height int) viewBasis {
	front := c.view.LookAt.Subtract(c.view.Position).Normalize()
	right := front.Cross(c.view.Up).Normalize()
	up := right.Cross(front)

	return viewBasis{
		origin:        c.view.Position,
		front:         front,
		right:         right,
		up:            up,
		focal:         c.view.focal(height),
		halfW:         width / 2,
		halfH:         height / 2,
		height:        height,
		aperture:      c.view.Aperture,
		focusDistance: c.view.focusDistance(),
		samples:       c.config.ApertureSamples,
	}
}

// direction returns the unnormalized eye direction through pixel (x, y).
// Storage row 0 is the top of the image.
func (b viewBasis) direction(x, y int) core.Vec3 {
	wy := b.height - y - 1
	return b.right.Multiply(float64(x - b.halfW)).
		Add(b.up.Multiply(float64(wy - b.halfH))).
		Add(b.front.Multiply(b.focal))
}

// primaryRays returns the rays for one pixel with weights summing to one
func (b viewBasis) primaryRays(x, y int, sampler core.Sampler) []primaryRay {
	pixel := core.Pixel{X: x, Y: y}
	dir := b.direction(x, y).Normalize()

	if b.aperture <= 0 {
		ray := core.NewRay(b.origin, dir)
		ray.Pixel = pixel
		return []primaryRay{{ray: ray, weight: core.One}}
	}

	// All lens samples converge on the focal plane
	focus := b.origin.Add(dir.Multiply(b.focusDistance / dir.Dot(b.front)))
	n := b.samples
	weight := core.One.Multiply(1.0 / float64(n*n))
	rays := make([]primaryRay, 0, n*n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			jitter := sampler.Get2D()
			lens := core.SamplePointInUnitDisk(core.NewVec2(
				(float64(i)+jitter.X)/float64(n),
				(float64(j)+jitter.Y)/float64(n),
			))
			origin := b.origin.
				Add(b.right.Multiply(lens.X * b.aperture)).
				Add(b.up.Multiply(lens.Y * b.aperture))

			ray := core.NewRay(origin, focus.Subtract(origin))
			ray.Pixel = pixel
			rays = append(rays, primaryRay{ray: ray, weight: weight})
		}
	}
	return rays
}

// PrimaryRay returns the pinhole eye ray through pixel (x, y) of a
// width x height image
func (c *Camera) PrimaryRay(x, y, width, height int) core.Ray {
	b := c.newViewBasis(width, height)
	ray := core.NewRay(b.origin, b.direction(x, y))
	ray.Pixel = core.Pixel{X: x, Y: y}
	return ray
}

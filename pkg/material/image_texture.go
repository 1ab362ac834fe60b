package material

import (
	"image"
	"math"

	"github.com/df07/go-sppm/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// NewImageTextureFromImage converts a decoded image into linear colors by
// undoing the given display gamma. A gamma <= 0 keeps the stored values.
func NewImageTextureFromImage(img image.Image, gamma float64) *ImageTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// RGBA returns 16-bit channels
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			c := core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0)
			if gamma > 0 {
				c = core.NewVec3(math.Pow(c.X, gamma), math.Pow(c.Y, gamma), math.Pow(c.Z, gamma))
			}
			pixels[y*width+x] = c
		}
	}

	return NewImageTexture(width, height, pixels)
}

// Evaluate samples the texture at uv with nearest-neighbor filtering. UVs
// outside [0,1) wrap; v = 0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Zero
	}

	u := uv.X - math.Floor(uv.X)
	v := uv.Y - math.Floor(uv.Y)

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1.0-v)*float64(t.Height)), t.Height-1)
	return t.Pixels[y*t.Width+x]
}

// Gradient blends linearly from Bottom at v = 0 to Top at v = 1
type Gradient struct {
	Bottom, Top core.Vec3
}

// NewGradient creates a vertical gradient
func NewGradient(bottom, top core.Vec3) *Gradient {
	return &Gradient{Bottom: bottom, Top: top}
}

// Evaluate returns the blend at uv.Y, clamped to [0,1]
func (g *Gradient) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	v := math.Max(0, math.Min(1, uv.Y))
	return g.Bottom.Multiply(1 - v).Add(g.Top.Multiply(v))
}

// UVColors maps wrapped u to red and wrapped v to green, for inspecting
// surface parameterizations
type UVColors struct{}

// Evaluate returns (u, v, 0)
func (UVColors) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.NewVec3(uv.X-math.Floor(uv.X), uv.Y-math.Floor(uv.Y), 0)
}

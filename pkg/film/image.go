// Package film holds the floating-point accumulation image the renderer writes into.
package film

import (
	"image"
	"image/color"

	"github.com/df07/go-sppm/pkg/core"
)

// Image is a row-major grid of linear RGB values. Row 0 is the top of the
// picture, so world-space y grows toward row 0.
type Image struct {
	Width  int
	Height int
	Pix    []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	if width < 0 || height < 0 {
		panic("image dimensions must be non-negative")
	}
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]core.Vec3, width*height),
	}
}

// index maps storage coordinates to a Pix offset
func (img *Image) index(x, y int) int {
	return y*img.Width + x
}

// At returns the value of pixel (x, y)
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pix[img.index(x, y)]
}

// Set overwrites pixel (x, y)
func (img *Image) Set(x, y int, c core.Vec3) {
	img.Pix[img.index(x, y)] = c
}

// Add accumulates c into pixel (x, y)
func (img *Image) Add(x, y int, c core.Vec3) {
	i := img.index(x, y)
	img.Pix[i] = img.Pix[i].Add(c)
}

// AddCapped accumulates c with every channel clamped to [0, 1] first
func (img *Image) AddCapped(x, y int, c core.Vec3) {
	img.Add(x, y, c.Capped())
}

// Clone returns an independent copy
func (img *Image) Clone() *Image {
	clone := &Image{
		Width:  img.Width,
		Height: img.Height,
		Pix:    make([]core.Vec3, len(img.Pix)),
	}
	copy(clone.Pix, img.Pix)
	return clone
}

// ToRGBA converts to an 8-bit image with clamping and gamma 2 correction
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, y, toColor(img.At(x, y)))
		}
	}
	return out
}

// toColor converts a linear color to RGBA with proper clamping and gamma correction
func toColor(c core.Vec3) color.RGBA {
	// Clamp before gamma so negative noise cannot produce NaN
	c = c.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

package film

import (
	"testing"

	"github.com/df07/go-sppm/pkg/core"
)

func TestImage_RowMajor(t *testing.T) {
	img := NewImage(3, 2)
	img.Set(2, 1, core.One)

	if img.Pix[1*3+2] != core.One {
		t.Errorf("Expected pixel (2,1) at offset 5, got %v", img.Pix)
	}
}

func TestImage_AddCapped(t *testing.T) {
	img := NewImage(1, 1)
	img.AddCapped(0, 0, core.NewVec3(2, 0.5, -1))
	img.AddCapped(0, 0, core.NewVec3(0.25, 0.25, 0.25))

	if got := img.At(0, 0); got != core.NewVec3(1.25, 0.75, 0.25) {
		t.Errorf("Expected each contribution capped before adding, got %v", got)
	}
}

func TestImage_CloneIsIndependent(t *testing.T) {
	img := NewImage(2, 2)
	img.Set(0, 0, core.One)

	clone := img.Clone()
	clone.Set(0, 0, core.Zero)

	if img.At(0, 0) != core.One {
		t.Error("Modifying a clone changed the original")
	}
}

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, core.NewVec3(0.25, 4, -1))
	img.Set(1, 0, core.Zero)

	rgba := img.ToRGBA()
	c := rgba.RGBAAt(0, 0)
	if c.R != 127 || c.G != 255 || c.B != 0 || c.A != 255 {
		t.Errorf("Expected gamma-corrected clamped color (127,255,0,255), got %v", c)
	}
	if rgba.Bounds().Dx() != 2 || rgba.Bounds().Dy() != 1 {
		t.Errorf("Expected 2x1 image, got %v", rgba.Bounds())
	}
}

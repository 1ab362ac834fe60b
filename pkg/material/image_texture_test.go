package material

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sppm/pkg/core"
)

func closeTo(a, b core.Vec3) bool {
	return a.Subtract(b).Length() < 1e-9
}

func TestImageTextureEvaluate(t *testing.T) {
	// Layout in image rows:
	//   white black
	//   black white
	white := core.One
	black := core.Zero
	texture := NewImageTexture(2, 2, []core.Vec3{white, black, black, white})

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom left", core.NewVec2(0.1, 0.1), black},
		{"bottom right", core.NewVec2(0.9, 0.1), white},
		{"top left", core.NewVec2(0.1, 0.9), white},
		{"top right", core.NewVec2(0.9, 0.9), black},
		{"u wraps", core.NewVec2(1.1, 0.9), white},
		{"negative wraps", core.NewVec2(-0.1, -0.1), black},
		{"exact one", core.NewVec2(1, 1), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.uv, core.Zero); !closeTo(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestImageTextureFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	raw := NewImageTextureFromImage(img, 0)
	if raw.Width != 2 || raw.Height != 1 {
		t.Fatalf("Expected 2x1 texture, got %dx%d", raw.Width, raw.Height)
	}
	if !closeTo(raw.Pixels[0], core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected pure red, got %v", raw.Pixels[0])
	}

	linear := NewImageTextureFromImage(img, 2)
	gray := float64(128*257) / 65535.0
	if expected := gray * gray; math.Abs(linear.Pixels[1].X-expected) > 1e-9 {
		t.Errorf("Expected gamma-decoded %f, got %f", expected, linear.Pixels[1].X)
	}
}

func TestGradient(t *testing.T) {
	g := NewGradient(core.Zero, core.NewVec3(1, 0.5, 0))

	tests := []struct {
		v        float64
		expected core.Vec3
	}{
		{0, core.Zero},
		{0.5, core.NewVec3(0.5, 0.25, 0)},
		{1, core.NewVec3(1, 0.5, 0)},
		{2, core.NewVec3(1, 0.5, 0)},
		{-1, core.Zero},
	}

	for _, tt := range tests {
		if got := g.Evaluate(core.NewVec2(0.3, tt.v), core.Zero); !closeTo(got, tt.expected) {
			t.Errorf("v=%f: expected %v, got %v", tt.v, tt.expected, got)
		}
	}
}

func TestUVColors(t *testing.T) {
	got := UVColors{}.Evaluate(core.NewVec2(1.25, -0.25), core.Zero)
	if !closeTo(got, core.NewVec3(0.25, 0.75, 0)) {
		t.Errorf("Expected wrapped (0.25, 0.75, 0), got %v", got)
	}
}

func TestSolidColor(t *testing.T) {
	c := core.NewVec3(0.7, 0.3, 0.1)
	solid := NewSolidColor(c)

	for _, uv := range []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 1), core.NewVec2(0.5, 0.5)} {
		if got := solid.Evaluate(uv, core.NewVec3(5, 3, -2)); got != c {
			t.Errorf("UV %v: expected %v, got %v", uv, c, got)
		}
	}
}

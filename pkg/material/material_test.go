package material

import (
	"testing"

	"github.com/df07/go-sppm/pkg/core"
)

func TestMaterial_DiffuseAt(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)

	tests := []struct {
		name     string
		material *Material
		hit      core.Hit
		expected core.Vec3
	}{
		{
			name:     "Plain diffuse",
			material: NewDiffuse(core.NewVec3(0.75, 0.75, 0.75)),
			hit:      core.Hit{},
			expected: core.NewVec3(0.75, 0.75, 0.75),
		},
		{
			name:     "Textured with uv",
			material: NewTextured(NewCheckerboard(red, blue, 2)),
			hit:      core.Hit{UV: core.NewVec2(0.75, 0.25), HasUV: true},
			expected: blue,
		},
		{
			name: "Textured without uv falls back to diffuse",
			material: &Material{
				Diffuse: core.NewVec3(0.5, 0.5, 0.5),
				Texture: NewCheckerboard(red, blue, 2),
			},
			hit:      core.Hit{},
			expected: core.NewVec3(0.5, 0.5, 0.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.material.DiffuseAt(tt.hit)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMaterial_Classification(t *testing.T) {
	mirror := NewMirror(0.8)
	if !mirror.IsReflective() || mirror.IsRefractive() || mirror.IsDiffuseAt(core.Hit{}) {
		t.Error("Mirror should only be reflective")
	}

	glass := NewGlass(1.5, core.NewVec3(0.9, 0.9, 0.9))
	if glass.IsReflective() || !glass.IsRefractive() {
		t.Error("Glass should only be refractive")
	}
	if tr, ok := glass.Transparency(); !ok || tr != core.NewVec3(0.9, 0.9, 0.9) {
		t.Errorf("Expected glass transparency 0.9, got %v (%t)", tr, ok)
	}

	if _, ok := NewDiffuse(core.One).Transparency(); ok {
		t.Error("Diffuse material should be opaque")
	}
	if !NewEmissive(core.One).IsEmissive() {
		t.Error("Emissive material should report emission")
	}
}

func TestMaterial_BRDF(t *testing.T) {
	m := NewDiffuse(core.NewVec3(0.5, 0.25, 1))
	got := m.BRDF(core.Hit{}, core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 2)
	if got != core.NewVec3(1, 0.5, 2) {
		t.Errorf("Expected diffuse times scale, got %v", got)
	}
}

func TestCheckerboard_Alternates(t *testing.T) {
	c := NewCheckerboard(core.One, core.Zero, 4)
	if c.Evaluate(core.NewVec2(0.1, 0.1), core.Zero) != core.One {
		t.Error("Expected even check at origin")
	}
	if c.Evaluate(core.NewVec2(0.3, 0.1), core.Zero) != core.Zero {
		t.Error("Expected odd check next to origin")
	}
	if c.Evaluate(core.NewVec2(0.3, 0.3), core.Zero) != core.One {
		t.Error("Expected even check on the diagonal")
	}
}

package scene

import (
	"errors"
	"testing"
)

func TestLookup_BuiltinScenes(t *testing.T) {
	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if len(s.World.Lights()) == 0 {
				t.Error("Expected at least one light")
			}
			if s.SurfaceCount() == 0 {
				t.Error("Expected at least one surface")
			}
			if s.Width <= 0 || s.Height <= 0 {
				t.Errorf("Expected positive image size, got %dx%d", s.Width, s.Height)
			}
			if s.Settings.Iterations <= 0 || s.Settings.PhotonsPerIteration <= 0 || s.Settings.InitialRadius <= 0 {
				t.Errorf("Expected positive render settings, got %+v", s.Settings)
			}
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("teapot")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if _, err := Load("teapot"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene from Load, got %v", err)
	}
}

func TestList_Sorted(t *testing.T) {
	names := List()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Expected sorted names, got %v", names)
		}
	}
	if len(names) != 9 {
		t.Errorf("Expected 9 built-in scenes, got %d", len(names))
	}
}

func TestSphereGridScene(t *testing.T) {
	s := NewSphereGridScene()
	// Floor, grid and the light's emitter sphere
	expected := 1 + sphereGridSize*sphereGridSize + 1
	if got := s.SurfaceCount(); got != expected {
		t.Errorf("Expected %d surfaces, got %d", expected, got)
	}

	emitters := 0
	for _, surface := range s.World.Surfaces()[1:] {
		mat := surface.Material()
		if mat.IsEmissive() {
			emitters++
			continue
		}
		if total := mat.Diffuse.MaxComponent() + mat.Reflectiveness; total > 1 {
			t.Fatalf("Expected energy-conserving sphere material, got diffuse %v reflectiveness %f", mat.Diffuse, mat.Reflectiveness)
		}
	}
	if emitters != 1 {
		t.Errorf("Expected 1 emitter surface, got %d", emitters)
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is a neutral gray
	gray := oklchToRGB(0.5, 0, 123)
	if d := gray.X - gray.Z; d > 1e-6 || d < -1e-6 {
		t.Errorf("Expected neutral gray, got %v", gray)
	}
	if c := oklchToRGB(1.2, 0.4, 30); c.MaxComponent() > 1 {
		t.Errorf("Expected clamped color, got %v", c)
	}
}

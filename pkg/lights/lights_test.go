package lights

import (
	"math"
	"testing"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/material"
)

// surfaces is a minimal occluder over a list of surfaces
type surfaces []geometry.Surface

func (s surfaces) IntersectAll(ray core.Ray) []geometry.SurfaceHit {
	var hits []geometry.SurfaceHit
	for _, surface := range s {
		for _, hit := range surface.IntersectAll(ray) {
			hits = append(hits, geometry.SurfaceHit{Hit: hit, Surface: surface})
		}
	}
	return hits
}

func TestPointLight_Illuminate(t *testing.T) {
	light := NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(100, 100, 100))
	point := core.NewVec3(0, 0, 0)
	expected := 100 / (4 * math.Pi * 4)

	glass := material.NewGlass(1.5, core.NewVec3(0.5, 0.5, 0.5))
	wall := material.NewDiffuse(core.One)

	tests := []struct {
		name     string
		occluder surfaces
		expected float64
	}{
		{"unoccluded", nil, expected},
		{"opaque blocker", surfaces{geometry.NewSphere(core.NewVec3(0, 1, 0), 0.3, wall)}, 0},
		{"glass slab", surfaces{geometry.NewBox(core.NewVec3(-1, 0.9, -1), core.NewVec3(1, 1.1, 1), glass)}, expected * 0.25},
		{"blocker beyond light", surfaces{geometry.NewSphere(core.NewVec3(0, 4, 0), 0.5, wall)}, expected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			radiance, direction := light.Illuminate(point, tt.occluder)
			if math.Abs(radiance.X-tt.expected) > 1e-9 {
				t.Errorf("Expected radiance %f, got %f", tt.expected, radiance.X)
			}
			if direction.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
				t.Errorf("Expected direction from light toward point, got %v", direction)
			}
		})
	}
}

func TestPointLight_EmitFromPosition(t *testing.T) {
	light := NewPointLight(core.NewVec3(1, 2, 3), core.One)
	sampler := core.NewSeededSampler(4)
	for i := 0; i < 100; i++ {
		ray := light.Emit(sampler)
		if ray.Origin != light.Position {
			t.Fatalf("Expected photon to start at the light, got %v", ray.Origin)
		}
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit direction, got %v", ray.Direction)
		}
	}
}

func TestDiscLight_Illuminate(t *testing.T) {
	light := NewDiscLight(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 0.5, core.NewVec3(10, 10, 10))

	// Straight below: full cosine
	radiance, _ := light.Illuminate(core.NewVec3(0, 0, 0), surfaces(nil))
	if expected := 10 / (math.Pi * 4); math.Abs(radiance.X-expected) > 1e-9 {
		t.Errorf("Expected %f below the disc, got %f", expected, radiance.X)
	}

	// Off to the side the emitter is seen at 60 degrees
	point := core.NewVec3(2*math.Sqrt(3), 0, 0)
	radiance, _ = light.Illuminate(point, surfaces(nil))
	if expected := 10 * 0.5 / (math.Pi * 16); math.Abs(radiance.X-expected) > 1e-9 {
		t.Errorf("Expected %f at 60 degrees, got %f", expected, radiance.X)
	}

	// Behind the disc
	radiance, _ = light.Illuminate(core.NewVec3(0, 5, 0), surfaces(nil))
	if !radiance.IsBlack() {
		t.Errorf("Expected no light behind a one-sided disc, got %v", radiance)
	}
}

func TestDiscLight_Emit(t *testing.T) {
	light := NewDiscLight(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 0.5, core.One)
	sampler := core.NewSeededSampler(8)
	for i := 0; i < 1000; i++ {
		ray := light.Emit(sampler)
		if math.Abs(ray.Origin.Y-2) > 1e-9 || ray.Origin.Subtract(light.Center).Length() > 0.5+1e-9 {
			t.Fatalf("Photon origin %v is off the disc", ray.Origin)
		}
		if ray.Direction.Dot(light.Normal) < 0 {
			t.Fatalf("Photon direction %v leaves the back of the disc", ray.Direction)
		}
	}
}

func TestParallelLight(t *testing.T) {
	light := NewParallelLight(core.NewVec3(0, -1, 0), core.NewVec3(2, 2, 2), core.NewVec3(0, 10, 0), 3)

	if expected := 2 * math.Pi * 9; math.Abs(light.Flux().X-expected) > 1e-9 {
		t.Errorf("Expected flux %f, got %f", expected, light.Flux().X)
	}

	radiance, direction := light.Illuminate(core.NewVec3(5, 0, 5), surfaces(nil))
	if radiance != core.NewVec3(2, 2, 2) || direction != light.Direction {
		t.Errorf("Expected unattenuated irradiance along the light direction, got %v %v", radiance, direction)
	}

	roof := surfaces{geometry.NewPlane(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0), material.NewDiffuse(core.One))}
	if radiance, _ := light.Illuminate(core.NewVec3(5, 0, 5), roof); !radiance.IsBlack() {
		t.Errorf("Expected roof to block the light, got %v", radiance)
	}

	sampler := core.NewSeededSampler(2)
	for i := 0; i < 100; i++ {
		ray := light.Emit(sampler)
		if ray.Direction.Subtract(light.Direction).Length() > 1e-9 {
			t.Fatalf("Expected all photons parallel, got %v", ray.Direction)
		}
		if ray.Origin.Subtract(light.Center).Length() > 3+1e-9 {
			t.Fatalf("Photon origin %v is outside the emission disc", ray.Origin)
		}
	}
}

func TestSphereLight(t *testing.T) {
	light := NewSphereLight(core.NewVec3(0, 3, 0), 0.5, core.NewVec3(50, 50, 50))

	// The light's own surface must not shadow the point
	shell := surfaces{geometry.NewSphere(light.Center, light.Radius, material.NewEmissive(core.One))}
	radiance, _ := light.Illuminate(core.Zero, shell)
	if expected := 50 / (4 * math.Pi * 9); math.Abs(radiance.X-expected) > 1e-9 {
		t.Errorf("Expected %f, got %f", expected, radiance.X)
	}

	sampler := core.NewSeededSampler(3)
	for i := 0; i < 100; i++ {
		ray := light.Emit(sampler)
		offset := ray.Origin.Subtract(light.Center)
		if math.Abs(offset.Length()-0.5) > 1e-9 {
			t.Fatalf("Photon origin %v is not on the sphere", ray.Origin)
		}
		if offset.Normalize().Subtract(ray.Direction).Length() > 1e-9 {
			t.Fatalf("Photon direction %v is not radial", ray.Direction)
		}
	}
}

package scene

import (
	"math"
	"testing"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/material"
)

func TestWorld_IntersectClosest(t *testing.T) {
	world := NewWorld()
	far := geometry.NewSphere(core.NewVec3(0, 0, 10), 1, material.NewDiffuse(core.One))
	near := geometry.NewSphere(core.NewVec3(0, 0, 4), 1, material.NewDiffuse(core.One))
	world.Add(far, near)

	hit, ok := world.Intersect(core.NewRay(core.Zero, core.NewVec3(0, 0, 1)))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Surface != near {
		t.Errorf("Expected the nearer sphere, got %v", hit.Surface)
	}
	if math.Abs(hit.Distance-3) > 1e-9 {
		t.Errorf("Expected distance 3, got %f", hit.Distance)
	}

	if _, ok := world.Intersect(core.NewRay(core.Zero, core.NewVec3(0, 1, 0))); ok {
		t.Error("Expected a miss")
	}
}

func TestWorld_IntersectTieKeepsFirst(t *testing.T) {
	world := NewWorld()
	first := geometry.NewPlane(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), material.NewDiffuse(core.One))
	second := geometry.NewPlane(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1), material.NewMirror(0.5))
	world.Add(first, second)

	hit, ok := world.Intersect(core.NewRay(core.Zero, core.NewVec3(0, 0, 1)))
	if !ok || hit.Surface != first {
		t.Errorf("Expected the first surface to win a tie, got %v", hit.Surface)
	}
}

func TestWorld_IntersectAll(t *testing.T) {
	world := NewWorld()
	world.Add(
		geometry.NewSphere(core.NewVec3(0, 0, 4), 1, material.NewDiffuse(core.One)),
		geometry.NewPlane(core.NewVec3(0, 0, 8), core.NewVec3(0, 0, -1), material.NewDiffuse(core.One)),
	)

	hits := world.IntersectAll(core.NewRay(core.Zero, core.NewVec3(0, 0, 1)))
	if len(hits) != 3 {
		t.Fatalf("Expected 2 sphere crossings and 1 plane hit, got %d", len(hits))
	}
	for _, h := range hits {
		if h.Surface == nil {
			t.Error("Expected every hit to carry its surface")
		}
	}
}

func TestWorld_AddDiscLight(t *testing.T) {
	world := NewWorld()
	light := world.AddDiscLight(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 0.5, core.NewVec3(10, 10, 10))

	if len(world.Lights()) != 1 || world.Lights()[0] != light {
		t.Fatalf("Expected the disc light to be registered")
	}
	if len(world.Surfaces()) != 1 {
		t.Fatalf("Expected one emitter surface, got %d", len(world.Surfaces()))
	}

	hit, ok := world.Intersect(core.NewRay(core.Zero, core.NewVec3(0, 1, 0)))
	if !ok {
		t.Fatal("Expected to see the emitter from below")
	}
	expected := 10 / (math.Pi * math.Pi * 0.25)
	if got := hit.Surface.Material().Emission.X; math.Abs(got-expected) > 1e-9 {
		t.Errorf("Expected emitter radiance %f, got %f", expected, got)
	}
}

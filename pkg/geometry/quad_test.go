package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

func TestQuad_Intersect_BasicIntersection(t *testing.T) {
	// Create a 1x1 quad in the XZ plane at y=0
	quad := NewQuad(core.Zero, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), material.NewDiffuse(core.One))

	// Ray shooting down at the center of the quad
	ray := core.NewRay(core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0))

	hit, isHit := quad.Intersect(ray)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Distance-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.Distance)
	}
	if hit.Point.Subtract(core.NewVec3(0.5, 0, 0.5)).Length() > 1e-9 {
		t.Errorf("Expected hit point (0.5,0,0.5), got %v", hit.Point)
	}
	if math.Abs(hit.UV.X-0.5) > 1e-9 || math.Abs(hit.UV.Y-0.5) > 1e-9 {
		t.Errorf("Expected (u,v) = (0.5,0.5), got %v", hit.UV)
	}

	// u × v = x × z points down
	if hit.Normal.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-9 {
		t.Errorf("Expected normal along u × v, got %v", hit.Normal)
	}
}

func TestQuad_Intersect_OutsideBounds(t *testing.T) {
	quad := NewQuad(core.Zero, core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1), material.NewDiffuse(core.One))

	tests := []struct {
		name      string
		rayOrigin core.Vec3
		rayDir    core.Vec3
	}{
		{"outside X bounds (negative)", core.NewVec3(-0.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside X bounds (positive)", core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (negative)", core.NewVec3(0.5, 1, -0.5), core.NewVec3(0, -1, 0)},
		{"outside Z bounds (positive)", core.NewVec3(0.5, 1, 1.5), core.NewVec3(0, -1, 0)},
		{"parallel to quad", core.NewVec3(0.5, 1, 0.5), core.NewVec3(1, 0, 0)},
		{"quad behind ray", core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, isHit := quad.Intersect(core.NewRay(tt.rayOrigin, tt.rayDir)); isHit {
				t.Error("Expected miss, but got hit")
			}
			if hits := quad.IntersectAll(core.NewRay(tt.rayOrigin, tt.rayDir)); len(hits) != 0 {
				t.Errorf("Expected no crossings, got %d", len(hits))
			}
		})
	}
}

func TestQuad_Parallelogram(t *testing.T) {
	// A sheared quad covers points outside its axis-aligned footprint
	quad := NewQuad(core.Zero, core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 0), material.NewDiffuse(core.One))

	if _, ok := quad.Intersect(core.NewRay(core.NewVec3(2.8, 0.9, 1), core.NewVec3(0, 0, -1))); !ok {
		t.Error("Expected a hit near the far sheared corner")
	}
	if _, ok := quad.Intersect(core.NewRay(core.NewVec3(0.2, 0.9, 1), core.NewVec3(0, 0, -1))); ok {
		t.Error("Expected a miss outside the sheared edge")
	}

	box := quad.BoundingBox()
	if box.Max.Subtract(core.NewVec3(3, 1, 0)).Length() > 1e-9 || box.Min != core.Zero {
		t.Errorf("Expected bounds (0,0,0)-(3,1,0), got %v", box)
	}
}

package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/material"
)

func TestBox_Intersect(t *testing.T) {
	box := NewBoxFromCenter(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), material.NewDiffuse(core.One))

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		expectHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{"front face", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1), true, 4, core.NewVec3(0, 0, 1)},
		{"right face", core.NewVec3(5, 0.5, 0), core.NewVec3(-1, 0, 0), true, 4, core.NewVec3(1, 0, 0)},
		{"bottom face", core.NewVec3(0, -3, 0), core.NewVec3(0, 1, 0), true, 2, core.NewVec3(0, -1, 0)},
		{"from inside", core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), true, 1, core.NewVec3(0, 1, 0)},
		{"miss", core.NewVec3(0, 3, 5), core.NewVec3(0, 0, -1), false, 0, core.Zero},
		{"pointing away", core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1), false, 0, core.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Intersect(core.NewRay(tt.origin, tt.direction))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.Distance-tt.expectedT) > 1e-9 {
				t.Errorf("Expected distance=%f, got %f", tt.expectedT, hit.Distance)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestBox_IntersectAll(t *testing.T) {
	box := NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), material.NewDiffuse(core.One))

	hits := box.IntersectAll(core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)))
	if len(hits) != 2 {
		t.Fatalf("Expected entry and exit hits, got %d", len(hits))
	}
	if hits[1].Normal != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected outward exit normal, got %v", hits[1].Normal)
	}
}

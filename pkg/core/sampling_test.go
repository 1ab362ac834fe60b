package core

import (
	"math"
	"testing"
)

func TestSampleCosineHemisphere_StaysInHemisphere(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 0, 0),
		NewVec3(0, 0, -1),
		NewVec3(1, 1, 1).Normalize(),
	}

	sampler := NewSeededSampler(42)
	for _, normal := range normals {
		for i := 0; i < 1000; i++ {
			dir := SampleCosineHemisphere(normal, sampler.Get2D())
			if math.Abs(dir.Length()-1.0) > 1e-9 {
				t.Fatalf("Expected unit direction, got length %f", dir.Length())
			}
			if dir.Dot(normal) < 0 {
				t.Fatalf("Direction %v points below hemisphere of normal %v", dir, normal)
			}
		}
	}
}

func TestSampleCosineHemisphere_MeanCosine(t *testing.T) {
	// For a cosine-weighted distribution E[cos θ] = 2/3
	normal := NewVec3(0, 0, 1)
	sampler := NewSeededSampler(7)

	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += SampleCosineHemisphere(normal, sampler.Get2D()).Dot(normal)
	}

	mean := sum / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine ~0.667, got %f", mean)
	}
}

func TestSampleOnUnitSphere_Uniform(t *testing.T) {
	sampler := NewSeededSampler(3)

	const n = 100000
	var sum Vec3
	for i := 0; i < n; i++ {
		dir := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		sum = sum.Add(dir)
	}

	// A uniform distribution has zero mean direction
	mean := sum.Multiply(1.0 / n)
	if mean.Length() > 0.02 {
		t.Errorf("Expected near-zero mean direction, got %v", mean)
	}
}

func TestSamplePointInUnitDisk(t *testing.T) {
	tests := []struct {
		name   string
		sample Vec2
		want   Vec3
	}{
		{"center", NewVec2(0.5, 0.5), NewVec3(0, 0, 0)},
		{"right edge", NewVec2(1, 0.5), NewVec3(1, 0, 0)},
		{"top edge", NewVec2(0.5, 1), NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SamplePointInUnitDisk(tt.sample)
			if got.Subtract(tt.want).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}

	sampler := NewSeededSampler(11)
	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitDisk(sampler.Get2D())
		if p.LengthSquared() > 1.0+1e-9 || p.Z != 0 {
			t.Fatalf("Point %v is outside the unit disk", p)
		}
	}
}

func TestSeededSampler_Reproducible(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Expected identical sequences for identical seeds")
		}
	}
}

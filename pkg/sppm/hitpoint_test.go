package sppm

import (
	"math"
	"testing"

	"github.com/df07/go-sppm/pkg/core"
)

func TestHitPoint_ProgressSeedsFirstPhotons(t *testing.T) {
	hp := HitPoint{Radius2: 1}
	hp.Progress(50, core.NewVec3(2, 2, 2), 0.7)

	if hp.Photons != 50 {
		t.Errorf("Expected N seeded to 50, got %f", hp.Photons)
	}
	if hp.Radius2 != 1 {
		t.Errorf("Expected no shrink on the seeding update, got radius² %f", hp.Radius2)
	}
	if hp.Flux != core.NewVec3(2, 2, 2) {
		t.Errorf("Expected flux to be the first deposit, got %v", hp.Flux)
	}
}

func TestHitPoint_ProgressBlends(t *testing.T) {
	hp := HitPoint{Radius2: 1, Photons: 100, Flux: core.NewVec3(10, 10, 10)}
	hp.Progress(100, core.NewVec3(10, 10, 10), 0.7)

	coeff := (100 + 0.7*100) / 200.0
	if math.Abs(hp.Radius2-coeff) > 1e-12 {
		t.Errorf("Expected radius² %f, got %f", coeff, hp.Radius2)
	}
	if math.Abs(hp.Flux.X-20*coeff) > 1e-12 {
		t.Errorf("Expected flux %f, got %f", 20*coeff, hp.Flux.X)
	}
	if math.Abs(hp.Photons-170) > 1e-12 {
		t.Errorf("Expected N = 170, got %f", hp.Photons)
	}
}

func TestHitPoint_ProgressIsMonotonic(t *testing.T) {
	sampler := core.NewSeededSampler(11)
	hp := HitPoint{Radius2: 0.25}

	for i := 0; i < 200; i++ {
		m := int(sampler.Get1D() * 40)
		deposit := core.One.Multiply(sampler.Get1D() * float64(m))

		before := hp
		hp.Progress(m, deposit, 0.7)

		if hp.Radius2 > before.Radius2 {
			t.Fatalf("Iteration %d: radius² grew from %f to %f", i, before.Radius2, hp.Radius2)
		}
		if before.Photons == 0 {
			continue
		}

		// Flux is scaled by the same factor as the radius²
		shrink := hp.Radius2 / before.Radius2
		if expected := before.Flux.X + deposit.X; math.Abs(hp.Flux.X-expected*shrink) > 1e-9*math.Max(1, expected) {
			t.Fatalf("Iteration %d: expected flux %f, got %f", i, expected*shrink, hp.Flux.X)
		}
		if hp.Photons < before.Photons {
			t.Fatalf("Iteration %d: photon count decreased", i)
		}
	}
}

package lights

import (
	"fmt"
	"sort"
)

// Selection names a strategy for choosing which light emits a photon
type Selection string

const (
	// SelectUniform picks every light with equal probability and does not rescale
	// photon power, so scenes with lights of unequal power are biased
	SelectUniform Selection = "uniform"
	// SelectPower picks lights proportionally to their flux luminance and divides
	// photon power by the selection probability
	SelectPower Selection = "power"
)

// ParseSelection converts a strategy name into a Selection
func ParseSelection(name string) (Selection, error) {
	switch Selection(name) {
	case SelectUniform, SelectPower:
		return Selection(name), nil
	default:
		return "", fmt.Errorf("unknown light selection %q (want %q or %q)", name, SelectUniform, SelectPower)
	}
}

// Selector chooses the light that emits each photon
type Selector interface {
	// Select maps u in [0,1) to a light and the factor its photon power is scaled by
	Select(u float64) (Light, float64)
	// Len returns the number of lights
	Len() int
}

// NewSelector builds the selector for a strategy
func NewSelector(lights []Light, selection Selection) Selector {
	if selection == SelectPower {
		return NewPowerSelector(lights)
	}
	return NewUniformSelector(lights)
}

// UniformSelector picks lights uniformly at random
type UniformSelector struct {
	lights []Light
}

// NewUniformSelector creates a uniform selector
func NewUniformSelector(lights []Light) *UniformSelector {
	return &UniformSelector{lights: lights}
}

// Select returns the light at index floor(u*n); photon power is left unscaled
func (us *UniformSelector) Select(u float64) (Light, float64) {
	if len(us.lights) == 0 {
		return nil, 0
	}
	index := int(u * float64(len(us.lights)))
	if index >= len(us.lights) {
		index = len(us.lights) - 1
	}
	return us.lights[index], 1.0
}

// Len returns the number of lights
func (us *UniformSelector) Len() int {
	return len(us.lights)
}

// PowerSelector picks lights proportionally to the luminance of their flux
type PowerSelector struct {
	lights        []Light
	probabilities []float64
	cumulative    []float64 // Cumulative distribution for sampling
}

// NewPowerSelector creates a power-weighted selector. Lights with no flux are
// never chosen; if no light has flux it falls back to equal weights.
func NewPowerSelector(lights []Light) *PowerSelector {
	weights := make([]float64, len(lights))
	total := 0.0
	for i, light := range lights {
		weights[i] = max(light.Flux().Luminance(), 0)
		total += weights[i]
	}
	if total == 0 {
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}

	ps := &PowerSelector{
		lights:        lights,
		probabilities: make([]float64, len(lights)),
		cumulative:    make([]float64, len(lights)),
	}

	// Normalize and build the cumulative distribution
	running := 0.0
	for i, w := range weights {
		ps.probabilities[i] = w / total
		running += ps.probabilities[i]
		ps.cumulative[i] = running
	}
	if len(ps.cumulative) > 0 {
		ps.cumulative[len(ps.cumulative)-1] = 1.0
	}
	return ps
}

// Select returns the light whose cumulative range contains u and 1/probability
func (ps *PowerSelector) Select(u float64) (Light, float64) {
	if len(ps.lights) == 0 {
		return nil, 0
	}
	// First index whose cumulative value exceeds u
	index := sort.Search(len(ps.cumulative), func(i int) bool {
		return ps.cumulative[i] > u
	})
	if index >= len(ps.lights) {
		index = len(ps.lights) - 1
	}
	// Rounding in the cumulative sum can land on a trailing zero-weight light
	for index > 0 && ps.probabilities[index] == 0 {
		index--
	}
	return ps.lights[index], 1.0 / ps.probabilities[index]
}

// Probability returns the chance that light i is selected
func (ps *PowerSelector) Probability(i int) float64 {
	return ps.probabilities[i]
}

// Len returns the number of lights
func (ps *PowerSelector) Len() int {
	return len(ps.lights)
}

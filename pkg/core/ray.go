package core

// AirIndex is the refractive index of the medium outside any surface
const AirIndex = 1.0

// Pixel identifies the image pixel a ray or hit point contributes to.
// Y is in storage order (row 0 is the top of the image).
type Pixel struct {
	X, Y int
}

// Ray represents a ray with an origin, a normalized direction, the stack of
// refractive indices of the media it has entered and the pixel it belongs to
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Media     MediumStack
	Pixel     Pixel
}

// NewRay creates a new ray in air. The direction is normalized.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Continue spawns a ray from origin in direction that keeps this ray's media and pixel
func (r Ray) Continue(origin, direction Vec3, media MediumStack) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize(), Media: media, Pixel: r.Pixel}
}

// MediumStack is the stack of refractive indices of nested transparent media a ray
// has entered. It is a value type: Push and Pop never modify the receiver, so sibling
// branches of a ray tree never observe each other's changes.
type MediumStack struct {
	indices []float64
}

// Current returns the refractive index of the innermost medium (air when empty)
func (s MediumStack) Current() float64 {
	if len(s.indices) == 0 {
		return AirIndex
	}
	return s.indices[len(s.indices)-1]
}

// Outer returns the refractive index of the medium surrounding the innermost one
func (s MediumStack) Outer() float64 {
	if len(s.indices) < 2 {
		return AirIndex
	}
	return s.indices[len(s.indices)-2]
}

// Depth returns the number of nested media
func (s MediumStack) Depth() int {
	return len(s.indices)
}

// Push returns a new stack with index entered on top
func (s MediumStack) Push(index float64) MediumStack {
	next := make([]float64, len(s.indices)+1)
	copy(next, s.indices)
	next[len(s.indices)] = index
	return MediumStack{indices: next}
}

// Pop returns a new stack with the innermost medium removed
func (s MediumStack) Pop() MediumStack {
	if len(s.indices) == 0 {
		return s
	}
	// Reslicing is safe: Push always copies, so the shared prefix is never written.
	n := len(s.indices) - 1
	return MediumStack{indices: s.indices[:n:n]}
}

package core

// Numerical tolerances shared by intersection, refraction and transport code.
const (
	// Eps is the distance tolerance: hits closer than Eps along a ray are rejected,
	// denominators below Eps are treated as degenerate, and a path whose contribution
	// has squared magnitude below Eps is terminated.
	Eps = 1e-6

	// Eps2 guards squared magnitudes (coefficient vectors, zero-length normals).
	Eps2 = 1e-12
)

package core

// Hit contains information about a ray-surface intersection
type Hit struct {
	Point    Vec3    // Point of intersection
	Normal   Vec3    // Unit geometric normal (outward-facing for closed surfaces)
	Distance float64 // Distance along the ray
	UV       Vec2    // Surface parameters, valid when HasUV is set
	HasUV    bool    // Whether the surface reports (u,v) parameters
	Index    int     // Primitive index within a composite surface (mesh triangle), else 0
}

// FacingNormal returns the normal oriented against the incoming direction
func (h Hit) FacingNormal(direction Vec3) Vec3 {
	if h.Normal.Dot(direction) > 0 {
		return h.Normal.Negate()
	}
	return h.Normal
}

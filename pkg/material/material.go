package material

import (
	"github.com/df07/go-sppm/pkg/core"
)

// Material holds the optical coefficients of a surface. All fields may be changed
// freely while a scene is being authored; renderers only read them.
type Material struct {
	Diffuse         core.Vec3   // Diffuse reflectance per channel
	Texture         ColorSource // Optional diffuse texture, used where the surface reports (u,v)
	Specular        core.Vec3   // Phong specular color
	Shininess       float64     // Phong exponent
	Reflectiveness  float64     // Mirror fraction in [0,1)
	Refractiveness  core.Vec3   // Transmittance per channel
	RefractiveIndex float64     // Index of refraction of the interior medium
	Emission        core.Vec3   // Radiance emitted toward the camera
}

// NewDiffuse creates a purely diffuse material
func NewDiffuse(color core.Vec3) *Material {
	return &Material{Diffuse: color, RefractiveIndex: core.AirIndex}
}

// NewTextured creates a diffuse material whose color comes from a texture
func NewTextured(texture ColorSource) *Material {
	return &Material{Texture: texture, RefractiveIndex: core.AirIndex}
}

// NewMirror creates a mirror that reflects the given fraction of incoming energy
func NewMirror(reflectiveness float64) *Material {
	return &Material{Reflectiveness: reflectiveness, RefractiveIndex: core.AirIndex}
}

// NewGlass creates a clear dielectric with the given index and transmittance
func NewGlass(refractiveIndex float64, transmittance core.Vec3) *Material {
	return &Material{Refractiveness: transmittance, RefractiveIndex: refractiveIndex}
}

// NewEmissive creates a material that only emits
func NewEmissive(emission core.Vec3) *Material {
	return &Material{Emission: emission, RefractiveIndex: core.AirIndex}
}

// DiffuseAt returns the diffuse reflectance at a hit, sampling the texture when available
func (m *Material) DiffuseAt(hit core.Hit) core.Vec3 {
	if m.Texture != nil && hit.HasUV {
		return m.Texture.Evaluate(hit.UV, hit.Point)
	}
	return m.Diffuse
}

// IsDiffuseAt reports whether the surface has nonzero diffuse reflectance at the hit
func (m *Material) IsDiffuseAt(hit core.Hit) bool {
	return !m.DiffuseAt(hit).IsBlack()
}

// IsReflective reports whether a mirror branch must be traced
func (m *Material) IsReflective() bool {
	return m.Reflectiveness > core.Eps
}

// IsRefractive reports whether a transmission branch must be traced
func (m *Material) IsRefractive() bool {
	return m.Refractiveness.LengthSquared() > core.Eps2
}

// IsEmissive reports whether the surface emits toward the camera
func (m *Material) IsEmissive() bool {
	return !m.Emission.IsBlack()
}

// BRDF evaluates the simplified diffuse-only reflectance used for photon deposits.
// It ignores the directions and returns the diffuse color times scale, with no 1/π
// normalization, so that the photon estimate matches the Phong diffuse term.
func (m *Material) BRDF(hit core.Hit, outgoing, incoming core.Vec3, scale float64) core.Vec3 {
	return m.DiffuseAt(hit).Multiply(scale)
}

// Transparency returns the per-channel transmittance used for shadow rays.
// Opaque surfaces report false.
func (m *Material) Transparency() (core.Vec3, bool) {
	if !m.IsRefractive() {
		return core.Zero, false
	}
	return m.Refractiveness, true
}

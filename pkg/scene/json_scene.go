package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/geometry"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/loaders"
	"github.com/df07/go-sppm/pkg/material"
	"github.com/df07/go-sppm/pkg/sppm"
)

// FileConfig is the JSON layout of a scene file. Vectors are objects with
// x, y and z keys.
type FileConfig struct {
	Name        string                    `json:"name"`
	Description string                    `json:"description,omitempty"`
	Width       int                       `json:"width"`
	Height      int                       `json:"height"`
	Camera      sppm.CameraConfig         `json:"camera"`
	Settings    RenderSettings            `json:"settings"`
	Materials   map[string]MaterialConfig `json:"materials"`
	Surfaces    []SurfaceConfig           `json:"surfaces"`
	Lights      []LightConfig             `json:"lights"`
}

// MaterialConfig describes a material
type MaterialConfig struct {
	Diffuse         core.Vec3      `json:"diffuse"`
	Checker         *CheckerConfig `json:"checker,omitempty"`
	Texture         *TextureConfig `json:"texture,omitempty"`
	Specular        core.Vec3      `json:"specular"`
	Shininess       float64        `json:"shininess,omitempty"`
	Reflectiveness  float64        `json:"reflectiveness,omitempty"`
	Refractiveness  core.Vec3      `json:"refractiveness"`
	RefractiveIndex float64        `json:"refractiveIndex,omitempty"`
	Emission        core.Vec3      `json:"emission"`
}

// CheckerConfig describes a checkerboard diffuse texture
type CheckerConfig struct {
	Even   core.Vec3 `json:"even"`
	Odd    core.Vec3 `json:"odd"`
	Checks float64   `json:"checks"`
}

// TextureConfig describes a diffuse texture
type TextureConfig struct {
	Type   string    `json:"type"`   // image, gradient, uv
	File   string    `json:"file"`   // image: PNG or JPEG, relative to the scene file
	Bottom core.Vec3 `json:"bottom"` // gradient
	Top    core.Vec3 `json:"top"`    // gradient
}

// SurfaceConfig describes one surface. Type selects which fields apply.
type SurfaceConfig struct {
	Type     string `json:"type"` // plane, sphere, box, quad, disc, cylinder, triangle, mesh
	Material string `json:"material"`

	Point    core.Vec3   `json:"point"`    // plane
	Normal   core.Vec3   `json:"normal"`   // plane, disc
	Center   core.Vec3   `json:"center"`   // sphere, disc
	Radius   float64     `json:"radius"`   // sphere, disc, cylinder
	Base     core.Vec3   `json:"base"`     // cylinder
	Top      core.Vec3   `json:"top"`      // cylinder
	Min      core.Vec3   `json:"min"`      // box
	Max      core.Vec3   `json:"max"`      // box
	Corner   core.Vec3   `json:"corner"`   // quad
	U        core.Vec3   `json:"u"`        // quad
	V        core.Vec3   `json:"v"`        // quad
	Vertices []core.Vec3 `json:"vertices"` // triangle, mesh
	Faces    []int       `json:"faces"`    // mesh
	File     string      `json:"file"`     // mesh: PLY file, relative to the scene file
	Scale    float64     `json:"scale"`    // mesh file: uniform scale, 0 means 1
	Offset   core.Vec3   `json:"offset"`   // mesh file: translation applied after scaling
}

// LightConfig describes one light. Type selects which fields apply.
type LightConfig struct {
	Type       string    `json:"type"` // point, sphere, disc, parallel
	Position   core.Vec3 `json:"position"`
	Center     core.Vec3 `json:"center"`
	Normal     core.Vec3 `json:"normal"`
	Direction  core.Vec3 `json:"direction"`
	Radius     float64   `json:"radius"`
	Power      core.Vec3 `json:"power"`
	Irradiance core.Vec3 `json:"irradiance"`
	Visible    bool      `json:"visible,omitempty"` // Add an emitter surface for sphere and disc lights
}

// LoadJSON reads a scene file
func LoadJSON(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scene file %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = titleCase(sceneFileID(path))
	}
	dir := filepath.Dir(path)
	for i := range cfg.Surfaces {
		cfg.Surfaces[i].File = resolvePath(dir, cfg.Surfaces[i].File)
	}
	for name, mc := range cfg.Materials {
		if mc.Texture != nil {
			texture := *mc.Texture
			texture.File = resolvePath(dir, texture.File)
			mc.Texture = &texture
			cfg.Materials[name] = mc
		}
	}

	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// resolvePath makes a relative file reference relative to dir
func resolvePath(dir, file string) string {
	if file == "" || filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(dir, file)
}

// Build validates the configuration, fills in defaults and constructs the scene
func (cfg FileConfig) Build() (*Scene, error) {
	if len(cfg.Lights) == 0 {
		return nil, fmt.Errorf("config has no lights")
	}
	if cfg.Width <= 0 {
		cfg.Width = 400
	}
	if cfg.Height <= 0 {
		cfg.Height = 300
	}
	defaults := DefaultRenderSettings()
	if cfg.Settings.Iterations <= 0 {
		cfg.Settings.Iterations = defaults.Iterations
	}
	if cfg.Settings.PhotonsPerIteration <= 0 {
		cfg.Settings.PhotonsPerIteration = defaults.PhotonsPerIteration
	}
	if cfg.Settings.InitialRadius <= 0 {
		cfg.Settings.InitialRadius = defaults.InitialRadius
	}

	materials := make(map[string]*material.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		m, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = m
	}

	world := NewWorld()
	for i, sc := range cfg.Surfaces {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("surface %d: unknown material %q", i, sc.Material)
		}
		surface, err := sc.Build(mat)
		if err != nil {
			return nil, fmt.Errorf("surface %d: %w", i, err)
		}
		world.Add(surface)
	}

	for i, lc := range cfg.Lights {
		if err := lc.addTo(world); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}

	return &Scene{
		Name:        cfg.Name,
		Description: cfg.Description,
		World:       world,
		Camera:      cfg.Camera,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Settings:    cfg.Settings,
	}, nil
}

// Build constructs the material. A missing refractive index means air.
func (mc MaterialConfig) Build() (*material.Material, error) {
	m := &material.Material{
		Diffuse:         mc.Diffuse,
		Specular:        mc.Specular,
		Shininess:       mc.Shininess,
		Reflectiveness:  mc.Reflectiveness,
		Refractiveness:  mc.Refractiveness,
		RefractiveIndex: mc.RefractiveIndex,
		Emission:        mc.Emission,
	}
	if m.RefractiveIndex <= 0 {
		m.RefractiveIndex = core.AirIndex
	}
	if mc.Checker != nil {
		checks := mc.Checker.Checks
		if checks <= 0 {
			checks = 8
		}
		m.Texture = material.NewCheckerboard(mc.Checker.Even, mc.Checker.Odd, checks)
	}
	if mc.Texture != nil {
		if mc.Checker != nil {
			return nil, fmt.Errorf("checker and texture are exclusive")
		}
		texture, err := mc.Texture.Build()
		if err != nil {
			return nil, err
		}
		m.Texture = texture
	}
	return m, nil
}

// Build constructs the color source
func (tc TextureConfig) Build() (material.ColorSource, error) {
	switch tc.Type {
	case "image":
		if tc.File == "" {
			return nil, fmt.Errorf("image texture needs a file")
		}
		return loaders.LoadImage(tc.File)
	case "gradient":
		return material.NewGradient(tc.Bottom, tc.Top), nil
	case "uv":
		return material.UVColors{}, nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", tc.Type)
	}
}

// Build constructs the surface
func (sc SurfaceConfig) Build(mat *material.Material) (geometry.Surface, error) {
	switch sc.Type {
	case "plane":
		if sc.Normal == core.Zero {
			return nil, fmt.Errorf("plane needs a normal")
		}
		return geometry.NewPlane(sc.Point, sc.Normal, mat), nil
	case "sphere":
		if sc.Radius <= 0 {
			return nil, fmt.Errorf("sphere radius must be > 0, got %f", sc.Radius)
		}
		return geometry.NewSphere(sc.Center, sc.Radius, mat), nil
	case "box":
		return geometry.NewBox(sc.Min, sc.Max, mat), nil
	case "quad":
		if sc.U.Cross(sc.V) == core.Zero {
			return nil, fmt.Errorf("quad edges must not be parallel")
		}
		return geometry.NewQuad(sc.Corner, sc.U, sc.V, mat), nil
	case "disc":
		if sc.Radius <= 0 || sc.Normal == core.Zero {
			return nil, fmt.Errorf("disc needs a normal and a radius > 0")
		}
		return geometry.NewDisc(sc.Center, sc.Normal, sc.Radius, mat), nil
	case "cylinder":
		if sc.Radius <= 0 || sc.Base == sc.Top {
			return nil, fmt.Errorf("cylinder needs distinct base and top and a radius > 0")
		}
		if mat.IsRefractive() {
			return nil, fmt.Errorf("open cylinder cannot be refractive")
		}
		return geometry.NewCylinder(sc.Base, sc.Top, sc.Radius, mat), nil
	case "triangle":
		if len(sc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(sc.Vertices))
		}
		return geometry.NewTriangle(sc.Vertices[0], sc.Vertices[1], sc.Vertices[2], mat), nil
	case "mesh":
		if sc.File != "" {
			return sc.loadMesh(mat)
		}
		if len(sc.Faces)%3 != 0 {
			return nil, fmt.Errorf("mesh face indices must be a multiple of 3, got %d", len(sc.Faces))
		}
		for _, f := range sc.Faces {
			if f < 0 || f >= len(sc.Vertices) {
				return nil, fmt.Errorf("mesh face index %d out of range", f)
			}
		}
		return geometry.NewTriangleMesh(sc.Vertices, sc.Faces, mat, nil), nil
	default:
		return nil, fmt.Errorf("unknown surface type %q", sc.Type)
	}
}

// loadMesh reads the PLY file and places its vertices
func (sc SurfaceConfig) loadMesh(mat *material.Material) (geometry.Surface, error) {
	data, err := loaders.LoadPLY(sc.File)
	if err != nil {
		return nil, err
	}
	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("mesh file %s has no faces", sc.File)
	}

	scale := sc.Scale
	if scale == 0 {
		scale = 1
	}
	vertices := make([]core.Vec3, len(data.Vertices))
	for i, v := range data.Vertices {
		vertices[i] = v.Multiply(scale).Add(sc.Offset)
	}

	var options *geometry.TriangleMeshOptions
	if len(data.TexCoords) > 0 {
		options = &geometry.TriangleMeshOptions{UVs: data.TexCoords}
	}
	return geometry.NewTriangleMesh(vertices, data.Faces, mat, options), nil
}

// addTo constructs the light and adds it, with its emitter surface when visible
func (lc LightConfig) addTo(world *World) error {
	switch lc.Type {
	case "point":
		world.AddLight(lights.NewPointLight(lc.Position, lc.Power))
	case "sphere":
		if lc.Radius <= 0 {
			return fmt.Errorf("sphere light radius must be > 0, got %f", lc.Radius)
		}
		if lc.Visible {
			world.AddSphereLight(lc.Center, lc.Radius, lc.Power)
		} else {
			world.AddLight(lights.NewSphereLight(lc.Center, lc.Radius, lc.Power))
		}
	case "disc":
		if lc.Radius <= 0 || lc.Normal == core.Zero {
			return fmt.Errorf("disc light needs a normal and a radius > 0")
		}
		if lc.Visible {
			world.AddDiscLight(lc.Center, lc.Normal, lc.Radius, lc.Power)
		} else {
			world.AddLight(lights.NewDiscLight(lc.Center, lc.Normal, lc.Radius, lc.Power))
		}
	case "parallel":
		if lc.Direction == core.Zero || lc.Radius <= 0 {
			return fmt.Errorf("parallel light needs a direction and a radius > 0")
		}
		world.AddLight(lights.NewParallelLight(lc.Direction, lc.Irradiance, lc.Center, lc.Radius))
	default:
		return fmt.Errorf("unknown light type %q", lc.Type)
	}
	return nil
}

package sppm

import (
	"math"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/kdtree"
	"github.com/df07/go-sppm/pkg/lights"
)

// Config contains the light-transport parameters of the engine
type Config struct {
	Workers          int     // Number of goroutines per pass (0 = number of CPUs)
	Seed             int64   // Base seed for every worker's sampler
	Alpha            float64 // Fraction of new photons kept by the progressive update
	DiffuseDepth     int     // Diffuse photon bounces after the first deposit
	Split            kdtree.SplitStrategy
	LightSelection   lights.Selection
	ApertureSamples  int     // Lens samples per axis when the camera has an aperture
	MaxSpecularDepth int     // Safety bound on specular chain length (0 = unbounded)
	BRDFScale        float64 // Constant factor applied to diffuse reflectance for photon deposits
}

// DefaultConfig returns the standard SPPM parameters
func DefaultConfig() Config {
	return Config{
		Workers:          0,
		Seed:             1,
		Alpha:            0.7,
		DiffuseDepth:     0,
		Split:            kdtree.SplitMidpoint,
		LightSelection:   lights.SelectUniform,
		ApertureSamples:  2,
		MaxSpecularDepth: 256,
		BRDFScale:        1.0,
	}
}

// CameraConfig places the camera in the world
type CameraConfig struct {
	Position core.Vec3 `json:"position"`
	LookAt   core.Vec3 `json:"lookAt"`
	Up       core.Vec3 `json:"up"`

	// Focal is the distance from the eye to the image plane in pixels.
	// When zero it is derived from VFov and the image height.
	Focal float64 `json:"focal,omitempty"`
	VFov  float64 `json:"vfov,omitempty"` // Vertical field of view in degrees

	Aperture      float64 `json:"aperture,omitempty"`      // Lens radius (0 = pinhole)
	FocusDistance float64 `json:"focusDistance,omitempty"` // Distance to the plane in focus (0 = distance to LookAt)
}

// focal returns the image plane distance in pixels for an image of the given height
func (cc CameraConfig) focal(height int) float64 {
	if cc.Focal > 0 {
		return cc.Focal
	}
	vfov := cc.VFov
	if vfov <= 0 {
		vfov = 40
	}
	return 0.5 * float64(height) / math.Tan(vfov*math.Pi/360)
}

// focusDistance returns the distance along the view direction that is in focus
func (cc CameraConfig) focusDistance() float64 {
	if cc.FocusDistance > 0 {
		return cc.FocusDistance
	}
	return cc.LookAt.Subtract(cc.Position).Length()
}

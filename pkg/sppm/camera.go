// Package sppm implements stochastic progressive photon mapping: a camera pass
// that records diffuse hit points at the end of specular eye paths, photon
// passes that deposit flux on nearby hit points while their gather radii
// shrink, and estimators that turn the result into image radiance.
package sppm

import (
	"runtime"
	"time"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/film"
	"github.com/df07/go-sppm/pkg/kdtree"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/log"
)

var logger = log.New("sppm")

// PassStats describes the most recent pass
type PassStats struct {
	Pass      int           // Photon pass number, 0 after a camera pass
	HitPoints int           // Hit points recorded by the camera pass
	Photons   int           // Photons emitted by this pass
	Deposits  int64         // Photon deposits on hit points
	MaxRadius float64       // Largest gather radius after the pass
	Duration  time.Duration // Wall time of the pass
}

// Camera is the light-transport engine bound to one world. It is not safe for
// concurrent use; each pass parallelizes internally.
type Camera struct {
	world    World
	view     CameraConfig
	config   Config
	selector lights.Selector
	logger   log.Logger

	width, height int
	cameraPasses  int
	photonPasses  int

	hitPoints []HitPoint
	tree      *kdtree.Tree
	workers   []*photonWorker
	last      PassStats
}

// NewCamera creates an engine rendering world through view
func NewCamera(world World, view CameraConfig, config Config) *Camera {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.ApertureSamples < 1 {
		config.ApertureSamples = 1
	}
	if config.BRDFScale == 0 {
		config.BRDFScale = 1
	}
	if view.Up == core.Zero {
		view.Up = core.NewVec3(0, 1, 0)
	}

	return &Camera{
		world:    world,
		view:     view,
		config:   config,
		selector: lights.NewSelector(world.Lights(), config.LightSelection),
		logger:   logger,
	}
}

// SetLogger replaces the engine's logger
func (c *Camera) SetLogger(l log.Logger) {
	c.logger = l
}

// Config returns the resolved engine configuration
func (c *Camera) Config() Config {
	return c.config
}

// HitPoints returns the hit points of the last camera pass. The slice is owned
// by the camera and is updated in place by photon passes.
func (c *Camera) HitPoints() []HitPoint {
	return c.hitPoints
}

// TreeStats returns the shape of the hit point index, zero before the first photon pass
func (c *Camera) TreeStats() kdtree.Stats {
	if c.tree == nil {
		return kdtree.Stats{}
	}
	return c.tree.Stats()
}

// LastPass returns statistics of the most recent pass
func (c *Camera) LastPass() PassStats {
	return c.last
}

// RayTracePass traces eye rays for every pixel of img, adding directly seen
// emission to img and replacing the hit point list. The photon index is
// rebuilt by the next photon pass.
func (c *Camera) RayTracePass(img *film.Image) {
	start := time.Now()
	c.width, c.height = img.Width, img.Height
	c.cameraPasses++
	c.photonPasses = 0
	c.tree = nil
	c.workers = nil

	basis := c.newViewBasis(img.Width, img.Height)
	chunks := make([][]HitPoint, c.config.Workers)

	forkJoin(img.Height, c.config.Workers, func(ch chunk) {
		sampler := core.NewSeededSampler(workerSeed(c.config.Seed, -c.cameraPasses, ch.worker))
		var found []HitPoint

		for y := ch.start; y < ch.end; y++ {
			for x := 0; x < img.Width; x++ {
				for _, primary := range basis.primaryRays(x, y, sampler) {
					c.traceEye(primary.ray, primary.weight, 0, img, &found)
				}
			}
			if ch.reporter {
				reportProgress(c.logger, "camera pass", y-ch.start+1, ch.end-ch.start)
			}
		}
		chunks[ch.worker] = found
	})

	total := 0
	for _, found := range chunks {
		total += len(found)
	}
	c.hitPoints = make([]HitPoint, 0, total)
	for _, found := range chunks {
		c.hitPoints = append(c.hitPoints, found...)
	}

	c.last = PassStats{HitPoints: len(c.hitPoints), Duration: time.Since(start)}
	if len(c.hitPoints) == 0 {
		c.logger.Warning("camera pass recorded no hit points")
	}
	c.logger.Infof("camera pass: %dx%d, %d hit points in %v", img.Width, img.Height, len(c.hitPoints), c.last.Duration)
}

// reportProgress logs the calling goroutine's chunk progress at tenths
func reportProgress(l log.Logger, task string, done, total int) {
	if total < 10 {
		return
	}
	if step := total / 10; done%step == 0 {
		l.Debugf("%s: %d%% of reporting chunk", task, 100*done/total)
	}
}

// Package renderer drives the photon mapping engine progressively: one camera
// pass, then photon iterations whose shrinking radius is fed forward, with
// snapshots of the estimate along the way.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-sppm/pkg/film"
	"github.com/df07/go-sppm/pkg/log"
	"github.com/df07/go-sppm/pkg/scene"
	"github.com/df07/go-sppm/pkg/sppm"
)

var logger = log.New("renderer")

// ErrNoHitPoints is returned when the camera pass finds no diffuse surface for
// photons to land on
var ErrNoHitPoints = errors.New("camera pass recorded no hit points")

// Estimator selects how hit points are turned into radiance
type Estimator string

const (
	// EstimatorPPM uses the photon density estimate
	EstimatorPPM Estimator = "ppm"
	// EstimatorPhong uses direct Phong lighting and traces no photons
	EstimatorPhong Estimator = "phong"
)

// ParseEstimator converts an estimator name into an Estimator
func ParseEstimator(name string) (Estimator, error) {
	switch Estimator(name) {
	case EstimatorPPM, EstimatorPhong:
		return Estimator(name), nil
	default:
		return "", fmt.Errorf("unknown estimator %q (want %q or %q)", name, EstimatorPPM, EstimatorPhong)
	}
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	Iterations          int       // Photon passes after the camera pass
	PhotonsPerIteration int       // Photons emitted per pass
	InitialRadius       float64   // Gather radius of the first photon pass
	SnapshotEvery       int       // Publish a snapshot every N iterations (0 = final only)
	Estimator           Estimator // Radiance estimator used for snapshots
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	settings := scene.DefaultRenderSettings()
	return ProgressiveConfig{
		Iterations:          settings.Iterations,
		PhotonsPerIteration: settings.PhotonsPerIteration,
		InitialRadius:       settings.InitialRadius,
		SnapshotEvery:       10,
		Estimator:           EstimatorPPM,
	}
}

// SceneConfig returns the default config with the scene's tuned settings
func SceneConfig(s *scene.Scene) ProgressiveConfig {
	config := DefaultProgressiveConfig()
	config.Iterations = s.Settings.Iterations
	config.PhotonsPerIteration = s.Settings.PhotonsPerIteration
	config.InitialRadius = s.Settings.InitialRadius
	return config
}

// IterationResult is a snapshot published during progressive rendering
type IterationResult struct {
	Iteration int         // Photon iterations completed, 0 for the Phong estimate
	Image     *film.Image // Estimate after this iteration; owned by the receiver
	Stats     IterationStats
	Luminance float64 // Mean luminance of Image
	IsLast    bool
}

// ProgressiveRenderer renders one scene progressively. It is not safe for
// concurrent use.
type ProgressiveRenderer struct {
	scene         *scene.Scene
	width, height int
	config        ProgressiveConfig
	camera        *sppm.Camera

	emission     *film.Image // Directly seen emission from the camera pass
	radius       float64     // Gather radius fed into the next photon pass
	totalPhotons int64
	iteration    int
	stats        []IterationStats
}

// NewProgressiveRenderer creates a renderer for s at the given size. A zero size
// uses the scene's own. When engine.Workers is zero the worker count is detected
// and limited by available memory.
func NewProgressiveRenderer(s *scene.Scene, width, height int, config ProgressiveConfig, engine sppm.Config) *ProgressiveRenderer {
	if width <= 0 {
		width = s.Width
	}
	if height <= 0 {
		height = s.Height
	}
	if config.Iterations < 1 {
		config.Iterations = 1
	}
	if config.Estimator == "" {
		config.Estimator = EstimatorPPM
	}
	if engine.Workers <= 0 {
		samples := max(engine.ApertureSamples, 1)
		engine.Workers = LimitWorkers(DetectWorkers(), width*height*samples*samples)
	}

	return &ProgressiveRenderer{
		scene:  s,
		width:  width,
		height: height,
		config: config,
		camera: sppm.NewCamera(s.World, s.Camera, engine),
	}
}

// Config returns the resolved progressive configuration
func (pr *ProgressiveRenderer) Config() ProgressiveConfig {
	return pr.config
}

// Size returns the image dimensions
func (pr *ProgressiveRenderer) Size() (width, height int) {
	return pr.width, pr.height
}

// Camera returns the underlying engine
func (pr *ProgressiveRenderer) Camera() *sppm.Camera {
	return pr.camera
}

// Stats returns the statistics of every completed iteration
func (pr *ProgressiveRenderer) Stats() []IterationStats {
	return pr.stats
}

// Snapshot returns a new image holding the camera pass emission plus the
// configured estimate of the current hit point state
func (pr *ProgressiveRenderer) Snapshot() *film.Image {
	img := pr.emission.Clone()
	if pr.config.Estimator == EstimatorPhong {
		pr.camera.PhongEstimate(img)
	} else {
		pr.camera.PPMEstimate(img, pr.totalPhotons)
	}
	return img
}

// Render runs every iteration and returns the final estimate
func (pr *ProgressiveRenderer) Render(ctx context.Context) (*film.Image, error) {
	var final *film.Image
	err := pr.run(ctx, func(result IterationResult) bool {
		final = result.Image
		return true
	})
	return final, err
}

// RenderProgressive renders in a goroutine and publishes snapshots on the
// returned channel. Cancellation is checked between iterations; a photon pass in
// progress always completes. Both channels are closed when rendering stops.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan IterationResult, <-chan error) {
	resultChan := make(chan IterationResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(resultChan)
		defer close(errChan)

		err := pr.run(ctx, func(result IterationResult) bool {
			select {
			case resultChan <- result:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil {
			errChan <- err
		}
	}()

	return resultChan, errChan
}

// run performs the camera pass and the photon iterations, handing snapshots to
// publish. It stops early when publish returns false.
func (pr *ProgressiveRenderer) run(ctx context.Context, publish func(IterationResult) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	if err := pr.cameraPass(); err != nil {
		return err
	}

	if pr.config.Estimator == EstimatorPhong {
		img := pr.Snapshot()
		publish(IterationResult{Image: img, Luminance: AverageLuminance(img), IsLast: true})
		logger.Noticef("phong estimate completed in %v", time.Since(start))
		return nil
	}

	logger.Infof("starting %d iterations of %d photons, initial radius %g",
		pr.config.Iterations, pr.config.PhotonsPerIteration, pr.config.InitialRadius)

	for i := 1; i <= pr.config.Iterations; i++ {
		select {
		case <-ctx.Done():
			logger.Noticef("rendering cancelled before iteration %d", i)
			return ctx.Err()
		default:
		}

		stats := pr.photonPass()
		last := i == pr.config.Iterations
		if !last && (pr.config.SnapshotEvery <= 0 || i%pr.config.SnapshotEvery != 0) {
			continue
		}
		img := pr.Snapshot()
		result := IterationResult{Iteration: i, Image: img, Stats: stats, Luminance: AverageLuminance(img), IsLast: last}
		if !publish(result) {
			return ctx.Err()
		}
	}

	logger.Noticef("%d iterations completed in %v", pr.config.Iterations, time.Since(start))
	return nil
}

func (pr *ProgressiveRenderer) cameraPass() error {
	pr.emission = film.NewImage(pr.width, pr.height)
	pr.camera.RayTracePass(pr.emission)
	if len(pr.camera.HitPoints()) == 0 && pr.config.Estimator == EstimatorPPM {
		return fmt.Errorf("scene %q: %w", pr.scene.Name, ErrNoHitPoints)
	}
	pr.radius = pr.config.InitialRadius
	pr.totalPhotons = 0
	pr.iteration = 0
	pr.stats = nil
	return nil
}

// photonPass runs one photon iteration and feeds the returned radius forward
func (pr *ProgressiveRenderer) photonPass() IterationStats {
	pr.iteration++
	pr.radius = pr.camera.PhotonTracePass(pr.config.PhotonsPerIteration, pr.radius)

	pass := pr.camera.LastPass()
	pr.totalPhotons += int64(pass.Photons)

	stats := IterationStats{
		Iteration:    pr.iteration,
		Photons:      pass.Photons,
		TotalPhotons: pr.totalPhotons,
		Deposits:     pass.Deposits,
		MaxRadius:    pr.radius,
		Duration:     pass.Duration,
	}
	pr.stats = append(pr.stats, stats)
	logger.Debugf("iteration %d/%d done", pr.iteration, pr.config.Iterations)
	return stats
}

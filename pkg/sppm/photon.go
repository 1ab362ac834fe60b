package sppm

import (
	"math"
	"time"

	"github.com/df07/go-sppm/pkg/core"
	"github.com/df07/go-sppm/pkg/kdtree"
)

// photonWorker holds the state one goroutine needs to trace photons: its own
// sampler, a tree searcher and dense deposit buffers indexed like the hit points.
type photonWorker struct {
	camera   *Camera
	sampler  core.Sampler
	searcher *kdtree.Searcher
	radius   float64

	flux     []core.Vec3
	counts   []int32
	deposits int64
}

// PhotonTracePass emits photonCount photons, deposits their flux on hit points
// within radius and applies the progressive update to every hit point. The first
// pass after a camera pass builds the index and sets every gather radius to
// radius. It returns the largest gather radius after the update.
func (c *Camera) PhotonTracePass(photonCount int, radius float64) float64 {
	start := time.Now()
	c.photonPasses++

	if len(c.hitPoints) == 0 {
		c.logger.Warning("photon pass skipped: no hit points")
		c.last = PassStats{Pass: c.photonPasses, Duration: time.Since(start)}
		return radius
	}
	if c.tree == nil {
		c.buildIndex(radius)
	}
	if c.selector.Len() == 0 {
		c.logger.Warning("photon pass emits nothing: world has no lights")
		photonCount = 0
	}

	for w, worker := range c.workers {
		worker.sampler = core.NewSeededSampler(workerSeed(c.config.Seed, c.photonPasses, w))
		worker.radius = radius
		worker.deposits = 0
	}

	forkJoin(photonCount, c.config.Workers, func(ch chunk) {
		worker := c.workers[ch.worker]
		for i := ch.start; i < ch.end; i++ {
			worker.emit()
			if ch.reporter {
				reportProgress(c.logger, "photon pass", i-ch.start+1, ch.end-ch.start)
			}
		}
	})

	maxRadius2 := c.progress()

	var deposits int64
	for _, worker := range c.workers {
		deposits += worker.deposits
	}

	c.last = PassStats{
		Pass:      c.photonPasses,
		HitPoints: len(c.hitPoints),
		Photons:   photonCount,
		Deposits:  deposits,
		MaxRadius: math.Sqrt(maxRadius2),
		Duration:  time.Since(start),
	}
	c.logger.Infof("photon pass %d: %d photons, %d deposits, radius %.5f in %v",
		c.photonPasses, photonCount, deposits, c.last.MaxRadius, c.last.Duration)
	return c.last.MaxRadius
}

// buildIndex indexes the hit points and allocates per-worker state
func (c *Camera) buildIndex(radius float64) {
	points := make([]core.Vec3, len(c.hitPoints))
	for i := range c.hitPoints {
		points[i] = c.hitPoints[i].Point
		c.hitPoints[i].Radius2 = radius * radius
	}

	options := kdtree.DefaultOptions()
	options.Split = c.config.Split
	c.tree = kdtree.New(points, options)

	stats := c.tree.Stats()
	c.logger.Infof("hit point index: %d points, %d nodes, %d leaves (largest %d), depth %d, %d stored indices",
		stats.Points, stats.Nodes, stats.Leaves, stats.MaxLeafSize, stats.MaxDepth, stats.StoredIndices)

	c.workers = make([]*photonWorker, c.config.Workers)
	for w := range c.workers {
		c.workers[w] = &photonWorker{
			camera:   c,
			searcher: c.tree.NewSearcher(),
			flux:     make([]core.Vec3, len(c.hitPoints)),
			counts:   make([]int32, len(c.hitPoints)),
		}
	}
}

// progress merges the worker buffers into the hit points, applies the
// progressive update and clears the buffers. It returns the largest squared
// radius after the update.
func (c *Camera) progress() float64 {
	maxima := make([]float64, c.config.Workers)
	alpha := c.config.Alpha

	forkJoin(len(c.hitPoints), c.config.Workers, func(ch chunk) {
		var maxRadius2 float64
		for i := ch.start; i < ch.end; i++ {
			flux := core.Zero
			count := 0
			for _, worker := range c.workers {
				flux = flux.Add(worker.flux[i])
				count += int(worker.counts[i])
				worker.flux[i] = core.Zero
				worker.counts[i] = 0
			}

			hp := &c.hitPoints[i]
			if count > 0 {
				hp.Progress(count, flux, alpha)
			}
			maxRadius2 = max(maxRadius2, hp.Radius2)
		}
		maxima[ch.worker] = maxRadius2
	})

	var maxRadius2 float64
	for _, m := range maxima {
		maxRadius2 = max(maxRadius2, m)
	}
	return maxRadius2
}

// emit traces one photon from a selected light
func (w *photonWorker) emit() {
	light, scale := w.camera.selector.Select(w.sampler.Get1D())
	if light == nil || scale == 0 {
		return
	}
	w.trace(light.Emit(w.sampler), light.Flux().Multiply(scale), core.One, 0, 0)
}

// trace random-walks a photon carrying power. throughput is the product of the
// factors applied since emission and bounds the walk.
func (w *photonWorker) trace(ray core.Ray, power, throughput core.Vec3, diffuseBounces, depth int) {
	c := w.camera
	if throughput.LengthSquared() <= core.Eps || c.exceedsDepth(depth) {
		return
	}

	hit, ok := c.world.Intersect(ray)
	if !ok {
		return
	}
	mat := hit.Surface.Material()

	if mat.IsDiffuseAt(hit.Hit) {
		w.deposit(hit.Point, ray.Direction, power)

		if diffuseBounces < c.config.DiffuseDepth {
			diffuse := mat.DiffuseAt(hit.Hit)
			n := hit.FacingNormal(ray.Direction)
			dir := core.SampleCosineHemisphere(n, w.sampler.Get2D())
			next := ray.Continue(hit.Point, dir, ray.Media)
			w.trace(next, power.MultiplyVec(diffuse), throughput.MultiplyVec(diffuse), diffuseBounces+1, depth+1)
		}
	}

	if mat.IsReflective() {
		b := mirrorBranch(ray, hit, mat)
		w.trace(b.ray, power.MultiplyVec(b.factor), throughput.MultiplyVec(b.factor), diffuseBounces, depth+1)
	}

	if mat.IsRefractive() {
		for _, b := range refractionBranches(ray, hit, mat) {
			w.trace(b.ray, power.MultiplyVec(b.factor), throughput.MultiplyVec(b.factor), diffuseBounces, depth+1)
		}
	}
}

// deposit adds a photon's contribution to every hit point whose gather sphere
// contains point and whose visible side faces the photon
func (w *photonWorker) deposit(point, direction, power core.Vec3) {
	c := w.camera
	for _, i := range w.searcher.Within(point, w.radius) {
		hp := &c.hitPoints[i]
		if hp.Point.DistanceSquared(point) > hp.Radius2 {
			continue
		}
		if direction.Dot(hp.FacingNormal()) >= 0 {
			continue
		}

		brdf := hp.Surface.Material().BRDF(hp.Hit, hp.Incoming.Negate(), direction.Negate(), c.config.BRDFScale)
		w.flux[i] = w.flux[i].Add(brdf.MultiplyVec(power))
		w.counts[i]++
		w.deposits++
	}
}

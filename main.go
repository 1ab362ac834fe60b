package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-sppm/pkg/film"
	"github.com/df07/go-sppm/pkg/kdtree"
	"github.com/df07/go-sppm/pkg/lights"
	"github.com/df07/go-sppm/pkg/log"
	"github.com/df07/go-sppm/pkg/renderer"
	"github.com/df07/go-sppm/pkg/scene"
	"github.com/df07/go-sppm/pkg/sppm"
	"github.com/df07/go-sppm/web/server"
)

var logger = log.New("go-sppm")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "go-sppm"
	app.Usage = "render scenes using stochastic progressive photon mapping"
	app.Version = "0.1.0"

	// -v selects verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene",
			Description: `
Trace one camera pass to record hit points, then run photon iterations that
shrink the gather radius around each hit point. A snapshot of the estimate is
written to the output file every --snapshot-every iterations and at the end.
Interrupting the render stops it after the current iteration.

Scene settings (size, iterations, photons, radius) are used unless overridden.`,
			Flags:  renderFlags(),
			Action: renderScene,
		},
		{
			Name:  "serve",
			Usage: "stream progressive renders to browsers",
			Description: `
Serve a JSON API. /api/render streams snapshots of a render as server-sent
events while the photon iterations run, together with log records as console
events. /api/inspect reports the surface seen through a pixel.`,
			Flags:  serveFlags(),
			Action: serve,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory scanned for JSON scene files",
				},
			},
			Action: listScenes,
		},
	}
	return app
}

func renderFlags() []cli.Flag {
	progressive := renderer.DefaultProgressiveConfig()
	flags := []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "default",
			Usage: "built-in scene name or path to a JSON scene file",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width (0 = scene default)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "image height (0 = scene default)",
		},
		cli.IntFlag{
			Name:  "iterations, n",
			Usage: "photon iterations (0 = scene default)",
		},
		cli.IntFlag{
			Name:  "photons, p",
			Usage: "photons per iteration (0 = scene default)",
		},
		cli.Float64Flag{
			Name:  "radius, r",
			Usage: "initial gather radius (0 = scene default)",
		},
		cli.IntFlag{
			Name:  "snapshot-every",
			Value: progressive.SnapshotEvery,
			Usage: "write a snapshot every N iterations (0 = final only)",
		},
		cli.StringFlag{
			Name:  "estimator",
			Value: string(progressive.Estimator),
			Usage: "radiance estimator: ppm or phong",
		},
		cli.StringFlag{
			Name:  "out, o",
			Usage: "image filename (default output/<scene>/render_<timestamp>.png)",
		},
	}
	return append(flags, engineFlags()...)
}

// engineFlags are the light-transport parameters shared by render and serve
func engineFlags() []cli.Flag {
	engine := sppm.DefaultConfig()
	return []cli.Flag{
		cli.IntFlag{
			Name:  "workers, w",
			Usage: "worker goroutines (0 = detect)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: engine.Seed,
			Usage: "base random seed",
		},
		cli.Float64Flag{
			Name:  "alpha",
			Value: engine.Alpha,
			Usage: "fraction of new photons kept by the progressive update",
		},
		cli.IntFlag{
			Name:  "diffuse-depth",
			Value: engine.DiffuseDepth,
			Usage: "diffuse bounces of a photon path",
		},
		cli.IntFlag{
			Name:  "aperture-samples",
			Value: engine.ApertureSamples,
			Usage: "lens samples per pixel side when the camera has an aperture",
		},
		cli.StringFlag{
			Name:  "split",
			Value: string(engine.Split),
			Usage: "kd-tree split strategy: midpoint or median",
		},
		cli.StringFlag{
			Name:  "light-selection",
			Value: string(engine.LightSelection),
			Usage: "light selection for photon emission: uniform or power",
		},
	}
}

func serveFlags() []cli.Flag {
	flags := []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Value: ":8080",
			Usage: "address to listen on",
		},
		cli.StringFlag{
			Name:  "dir",
			Value: "scenes",
			Usage: "directory scanned for JSON scene files",
		},
	}
	return append(flags, engineFlags()...)
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// Render a scene progressively.
func renderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sceneArg := ctx.String("scene")
	s, err := scene.Load(sceneArg)
	if err != nil {
		return err
	}

	progressive, engine, err := renderConfig(ctx, s)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out = filepath.Join(createOutputDir(sceneArg), fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	}

	pr := renderer.NewProgressiveRenderer(s, ctx.Int("width"), ctx.Int("height"), progressive, engine)
	logger.Noticef("rendering %q (%d surfaces, %d lights) with %d workers",
		s.Name, s.SurfaceCount(), len(s.World.Lights()), pr.Camera().Config().Workers)

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	saved := false
	start := time.Now()
	results, errs := pr.RenderProgressive(renderCtx)
	for result := range results {
		if err := savePNG(out, result.Image); err != nil {
			return err
		}
		saved = true
		logger.Infof("iteration %d: snapshot written to %s (mean luminance %.4f)", result.Iteration, out, result.Luminance)
	}

	err = <-errs
	if errors.Is(err, context.Canceled) && saved {
		logger.Notice("render interrupted; keeping the last snapshot")
	} else if err != nil {
		return err
	}

	if stats := pr.Stats(); len(stats) > 0 {
		logger.Noticef("iteration statistics\n%s", renderer.FormatStats(stats))
	}
	logger.Noticef("render saved to %s in %v", out, time.Since(start))
	return nil
}

// renderConfig merges the scene's settings with command line overrides
func renderConfig(ctx *cli.Context, s *scene.Scene) (renderer.ProgressiveConfig, sppm.Config, error) {
	progressive := renderer.SceneConfig(s)
	if n := ctx.Int("iterations"); n > 0 {
		progressive.Iterations = n
	}
	if n := ctx.Int("photons"); n > 0 {
		progressive.PhotonsPerIteration = n
	}
	if r := ctx.Float64("radius"); r > 0 {
		progressive.InitialRadius = r
	}
	progressive.SnapshotEvery = ctx.Int("snapshot-every")

	estimator, err := renderer.ParseEstimator(ctx.String("estimator"))
	if err != nil {
		return progressive, sppm.Config{}, err
	}
	progressive.Estimator = estimator

	engine, err := engineConfig(ctx)
	return progressive, engine, err
}

// engineConfig reads and validates the light-transport flags
func engineConfig(ctx *cli.Context) (sppm.Config, error) {
	engine := sppm.DefaultConfig()
	engine.Workers = ctx.Int("workers")
	engine.Seed = ctx.Int64("seed")
	engine.Alpha = ctx.Float64("alpha")
	engine.DiffuseDepth = ctx.Int("diffuse-depth")
	engine.ApertureSamples = ctx.Int("aperture-samples")
	if engine.Alpha <= 0 || engine.Alpha > 1 {
		return engine, fmt.Errorf("alpha must be in (0,1], got %f", engine.Alpha)
	}

	var err error
	if engine.Split, err = kdtree.ParseSplitStrategy(ctx.String("split")); err != nil {
		return engine, err
	}
	if engine.LightSelection, err = lights.ParseSelection(ctx.String("light-selection")); err != nil {
		return engine, err
	}
	return engine, nil
}

// Serve progressive renders over HTTP.
func serve(ctx *cli.Context) error {
	setupLogging(ctx)

	engine, err := engineConfig(ctx)
	if err != nil {
		return err
	}

	serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("Visit http://localhost%s/api/scenes to list scenes", ctx.String("addr"))
	return server.NewServer(ctx.String("addr"), ctx.String("dir"), engine).Start(serveCtx)
}

// List built-in scenes and scene files.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Type", "Description"})
	for _, info := range scenes {
		table.Append([]string{info.ID, info.DisplayName, info.Type, info.Description})
	}
	table.Render()

	_, err = fmt.Fprint(ctx.App.Writer, buf.String())
	return err
}

// createOutputDir returns the output directory for a scene argument: the
// built-in name, or the base name of a scene file.
func createOutputDir(sceneArg string) string {
	base := sceneArg
	if strings.Contains(sceneArg, "/") || strings.HasSuffix(sceneArg, ".json") {
		base = strings.TrimSuffix(filepath.Base(sceneArg), filepath.Ext(sceneArg))
	}
	if base == "" || base == "." {
		base = "scene"
	}
	return filepath.Join("output", base)
}

func savePNG(path string, img *film.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img.ToRGBA()); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

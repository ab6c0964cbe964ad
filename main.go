package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cliOptions holds the flags that are not part of the settings file
type cliOptions struct {
	configPath string
	assetsDir  string
	list       bool
	progress   bool
}

// parseFlags builds the render settings: defaults, then the settings file if
// given, then any flags set explicitly on the command line
func parseFlags(args []string, stdout io.Writer) (scene.Settings, cliOptions, error) {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stdout)

	var opts cliOptions
	fs.StringVar(&opts.configPath, "config", "", "JSON settings file")
	fs.StringVar(&opts.assetsDir, "assets", "assets", "Directory containing texture images")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.progress, "progress", true, "Show a progress bar while rendering")

	defaults := scene.DefaultSettings()
	sceneName := fs.String("scene", defaults.Scene, "Scene to render (see -list)")
	width := fs.Int("width", defaults.ImageWidth, "Image width in pixels")
	samples := fs.Int("samples", defaults.NumSamples, "Samples per pixel")
	depth := fs.Int("depth", defaults.MaxDepth, "Maximum ray bounce depth")
	threads := fs.Int("threads", 0, "Worker count (0 = logical core count)")
	seed := fs.Int64("seed", defaults.Seed, "Random seed")
	out := fs.String("out", defaults.OutputFile, "Output file (.png or .ppm)")
	aperture := fs.Float64("aperture", defaults.Camera.Aperture, "Camera aperture")
	aspect := fs.String("aspect", "16:9", "Aspect ratio as width:height")

	fs.Usage = func() {
		fmt.Fprintln(stdout, "Monte Carlo Path Tracer")
		fmt.Fprintln(stdout, "Usage: pathtracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Flags set on the command line override values from -config.")
	}

	if err := fs.Parse(args); err != nil {
		return scene.Settings{}, opts, err
	}

	settings := defaults
	if opts.configPath != "" {
		loaded, err := scene.LoadSettings(opts.configPath)
		if err != nil {
			return scene.Settings{}, opts, err
		}
		settings = loaded
	}

	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "scene":
			settings.Scene = *sceneName
		case "width":
			settings.ImageWidth = *width
		case "samples":
			settings.NumSamples = *samples
		case "depth":
			settings.MaxDepth = *depth
		case "threads":
			settings.Threads = *threads
		case "seed":
			settings.Seed = *seed
		case "out":
			settings.OutputFile = *out
		case "aperture":
			settings.Camera.Aperture = *aperture
		case "aspect":
			ratio, err := parseAspect(*aspect)
			if err != nil {
				flagErr = err
				return
			}
			settings.Camera.AspectRatio = ratio
		}
	})
	if flagErr != nil {
		return scene.Settings{}, opts, flagErr
	}

	if err := settings.Validate(); err != nil {
		return scene.Settings{}, opts, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, opts, nil
}

// parseAspect parses "16:9" style ratios
func parseAspect(s string) (scene.AspectRatio, error) {
	w, h, ok := strings.Cut(s, ":")
	if !ok {
		return scene.AspectRatio{}, fmt.Errorf("invalid aspect ratio %q, expected width:height", s)
	}
	width, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return scene.AspectRatio{}, fmt.Errorf("invalid aspect ratio width %q: %w", w, err)
	}
	height, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return scene.AspectRatio{}, fmt.Errorf("invalid aspect ratio height %q: %w", h, err)
	}
	if width <= 0 || height <= 0 {
		return scene.AspectRatio{}, fmt.Errorf("aspect ratio must be positive, got %q", s)
	}
	return scene.AspectRatio{Width: width, Height: height}, nil
}

func listScenes(stdout io.Writer) {
	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(stdout, "  %-22s %s\n", info.ID, info.Description)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	settings, opts, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if opts.list {
		listScenes(stdout)
		return nil
	}

	logger := &renderer.WriterLogger{W: stdout}
	if info, err := renderer.GetSystemInfo(); err == nil {
		logger.Printf("System: %s\n", info)
	}
	width, height := settings.ImageWidth, settings.ImageHeight()

	sceneOpts := settings.Options(opts.assetsDir)
	sceneOpts.Logger = logger
	selectedScene, err := scene.Build(settings.Scene, sceneOpts)
	if err != nil {
		return err
	}

	logger.Printf("Using %s scene...\n", settings.Scene)
	if err := selectedScene.Preprocess(rand.New(rand.NewSource(settings.Seed))); err != nil {
		return fmt.Errorf("failed to prepare scene %s: %w", settings.Scene, err)
	}
	if stats, ok := selectedScene.BVHStats(); ok {
		logger.Printf("BVH: %d objects, %d nodes, %d leaves, depth %d\n",
			stats.Objects, stats.TotalNodes, stats.LeafNodes, stats.MaxDepth)
	}

	workers := min(settings.NumThreads(renderer.DefaultWorkerCount()), settings.NumSamples)
	logger.Printf("%d samples per worker\n", settings.SamplesPerThread(workers))

	config := renderer.RenderConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: settings.NumSamples,
		MaxDepth:        settings.MaxDepth,
		NumWorkers:      workers,
		Seed:            settings.Seed,
		Logger:          logger,
	}

	var bar *progressbar.ProgressBar
	if opts.progress {
		bar = progressbar.NewOptions(height*workers,
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("Rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
		)
		config.OnRowComplete = func(done, total int) {
			_ = bar.Add(1)
		}
	}

	buffer, _, err := renderer.Render(selectedScene, config)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if err := saveImage(settings.OutputFile, buffer, settings.NumSamples); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", settings.OutputFile)
	return nil
}

// saveImage writes the buffer as PPM when the path ends in .ppm and as PNG otherwise
func saveImage(path string, buffer *renderer.ImageBuffer, totalSamples int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		err = buffer.WritePPM(file, totalSamples)
	} else {
		err = png.Encode(file, buffer.ToImage(totalSamples))
	}
	if err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return file.Close()
}

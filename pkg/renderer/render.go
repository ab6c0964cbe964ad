package renderer

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// WriterLogger implements core.Logger by writing to w
type WriterLogger struct {
	W io.Writer
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.W, format, args...)
}

// RenderConfig contains configuration for a render
type RenderConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Total samples per pixel across all workers
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Number of parallel workers (0 = logical core count)
	Seed            int64 // Worker k samples with seed Seed+k

	// NewSampler builds a worker's private sampler. Defaults to core.NewSeededSampler.
	NewSampler func(seed int64) core.Sampler
	// Integrator estimates radiance per camera ray. Defaults to path tracing.
	Integrator integrator.Integrator
	// Logger receives the worker split and timing. Defaults to stdout.
	Logger core.Logger
	// OnRowComplete is called after each row finished by any worker, with the
	// number of rows done so far and the total (Height * workers). It may be
	// called concurrently.
	OnRowComplete func(done, total int)
}

func (c RenderConfig) validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		errs = append(errs, fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel))
	}
	if c.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("max depth must be positive, got %d", c.MaxDepth))
	}
	return errors.Join(errs...)
}

// Render accumulates SamplesPerPixel samples for every pixel of the scene's
// image using a fixed pool of workers. Each worker fills a private buffer with
// its share of the samples; the buffers are merged in task order once all
// workers are done. The scene must be preprocessed and is only read.
func Render(s *scene.Scene, config RenderConfig) (*ImageBuffer, RenderStats, error) {
	if s == nil || !s.IsPreprocessed() {
		return nil, RenderStats{}, errors.New("scene must be preprocessed before rendering")
	}
	if err := config.validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid render config: %w", err)
	}

	logger := config.Logger
	if logger == nil {
		logger = NewDefaultLogger()
	}
	newSampler := config.NewSampler
	if newSampler == nil {
		newSampler = func(seed int64) core.Sampler { return core.NewSeededSampler(seed) }
	}
	integ := config.Integrator
	if integ == nil {
		integ = integrator.NewPathTracingIntegrator()
	}

	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = DefaultWorkerCount()
	}
	// Never start a worker with nothing to do
	numWorkers = min(numWorkers, config.SamplesPerPixel)
	shares := splitSamples(config.SamplesPerPixel, numWorkers)

	logger.Printf("Rendering %dx%d at %d spp with %d workers (%d-%d samples each)\n",
		config.Width, config.Height, config.SamplesPerPixel, numWorkers, shares[numWorkers-1], shares[0])

	var onRow func()
	if config.OnRowComplete != nil {
		var rowsDone atomic.Int64
		totalRows := config.Height * numWorkers
		onRow = func() {
			config.OnRowComplete(int(rowsDone.Add(1)), totalRows)
		}
	}

	start := time.Now()
	raytracer := NewRaytracer(s, integ, config.Width, config.Height, config.MaxDepth)
	pool := NewWorkerPool(raytracer, numWorkers, numWorkers, newSampler, onRow)
	pool.Start()

	for k, samples := range shares {
		pool.SubmitTask(SampleTask{
			TaskID:  k,
			Samples: samples,
			Seed:    config.Seed + int64(k),
		})
	}

	// Collect every result before merging so the sum order is fixed
	buffers := make([]*ImageBuffer, numWorkers)
	for range shares {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		buffers[result.TaskID] = result.Buffer
	}
	pool.Stop()

	merged := NewImageBuffer(config.Width, config.Height)
	for k, buffer := range buffers {
		if buffer == nil {
			return nil, RenderStats{}, fmt.Errorf("worker task %d produced no buffer", k)
		}
		if err := merged.Merge(buffer); err != nil {
			return nil, RenderStats{}, fmt.Errorf("merge task %d: %w", k, err)
		}
	}

	stats := RenderStats{
		Width:            config.Width,
		Height:           config.Height,
		TotalPixels:      config.Width * config.Height,
		NumWorkers:       numWorkers,
		SamplesPerPixel:  config.SamplesPerPixel,
		SamplesPerWorker: shares,
		TotalSamples:     config.Width * config.Height * config.SamplesPerPixel,
		Duration:         time.Since(start),
	}
	logger.Printf("Render completed in %v (%.0f samples/sec)\n",
		stats.Duration.Round(time.Millisecond), stats.SamplesPerSecond())

	return merged, stats, nil
}

// RenderImage renders with default sampling and logging, seeding worker k
// with k
func RenderImage(s *scene.Scene, samplesPerPixel, maxDepth, width, height, numThreads int) (*ImageBuffer, error) {
	buffer, _, err := Render(s, RenderConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
		NumWorkers:      numThreads,
	})
	return buffer, err
}

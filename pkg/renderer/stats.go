package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int           // Image width
	Height           int           // Image height
	TotalPixels      int           // Total number of pixels rendered
	NumWorkers       int           // Workers that actually ran
	SamplesPerPixel  int           // Samples accumulated into every pixel
	SamplesPerWorker []int         // Per-worker share of SamplesPerPixel, by task id
	TotalSamples     int           // Camera rays traced across all workers
	Duration         time.Duration // Wall time from first task to merged buffer
}

// SamplesPerSecond returns the camera ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// splitSamples divides total samples across workers so every sample is
// accounted for. The first total%workers workers take one extra sample.
func splitSamples(total, workers int) []int {
	shares := make([]int, workers)
	for k := range shares {
		shares[k] = total / workers
		if k < total%workers {
			shares[k]++
		}
	}
	return shares
}

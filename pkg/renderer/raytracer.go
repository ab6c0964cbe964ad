package renderer

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Raytracer samples every pixel of an image against a preprocessed scene.
// It holds no mutable state and is shared by all workers.
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	width      int
	height     int
	maxDepth   int
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, width, height, maxDepth int) *Raytracer {
	return &Raytracer{
		scene:      s,
		integrator: integ,
		width:      width,
		height:     height,
		maxDepth:   maxDepth,
	}
}

// SamplePixels traces samples jittered rays through every pixel and adds the
// results into buffer. onRow, if set, is called after each completed row.
func (rt *Raytracer) SamplePixels(buffer *ImageBuffer, samples int, sampler core.Sampler, onRow func()) {
	camera := rt.scene.Camera
	w := float64(rt.width)
	h := float64(rt.height)

	for y := 0; y < rt.height; y++ {
		// v grows upwards while image rows grow downwards
		row := float64(rt.height - 1 - y)
		for x := 0; x < rt.width; x++ {
			for sample := 0; sample < samples; sample++ {
				u := (float64(x) + sampler.Get1D()) / w
				v := (row + sampler.Get1D()) / h

				ray := camera.GetRay(u, v, sampler)
				buffer.Add(x, y, rt.integrator.RayColor(ray, rt.scene, sampler, rt.maxDepth))
			}
		}
		if onRow != nil {
			onRow()
		}
	}
}

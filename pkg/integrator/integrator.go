package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray, following at most
	// depth bounces. sampler is the calling worker's private random source.
	RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3
}

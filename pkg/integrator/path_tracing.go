package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// shadowAcneEpsilon keeps secondary rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing with
// material-sampled directions only
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray using unidirectional path tracing.
// The recursion is bounded by depth.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := scene.World.Hit(ray, shadowAcneEpsilon, math.Inf(1), sampler)
	if !isHit {
		return scene.Background
	}

	colorEmitted := emitted(hit)

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray, only return emitted light
		return colorEmitted
	}

	incoming := pt.RayColor(scatter.Scattered, scene, sampler, depth-1)
	return colorEmitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// emitted returns the light emitted at hit, black for non-emissive materials
func emitted(hit *core.HitRecord) core.Vec3 {
	if emitter, ok := hit.Material.(core.Emitter); ok {
		return emitter.Emitted(hit.UV, hit.Point)
	}
	return core.Vec3{}
}

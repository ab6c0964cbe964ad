package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly in all directions.
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function with the given albedo
func NewIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter sends the ray off toward a uniformly sampled point in the unit sphere
func (i *Isotropic) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, core.SamplePointInUnitSphere(sampler.Get3D()), rayIn.Time),
		Attenuation: i.Albedo.Evaluate(hit.UV, hit.Point),
	}, true
}

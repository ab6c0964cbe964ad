package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emit Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a light that emits a constant color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emit: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission follows a texture
func NewTexturedDiffuseLight(emit Texture) *DiffuseLight {
	return &DiffuseLight{Emit: emit}
}

// Scatter implements the Material interface for emissive materials.
// Lights absorb every incoming ray.
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the emitted light for this material
func (e *DiffuseLight) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return e.Emit.Evaluate(uv, point)
}

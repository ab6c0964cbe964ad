package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitEpsilon separates the exit query from the entry hit
const mediumExitEpsilon = 0.0001

// ConstantMedium is a participating medium of uniform density filling a boundary.
// The boundary must be convex: the medium only sees the first entry/exit pair.
type ConstantMedium struct {
	Boundary      core.Hittable
	PhaseFunction core.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium with an isotropic phase function colored by texture
func NewConstantMedium(boundary core.Hittable, density float64, texture material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewIsotropic(texture),
		negInvDensity: -1.0 / density,
	}
}

// NewConstantMediumColor creates a medium with a solid-colored isotropic phase function
func NewConstantMediumColor(boundary core.Hittable, density float64, color core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(color))
}

// Hit samples a free-flight distance through the medium and scatters there if
// it falls inside the boundary segment.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitEpsilon, math.Inf(1), sampler)
	if !ok {
		return nil, false
	}

	t1 := math.Max(entry.T, tMin)
	t2 := math.Min(exit.T, tMax)
	if t1 >= t2 {
		return nil, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInside {
		return nil, false
	}

	t := t1 + hitDistance/rayLength
	return &core.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}

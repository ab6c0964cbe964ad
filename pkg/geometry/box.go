package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Box represents an axis-aligned box made up of 6 rectangles.
// Rotate or move it by wrapping it in RotateY and Translate.
type Box struct {
	Min   core.Vec3
	Max   core.Vec3
	sides *HittableList
}

// NewBox creates a box spanning the corners min and max
func NewBox(min, max core.Vec3, material core.Material) *Box {
	sides := NewHittableList(
		// Front and back (Z)
		NewXYRect(min.X, max.X, min.Y, max.Y, max.Z, material),
		NewXYRect(min.X, max.X, min.Y, max.Y, min.Z, material),
		// Top and bottom (Y)
		NewXZRect(min.X, max.X, min.Z, max.Z, max.Y, material),
		NewXZRect(min.X, max.X, min.Z, max.Z, min.Y, material),
		// Right and left (X)
		NewYZRect(min.Y, max.Y, min.Z, max.Z, max.X, material),
		NewYZRect(min.Y, max.Y, min.Z, max.Z, min.X, material),
	)

	return &Box{Min: min, Max: max, sides: sides}
}

// Hit tests the ray against all six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the exact box extent
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}

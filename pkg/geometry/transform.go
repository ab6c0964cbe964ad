package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Translate moves a contained object by a fixed offset
type Translate struct {
	Object core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears shifted by offset
func NewTranslate(object core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, then moves the hit back out
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)
	hit, ok := tr.Object.Hit(moved, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(tr.Offset)
	hit.SetFaceNormal(moved, hit.OutwardNormal())
	return hit, true
}

// BoundingBox returns the contained box shifted by the offset
func (tr *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := tr.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(tr.Offset), true
}

// RotateY rotates a contained object about the world Y axis
type RotateY struct {
	Object   core.Hittable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about the Y axis.
// The rotated bounding box is computed once here from the 8 corners of the
// contained box.
func NewRotateY(object core.Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box, ok := object.BoundingBox(0, 1)
	if !ok {
		return r
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				x := float64(i)*box.Max.X + float64(1-i)*box.Min.X
				y := float64(j)*box.Max.Y + float64(1-j)*box.Min.Y
				z := float64(k)*box.Max.Z + float64(1-k)*box.Min.Z
				corners = append(corners, r.toWorld(core.NewVec3(x, y, z)))
			}
		}
	}

	r.box = core.NewAABBFromPoints(corners...)
	r.hasBox = true
	return r
}

// toObject applies the inverse rotation
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld applies the forward rotation
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space and the hit back into world space
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	rotated := core.NewRayAtTime(r.toObject(ray.Origin), r.toObject(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(rotated, tMin, tMax, sampler)
	if !ok {
		return nil, false
	}

	hit.Point = r.toWorld(hit.Point)
	hit.SetFaceNormal(ray, r.toWorld(hit.OutwardNormal()))
	return hit, true
}

// BoundingBox returns the precomputed rotated box
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

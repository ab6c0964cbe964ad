package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// HittableList is a flat collection of objects tested in sequence
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list from the given objects
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union of member boxes.
// There is no box for an empty list or when any member has none.
func (l *HittableList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Objects) == 0 {
		return core.AABB{}, false
	}

	var result core.AABB
	for i, object := range l.Objects {
		box, ok := object.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			result = box
		} else {
			result = result.Union(box)
		}
	}

	return result, true
}

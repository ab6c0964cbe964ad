package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Hittable is anything a ray can be intersected with: primitives, transforms,
// lists and BVH nodes.
type Hittable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// The sampler is the calling worker's private random source.
	Hit(ray Ray, tMin, tMax float64, sampler Sampler) (*HitRecord, bool)

	// BoundingBox returns a box enclosing the object over [time0, time1].
	// ok is false for objects without a finite bound.
	BoundingBox(time0, time1 float64) (box AABB, ok bool)
}

// Material interface for surfaces that can scatter rays
type Material interface {
	// Scatter returns the continuation of a path at hit, or false if the
	// surface absorbs the ray.
	Scatter(rayIn Ray, hit HitRecord, sampler Sampler) (ScatterResult, bool)
}

// Emitter interface for materials that emit light.
// Materials that do not implement it emit black.
type Emitter interface {
	Emitted(uv Vec2, point Vec3) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection.
// It is only valid for the query that produced it.
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Surface normal, always facing against the incident ray
	T         float64  // Parameter t along the ray
	UV        Vec2     // Surface coordinates
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material at the hit point
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) <= 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// OutwardNormal returns the geometric normal before front-face orientation
func (h *HitRecord) OutwardNormal() Vec3 {
	if h.FrontFace {
		return h.Normal
	}
	return h.Normal.Negate()
}

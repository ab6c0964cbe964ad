package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// rectThickness pads the bounding box along the normal axis so a flat rect
// never produces a zero-width slab.
const rectThickness = 0.0001

// AxisRect is an axis-aligned rectangle lying in the plane normal[axis] = K.
// A and B are the two in-plane axes in ascending axis order.
type AxisRect struct {
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material core.Material

	normalAxis int
	aAxis      int
	bAxis      int
}

// NewXYRect creates a rectangle in the plane z = k spanning [x0,x1] × [y0,y1].
// Its outward normal is +Z.
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AxisRect {
	return &AxisRect{A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material,
		normalAxis: 2, aAxis: 0, bAxis: 1}
}

// NewXZRect creates a rectangle in the plane y = k spanning [x0,x1] × [z0,z1].
// Its outward normal is +Y.
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AxisRect {
	return &AxisRect{A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material,
		normalAxis: 1, aAxis: 0, bAxis: 2}
}

// NewYZRect creates a rectangle in the plane x = k spanning [y0,y1] × [z0,z1].
// Its outward normal is +X.
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AxisRect {
	return &AxisRect{A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material,
		normalAxis: 0, aAxis: 1, bAxis: 2}
}

// Hit tests if a ray intersects the rectangle
func (r *AxisRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*core.HitRecord, bool) {
	t := (r.K - ray.Origin.Component(r.normalAxis)) / ray.Direction.Component(r.normalAxis)
	// A ray lying in the plane gives 0/0; NaN fails every comparison so reject it explicitly
	if math.IsNaN(t) || t < tMin || t > tMax {
		return nil, false
	}

	point := ray.At(t)
	a := point.Component(r.aAxis)
	b := point.Component(r.bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    point,
		UV:       core.NewVec2((a-r.A0)/(r.A1-r.A0), (b-r.B0)/(r.B1-r.B0)),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.Normal())

	return hitRecord, true
}

// Normal returns the outward normal, the positive direction of the normal axis
func (r *AxisRect) Normal() core.Vec3 {
	return core.Vec3{}.WithComponent(r.normalAxis, 1)
}

// BoundingBox returns the rectangle bounds padded along the normal axis
func (r *AxisRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	min := core.Vec3{}.
		WithComponent(r.aAxis, r.A0).
		WithComponent(r.bAxis, r.B0).
		WithComponent(r.normalAxis, r.K-rectThickness)
	max := core.Vec3{}.
		WithComponent(r.aAxis, r.A1).
		WithComponent(r.bAxis, r.B1).
		WithComponent(r.normalAxis, r.K+rectThickness)
	return core.NewAABB(min, max), true
}

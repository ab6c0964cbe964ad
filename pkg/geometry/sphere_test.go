package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, 0.001, 1000.0, nil)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "ray origin inside sphere",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "tangent ray",
			rayOrigin:      core.NewVec3(1, 0, -5),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      5.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, 0.001, 1000.0, nil)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if math.Abs(hit.Normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(hit.Normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(hit.Normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	// Near root at t=4 is excluded, far root at t=6 is accepted
	hit, ok := sphere.Hit(ray, 4.5, 1000, nil)
	if !ok || math.Abs(hit.T-6) > 1e-9 {
		t.Fatalf("Expected far root at t=6, got ok=%v hit=%v", ok, hit)
	}

	if _, ok := sphere.Hit(ray, 0.001, 3.9, nil); ok {
		t.Error("Expected miss when both roots lie beyond tMax")
	}
}

func TestSphere_UV(t *testing.T) {
	tests := []struct {
		name   string
		normal core.Vec3
		u, v   float64
	}{
		{"+X", core.NewVec3(1, 0, 0), 0.5, 0.5},
		{"+Y", core.NewVec3(0, 1, 0), 0.5, 1.0},
		{"-Y", core.NewVec3(0, -1, 0), 0.5, 0.0},
		{"-X", core.NewVec3(-1, 0, 0), 0.0, 0.5},
		{"+Z", core.NewVec3(0, 0, 1), 0.25, 0.5},
		{"-Z", core.NewVec3(0, 0, -1), 0.75, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := SphereUV(tt.normal)
			// -X sits on the atan2 seam, accept either side
			if tt.name == "-X" && math.Abs(uv.X-1.0) < 1e-9 {
				uv.X = 0
			}
			if math.Abs(uv.X-tt.u) > 1e-9 || math.Abs(uv.Y-tt.v) > 1e-9 {
				t.Errorf("Expected uv=(%f,%f), got (%f,%f)", tt.u, tt.v, uv.X, uv.Y)
			}
		})
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, nil)
	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected sphere to have a bounding box")
	}
	if box.Min != core.NewVec3(0.5, 1.5, 2.5) || box.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestCamera_GetRay_Pinhole(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   2,
		FocusDistance: 1,
	})

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"Center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"Lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"Upper right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, core.NewSequenceSampler(0.5))
			if ray.Origin != core.NewVec3(0, 0, 0) {
				t.Errorf("Expected pinhole origin, got %v", ray.Origin)
			}
			if !vecApprox(ray.Direction, tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_GetRay_ThinLens(t *testing.T) {
	lookFrom := core.NewVec3(0, 0, 5)
	camera := NewCamera(CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0.5,
		FocusDistance: 5,
	})

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))
	focusPoint := core.NewVec3(0, 0, 0)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)

		offset := ray.Origin.Subtract(lookFrom)
		if offset.Length() > 0.25+1e-9 {
			t.Fatalf("Lens offset %v exceeds lens radius", offset)
		}
		if math.Abs(offset.Z) > 1e-9 {
			t.Fatalf("Lens offset %v leaves the lens plane", offset)
		}

		// Every ray through the viewport center converges at the focus plane
		p := ray.At(1)
		if !vecApprox(p, focusPoint, 1e-9) {
			t.Fatalf("Expected ray to pass through focus point, got %v", p)
		}
	}
}

func TestCamera_GetRay_ShutterTime(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          60,
		AspectRatio:   1,
		FocusDistance: 1,
		Time0:         2,
		Time1:         4,
	})

	// Lens consumes two draws, time consumes the third
	ray := camera.GetRay(0.5, 0.5, core.NewSequenceSampler(0.5, 0.5, 0.25))
	if math.Abs(ray.Time-2.5) > 1e-9 {
		t.Errorf("Expected time 2.5, got %f", ray.Time)
	}
}

package core

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func vecNear(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestVec3_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		incident Vec3
		normal   Vec3
		expected Vec3
	}{
		{"Head on", NewVec3(0, -1, 0), NewVec3(0, 1, 0), NewVec3(0, 1, 0)},
		{"45 degrees", NewVec3(1, -1, 0), NewVec3(0, 1, 0), NewVec3(1, 1, 0)},
		{"Grazing", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.incident.Reflect(tt.normal)
			if !vecNear(result, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Refract(t *testing.T) {
	t.Run("Matched index passes straight through", func(t *testing.T) {
		dir := NewVec3(1, -1, 0).Normalize()
		result := dir.Refract(NewVec3(0, 1, 0), 1.0)
		if !vecNear(result, dir, 1e-9) {
			t.Errorf("Expected unbent direction %v, got %v", dir, result)
		}
	})

	t.Run("Snell's law into denser medium", func(t *testing.T) {
		// 30 degrees incidence from air into n=1.5
		sinI := 0.5
		dir := NewVec3(sinI, -math.Sqrt(1-sinI*sinI), 0)
		result := dir.Refract(NewVec3(0, 1, 0), 1.0/1.5)

		sinT := result.X / result.Length()
		if math.Abs(sinT-sinI/1.5) > 1e-9 {
			t.Errorf("Expected sin(theta_t)=%f, got %f", sinI/1.5, sinT)
		}
		if math.Abs(result.Length()-1) > 1e-9 {
			t.Errorf("Expected unit refracted direction, got length %f", result.Length())
		}
	})

	t.Run("Never produces NaN beyond the critical angle", func(t *testing.T) {
		dir := NewVec3(0.9, -math.Sqrt(1-0.81), 0)
		result := dir.Refract(NewVec3(0, 1, 0), 1.5)
		if math.IsNaN(result.X) || math.IsNaN(result.Y) || math.IsNaN(result.Z) {
			t.Errorf("Refract returned NaN: %v", result)
		}
	})
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-7, 0).NearZero() {
		t.Error("Expected vector with one 1e-7 component not to be near zero")
	}
}

func TestVec3_Component(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Component(axis); got != expected {
			t.Errorf("Component(%d): expected %f, got %f", axis, expected, got)
		}
	}

	w := v.WithComponent(1, 7)
	if w != NewVec3(1, 7, 3) {
		t.Errorf("WithComponent: expected (1,7,3), got %v", w)
	}
	if v != NewVec3(1, 2, 3) {
		t.Error("WithComponent must not modify the receiver")
	}
}

func TestVec3_CrossOrthogonal(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(-2, 0.5, 4)
	c := a.Cross(b)

	if math.Abs(c.Dot(a)) > tolerance || math.Abs(c.Dot(b)) > tolerance {
		t.Errorf("Cross product %v is not orthogonal to inputs", c)
	}
	if NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)) != NewVec3(0, 0, 1) {
		t.Error("Expected X cross Y = Z")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRayAtTime(NewVec3(1, 0, 0), NewVec3(0, 2, 0), 0.5)
	if p := ray.At(1.5); p != NewVec3(1, 3, 0) {
		t.Errorf("Expected (1,3,0), got %v", p)
	}
	if ray.Time != 0.5 {
		t.Errorf("Expected time 0.5, got %f", ray.Time)
	}
}

package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestDiffuseLight(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	light := NewDiffuseLight(emission)

	if _, scatters := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), core.HitRecord{}, core.NewSequenceSampler()); scatters {
		t.Error("Diffuse light must never scatter")
	}
	if got := light.Emitted(core.NewVec2(0.5, 0.5), core.NewVec3(1, 2, 3)); got != emission {
		t.Errorf("Expected emission %v, got %v", emission, got)
	}

	var _ core.Emitter = light
}

func TestDiffuseLight_Textured(t *testing.T) {
	light := NewTexturedDiffuseLight(NewCheckerColors(1, core.NewVec3(2, 2, 2), core.NewVec3(0, 0, 0)))
	if got := light.Emitted(core.Vec2{}, core.NewVec3(-1, 1, 1)); got != (core.Vec3{}) {
		t.Errorf("Expected dark odd cell, got %v", got)
	}
}

func TestNonEmittersEmitNothing(t *testing.T) {
	for name, m := range map[string]core.Material{
		"lambertian": NewLambertian(core.NewVec3(1, 1, 1)),
		"metal":      NewMetal(core.NewVec3(1, 1, 1), 0),
		"dielectric": NewDielectric(1.5),
		"isotropic":  NewIsotropic(NewSolidColor(core.NewVec3(1, 1, 1))),
	} {
		if _, ok := m.(core.Emitter); ok {
			t.Errorf("%s should not implement Emitter", name)
		}
	}
}

func TestIsotropic_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.3, 0.3, 0.3)
	iso := NewIsotropic(NewSolidColor(albedo))
	hit := core.HitRecord{Point: core.NewVec3(1, 1, 1), Normal: core.NewVec3(1, 0, 0), FrontFace: true}
	ray := core.NewRayAtTime(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 0.7)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	var upward, downward int
	for i := 0; i < 500; i++ {
		scatter, ok := iso.Scatter(ray, hit, sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if scatter.Scattered.Direction.LengthSquared() > 1+1e-12 {
			t.Fatalf("Direction %v outside the unit sphere", scatter.Scattered.Direction)
		}
		if scatter.Attenuation != albedo || scatter.Scattered.Time != 0.7 {
			t.Fatalf("Unexpected scatter %+v", scatter)
		}
		if scatter.Scattered.Direction.Y > 0 {
			upward++
		} else {
			downward++
		}
	}
	if upward < 150 || downward < 150 {
		t.Errorf("Expected directions spread over the sphere, got %d up / %d down", upward, downward)
	}
}

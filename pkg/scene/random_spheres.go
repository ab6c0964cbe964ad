package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewRandomSpheresScene creates a field of small randomly placed spheres around
// three large ones, on a marbled ground. Placement and materials are drawn from
// opts.Seed so the same seed gives the same scene.
func NewRandomSpheresScene(opts Options) *Scene {
	opts = opts.withDefaults()
	random := rand.New(rand.NewSource(opts.Seed))

	s := &Scene{
		CameraConfig:   opts.cameraConfig(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 10),
		Background:     DefaultBackground,
		SamplingConfig: opts.samplingConfig(100, 50),
	}

	marble := material.NewNoiseTexture(material.NewPerlin(random), 4, 7)
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(marble)))

	// Keep clear of the big metal sphere
	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat core.Material
			switch {
			case chooseMat < 0.8:
				albedo := randomVec(random, 0, 1).MultiplyVec(randomVec(random, 0, 1))
				mat = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := randomVec(random, 0.5, 1)
				fuzz := random.Float64() * 0.5
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}
			s.Add(geometry.NewSphere(center, 0.2, mat))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)
	return s
}

func randomVec(random *rand.Rand, lo, hi float64) core.Vec3 {
	span := hi - lo
	return core.NewVec3(
		lo+span*random.Float64(),
		lo+span*random.Float64(),
		lo+span*random.Float64(),
	)
}

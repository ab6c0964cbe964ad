package scene

import (
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewLightsDemoScene creates two marbled spheres lit only by a rectangular
// area light against a black sky
func NewLightsDemoScene(opts Options) *Scene {
	opts = opts.withDefaults()

	marble := material.NewNoiseTexture(material.NewPerlin(rand.New(rand.NewSource(opts.Seed))), 4, 7)
	surface := material.NewTexturedLambertian(marble)
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	s := &Scene{
		CameraConfig:   opts.cameraConfig(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20, 10),
		Background:     core.Vec3{},
		SamplingConfig: opts.samplingConfig(400, 50),
	}
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, surface),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, surface),
		geometry.NewXYRect(3, 5, 1, 3, -2, light),
	)
	return s
}

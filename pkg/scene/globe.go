package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewGlobeScene creates a single image-textured earth sphere
func NewGlobeScene(opts Options) *Scene {
	opts = opts.withDefaults()

	earth := material.NewTexturedLambertian(opts.earthTexture())

	s := &Scene{
		CameraConfig:   opts.cameraConfig(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 10),
		Background:     DefaultBackground,
		SamplingConfig: opts.samplingConfig(50, 50),
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth))
	return s
}

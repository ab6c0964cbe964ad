package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewThreeSpheresScene creates a diffuse, a glass and a fuzzy metal sphere
// resting on a checkered ground sphere
func NewThreeSpheresScene(opts Options) *Scene {
	opts = opts.withDefaults()

	checker := material.NewCheckerColors(10, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	ground := material.NewTexturedLambertian(checker)
	center := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	glass := material.NewDielectric(1.5)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.7)

	s := &Scene{
		CameraConfig:   opts.cameraConfig(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 100, 1),
		Background:     DefaultBackground,
		SamplingConfig: opts.samplingConfig(100, 50),
	}
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gold),
	)
	return s
}

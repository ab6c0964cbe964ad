package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions
const cornellSize = 555.0

var (
	cornellRed   = core.NewVec3(0.65, 0.05, 0.05)
	cornellWhite = core.NewVec3(0.73, 0.73, 0.73)
	cornellGreen = core.NewVec3(0.12, 0.45, 0.15)
)

// newCornellBase creates an empty Cornell room with its ceiling light. The
// floor material is passed in so variants can texture it.
func newCornellBase(opts Options, floor core.Material) *Scene {
	opts = opts.withDefaults()

	red := material.NewLambertian(cornellRed)
	white := material.NewLambertian(cornellWhite)
	green := material.NewLambertian(cornellGreen)
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))
	if floor == nil {
		floor = white
	}

	s := &Scene{
		CameraConfig: opts.cameraConfig(
			core.NewVec3(278, 278, -800),
			core.NewVec3(278, 278, 0),
			40, 10,
		),
		Background:     core.Vec3{},
		SamplingConfig: opts.samplingConfig(200, 50),
	}

	s.Add(
		geometry.NewYZRect(0, cornellSize, 0, cornellSize, cornellSize, green), // left wall
		geometry.NewYZRect(0, cornellSize, 0, cornellSize, 0, red),             // right wall
		geometry.NewXZRect(213, 343, 227, 332, cornellSize-1, light),           // light just below the ceiling
		geometry.NewXZRect(0, cornellSize, 0, cornellSize, 0, floor),           // floor
		geometry.NewXZRect(0, cornellSize, 0, cornellSize, cornellSize, white), // ceiling
		geometry.NewXYRect(0, cornellSize, 0, cornellSize, cornellSize, white), // back wall
	)
	return s
}

// tallBox is the rotated 165x330x165 box at the back of the room
func tallBox(mat core.Material) core.Hittable {
	box := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, 15), core.NewVec3(265, 0, 295))
}

// shortBox is the rotated 165 unit cube at the front of the room
func shortBox(mat core.Material) core.Hittable {
	box := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	return geometry.NewTranslate(geometry.NewRotateY(box, -18), core.NewVec3(130, 0, 65))
}

// NewCornellScene creates the classic Cornell box with two white boxes
func NewCornellScene(opts Options) *Scene {
	s := newCornellBase(opts, nil)
	white := material.NewLambertian(cornellWhite)
	s.Add(tallBox(white), shortBox(white))
	return s
}

// NewCornellSmokeScene replaces the boxes with volumes of dark and light smoke
func NewCornellSmokeScene(opts Options) *Scene {
	s := newCornellBase(opts, nil)
	white := material.NewLambertian(cornellWhite)
	s.Add(
		geometry.NewConstantMediumColor(tallBox(white), 0.01, core.Vec3{}),
		geometry.NewConstantMediumColor(shortBox(white), 0.01, core.NewVec3(1, 1, 1)),
	)
	return s
}

// NewCornellFeatureDemoScene combines a checkered floor, a mirror box, a glass
// sphere and an earth globe in one room
func NewCornellFeatureDemoScene(opts Options) *Scene {
	opts = opts.withDefaults()

	checker := material.NewCheckerColors(0.1, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s := newCornellBase(opts, material.NewTexturedLambertian(checker))

	mirror := material.NewMetal(core.NewVec3(1, 1, 1), 0.01)
	white := material.NewLambertian(cornellWhite)
	glass := material.NewDielectric(1.5)
	earth := material.NewTexturedLambertian(opts.earthTexture())

	s.Add(
		tallBox(mirror),
		shortBox(white),
		geometry.NewSphere(core.NewVec3(212.5, 200, 147.5), 35, glass),
		geometry.NewSphere(core.NewVec3(250, 70, 250), 70, earth),
	)
	return s
}

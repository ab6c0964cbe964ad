package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// DefaultBackground is the sky color used by the outdoor presets
var DefaultBackground = core.NewVec3(0.7, 0.8, 1.0)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *geometry.Camera
	CameraConfig   geometry.CameraConfig
	Objects        []core.Hittable // Objects in the scene
	World          core.Hittable   // Acceleration structure built by Preprocess
	Background     core.Vec3       // Color returned for rays that hit nothing
	SamplingConfig SamplingConfig
}

// SamplingConfig contains the render settings a scene is tuned for
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// Preprocess prepares the scene for rendering: it builds the camera from its
// config when needed and the BVH over all objects. The scene must not be
// modified afterwards.
func (s *Scene) Preprocess(random *rand.Rand) error {
	if len(s.Objects) == 0 {
		return errors.New("scene has no objects")
	}

	if s.Camera == nil {
		s.Camera = geometry.NewCamera(s.CameraConfig)
	}

	bvh, err := geometry.NewBVH(s.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1, random)
	if err != nil {
		return fmt.Errorf("build bvh: %w", err)
	}
	s.World = bvh

	return nil
}

// IsPreprocessed reports whether the scene is ready to render
func (s *Scene) IsPreprocessed() bool {
	return s.World != nil && s.Camera != nil
}

// BVHStats returns statistics about the scene's acceleration structure
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	bvh, ok := s.World.(*geometry.BVHNode)
	if !ok {
		return geometry.BVHStats{}, false
	}
	return bvh.Stats(), true
}

// Options carries the per-render parameters that scene presets accept
type Options struct {
	AspectRatio float64     // Width / height, defaults to 16:9
	Aperture    float64     // Lens diameter, 0 for a pinhole camera
	AssetsDir   string      // Directory holding earthmap.jpg and other assets
	Seed        int64       // Seed for procedural content (noise, random placement)
	Logger      core.Logger // Optional, receives asset loading warnings
}

func (o Options) withDefaults() Options {
	if o.AspectRatio <= 0 {
		o.AspectRatio = 16.0 / 9.0
	}
	if o.AssetsDir == "" {
		o.AssetsDir = "assets"
	}
	return o
}

func (o Options) logf(format string, args ...interface{}) {
	if o.Logger != nil {
		o.Logger.Printf(format, args...)
	}
}

// cameraConfig builds the camera setup shared by every preset: a fixed up
// vector and a shutter open over [0, 1]
func (o Options) cameraConfig(lookFrom, lookAt core.Vec3, vfov, focusDistance float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          vfov,
		AspectRatio:   o.AspectRatio,
		Aperture:      o.Aperture,
		FocusDistance: focusDistance,
		Time0:         0,
		Time1:         1,
	}
}

// samplingConfig returns the recommended settings for a preset at the
// default width
func (o Options) samplingConfig(samples, depth int) SamplingConfig {
	const width = 400
	return SamplingConfig{
		Width:           width,
		Height:          max(1, int(width/o.AspectRatio)),
		SamplesPerPixel: samples,
		MaxDepth:        depth,
	}
}

// earthTexture loads the earth map from the assets directory. A banded
// stand-in is returned when the image cannot be read so presets still render.
func (o Options) earthTexture() material.Texture {
	path := filepath.Join(o.AssetsDir, "earthmap.jpg")
	texture, err := loaders.LoadImageTexture(path)
	if err != nil {
		o.logf("Warning: %v, using procedural earth texture\n", err)
		return material.NewLatitudeBandTexture(360, 180, 12,
			core.NewVec3(0.35, 0.55, 0.25), core.NewVec3(0.1, 0.25, 0.6))
	}
	return texture
}

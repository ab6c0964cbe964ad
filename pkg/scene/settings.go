package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// AspectRatio is expressed as a width:height pair, e.g. 16:9
type AspectRatio struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Value returns width / height
func (a AspectRatio) Value() float64 {
	return a.Width / a.Height
}

// CameraSettings holds the camera parameters a settings file may override
type CameraSettings struct {
	AspectRatio AspectRatio `json:"aspectRatio"`
	Aperture    float64     `json:"aperture"`
}

// Settings describes one render job as read from a JSON settings file
type Settings struct {
	Scene      string         `json:"scene"`
	OutputFile string         `json:"outputFile"`
	MaxDepth   int            `json:"maxDepth"`
	ImageWidth int            `json:"imageWidth"`
	NumSamples int            `json:"numSamples"`
	Camera     CameraSettings `json:"camera"`
	Threads    int            `json:"numThreads,omitempty"` // 0 picks the logical core count
	Seed       int64          `json:"seed"`
}

// DefaultSettings returns the settings used when no file is given
func DefaultSettings() Settings {
	return Settings{
		Scene:      "three-spheres",
		OutputFile: "output/render.png",
		MaxDepth:   50,
		ImageWidth: 400,
		NumSamples: 100,
		Camera: CameraSettings{
			AspectRatio: AspectRatio{Width: 16, Height: 9},
			Aperture:    0,
		},
		Seed: 42,
	}
}

// LoadSettings reads a JSON settings file. Fields missing from the file keep
// their DefaultSettings values.
func LoadSettings(path string) (Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer file.Close()

	settings := DefaultSettings()
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	return settings, nil
}

// Validate checks that the settings describe a renderable job
func (s Settings) Validate() error {
	var errs []error
	if s.Scene == "" {
		errs = append(errs, errors.New("scene must be set"))
	}
	if s.ImageWidth <= 0 {
		errs = append(errs, fmt.Errorf("imageWidth must be positive, got %d", s.ImageWidth))
	}
	if s.NumSamples <= 0 {
		errs = append(errs, fmt.Errorf("numSamples must be positive, got %d", s.NumSamples))
	}
	if s.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("maxDepth must be positive, got %d", s.MaxDepth))
	}
	if s.Camera.AspectRatio.Width <= 0 || s.Camera.AspectRatio.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera aspect ratio must be positive, got %gx%g",
			s.Camera.AspectRatio.Width, s.Camera.AspectRatio.Height))
	}
	if s.Camera.Aperture < 0 {
		errs = append(errs, fmt.Errorf("camera aperture must not be negative, got %g", s.Camera.Aperture))
	}
	if s.Threads < 0 {
		errs = append(errs, fmt.Errorf("numThreads must not be negative, got %d", s.Threads))
	}
	if len(errs) == 0 && s.ImageHeight() <= 0 {
		errs = append(errs, fmt.Errorf("image height rounds to zero for width %d", s.ImageWidth))
	}
	return errors.Join(errs...)
}

// AspectRatio returns the camera aspect ratio as a single number
func (s Settings) AspectRatio() float64 {
	return s.Camera.AspectRatio.Value()
}

// ImageHeight derives the image height from the width and aspect ratio
func (s Settings) ImageHeight() int {
	return int(float64(s.ImageWidth) / s.AspectRatio())
}

// NumThreads returns the configured worker count, or fallback when unset
func (s Settings) NumThreads(fallback int) int {
	if s.Threads > 0 {
		return s.Threads
	}
	return fallback
}

// SamplesPerThread returns the base per-worker share of the sample budget.
// Workers with index below NumSamples % threads take one extra sample.
func (s Settings) SamplesPerThread(threads int) int {
	if threads <= 0 {
		return s.NumSamples
	}
	return s.NumSamples / threads
}

// Options converts the camera settings into scene build options
func (s Settings) Options(assetsDir string) Options {
	return Options{
		AspectRatio: s.AspectRatio(),
		Aperture:    s.Camera.Aperture,
		AssetsDir:   assetsDir,
		Seed:        s.Seed,
	}
}
